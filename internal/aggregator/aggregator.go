// Package aggregator fans a single search out across the configured
// providers, merges their results in a fixed order and deduplicates them.
package aggregator

import (
	"context"
	"fmt"

	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"github.com/vj-vijeta/job-hunt-assistant/internal/provider"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Aggregator struct {
	// providers holds the fixed invocation order. Merge order, and
	// therefore first-occurrence-wins dedup resolution, follows it.
	providers []provider.Provider
	logger    *zap.Logger
}

func New(providers []provider.Provider, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{providers: providers, logger: logger}
}

// Providers returns the registered providers in invocation order.
func (a *Aggregator) Providers() []provider.Provider {
	return a.providers
}

// IsAvailable reports whether the provider behind the given selector is
// configured and eligible for searching.
func (a *Aggregator) IsAvailable(source jobs.Source) bool {
	for _, p := range a.providers {
		if p.Source() == source {
			return p.Available()
		}
	}

	return false
}

// Aggregate runs the search against the selected providers and returns
// the merged, deduplicated listings.
//
// With SourceAll every available provider is queried concurrently and any
// individual failure is absorbed to an empty result so one flaky source
// never blanks the combined list. With a single named provider that
// provider's error propagates to the caller.
func (a *Aggregator) Aggregate(ctx context.Context, params *jobs.SearchParams) (*jobs.Jobs, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	source := params.Source
	if source == "" {
		source = jobs.SourceAll
	}

	if source != jobs.SourceAll {
		return a.aggregateOne(ctx, source, params)
	}

	return a.aggregateAll(ctx, params)
}

func (a *Aggregator) aggregateOne(ctx context.Context, source jobs.Source, params *jobs.SearchParams) (*jobs.Jobs, error) {
	for _, p := range a.providers {
		if p.Source() != source {
			continue
		}

		found, err := p.Search(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}

		merged := &jobs.Jobs{Items: found}
		merged.Dedupe()

		return merged, nil
	}

	return nil, fmt.Errorf("no provider registered for source %q", source)
}

func (a *Aggregator) aggregateAll(ctx context.Context, params *jobs.SearchParams) (*jobs.Jobs, error) {
	// Germany is a relabeled alias of jsearch, only queried when named
	// explicitly. Keyed providers without a credential are skipped to
	// avoid a guaranteed-empty round trip.
	selected := make([]provider.Provider, 0, len(a.providers))
	for _, p := range a.providers {
		if p.Source() == jobs.SourceGermany {
			continue
		}
		if !p.Available() {
			a.logger.Info("skipping unavailable provider", zap.String("provider", p.Name()))
			continue
		}
		selected = append(selected, p)
	}

	results := make([][]*jobs.Job, len(selected))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, p := range selected {
		group.Go(func() error {
			found, err := p.Search(groupCtx, params)
			if err != nil {
				// Absorbed: partial provider failure must not abort
				// the combined search.
				a.logger.Warn("provider search failed",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
				return nil
			}

			results[i] = found

			a.logger.Debug("provider search finished",
				zap.String("provider", p.Name()),
				zap.Int("count", len(found)),
			)
			return nil
		})
	}

	// Workers never return errors, the join only waits for all to settle.
	_ = group.Wait()

	merged := &jobs.Jobs{}
	for _, found := range results {
		merged.Append(found...)
	}
	merged.Dedupe()

	return merged, nil
}
