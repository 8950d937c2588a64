// Package provider defines the capability shared by all external job
// listing sources. Each adapter normalizes its own wire format into the
// canonical jobs.Job shape before anything crosses this boundary.
package provider

import (
	"context"

	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
)

// Provider is a single external job listing source.
type Provider interface {
	// Name returns the provider label stamped onto normalized listings.
	Name() string

	// Source returns the selector identifying this provider in search params.
	Source() jobs.Source

	// Available reports whether the provider can be queried. Keyed
	// providers without a configured credential report false and are
	// skipped by the aggregator (soft-disabled).
	Available() bool

	// Search returns normalized listings for the given params.
	Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error)
}
