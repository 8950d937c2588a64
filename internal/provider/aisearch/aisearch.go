// Package aisearch implements the generative search provider. Unlike the
// REST directories it has no soft-fail contract: a malformed response is
// a typed error the caller decides how to isolate.
package aisearch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vj-vijeta/job-hunt-assistant/internal/ai"
	"github.com/vj-vijeta/job-hunt-assistant/internal/ai/gemini"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"
	"go.uber.org/zap"
)

const (
	// SourceLabel is stamped onto listings found by the AI search.
	SourceLabel = "AI-Powered Search"

	maxResults = 5
)

// ErrUnexpectedFormat indicates the model did not answer with the raw
// JSON array the prompt demands.
var ErrUnexpectedFormat = errors.New("failed to parse job search results from the AI: the format was unexpected")

type Provider struct {
	generator ai.GroundedGenerator
	logger    *zap.Logger
}

func New(generator ai.GroundedGenerator, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{generator: generator, logger: logger}
}

func (p *Provider) Name() string { return SourceLabel }

func (p *Provider) Source() jobs.Source { return jobs.SourceAISearch }

func (p *Provider) Available() bool { return p.generator != nil }

func (p *Provider) Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error) {
	if p.generator == nil {
		return nil, fmt.Errorf("ai search generator is not configured")
	}

	prompt := buildPrompt(params)

	result, err := p.generator.GenerateGrounded(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
	}

	var found []*jobs.Job
	if err := gemini.DecodeJSON(result.Text, &found); err != nil {
		p.logger.Debug("unparseable ai search response",
			zap.String("response_preview", logger.TruncateForLog(result.Text, 200)),
		)
		return nil, fmt.Errorf("%w: %w", ErrUnexpectedFormat, err)
	}

	if len(found) > maxResults {
		found = found[:maxResults]
	}

	for _, job := range found {
		job.Title = jobs.OrPlaceholder(job.Title, jobs.PlaceholderMissing)
		job.Company = jobs.OrPlaceholder(job.Company, jobs.PlaceholderMissing)
		job.Location = jobs.OrPlaceholder(job.Location, jobs.PlaceholderLocation)
		job.Description = jobs.OrPlaceholder(job.Description, jobs.PlaceholderDescription)
		job.URL = jobs.OrPlaceholder(job.URL, jobs.PlaceholderURL)
		job.PostedDate = jobs.OrPlaceholder(job.PostedDate, jobs.PlaceholderMissing)
		job.Source = SourceLabel
	}

	return found, nil
}

func buildPrompt(params *jobs.SearchParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on the query %q", params.Query)
	if params.Location != "" {
		fmt.Fprintf(&b, " in %q", params.Location)
	}
	if params.JobType != "" {
		fmt.Fprintf(&b, " for a %s position", strings.ToLower(string(params.JobType)))
	}
	if params.RemoteOnly {
		b.WriteString(", that is a remote role")
	}

	fmt.Fprintf(&b, ". Find up to %d relevant and recent job postings. ", maxResults)
	b.WriteString(`Provide the result as a JSON array of objects. Each object should have keys "title", "company", "location", "description", "url", "postedDate", and "source". `)
	b.WriteString(`The "postedDate" should be a human-readable string like "3 days ago" or "2023-10-27". `)
	fmt.Fprintf(&b, "The %q should be '%s'. ", "source", SourceLabel)
	b.WriteString("IMPORTANT: Respond with ONLY the raw JSON array string. Do not include any other text, markdown formatting, or explanations.")

	return b.String()
}
