// Package remotive implements the open Remotive remote-job directory
// provider. Soft-fail contract: failures map to an empty result set.
package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"go.uber.org/zap"
)

const (
	apiURL = "https://remotive.com/api/remote-jobs"

	// SourceLabel is the provider label for listings.
	SourceLabel = "Remotive API"

	resultLimit = "10"
	httpTimeout = 10 * time.Second
)

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

type rawItem struct {
	Title            string `mapstructure:"title"`
	CompanyName      string `mapstructure:"company_name"`
	RequiredLocation string `mapstructure:"candidate_required_location"`
	Description      string `mapstructure:"description"`
	URL              string `mapstructure:"url"`
	PublicationDate  string `mapstructure:"publication_date"`
}

type searchResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

func New(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return SourceLabel }

func (c *Client) Source() jobs.Source { return jobs.SourceRemotive }

func (c *Client) Available() bool { return true }

func (c *Client) Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error) {
	q := url.Values{}
	q.Set("limit", resultLimit)
	if params.Query != "" {
		q.Set("search", params.Query)
	}

	var response searchResponse
	if err := c.getJSON(ctx, c.APIURL, q, &response); err != nil {
		c.logger.Warn("fetching jobs from remotive api", zap.Error(err))
		return []*jobs.Job{}, nil
	}

	found := make([]*jobs.Job, 0, len(response.Jobs))
	for _, data := range response.Jobs {
		var item rawItem
		if err := mapstructure.Decode(data, &item); err != nil {
			c.logger.Warn("decoding remotive item", zap.Error(err))
			continue
		}

		found = append(found, &jobs.Job{
			Title:       jobs.OrPlaceholder(item.Title, jobs.PlaceholderMissing),
			Company:     jobs.OrPlaceholder(item.CompanyName, jobs.PlaceholderMissing),
			Location:    jobs.OrPlaceholder(item.RequiredLocation, jobs.PlaceholderLocation),
			Description: jobs.OrPlaceholder(jobs.StripHTML(item.Description), jobs.PlaceholderDescription),
			URL:         jobs.OrPlaceholder(item.URL, jobs.PlaceholderURL),
			PostedDate:  jobs.NormalizeDate(item.PublicationDate),
			Source:      SourceLabel,
		})
	}

	return found, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remotive api responded with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
