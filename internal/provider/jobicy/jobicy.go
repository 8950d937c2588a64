// Package jobicy implements the open Jobicy remote-job directory
// provider. Soft-fail contract: failures map to an empty result set.
package jobicy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"go.uber.org/zap"
)

const (
	apiURL = "https://jobicy.com/api/v2/remote-jobs"

	// SourceLabel is the provider label for listings.
	SourceLabel = "Jobicy API"

	resultCount = "10"
	httpTimeout = 10 * time.Second
)

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

type rawItem struct {
	JobTitle       string `mapstructure:"jobTitle"`
	CompanyName    string `mapstructure:"companyName"`
	JobGeo         string `mapstructure:"jobGeo"`
	JobDescription string `mapstructure:"jobDescription"`
	URL            string `mapstructure:"url"`
	PubDate        string `mapstructure:"pubDate"`
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

func (c *Client) Source() jobs.Source { return jobs.SourceJobicy }

func (c *Client) Available() bool { return true }

func (c *Client) Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error) {
	q := url.Values{}
	q.Set("count", resultCount)
	if params.Query != "" {
		// Jobicy filters by dash-separated lowercase tags.
		tag := strings.ToLower(strings.Join(strings.Fields(params.Query), "-"))
		q.Set("tag", tag)
	}

	var response searchResponse
	if err := c.getJSON(ctx, c.APIURL, q, &response); err != nil {
		c.logger.Warn("fetching jobs from jobicy api", zap.Error(err))
		return []*jobs.Job{}, nil
	}

	found := make([]*jobs.Job, 0, len(response.Jobs))
	for _, data := range response.Jobs {
		var item rawItem
		if err := mapstructure.Decode(data, &item); err != nil {
			c.logger.Warn("decoding jobicy item", zap.Error(err))
			continue
		}

		found = append(found, &jobs.Job{
			Title:       jobs.OrPlaceholder(item.JobTitle, jobs.PlaceholderMissing),
			Company:     jobs.OrPlaceholder(item.CompanyName, jobs.PlaceholderMissing),
			Location:    jobs.OrPlaceholder(item.JobGeo, jobs.PlaceholderLocation),
			Description: jobs.OrPlaceholder(jobs.StripHTML(item.JobDescription), jobs.PlaceholderDescription),
			URL:         jobs.OrPlaceholder(item.URL, jobs.PlaceholderURL),
			PostedDate:  jobs.NormalizeDate(item.PubDate),
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
		return fmt.Errorf("jobicy api responded with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
