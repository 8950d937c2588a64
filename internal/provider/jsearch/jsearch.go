// Package jsearch implements the keyed RapidAPI job search provider and
// its location-biased variant. Both follow the soft-fail contract: any
// transport or decode problem yields an empty result set, never an error.
package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
	"go.uber.org/zap"
)

const (
	apiURL = "https://jsearch.p.rapidapi.com"

	// SourceLabel is the default provider label for listings.
	SourceLabel = "JSearch API"
	// GermanySourceLabel marks listings found by the location-biased variant.
	GermanySourceLabel = "JSearch (Germany)"

	searchPath  = "/search"
	rapidHost   = "jsearch.p.rapidapi.com"
	httpTimeout = 10 * time.Second
)

type Client struct {
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

// rawItem is the untyped JSearch wire shape, decoded with mapstructure
// before normalization so no provider-specific value leaves this package.
type rawItem struct {
	JobTitle       string `mapstructure:"job_title"`
	EmployerName   string `mapstructure:"employer_name"`
	JobCity        string `mapstructure:"job_city"`
	JobState       string `mapstructure:"job_state"`
	JobCountry     string `mapstructure:"job_country"`
	JobDescription string `mapstructure:"job_description"`
	JobGoogleLink  string `mapstructure:"job_google_link"`
	JobPostedAt    string `mapstructure:"job_posted_at_datetime_utc"`
}

type searchResponse struct {
	Data []map[string]any `json:"data"`
}

// New creates a JSearch client. An empty apiKey produces a soft-disabled
// client that always returns empty results.
func New(apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return SourceLabel }

func (c *Client) Source() jobs.Source { return jobs.SourceJSearch }

func (c *Client) Available() bool { return c.apiKey != "" }

func (c *Client) Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error) {
	return c.search(ctx, params, SourceLabel)
}

func (c *Client) search(ctx context.Context, params *jobs.SearchParams, sourceName string) ([]*jobs.Job, error) {
	if !c.Available() {
		c.logger.Warn("jsearch api key is not configured, skipping api job search")
		return []*jobs.Job{}, nil
	}

	q := buildParams(params)

	var response searchResponse
	if err := c.getJSON(ctx, c.APIURL+searchPath, q, &response); err != nil {
		c.logger.Warn("fetching jobs from jsearch api", zap.Error(err))
		return []*jobs.Job{}, nil
	}

	found := make([]*jobs.Job, 0, len(response.Data))
	for _, data := range response.Data {
		var item rawItem
		if err := mapstructure.Decode(data, &item); err != nil {
			c.logger.Warn("decoding jsearch item", zap.Error(err))
			continue
		}
		found = append(found, normalize(&item, sourceName))
	}

	return found, nil
}

func buildParams(params *jobs.SearchParams) url.Values {
	finalQuery := params.Query
	if params.Location != "" {
		finalQuery = fmt.Sprintf("%s, %s", params.Query, params.Location)
	}

	q := url.Values{}
	q.Set("query", finalQuery)
	q.Set("num_pages", "1")
	q.Set("page", "1")
	if params.JobType != "" {
		q.Set("employment_types", string(params.JobType))
	}
	if params.RemoteOnly {
		q.Set("remote_jobs_only", "true")
	}

	return q
}

func normalize(item *rawItem, sourceName string) *jobs.Job {
	location := item.JobCountry
	if item.JobCity != "" {
		location = fmt.Sprintf("%s, %s", item.JobCity, item.JobState)
	}

	return &jobs.Job{
		Title:       jobs.OrPlaceholder(item.JobTitle, jobs.PlaceholderMissing),
		Company:     jobs.OrPlaceholder(item.EmployerName, jobs.PlaceholderMissing),
		Location:    jobs.OrPlaceholder(location, jobs.PlaceholderLocation),
		Description: jobs.OrPlaceholder(jobs.StripHTML(item.JobDescription), jobs.PlaceholderDescription),
		URL:         jobs.OrPlaceholder(item.JobGoogleLink, jobs.PlaceholderURL),
		PostedDate:  jobs.NormalizeDate(item.JobPostedAt),
		Source:      sourceName,
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, q url.Values, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidHost)
	req.URL.RawQuery = q.Encode()

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Debug("jsearch api error body", zap.ByteString("body", body))
		return fmt.Errorf("jsearch api responded with status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// Germany is the location-biased JSearch variant. It reuses the parent
// client's transport, appends "Germany" to the requested location and
// relabels the source.
type Germany struct {
	*Client
}

func NewGermany(client *Client) *Germany {
	return &Germany{Client: client}
}

func (g *Germany) Name() string { return GermanySourceLabel }

func (g *Germany) Source() jobs.Source { return jobs.SourceGermany }

func (g *Germany) Search(ctx context.Context, params *jobs.SearchParams) ([]*jobs.Job, error) {
	biased := *params
	biased.Location = strings.TrimSpace(params.Location + " Germany")

	return g.search(ctx, &biased, GermanySourceLabel)
}
