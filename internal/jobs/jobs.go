package jobs

import (
	"encoding/json"
	"fmt"
	"os"
)

// Job is a single normalized job listing. Providers map their own field
// names into this shape at the adapter boundary; a Job is never mutated
// after creation.
type Job struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PostedDate  string `json:"postedDate"`
	Source      string `json:"source"`
}

// Key returns the identity used for deduplication. Matching is exact and
// case sensitive on (title, company).
func (j *Job) Key() string {
	return j.Title + "\x00" + j.Company
}

// DescriptionHeader renders the header prepended to the job description
// when a listing is selected as a generation target.
func (j *Job) DescriptionHeader() string {
	return fmt.Sprintf("Job Title: %s\nCompany: %s\nLocation: %s\n---\n", j.Title, j.Company, j.Location)
}

type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// Dedupe removes entries sharing a (title, company) pair, keeping the
// first occurrence and preserving relative order otherwise.
func (j *Jobs) Dedupe() {
	seen := make(map[string]struct{}, len(j.Items))
	kept := make([]*Job, 0, len(j.Items))

	for _, job := range j.Items {
		key := job.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, job)
	}

	j.Items = kept
}

func (j *Jobs) Append(items ...*Job) {
	j.Items = append(j.Items, items...)
}

// ExcludeURLs removes listings whose URL is in the provided set and
// returns the titles of removed entries.
func (j *Jobs) ExcludeURLs(urls []string) []string {
	excluded := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		excluded[u] = struct{}{}
	}

	removed := make([]string, 0)
	kept := make([]*Job, 0, len(j.Items))
	for _, job := range j.Items {
		if _, ok := excluded[job.URL]; ok && job.URL != "" && job.URL != "#" {
			removed = append(removed, job.Title)
			continue
		}
		kept = append(kept, job)
	}

	j.Items = kept

	return removed
}

// ReportBySource groups listing titles by provider label.
func (j *Jobs) ReportBySource() map[string][]string {
	report := make(map[string][]string)
	for _, job := range j.Items {
		report[job.Source] = append(report[job.Source], fmt.Sprintf("%s / %s", job.Title, job.Company))
	}

	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "job-hunt-assistant-results-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	pretty, err := json.MarshalIndent(j.Items, "", "  ")
	if err != nil {
		return "", err
	}

	if _, err := file.Write(pretty); err != nil {
		return "", err
	}

	return file.Name(), nil
}
