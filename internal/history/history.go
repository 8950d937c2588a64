// Package history tracks applications the user marked as submitted, so
// repeat search runs can skip listings that were already applied to.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vj-vijeta/job-hunt-assistant/internal/generator"
	"github.com/vj-vijeta/job-hunt-assistant/internal/jobs"
)

const fileMode = 0o600

// AppliedJob is one tracked application together with the materials it
// was submitted with.
type AppliedJob struct {
	ID          string                      `json:"id"`
	Job         *jobs.Job                   `json:"job"`
	AppliedDate string                      `json:"appliedDate"`
	Resume      *generator.StructuredResume `json:"generatedResume,omitempty"`
	CoverLetter string                      `json:"generatedCoverLetter,omitempty"`
}

type History struct {
	path string
	now  func() time.Time

	Items []*AppliedJob
}

// Load reads the history file; a missing file yields an empty history.
func Load(path string) (*History, error) {
	h := &History{path: path, now: time.Now}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file %q: %w", path, err)
	}

	if err := json.Unmarshal(data, &h.Items); err != nil {
		return nil, fmt.Errorf("parsing history file %q: %w", path, err)
	}

	return h, nil
}

func (h *History) Len() int {
	return len(h.Items)
}

// Track prepends a new applied job, mirroring newest-first display order.
func (h *History) Track(job *jobs.Job, data *generator.GeneratedData) *AppliedJob {
	applied := &AppliedJob{
		ID:          strconv.FormatInt(h.now().UnixNano(), 10),
		Job:         job,
		AppliedDate: h.now().Format("2006-01-02"),
	}
	if data != nil {
		applied.Resume = data.Resume
		applied.CoverLetter = data.CoverLetter
	}

	h.Items = append([]*AppliedJob{applied}, h.Items...)

	return applied
}

// Delete removes a tracked application by ID and reports whether it existed.
func (h *History) Delete(id string) bool {
	for i, item := range h.Items {
		if item.ID == id {
			h.Items = append(h.Items[:i], h.Items[i+1:]...)
			return true
		}
	}

	return false
}

// AppliedURLs returns the listing URLs of all tracked applications.
func (h *History) AppliedURLs() []string {
	urls := make([]string, 0, len(h.Items))
	for _, item := range h.Items {
		if item.Job != nil {
			urls = append(urls, item.Job.URL)
		}
	}

	return urls
}

func (h *History) Save() error {
	data, err := json.MarshalIndent(h.Items, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(h.path, data, fileMode); err != nil {
		return fmt.Errorf("writing history file %q: %w", h.path, err)
	}

	return nil
}
