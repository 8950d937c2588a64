package jobs

import "fmt"

// Source selects which provider(s) a search fans out to.
type Source string

const (
	SourceAll      Source = "all"
	SourceAISearch Source = "gemini"
	SourceJSearch  Source = "jsearch"
	SourceGermany  Source = "germany"
	SourceJobicy   Source = "jobicy"
	SourceRemotive Source = "remotive"
)

// JobType mirrors the employment type filter understood by the keyed
// search providers.
type JobType string

const (
	JobTypeFulltime   JobType = "FULLTIME"
	JobTypeContractor JobType = "CONTRACTOR"
	JobTypeParttime   JobType = "PARTTIME"
	JobTypeIntern     JobType = "INTERN"
)

// SearchParams describes a single search invocation. The value is treated
// as immutable once a search starts.
type SearchParams struct {
	Query      string  `mapstructure:"query"`
	Location   string  `mapstructure:"location"`
	Source     Source  `mapstructure:"source"`
	JobType    JobType `mapstructure:"job_type"`
	RemoteOnly bool    `mapstructure:"remote_only"`
}

func (p *SearchParams) Validate() error {
	if p == nil {
		return fmt.Errorf("search params are required")
	}

	if p.Query == "" {
		return fmt.Errorf("search query must not be empty")
	}

	switch p.JobType {
	case "", JobTypeFulltime, JobTypeContractor, JobTypeParttime, JobTypeIntern:
	default:
		return fmt.Errorf("unknown job type: %s", p.JobType)
	}

	switch p.Source {
	case "", SourceAll, SourceAISearch, SourceJSearch, SourceGermany, SourceJobicy, SourceRemotive:
	default:
		return fmt.Errorf("unknown source: %s", p.Source)
	}

	return nil
}
