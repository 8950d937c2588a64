package generator

import "github.com/vj-vijeta/job-hunt-assistant/internal/ai"

// ResumeExperience is one rewritten work history entry of the generated
// resume. Description holds newline-delimited bullet text.
type ResumeExperience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

// StructuredResume is the fully populated resume produced by the main
// generation call. The caller owns it afterwards and may edit any field.
type StructuredResume struct {
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Website        string             `json:"website"`
	Address        string             `json:"address"`
	Summary        string             `json:"summary"`
	Experiences    []ResumeExperience `json:"experiences"`
	Skills         []string           `json:"skills"`
	Education      string             `json:"education"`
	Certifications string             `json:"certifications"`
}

// CompanyInsights is the best-effort enrichment about the employer. Nil
// when the insights call failed.
type CompanyInsights struct {
	Text    string         `json:"text"`
	Sources []ai.SourceRef `json:"sources"`
}

// JobMatchAnalysis scores how well the profile matches the job.
type JobMatchAnalysis struct {
	MatchScore int      `json:"matchScore"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// GeneratedData is the result of one generation invocation. It replaces
// any previous instance wholesale.
type GeneratedData struct {
	Resume           *StructuredResume `json:"resume"`
	CoverLetter      string            `json:"coverLetter"`
	CompanyInsights  *CompanyInsights  `json:"companyInsights"`
	JobMatchAnalysis *JobMatchAnalysis `json:"jobMatchAnalysis"`
}
