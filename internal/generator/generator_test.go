package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vj-vijeta/job-hunt-assistant/internal/ai"
	"github.com/vj-vijeta/job-hunt-assistant/internal/profile"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const materialsResponse = `{
	"resume": {
		"name": "Jane Doe",
		"email": "jane@example.com",
		"phone": "123",
		"website": "",
		"address": "Berlin",
		"summary": "Engineer.",
		"experiences": [
			{"role": "Engineer", "company": "Acme", "dates": "2020 - 2023", "description": "Built things."}
		],
		"skills": ["Go"],
		"education": "BSc",
		"certifications": ""
	},
	"coverLetter": "Dear team,",
	"jobMatchAnalysis": {
		"matchScore": 82,
		"summary": "Strong fit.",
		"strengths": ["Go"],
		"weaknesses": ["German"]
	}
}`

type stubGrounded struct {
	result *ai.GroundedResult
	err    error
	prompt string
}

func (s *stubGrounded) GenerateGrounded(_ context.Context, prompt string) (*ai.GroundedResult, error) {
	s.prompt = prompt
	return s.result, s.err
}

type stubStructured struct {
	response string
	err      error
	prompt   string
	schema   *genai.Schema
}

func (s *stubStructured) GenerateJSON(_ context.Context, prompt string, schema *genai.Schema) (string, error) {
	s.prompt = prompt
	s.schema = schema
	return s.response, s.err
}

func validRequest() *Request {
	return &Request{
		UserInfo: profile.UserInfo{FullName: "Jane Doe"},
		Experiences: []*profile.Experience{
			{ID: "1", Company: "Acme", Role: "Engineer"},
		},
		JobDescription: "Job Title: Engineer\nCompany: Globex",
		Style:          profile.StyleProfessional,
		Language:       profile.LanguageEnglish,
	}
}

func TestGenerateJoinsBothCalls(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{
		Text:    "Globex builds things.",
		Sources: []ai.SourceRef{{URI: "https://globex.example", Title: "Globex"}},
	}}
	structured := &stubStructured{response: materialsResponse}

	data, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Resume == nil || data.Resume.Name != "Jane Doe" {
		t.Fatalf("unexpected resume: %+v", data.Resume)
	}
	if data.CoverLetter != "Dear team," {
		t.Fatalf("unexpected cover letter: %q", data.CoverLetter)
	}
	if data.JobMatchAnalysis == nil || data.JobMatchAnalysis.MatchScore != 82 {
		t.Fatalf("unexpected analysis: %+v", data.JobMatchAnalysis)
	}
	if data.CompanyInsights == nil || data.CompanyInsights.Text != "Globex builds things." {
		t.Fatalf("unexpected insights: %+v", data.CompanyInsights)
	}
	if len(data.CompanyInsights.Sources) != 1 || data.CompanyInsights.Sources[0].URI != "https://globex.example" {
		t.Fatalf("unexpected insight sources: %+v", data.CompanyInsights.Sources)
	}

	if structured.schema != materialsSchema {
		t.Fatalf("materials call must carry the materials schema")
	}
}

func TestGenerateSurvivesInsightsFailure(t *testing.T) {
	grounded := &stubGrounded{err: errors.New("quota exceeded")}
	structured := &stubStructured{response: materialsResponse}

	data, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("insights failure must not fail generation: %v", err)
	}

	if data.CompanyInsights != nil {
		t.Fatalf("expected nil insights, got %+v", data.CompanyInsights)
	}
	if data.Resume == nil || data.CoverLetter == "" {
		t.Fatalf("materials must still be populated: %+v", data)
	}
}

func TestGenerateMaterialsFailureIsFatal(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{Text: "insights"}}
	structured := &stubStructured{err: errors.New("model unavailable")}

	_, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), validRequest())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateRejectsUnparsableMaterials(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{Text: "insights"}}
	structured := &stubStructured{response: "I cannot help with that."}

	_, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), validRequest())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateRejectsIncompleteMaterials(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{Text: "insights"}}
	structured := &stubStructured{response: `{"resume": null, "coverLetter": "", "jobMatchAnalysis": null}`}

	_, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), validRequest())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateValidatesInputs(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{}}
	structured := &stubStructured{response: materialsResponse}
	orchestrator := New(grounded, structured, zap.NewNop())

	cases := []struct {
		name string
		req  *Request
	}{
		{"nil request", nil},
		{"empty job description", &Request{Style: profile.StyleProfessional, Language: profile.LanguageEnglish}},
		{"unknown style", &Request{JobDescription: "x", Style: "baroque", Language: profile.LanguageEnglish}},
		{"unknown language", &Request{JobDescription: "x", Style: profile.StyleProfessional, Language: "xx"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := orchestrator.Generate(context.Background(), tc.req); !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("expected ErrGenerationFailed, got %v", err)
			}
		})
	}

	if structured.prompt != "" {
		t.Fatalf("invalid requests must not reach the model")
	}
}

func TestGeneratePromptCarriesLanguageStyleAndProfile(t *testing.T) {
	grounded := &stubGrounded{result: &ai.GroundedResult{Text: "insights"}}
	structured := &stubStructured{response: materialsResponse}

	req := validRequest()
	req.Style = profile.StyleCreative
	req.Language = profile.LanguageGerman
	req.CvText = "Jane Doe, Engineer at Acme since 2020."

	if _, err := New(grounded, structured, zap.NewNop()).Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"German", "creative", "Jane Doe", "Engineer at Acme since 2020"} {
		if !strings.Contains(structured.prompt, want) {
			t.Fatalf("materials prompt missing %q:\n%s", want, structured.prompt)
		}
	}
	if strings.Contains(structured.prompt, `"id"`) {
		t.Fatalf("experience IDs must not leak into the prompt")
	}

	if !strings.Contains(grounded.prompt, req.JobDescription) {
		t.Fatalf("insights prompt missing job description:\n%s", grounded.prompt)
	}
}
