// Package ingest turns extracted CV text into structured profile data
// and, on success, job-title suggestions. The two stages run in sequence
// and each tracks its own observable state.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "embed"

	"github.com/vj-vijeta/job-hunt-assistant/internal/profile"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

//go:embed extract_prompt.md
var extractPromptTemplate string

//go:embed titles_prompt.md
var titlesPromptTemplate string

// ErrEmptyInput is returned when the pipeline is fed empty or
// whitespace-only text; no generation call is made in that case.
var ErrEmptyInput = errors.New("cv text is empty")

// State of the extraction stage.
type State string

const (
	StateIdle      State = "idle"
	StateParsing   State = "parsing"
	StateAnalyzing State = "analyzing"
	StateSuccess   State = "success"
	StateError     State = "error"
)

// SuggestionState of the title suggestion stage.
type SuggestionState string

const (
	SuggestionIdle       SuggestionState = "idle"
	SuggestionSuggesting SuggestionState = "suggesting"
	SuggestionSuccess    SuggestionState = "success"
)

const suggestedTitleCount = 5

type structuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// Pipeline is a single-use-per-run, state-tracked CV ingestion pipeline.
// State transitions within one run are monotonic:
// idle→parsing→analyzing→(success|error), then on success only
// idle→suggesting→success for the suggestion stage.
type Pipeline struct {
	generator structuredGenerator
	logger    *zap.Logger
	now       func() time.Time

	state           State
	suggestionState SuggestionState
	visited         []State
}

func New(generator structuredGenerator, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		generator:       generator,
		logger:          logger,
		now:             time.Now,
		state:           StateIdle,
		suggestionState: SuggestionIdle,
		visited:         []State{StateIdle},
	}
}

// State returns the current extraction stage state.
func (p *Pipeline) State() State { return p.state }

// SuggestionState returns the current suggestion stage state.
func (p *Pipeline) SuggestionState() SuggestionState { return p.suggestionState }

// Visited returns every extraction state the pipeline has passed through,
// in order, starting with idle.
func (p *Pipeline) Visited() []State { return p.visited }

func (p *Pipeline) transition(next State) {
	p.logger.Debug("ingestion state transition",
		zap.String("from", string(p.state)),
		zap.String("to", string(next)),
	)
	p.state = next
	p.visited = append(p.visited, next)
}

// Ingest runs the extraction stage: raw CV text in, profile fragment out.
// Empty input moves the pipeline straight to the error state without any
// generation call. On failure the suggestion stage must not be run.
func (p *Pipeline) Ingest(ctx context.Context, rawText string) (*profile.Fragment, error) {
	if strings.TrimSpace(rawText) == "" {
		p.transition(StateError)
		return nil, ErrEmptyInput
	}

	p.transition(StateParsing)

	// Upstream document-text extraction already happened; non-empty text
	// is all this stage needs to confirm before analyzing.
	p.transition(StateAnalyzing)

	prompt := strings.ReplaceAll(extractPromptTemplate, "{{CV_TEXT}}", rawText)

	raw, err := p.generator.GenerateJSON(ctx, prompt, extractSchema)
	if err != nil {
		p.transition(StateError)
		return nil, fmt.Errorf("extracting profile from cv text: %w", err)
	}

	var fragment profile.Fragment
	if err := json.Unmarshal([]byte(raw), &fragment); err != nil {
		p.transition(StateError)
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}

	p.mintExperienceIDs(&fragment)
	p.transition(StateSuccess)

	return &fragment, nil
}

// SuggestTitles runs the suggestion stage. It is only meaningful after a
// successful Ingest; suggestions are cosmetic, so any failure resolves to
// an empty list and the stage still finishes in success.
func (p *Pipeline) SuggestTitles(ctx context.Context, rawText string) []string {
	if strings.TrimSpace(rawText) == "" {
		return []string{}
	}

	p.suggestionState = SuggestionSuggesting

	prompt := strings.ReplaceAll(titlesPromptTemplate, "{{COUNT}}", strconv.Itoa(suggestedTitleCount))
	prompt = strings.ReplaceAll(prompt, "{{CV_TEXT}}", rawText)

	titles := p.suggest(ctx, prompt)
	p.suggestionState = SuggestionSuccess

	return titles
}

func (p *Pipeline) suggest(ctx context.Context, prompt string) []string {
	raw, err := p.generator.GenerateJSON(ctx, prompt, titlesSchema)
	if err != nil {
		p.logger.Warn("suggesting job titles", zap.Error(err))
		return []string{}
	}

	var parsed struct {
		Titles []string `json:"titles"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		p.logger.Warn("parse title suggestions", zap.Error(err))
		return []string{}
	}

	if parsed.Titles == nil {
		return []string{}
	}

	return parsed.Titles
}

// mintExperienceIDs backfills missing experience identifiers with
// timestamp strings, the same scheme the extraction prompt asks for.
func (p *Pipeline) mintExperienceIDs(fragment *profile.Fragment) {
	base := p.now().UnixMilli()
	for i, exp := range fragment.Experiences {
		if exp == nil || strings.TrimSpace(exp.ID) != "" {
			continue
		}
		exp.ID = strconv.FormatInt(base+int64(i), 10)
	}
}

var extractSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"userInfo": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"fullName":       {Type: genai.TypeString},
				"email":          {Type: genai.TypeString},
				"phone":          {Type: genai.TypeString},
				"website":        {Type: genai.TypeString},
				"address":        {Type: genai.TypeString},
				"skills":         {Type: genai.TypeString},
				"summary":        {Type: genai.TypeString},
				"education":      {Type: genai.TypeString},
				"certifications": {Type: genai.TypeString},
			},
		},
		"experiences": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        genai.TypeString,
						Description: "A unique ID, use a timestamp string.",
					},
					"company":          {Type: genai.TypeString},
					"role":             {Type: genai.TypeString},
					"startDate":        {Type: genai.TypeString},
					"endDate":          {Type: genai.TypeString},
					"responsibilities": {Type: genai.TypeString},
				},
			},
		},
	},
}

var titlesSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"titles": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
}
