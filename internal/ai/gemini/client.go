package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vj-vijeta/job-hunt-assistant/internal/ai"
	"github.com/vj-vijeta/job-hunt-assistant/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	defaultMaxLogLength = 200
)

// Generator wraps the Google GenAI client to provide plain, grounded and
// schema-constrained prompt interactions.
type Generator struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
	maxLogLen int
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, log *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		client:    client,
		modelName: model,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: defaultMaxLogLength,
	}, nil
}

// GenerateGrounded sends the prompt with the Google Search tool enabled and
// returns the response text together with its grounding sources.
func (g *Generator) GenerateGrounded(ctx context.Context, prompt string) (*ai.GroundedResult, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := g.generate(ctx, prompt, cfg)
	if err != nil {
		return nil, err
	}

	text, err := collectText(resp)
	if err != nil {
		return nil, err
	}

	return &ai.GroundedResult{
		Text:    text,
		Sources: collectSources(resp),
	}, nil
}

// GenerateJSON asks for a response conforming to the provided schema and
// returns the raw JSON text.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	resp, err := g.generate(ctx, prompt, cfg)
	if err != nil {
		return "", err
	}

	return collectText(resp)
}

func (g *Generator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return resp, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func collectSources(resp *genai.GenerateContentResponse) []ai.SourceRef {
	sources := make([]ai.SourceRef, 0)
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			sources = append(sources, ai.SourceRef{
				URI:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}

	return sources
}

// ExtractJSON strips markdown code fences from a model response so the
// remainder can be parsed as JSON.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// DecodeJSON extracts and unmarshals a model response into target.
func DecodeJSON(raw string, target any) error {
	cleaned := ExtractJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("parse gemini response: %w", err)
	}

	return nil
}
