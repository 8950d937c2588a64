package gemini

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain json", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "surrounding whitespace", in: "\n  [1, 2]  \n", want: "[1, 2]"},
		{name: "json fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "bare fence", in: "```\n[{\"title\": \"x\"}]\n```", want: `[{"title": "x"}]`},
		{name: "fence without newlines", in: "```json{\"a\": 1}```", want: `{"a": 1}`},
		{name: "stray backticks", in: "`[1]`", want: "[1]"},
		{name: "no json at all", in: "I cannot help with that.", want: "I cannot help with that."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.want {
				t.Fatalf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var decoded struct {
		Titles []string `json:"titles"`
	}

	if err := DecodeJSON("```json\n{\"titles\": [\"Engineer\"]}\n```", &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Titles) != 1 || decoded.Titles[0] != "Engineer" {
		t.Fatalf("unexpected decoded value: %+v", decoded)
	}

	if err := DecodeJSON("not json", &decoded); err == nil {
		t.Fatal("expected error for unparseable response")
	}
}

func TestCollectTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "first"},
				{Text: "  "},
				{Text: "second"},
			}}},
			nil,
			{Content: nil},
		},
	}

	text, err := collectText(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "first\nsecond" {
		t.Fatalf("unexpected joined text: %q", text)
	}
}

func TestCollectTextEmptyResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "   "}}}},
		},
	}

	if _, err := collectText(resp); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestCollectSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://acme.example", Title: "Acme"}},
					{Web: nil},
					nil,
				},
			}},
			{GroundingMetadata: nil},
		},
	}

	sources := collectSources(resp)

	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].URI != "https://acme.example" || sources[0].Title != "Acme" {
		t.Fatalf("unexpected source: %+v", sources[0])
	}
}

func TestModel(t *testing.T) {
	g := &Generator{modelName: "gemini-2.5-flash"}
	if got := g.Model(); got != "gemini-2.5-flash" {
		t.Fatalf("unexpected model: %q", got)
	}

	var nilGenerator *Generator
	if got := nilGenerator.Model(); got != "" {
		t.Fatalf("expected empty model for nil generator, got %q", got)
	}
}

func TestGenerateRejectsUninitializedClient(t *testing.T) {
	g := &Generator{logger: zap.NewNop()}

	if _, err := g.GenerateJSON(context.Background(), "prompt", nil); err == nil {
		t.Fatal("expected error for uninitialized client")
	}
}

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "   ", "", zap.NewNop()); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
