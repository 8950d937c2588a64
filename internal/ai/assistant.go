package ai

import (
	"context"

	"google.golang.org/genai"
)

// SourceRef is a single grounding source returned alongside a grounded
// generation response.
type SourceRef struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundedResult is the outcome of a web-search-grounded generation call.
type GroundedResult struct {
	Text    string
	Sources []SourceRef
}

// GroundedGenerator produces free text grounded with web search results.
type GroundedGenerator interface {
	GenerateGrounded(ctx context.Context, prompt string) (*GroundedResult, error)
}

// StructuredGenerator produces JSON text conforming to the given schema.
type StructuredGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}
