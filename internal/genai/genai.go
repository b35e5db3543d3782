// Package genai calls a hosted generative model and asks it for JSON that
// follows a declared schema.
package genai

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -typed -source=./genai.go -destination=../mocks/mock_generator.go -package=mocks Generator

// Request is one schema-constrained generation call.
type Request struct {
	Prompt string
	Schema *Schema
}

// Generator returns the raw JSON object produced for a request. It does not
// check the object against the schema; callers decode and validate it.
type Generator interface {
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}
