package llm

import "context"

// TextGenerator is the single backend call: prompt in, free-form text out.
// The Gemini client implements it; tests substitute fakes.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
