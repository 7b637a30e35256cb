package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// LLM is the provider boundary: one blocking text-in, text-out call.
// The analyst only needs this much, and tests substitute a fake.
type LLM interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// GeminiLLM implements LLM on the Google GenAI API.
type GeminiLLM struct {
	client *genai.Client
	model  string
}

// DefaultModel is used when the config names no model.
const DefaultModel = "gemini-2.5-flash"

// NewGeminiLLM creates a Gemini-backed LLM.
func NewGeminiLLM(ctx context.Context, apiKey, model string) (*GeminiLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiLLM{client: client, model: model}, nil
}

// Generate sends one prompt under the given system instruction and
// returns the response text. Temperature is pinned low; the analyst
// wants reproducible SQL, not creativity.
func (g *GeminiLLM) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.1),
		},
	)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("GenAI returned an empty response")
	}
	return text, nil
}
