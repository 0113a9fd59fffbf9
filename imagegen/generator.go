// Package imagegen produces hero and card images for site content using a
// text-to-image model.
package imagegen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoImage is returned when the model answers without an image part.
var ErrNoImage = errors.New("imagegen: response contained no image")

// Generator turns a prompt into encoded image bytes.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) ([]byte, error)
}

// GenAIGenerator calls the Gemini API.
type GenAIGenerator struct {
	client *genai.Client
}

func NewGenAIGenerator(ctx context.Context, apiKey string) (*GenAIGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("imagegen: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIGenerator{client: client}, nil
}

// Generate returns the first inline image in the response. The SDK has
// already decoded the base64 payload.
func (g *GenAIGenerator) Generate(ctx context.Context, model, prompt string) ([]byte, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}
	return nil, ErrNoImage
}
