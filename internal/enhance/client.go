package enhance

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Capability is an abstraction over text generation providers
type Capability interface {
	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error)
	// Close releases any resources held by the provider
	Close() error
}

// GeminiCapability implements Capability for Google Gemini
type GeminiCapability struct {
	client *genai.Client
	model  string
}

// NewGeminiCapability creates a Gemini-backed capability
func NewGeminiCapability(ctx context.Context, apiKey, model string) (*GeminiCapability, error) {
	if apiKey == "" {
		return nil, &EnhanceError{Message: "API key is required"}
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &EnhanceError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiCapability{client: client, model: model}, nil
}

// Complete generates a completion for the given prompt
func (c *GeminiCapability) Complete(ctx context.Context, prompt string, maxTokens int32, temperature float32) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &EnhanceError{Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the capability
func (c *GeminiCapability) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &EnhanceError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &EnhanceError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &EnhanceError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
