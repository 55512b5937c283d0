package mapper

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiModel is the default Gemini model.
const GeminiModel = "gemini-2.5-flash"

// GeminiCompleter completes prompts with a Gemini chat.
type GeminiCompleter struct {
	Model  string
	Config *genai.GenerateContentConfig
	client *genai.Client
}

// NewGeminiCompleter connects to the Gemini API. A nil httpClient uses the library default.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create gemini client: %w", err)
	}
	if model == "" {
		model = GeminiModel
	}
	return &GeminiCompleter{
		Model: model,
		Config: &genai.GenerateContentConfig{
			Temperature:      genai.Ptr[float32](0.1),
			ResponseMIMEType: "application/json",
		},
		client: client,
	}, nil
}

// Complete opens a fresh chat for each prompt, so that detections do not leak into each other.
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	chat, err := c.client.Chats.Create(ctx, c.Model, c.Config, nil)
	if err != nil {
		return "", err
	}
	resp, err := chat.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from %s", c.Model)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
