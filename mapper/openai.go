package mapper

import (
	"context"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Groq defaults. Groq serves an OpenAI compatible API.
const (
	GroqBaseURL = "https://api.groq.com/openai/v1"
	GroqModel   = "llama-3.3-70b-versatile"
)

// OpenAICompleter completes prompts with an OpenAI compatible chat API.
type OpenAICompleter struct {
	Model       string
	Temperature float32
	MaxTokens   int
	client      *openai.Client
}

// NewOpenAICompleter returns a completer for the API at baseURL.
//
// Empty baseURL and model default to Groq. A nil httpClient uses the library default.
func NewOpenAICompleter(apiKey, baseURL, model string, httpClient *http.Client) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = GroqBaseURL
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if model == "" {
		model = GroqModel
	}
	return &OpenAICompleter{
		Model:       model,
		Temperature: 0.1,
		MaxTokens:   150,
		client:      openai.NewClientWithConfig(cfg),
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("invalid API response: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
