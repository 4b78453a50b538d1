package service

import (
	"context"
	"net/http"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
)

// OpenRouterClient is the alternative completion backend, selected by
// configuration. Same wire shape as DeepSeek, different host and models.
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenRouterClient(apiKey, model string) *OpenRouterClient {
	if model == "" {
		model = config.DefaultOpenRouterModel
	}
	return &OpenRouterClient{
		apiKey:     apiKey,
		baseURL:    "https://openrouter.ai/api/v1",
		model:      model,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

func (c *OpenRouterClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	return completeChat(ctx, c.httpClient, "openrouter", c.baseURL+"/chat/completions", c.apiKey, completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: config.DefaultTemperature,
		MaxTokens:   config.MaxCompletionTokens,
	})
}
