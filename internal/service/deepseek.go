package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sovenok-bot/sovenok/internal/config"
	"github.com/sovenok-bot/sovenok/internal/domain"
)

// DeepSeekClient calls the DeepSeek chat completion API. It implements
// domain.Completer.
type DeepSeekClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewDeepSeekClient(apiKey, model string) *DeepSeekClient {
	if model == "" {
		model = config.DefaultDeepSeekModel
	}
	return &DeepSeekClient{
		apiKey:     apiKey,
		baseURL:    "https://api.deepseek.com/v1",
		model:      model,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *DeepSeekClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	return completeChat(ctx, c.httpClient, "deepseek", c.baseURL+"/chat/completions", c.apiKey, completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: config.DefaultTemperature,
		MaxTokens:   config.MaxCompletionTokens,
	})
}

// completeChat performs one OpenAI-shaped chat completion round trip. Both
// provider adapters share it because their wire formats match.
func completeChat(ctx context.Context, client *http.Client, provider, url, apiKey string, chatReq completionRequest) (string, error) {
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return "", &domain.BackendError{
			Provider: provider,
			Timeout:  errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil,
			Err:      fmt.Errorf("chat request: %w", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateForLog(body))}
	}

	var chatResp completionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("parse response: %w", err)}
	}
	if len(chatResp.Choices) == 0 {
		return "", &domain.BackendError{Provider: provider, Err: fmt.Errorf("empty choices in response")}
	}
	return chatResp.Choices[0].Message.Content, nil
}

func truncateForLog(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "…"
	}
	return string(body)
}
