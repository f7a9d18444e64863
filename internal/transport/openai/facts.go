package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/stranalyzer/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// DefaultTimeout bounds one API call when no timeout is configured.
const DefaultTimeout = 5 * time.Second

const factPrompt = "Reply with one short, true fact about cats. One sentence, no preamble."

// FactSource generates facts with an OpenAI-compatible chat completion API.
type FactSource struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // whole request, including reading the body
	Logger  *zap.Logger
}

// NewFactSource creates an OpenAI-compatible fact source.
func NewFactSource(cfg *Config) *FactSource {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &FactSource{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Fact implements domain.FactSource.
func (f *FactSource) Fact(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: factPrompt},
		},
		MaxTokens: 80,
	})
	if err != nil {
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrFactUnavailable)
	}

	fact := strings.TrimSpace(resp.Choices[0].Message.Content)
	if fact == "" {
		return "", fmt.Errorf("blank completion: %w", domain.ErrFactUnavailable)
	}
	return fact, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (f *FactSource) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if _, err := f.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrFactUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrFactUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %v: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
