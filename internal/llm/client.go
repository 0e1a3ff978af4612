package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
)

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Model applies the configured generation limits to every call of the wrapped model.
type Model struct {
	llms.Model
	defaults []llms.CallOption
}

// NewAnthropicModel builds a Claude model. Every HTTP round trip is bounded by cfg.Timeout.
func NewAnthropicModel(cfg Config) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing LLM API key")
	}
	if cfg.Model == "" {
		return nil, errors.New("missing LLM model")
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
		anthropic.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	model, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic model: %w", err)
	}

	return &Model{
		Model: model,
		defaults: []llms.CallOption{
			llms.WithMaxTokens(cfg.MaxTokens),
			llms.WithTemperature(cfg.Temperature),
		},
	}, nil
}

func (m *Model) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := append(append([]llms.CallOption{}, m.defaults...), options...)
	return m.Model.GenerateContent(ctx, messages, opts...)
}

func (m *Model) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Complete sends prompt as a single user message and returns the trimmed answer.
func Complete(ctx context.Context, model llms.Model, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("empty prompt")
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, model, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to call llm: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty llm response")
	}

	return text, nil
}
