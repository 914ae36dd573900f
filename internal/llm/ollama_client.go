// ABOUTME: Native Ollama client using the /api/generate endpoint
// ABOUTME: Non-streaming, single attempt, for local models such as llama3.2
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harper/vegra/internal/models"
)

const (
	// DefaultOllamaURL is where a local Ollama daemon listens
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultOllamaModel is a small multilingual model
	DefaultOllamaModel = "llama3.2"
)

// OllamaConfig configures the native Ollama client
type OllamaConfig struct {
	BaseURL     string
	Model       string
	Temperature float32
	// MaxTokens maps to num_predict
	MaxTokens int
	// Timeout is the HTTP client timeout; per-call deadlines come from the context
	Timeout time.Duration
}

type generateRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system,omitempty"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

// OllamaClient talks to a local Ollama daemon
type OllamaClient struct {
	client      *resty.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOllamaClient creates a client. Empty fields fall back to local defaults.
func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &OllamaClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Model returns the model name
func (c *OllamaClient) Model() string {
	return c.model
}

// Complete runs a single non-streaming generation
func (c *OllamaClient) Complete(ctx context.Context, system, user string) (string, error) {
	var out generateResponse
	var apiErr ollamaError

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  c.model,
			System: system,
			Prompt: user,
			Stream: false,
			Options: generateOptions{
				Temperature: c.temperature,
				NumPredict:  c.maxTokens,
			},
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return "", fmt.Errorf("ollama generate: %s: %s", resp.Status(), apiErr.Error)
		}
		return "", fmt.Errorf("ollama generate: %s", resp.Status())
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Reply generates a conversational answer for a resolved intent
func (c *OllamaClient) Reply(ctx context.Context, utterance string, tag models.Tag) (string, error) {
	return c.Complete(ctx, ReplySystemPrompt, ReplyUserPrompt(utterance, tag))
}
