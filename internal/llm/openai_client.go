// ABOUTME: OpenAI-compatible chat client for generative replies and tag classification
// ABOUTME: Works against api.openai.com or any /v1 endpoint (Ollama, LM Studio, vLLM)
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/vegra/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = openai.GPT4oMini
	// DefaultTemperature keeps spoken replies focused
	DefaultTemperature = 0.7
	// DefaultMaxTokens bounds reply length before truncation
	DefaultMaxTokens = 300
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. http://localhost:11434/v1
	BaseURL     string
	ChatModel   string
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:      apiKey,
		ChatModel:   DefaultChatModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// OpenAIClient wraps the OpenAI API client. Calls are made once, without retries.
type OpenAIClient struct {
	client      *openai.Client
	chatModel   string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration.
// An API key is required only for the hosted endpoint; local servers accept any value.
func NewOpenAIClientWithConfig(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	cfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}

	model := config.ChatModel
	if model == "" {
		model = DefaultChatModel
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		chatModel:   model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// Model returns the chat model name
func (c *OpenAIClient) Model() string {
	return c.chatModel
}

// Complete sends a system and user message and returns the first choice
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// Reply generates a conversational answer for a resolved intent
func (c *OpenAIClient) Reply(ctx context.Context, utterance string, tag models.Tag) (string, error) {
	return c.Complete(ctx, ReplySystemPrompt, ReplyUserPrompt(utterance, tag))
}
