// ABOUTME: Tests for the OpenAI-compatible and Ollama clients against local test servers
// ABOUTME: Verifies request shape, single-attempt behavior, and empty-response handling
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/vegra/internal/models"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatServer(t *testing.T, status int, content string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
			},
		})
	}))
}

func TestNewOpenAIClient_RequiresKeyOrBaseURL(t *testing.T) {
	_, err := NewOpenAIClient("")
	assert.Error(t, err)

	c, err := NewOpenAIClientWithConfig(&ClientConfig{BaseURL: "http://localhost:11434/v1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultChatModel, c.Model())
}

func TestOpenAIClient_Reply(t *testing.T) {
	var calls int32
	srv := chatServer(t, http.StatusOK, "  Привет! Рад слышать.  ", &calls)
	defer srv.Close()

	c, err := NewOpenAIClientWithConfig(&ClientConfig{APIKey: "test", BaseURL: srv.URL + "/v1/", ChatModel: "llama3.2"})
	require.NoError(t, err)

	got, err := c.Reply(context.Background(), "привет", "приветствие")
	require.NoError(t, err)
	assert.Equal(t, "Привет! Рад слышать.", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestOpenAIClient_NoRetryOnError(t *testing.T) {
	var calls int32
	srv := chatServer(t, http.StatusInternalServerError, "", &calls)
	defer srv.Close()

	c, err := NewOpenAIClientWithConfig(&ClientConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = c.Reply(context.Background(), "привет", "")
	assert.Error(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestOpenAIClient_EmptyContent(t *testing.T) {
	var calls int32
	srv := chatServer(t, http.StatusOK, "   ", &calls)
	defer srv.Close()

	c, err := NewOpenAIClientWithConfig(&ClientConfig{APIKey: "test", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "sys", "user")
	assert.True(t, errors.Is(err, ErrEmptyResponse), "got %v", err)
}

func TestOllamaClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5:3b", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, ReplySystemPrompt, req.System)
		assert.Equal(t, 120, req.Options.NumPredict)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(generateResponse{Model: req.Model, Response: " Конечно! ", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(OllamaConfig{BaseURL: srv.URL, Model: "qwen2.5:3b", MaxTokens: 120})
	got, err := c.Reply(context.Background(), "расскажи анекдот", "шутка")
	require.NoError(t, err)
	assert.Equal(t, "Конечно!", got)
}

func TestOllamaClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'llama3.2' not found"}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(OllamaConfig{BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), "", "привет")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOllamaClient_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewOllamaClient(OllamaConfig{BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Reply(ctx, "привет", "")
	assert.Error(t, err)
}

func TestReplyUserPrompt(t *testing.T) {
	assert.Equal(t, "привет", ReplyUserPrompt("привет", ""))
	assert.Contains(t, ReplyUserPrompt("привет", models.Tag("приветствие")), "приветствие")
}
