// ABOUTME: MCP tool handler implementations for the assistant server
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// examplesShown bounds the example phrases listed per intent
const examplesShown = 3

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	manager *session.Manager
	catalog *models.Catalog
}

// TurnResponse is the JSON body of assistant_turn
type TurnResponse struct {
	SessionID string     `json:"session_id"`
	Text      string     `json:"text"`
	Exit      bool       `json:"exit"`
	Tag       models.Tag `json:"tag,omitempty"`
}

// IntentSummary is one entry of list_intents
type IntentSummary struct {
	Tag       models.Tag `json:"tag"`
	Examples  []string   `json:"examples,omitempty"`
	Responses int        `json:"responses"`
}

// AssistantTurn handles the assistant_turn tool
func (h *Handlers) AssistantTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	utterance, err := request.RequireString("utterance")
	if err != nil {
		return mcp.NewToolResultError("utterance argument is required and must be a string"), nil
	}
	sessionID := sessionArg(request)

	result, err := h.manager.Turn(ctx, sessionID, utterance)
	if err != nil {
		logger.Log.Error("mcp turn failed", zap.String("session", sessionID), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}

	return jsonResult(TurnResponse{
		SessionID: sessionID,
		Text:      result.Text,
		Exit:      result.Exit,
		Tag:       result.Tag,
	})
}

// ListIntents handles the list_intents tool
func (h *Handlers) ListIntents(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := make([]IntentSummary, 0, len(h.catalog.Intents))
	for _, in := range h.catalog.Intents {
		n := min(len(in.Patterns), examplesShown)
		out = append(out, IntentSummary{
			Tag:       in.Tag,
			Examples:  in.Patterns[:n],
			Responses: len(in.Responses),
		})
	}
	return jsonResult(out)
}

// ResetSession handles the reset_session tool
func (h *Handlers) ResetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := sessionArg(request)
	if err := h.manager.Reset(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session %s reset", sessionID)), nil
}

func sessionArg(request mcp.CallToolRequest) string {
	id := strings.TrimSpace(request.GetString("session_id", ""))
	if id == "" {
		return DefaultSessionID
	}
	return id
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
