// ABOUTME: MCP tool definitions and registration for the assistant server
// ABOUTME: Exposes turn processing, the intent catalog, and session reset to agents
package mcp

import (
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// DefaultSessionID is used when a caller does not name a session
const DefaultSessionID = "mcp"

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, manager *session.Manager, catalog *models.Catalog) *Handlers {
	handlers := &Handlers{
		manager: manager,
		catalog: catalog,
	}

	// 1. assistant_turn - run one utterance through the assistant
	server.AddTool(mcp.Tool{
		Name:        "assistant_turn",
		Description: "Process one user utterance (Russian) through the voice assistant. Resolves the intent, performs the action (open app, web search, time, date) and returns the reply. The session remembers the previous intent so follow-ups like 'а теперь смартфон' continue a search.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"utterance": map[string]interface{}{
					"type":        "string",
					"description": "What the user said",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation id (default: mcp)",
				},
			},
			Required: []string{"utterance"},
		},
	}, handlers.AssistantTurn)

	// 2. list_intents - describe the catalog
	server.AddTool(mcp.Tool{
		Name:        "list_intents",
		Description: "List intent tags the assistant recognizes, with example phrases.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListIntents)

	// 3. reset_session - forget the previous intent
	server.AddTool(mcp.Tool{
		Name:        "reset_session",
		Description: "Forget the remembered intent of a session so the next turn starts fresh.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation id (default: mcp)",
				},
			},
		},
	}, handlers.ResetSession)

	return handlers
}
