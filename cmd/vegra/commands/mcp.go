// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents drive the assistant via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/mcp"
	"github.com/harper/vegra/internal/session"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Vegra as an MCP (Model Context Protocol) server so agents can
send utterances and read the intent catalog via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  vegra mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "vegra": {
  #       "command": "vegra",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, rt.cfg)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("Vegra Voice Assistant", versionInfo.Version)
	mcp.RegisterTools(server, session.NewManager(rt.assistant, store), rt.catalog)

	logger.Log.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("shutdown signal received")
		if err := store.Close(); err != nil {
			logger.Log.Warn("error closing state store", zap.Error(err))
		}
	case err := <-serverErr:
		_ = store.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
