// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes talk recommendations to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/mcp"
	"github.com/harper/talk-recommender/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs talks as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to ask for related talks via stdio.

Configure in Claude Desktop's config file to enable talk tools.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  talks mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "talks": {
  #       "command": "talks",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// The source stays open so reload_corpus can rebuild from it
	src, closeSrc, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	opts, err := a.buildOptions()
	if err != nil {
		return err
	}

	corpus, err := storage.LoadCorpus(cmd.Context(), src, opts)
	if err != nil {
		return err
	}

	engine := core.NewEngine(corpus.Index)

	server := mcpserver.NewMCPServer("Talk Recommender", versionInfo.Version)
	mcp.RegisterTools(server, engine, src, corpus.Metadata, mcp.Options{
		DefaultCount: a.cfg.DefaultCount,
		ExploreCount: a.cfg.ExploreCount,
		Build:        opts,
		Logger:       a.log,
	})

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.log.Info("MCP server starting on stdio", "talks", corpus.Index.Len(), "source", a.cfg.Source)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
