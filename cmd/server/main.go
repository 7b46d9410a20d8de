// ABOUTME: Standalone MCP server exposing talk recommendations over stdio
// ABOUTME: Loads config and corpus, builds the index, and serves the talk tools
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/talk-recommender/internal/config"
	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/logging"
	"github.com/harper/talk-recommender/internal/mcp"
	"github.com/harper/talk-recommender/internal/storage"
	"github.com/harper/talk-recommender/internal/storage/sqlite"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()

	policy, err := core.ParseDuplicatePolicy(cfg.Duplicates)
	if err != nil {
		return err
	}
	opts := core.BuildOptions{Duplicates: policy, Logger: logger}

	corpus, err := storage.LoadCorpus(ctx, src, opts)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("Talk Recommender", "0.1.0")
	mcp.RegisterTools(server, core.NewEngine(corpus.Index), src, corpus.Metadata, mcp.Options{
		DefaultCount: cfg.DefaultCount,
		ExploreCount: cfg.ExploreCount,
		Build:        opts,
		Logger:       logger,
	})

	logger.Info("MCP server starting on stdio", slog.Int("talks", corpus.Index.Len()), slog.String("source", cfg.Source))
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func openSource(cfg *config.Config) (storage.Source, func(), error) {
	if cfg.Source == "sqlite" {
		store, err := sqlite.NewStoreWithPath(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening corpus store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	}
	return storage.NewCSVSource(cfg.TranscriptsPath, cfg.MetadataPath), func() {}, nil
}
