// ABOUTME: Shared setup and output helpers for CLI commands
// ABOUTME: Loads config, builds the logger, opens the corpus source and renders tables
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/config"
	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/logging"
	"github.com/harper/talk-recommender/internal/storage"
	"github.com/harper/talk-recommender/internal/storage/sqlite"
)

// app bundles what every command needs after flag parsing
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// newApp loads .env, config and flag overrides, then builds the logger
func newApp(cmd *cobra.Command) (*app, error) {
	// Load .env for TALKS_* settings
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("TALKS_CONFIG")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if sourceFlag != "" {
		cfg.Source = sourceFlag
	}

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "warn"
	}
	logger, err := logging.New(logging.Options{Level: level, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: logger}, nil
}

func (a *app) buildOptions() (core.BuildOptions, error) {
	policy, err := core.ParseDuplicatePolicy(a.cfg.Duplicates)
	if err != nil {
		return core.BuildOptions{}, err
	}
	return core.BuildOptions{Duplicates: policy, Logger: a.log}, nil
}

// openSource returns the configured corpus source and a close func
func (a *app) openSource() (storage.Source, func(), error) {
	switch a.cfg.Source {
	case "sqlite":
		store, err := sqlite.NewStoreWithPath(a.cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening corpus store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return storage.NewCSVSource(a.cfg.TranscriptsPath, a.cfg.MetadataPath), func() {}, nil
	}
}

// loadCorpus opens the source and builds the index
func (a *app) loadCorpus(ctx context.Context) (*storage.Corpus, error) {
	src, closeSrc, err := a.openSource()
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	opts, err := a.buildOptions()
	if err != nil {
		return nil, err
	}
	return storage.LoadCorpus(ctx, src, opts)
}

// resolveFormat turns "auto" into table on a terminal and plain otherwise
func resolveFormat(w io.Writer) string {
	if outputFormat != "auto" {
		return outputFormat
	}
	if isTerminal(w) {
		return "table"
	}
	return "plain"
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validateCount returns an error if n is outside 0..config.MaxCount
func validateCount(n int, name string) error {
	if n < 0 || n > config.MaxCount {
		return fmt.Errorf("%s must be between 0 and %d, got %d", name, config.MaxCount, n)
	}
	return nil
}
