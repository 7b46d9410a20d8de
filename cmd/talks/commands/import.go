// ABOUTME: CLI command to import CSV files into the SQLite corpus store
// ABOUTME: Replaces stored transcripts and metadata and records each import
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
	"github.com/harper/talk-recommender/internal/storage"
	"github.com/harper/talk-recommender/internal/storage/sqlite"
)

var (
	importTranscripts string
	importMetadata    string
	importDB          string
	importVerify      bool
)

// NewImportCmd creates import command
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import CSV files into the local corpus database",
		Long: `Import transcripts and talk metadata CSV files into the SQLite
corpus store so later commands can run with --source sqlite.

Each import replaces the previous contents of its table. Transcripts
are verified by building an index first, so a corpus with duplicate
talk names is rejected before anything is written.

Examples:
  talks import --transcripts data/transcripts.csv --metadata data/ted_main.csv
  talks import --transcripts data/transcripts.csv --db /tmp/talks.db`,
		Args: cobra.NoArgs,
		RunE: runImport,
	}

	cmd.Flags().StringVar(&importTranscripts, "transcripts", "", "Transcripts CSV (default TALKS_TRANSCRIPTS)")
	cmd.Flags().StringVar(&importMetadata, "metadata", "", "Talk metadata CSV (default TALKS_METADATA)")
	cmd.Flags().StringVar(&importDB, "db", "", "Database path (default TALKS_DB)")
	cmd.Flags().BoolVar(&importVerify, "verify", true, "Build an index before writing to reject bad corpora")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	transcripts := firstNonEmpty(importTranscripts, a.cfg.TranscriptsPath)
	metadata := firstNonEmpty(importMetadata, a.cfg.MetadataPath)
	dbPath := firstNonEmpty(importDB, a.cfg.DBPath)

	docs, err := storage.OpenTranscripts(transcripts)
	if err != nil {
		return err
	}
	if importVerify {
		opts, err := a.buildOptions()
		if err != nil {
			return err
		}
		if _, err := core.Build(docs, opts); err != nil {
			return fmt.Errorf("verifying transcripts: %w", err)
		}
	}

	// an explicit --metadata file must exist; the configured default is optional
	var meta []models.TalkMetadata
	if importMetadata != "" {
		meta, err = storage.OpenMetadata(importMetadata)
	} else if metadata != "" {
		meta, err = storage.NewCSVSource("", metadata).Metadata(cmd.Context())
	}
	if err != nil {
		return err
	}

	store, err := sqlite.NewStoreWithPath(dbPath)
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rec, err := store.ReplaceTranscripts(ctx, docs, transcripts)
	if err != nil {
		return fmt.Errorf("importing transcripts: %w", err)
	}
	a.log.Info("transcripts imported", "rows", rec.Rows, "import_id", rec.ID)
	records := []*models.ImportRecord{rec}

	if len(meta) > 0 {
		rec, err := store.ReplaceMetadata(ctx, meta, metadata)
		if err != nil {
			return fmt.Errorf("importing metadata: %w", err)
		}
		a.log.Info("metadata imported", "rows", rec.Rows, "import_id", rec.ID)
		records = append(records, rec)
	}

	if resolveFormat(out) == "json" {
		return writeJSON(out, map[string]any{"db": dbPath, "imports": records})
	}
	if !quiet {
		for _, r := range records {
			fmt.Fprintf(out, "Imported %d %s from %s\n", r.Rows, r.Kind, r.Source)
		}
		fmt.Fprintf(out, "Database: %s\n", dbPath)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
