// ABOUTME: CLI command describing the configured corpus and its index
// ABOUTME: Reports source, document and vocabulary counts, build timing and imports
package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
	"github.com/harper/talk-recommender/internal/storage/sqlite"
)

type infoReport struct {
	Source      string                 `json:"source"`
	Transcripts string                 `json:"transcripts,omitempty"`
	Metadata    string                 `json:"metadata,omitempty"`
	Database    string                 `json:"database,omitempty"`
	Config      string                 `json:"config,omitempty"`
	Index       core.IndexStats        `json:"index"`
	Talks       int                    `json:"talks_with_metadata"`
	Imports     []*models.ImportRecord `json:"imports,omitempty"`
}

// NewInfoCmd creates info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show corpus and index statistics",
		Long: `Build the index from the configured source and report its size.

Shows the corpus source, number of talks, vocabulary size, talks with
no indexable words, talk pairs sharing vocabulary, and build time.`,
		Args: cobra.NoArgs,
		RunE: runInfo,
	}
	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	corpus, err := a.loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	report := infoReport{
		Source: a.cfg.Source,
		Config: a.cfg.File,
		Index:  corpus.Index.Stats(),
		Talks:  len(corpus.Metadata),
	}
	if a.cfg.Source == "sqlite" {
		report.Database = a.cfg.DBPath
		report.Imports, err = lastImports(cmd, a.cfg.DBPath)
		if err != nil {
			return err
		}
	} else {
		report.Transcripts = a.cfg.TranscriptsPath
		report.Metadata = a.cfg.MetadataPath
	}

	out := cmd.OutOrStdout()
	if resolveFormat(out) == "json" {
		return writeJSON(out, report)
	}

	st := report.Index
	rows := [][]string{
		{"Source", report.Source},
		{"Index ID", st.ID},
		{"Talks", humanize.Comma(int64(st.Documents))},
		{"Vocabulary", humanize.Comma(int64(st.Vocabulary)) + " terms"},
		{"Empty transcripts", humanize.Comma(int64(st.ZeroVectors))},
		{"Related pairs", humanize.Comma(int64(st.MatchingPairs))},
		{"Build time", st.BuildDuration.String()},
		{"Talks with metadata", humanize.Comma(int64(report.Talks))},
	}
	if report.Config != "" {
		rows = append(rows, []string{"Config", report.Config})
	}
	if report.Database != "" {
		rows = append(rows, []string{"Database", report.Database})
	}
	for _, imp := range report.Imports {
		rows = append(rows, []string{
			"Last " + imp.Kind + " import",
			fmt.Sprintf("%s rows, %s", humanize.Comma(int64(imp.Rows)), humanize.Time(imp.ImportedAt)),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
	return nil
}

func lastImports(cmd *cobra.Command, dbPath string) ([]*models.ImportRecord, error) {
	store, err := sqlite.NewStoreWithPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening corpus store: %w", err)
	}
	defer store.Close()

	var out []*models.ImportRecord
	for _, kind := range []string{models.ImportTranscripts, models.ImportMetadata} {
		rec, err := store.LastImport(cmd.Context(), kind)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}
