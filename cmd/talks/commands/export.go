// ABOUTME: CLI command exporting every talk's recommendations to a file or stdout
// ABOUTME: Writes YAML, JSON or Markdown through the export package
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/export"
)

var (
	exportFormat  string
	exportOutput  string
	exportPerTalk int
)

// NewExportCmd creates export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recommendations for every talk",
		Long: `Build the index and write the top recommendations for every talk.

The export lists talks in corpus order with their nearest neighbours and
similarity scores, plus title and speaker when metadata is available.`,
		Example: `  # YAML to stdout
  talks export

  # Markdown report with five neighbours per talk
  talks export --export-format markdown -n 5 -o related.md`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportFormat, "export-format", "yaml", "Export format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().IntVarP(&exportPerTalk, "count", "n", 0, "Recommendations per talk (default from config)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	perTalk := exportPerTalk
	if !cmd.Flags().Changed("count") {
		perTalk = a.cfg.DefaultCount
	}
	if err := validateCount(perTalk, "count"); err != nil {
		return err
	}

	corpus, err := a.loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	data, err := export.Build(corpus.Index, corpus.Metadata, perTalk)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return export.Write(cmd.OutOrStdout(), data, exportFormat)
	}
	if err := export.WriteFile(exportOutput, data, exportFormat); err != nil {
		return err
	}
	a.log.Info("export written", "path", exportOutput, "talks", len(data.Talks), "format", exportFormat)
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d talks to %s\n", len(data.Talks), exportOutput)
	}
	return nil
}
