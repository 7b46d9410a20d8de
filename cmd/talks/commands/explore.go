// ABOUTME: CLI command for descriptive rankings over talk metadata
// ABOUTME: Ranks talks by a numeric column or speakers by talk count
package commands

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/stats"
)

var (
	exploreCount int
)

// NewExploreCmd creates explore command
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <metric>",
		Short: "Rank talks by comments, views, duration, languages or speakers",
		Long: `Rank talks using the metadata file.

Metrics:
  comments     most discussed talks
  views        most viewed talks
  duration     longest talks
  languages    talks available in the most languages
  num_speaker  talks with the most speakers
  speakers     speakers with the most talks

Examples:
  talks explore views
  talks explore speakers -n 20
  talks explore duration --format json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: metricNames(),
		RunE:      runExplore,
	}

	cmd.Flags().IntVarP(&exploreCount, "count", "n", 10, "Number of rows (default from TALKS_EXPLORE_COUNT)")

	return cmd
}

func metricNames() []string {
	names := make([]string, len(stats.Metrics))
	for i, m := range stats.Metrics {
		names[i] = string(m)
	}
	return names
}

func runExplore(cmd *cobra.Command, args []string) error {
	metric, err := stats.ParseMetric(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	count := a.cfg.ExploreCount
	if cmd.Flags().Changed("count") {
		count = exploreCount
	}
	if err := validateCount(count, "--count"); err != nil {
		return err
	}

	src, closeSrc, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	meta, err := src.Metadata(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}
	if len(meta) == 0 {
		return fmt.Errorf("no talk metadata available (set TALKS_METADATA or import it)")
	}

	rows, err := stats.Rank(meta, metric, count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch resolveFormat(out) {
	case "json":
		return writeJSON(out, map[string]any{
			"metric":  metric,
			"heading": metric.Describe(),
			"rows":    rows,
		})
	case "table":
		valueHeader := strings.ToUpper(string(metric)[:1]) + strings.ReplaceAll(string(metric)[1:], "_", " ")
		labelHeader := "Title"
		if metric == stats.Speakers {
			labelHeader = "Speaker"
			valueHeader = "Talks"
		}
		table := make([][]string, len(rows))
		for i, r := range rows {
			table[i] = []string{fmt.Sprint(r.Rank), truncate(r.Label, 60), humanize.Comma(r.Value)}
		}
		if !quiet {
			fmt.Fprintln(out, metric.Describe())
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", labelHeader, valueHeader},
			table,
			[]columnAlignment{alignRight, alignLeft, alignRight},
		))
	default:
		for _, r := range rows {
			fmt.Fprintf(out, "%s\t%d\n", r.Label, r.Value)
		}
	}

	return nil
}
