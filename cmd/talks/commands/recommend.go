// ABOUTME: CLI command to recommend similar talks
// ABOUTME: Looks up a talk by URL, slug or name and prints its nearest neighbours
package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
)

var (
	recommendCount int
)

// NewRecommendCmd creates recommend command
func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <talk>",
		Short: "Recommend talks similar to a given talk",
		Long: `Recommend talks whose transcripts are most similar to the given talk.

The talk may be given as a URL, a slug (my_talk_title) or a name
(My Talk Title); all three resolve to the same talk.

Examples:
  talks recommend "Do schools kill creativity"
  talks recommend https://www.ted.com/talks/ken_robinson_says_schools_kill_creativity -n 10
  talks recommend ken_robinson_says_schools_kill_creativity --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRecommend,
	}

	cmd.Flags().IntVarP(&recommendCount, "count", "n", 5, "Number of recommendations (default from TALKS_DEFAULT_COUNT)")

	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	count := a.cfg.DefaultCount
	if cmd.Flags().Changed("count") {
		count = recommendCount
	}
	if err := validateCount(count, "--count"); err != nil {
		return err
	}

	corpus, err := a.loadCorpus(cmd.Context())
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	recs, err := corpus.Index.RecommendScored(query, count)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			fmt.Fprintln(cmd.ErrOrStderr(), "No recommendations found.")
		}
		return err
	}

	titles := make(map[string]string, len(corpus.Metadata))
	for _, m := range corpus.Metadata {
		titles[m.Key] = m.Title
	}

	return printRecommendations(cmd, query, recs, titles)
}

func printRecommendations(cmd *cobra.Command, query string, recs []models.Recommendation, titles map[string]string) error {
	out := cmd.OutOrStdout()

	switch resolveFormat(out) {
	case "json":
		return writeJSON(out, map[string]any{
			"query":           query,
			"key":             core.Normalize(query),
			"recommendations": recs,
		})

	case "table":
		if len(recs) == 0 {
			if !quiet {
				fmt.Fprintln(out, "No recommendations found.")
			}
			return nil
		}
		rows := make([][]string, len(recs))
		for i, r := range recs {
			rows[i] = []string{
				fmt.Sprint(r.Rank),
				truncate(r.DisplayName, 60),
				truncate(titles[r.Key], 50),
				fmt.Sprintf("%.4f", r.Score),
			}
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Talk", "Title", "Score"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
		))

	default:
		for _, r := range recs {
			fmt.Fprintln(out, r.DisplayName)
		}
	}

	return nil
}
