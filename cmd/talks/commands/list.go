// ABOUTME: CLI command to list known talks
// ABOUTME: Shows canonical talk names, optionally filtered by substring
package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/mcp"
)

var (
	listFilter string
)

type talkListing struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Title       string `json:"title,omitempty"`
	Speaker     string `json:"speaker,omitempty"`
}

// NewListCmd creates list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List talks in the corpus",
		Long: `List the talks in the corpus by canonical name.

Names are derived from each transcript's URL: the last path segment,
underscores as spaces, upper-cased. Any of these names can be passed to
'talks recommend'.

Examples:
  talks list
  talks list --filter creativity
  talks list --format json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVar(&listFilter, "filter", "", "Only show talks whose name contains this text")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	src, closeSrc, err := a.openSource()
	if err != nil {
		return err
	}
	defer closeSrc()

	docs, err := src.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading documents: %w", err)
	}
	meta, err := src.Metadata(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading metadata: %w", err)
	}

	seen := make(map[string]bool, len(docs))
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		key := core.Normalize(doc.RawKey)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	keys = mcp.FilterKeys(keys, listFilter)

	byKey := make(map[string]int, len(meta))
	for i, m := range meta {
		byKey[m.Key] = i
	}

	talks := make([]talkListing, len(keys))
	for i, key := range keys {
		talks[i] = talkListing{Key: key, DisplayName: core.DisplayName(key)}
		if j, ok := byKey[key]; ok {
			talks[i].Title = meta[j].Title
			talks[i].Speaker = meta[j].MainSpeaker
		}
	}

	out := cmd.OutOrStdout()
	if len(talks) == 0 {
		if !quiet {
			fmt.Fprintln(out, "No talks found")
		}
		return nil
	}

	switch resolveFormat(out) {
	case "json":
		return writeJSON(out, talks)
	case "table":
		rows := make([][]string, len(talks))
		for i, t := range talks {
			rows[i] = []string{truncate(t.DisplayName, 60), truncate(t.Title, 50), truncate(t.Speaker, 30)}
		}
		fmt.Fprintln(out, renderTable([]string{"Talk", "Title", "Speaker"}, rows, nil))
		if !quiet {
			fmt.Fprintf(out, "\nTotal: %d talk(s)\n", len(talks))
		}
	default:
		for _, t := range talks {
			fmt.Fprintln(out, t.Key)
		}
	}

	return nil
}
