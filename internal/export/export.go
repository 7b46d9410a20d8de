// ABOUTME: Export of the recommendation graph for every talk in an index
// ABOUTME: Supports YAML, JSON, and Markdown output formats
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
	"gopkg.in/yaml.v3"
)

// Formats lists the supported output formats
var Formats = []string{"yaml", "json", "markdown"}

// Data represents the complete exportable data structure
type Data struct {
	Version    string `yaml:"version" json:"version"`
	ExportedAt string `yaml:"exported_at" json:"exported_at"`
	Tool       string `yaml:"tool" json:"tool"`
	IndexID    string `yaml:"index_id" json:"index_id"`
	Documents  int    `yaml:"documents" json:"documents"`
	Vocabulary int    `yaml:"vocabulary" json:"vocabulary"`
	PerTalk    int    `yaml:"per_talk" json:"per_talk"`
	Talks      []Talk `yaml:"talks" json:"talks"`
}

// Talk is one indexed talk and its nearest neighbours
type Talk struct {
	Key         string    `yaml:"key" json:"key"`
	DisplayName string    `yaml:"display_name" json:"display_name"`
	Title       string    `yaml:"title,omitempty" json:"title,omitempty"`
	Speaker     string    `yaml:"speaker,omitempty" json:"speaker,omitempty"`
	Related     []Related `yaml:"related" json:"related"`
}

// Related is one recommendation in an export
type Related struct {
	Key   string  `yaml:"key" json:"key"`
	Score float64 `yaml:"score" json:"score"`
}

// Build collects the top perTalk recommendations for every talk in position
// order. Metadata is optional and matched by canonical key.
func Build(idx *core.Index, meta []models.TalkMetadata, perTalk int) (*Data, error) {
	if idx == nil {
		return nil, core.ErrIndexNotReady
	}
	if perTalk < 0 {
		return nil, &core.InvalidArgumentError{Name: "per_talk", Value: perTalk}
	}

	byKey := make(map[string]models.TalkMetadata, len(meta))
	for _, m := range meta {
		if _, seen := byKey[m.Key]; !seen {
			byKey[m.Key] = m
		}
	}

	stats := idx.Stats()
	data := &Data{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "talks",
		IndexID:    stats.ID,
		Documents:  stats.Documents,
		Vocabulary: stats.Vocabulary,
		PerTalk:    perTalk,
		Talks:      make([]Talk, 0, idx.Len()),
	}

	for pos := 0; pos < idx.Len(); pos++ {
		doc := idx.Document(pos)
		recs, err := idx.RecommendScored(doc.CanonicalKey, perTalk)
		if err != nil {
			return nil, fmt.Errorf("recommending for %q: %w", doc.CanonicalKey, err)
		}
		talk := Talk{
			Key:         doc.CanonicalKey,
			DisplayName: core.DisplayName(doc.CanonicalKey),
			Related:     make([]Related, len(recs)),
		}
		if m, ok := byKey[doc.CanonicalKey]; ok {
			talk.Title = m.Title
			talk.Speaker = m.MainSpeaker
		}
		for i, r := range recs {
			talk.Related[i] = Related{Key: r.Key, Score: r.Score}
		}
		data.Talks = append(data.Talks, talk)
	}
	return data, nil
}

// Write encodes data to w in format
func Write(w io.Writer, data *Data, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return WriteYAML(w, data)
	case "json":
		return WriteJSON(w, data)
	case "markdown", "md":
		return WriteMarkdown(w, data)
	default:
		return fmt.Errorf("unsupported export format %q (want %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteFile writes data to outputPath, creating parent directories
func WriteFile(outputPath string, data *Data, format string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, data, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteYAML encodes data as YAML
func WriteYAML(w io.Writer, data *Data) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteJSON encodes data as indented JSON
func WriteJSON(w io.Writer, data *Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteMarkdown renders data as a Markdown document with one section per talk
func WriteMarkdown(w io.Writer, data *Data) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Talk Recommendations\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", data.ExportedAt)
	fmt.Fprintf(&b, "- **Index:** %s\n", data.IndexID)
	fmt.Fprintf(&b, "- **Talks:** %d\n", data.Documents)
	fmt.Fprintf(&b, "- **Vocabulary:** %d terms\n\n", data.Vocabulary)

	for _, talk := range data.Talks {
		heading := talk.DisplayName
		if talk.Title != "" {
			heading = talk.Title
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)
		if talk.Speaker != "" {
			fmt.Fprintf(&b, "*%s*\n\n", talk.Speaker)
		}
		if len(talk.Related) == 0 {
			fmt.Fprintf(&b, "No recommendations.\n\n")
			continue
		}
		fmt.Fprintln(&b, "| # | Talk | Score |")
		fmt.Fprintln(&b, "|---|------|-------|")
		for i, r := range talk.Related {
			fmt.Fprintf(&b, "| %d | %s | %.4f |\n", i+1, core.DisplayName(r.Key), r.Score)
		}
		fmt.Fprintln(&b)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
