// ABOUTME: Descriptive rankings over talk metadata
// ABOUTME: Top talks by a numeric metric and the most frequent speakers
package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/harper/talk-recommender/internal/models"
)

// Metric names a ranking over talk metadata
type Metric string

const (
	Comments   Metric = "comments"
	Views      Metric = "views"
	Duration   Metric = "duration"
	Languages  Metric = "languages"
	NumSpeaker Metric = "num_speaker"
	Speakers   Metric = "speakers"
)

// Metrics lists every supported metric in display order
var Metrics = []Metric{Comments, Views, Duration, Languages, NumSpeaker, Speakers}

// Describe returns a human heading for the metric
func (m Metric) Describe() string {
	switch m {
	case Comments:
		return "Most discussed talks"
	case Views:
		return "Most viewed talks"
	case Duration:
		return "Longest talks (seconds)"
	case Languages:
		return "Talks available in the most languages"
	case NumSpeaker:
		return "Talks with the most speakers"
	case Speakers:
		return "Most frequent speakers"
	default:
		return string(m)
	}
}

// ParseMetric accepts a metric name, case-insensitively, with - or _ separators
func ParseMetric(s string) (Metric, error) {
	norm := Metric(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch norm {
	case "speaker", "main_speaker":
		return Speakers, nil
	case "num_speakers":
		return NumSpeaker, nil
	}
	for _, m := range Metrics {
		if m == norm {
			return m, nil
		}
	}
	names := make([]string, len(Metrics))
	for i, m := range Metrics {
		names[i] = string(m)
	}
	return "", fmt.Errorf("unknown metric %q (want one of %s)", s, strings.Join(names, ", "))
}

func (m Metric) value(t models.TalkMetadata) int64 {
	switch m {
	case Comments:
		return t.Comments
	case Views:
		return t.Views
	case Duration:
		return t.Duration
	case Languages:
		return t.Languages
	case NumSpeaker:
		return t.NumSpeaker
	default:
		return 0
	}
}

// Rank dispatches to Top or FrequentSpeakers
func Rank(talks []models.TalkMetadata, m Metric, n int) ([]models.MetricRanking, error) {
	if m == Speakers {
		return FrequentSpeakers(talks, n)
	}
	return Top(talks, m, n)
}

// Top returns the n talks with the highest value of m.
// Ties are broken by ascending title.
func Top(talks []models.TalkMetadata, m Metric, n int) ([]models.MetricRanking, error) {
	if n < 0 {
		return []models.MetricRanking{}, fmt.Errorf("count must be non-negative, got %d", n)
	}
	if m == Speakers {
		return []models.MetricRanking{}, fmt.Errorf("metric %q ranks speakers, not talks", m)
	}

	sorted := slices.Clone(talks)
	slices.SortStableFunc(sorted, func(a, b models.TalkMetadata) int {
		if c := cmp.Compare(m.value(b), m.value(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.Title, b.Title)
	})

	limit := min(n, len(sorted))
	out := make([]models.MetricRanking, limit)
	for i, t := range sorted[:limit] {
		out[i] = models.MetricRanking{
			Rank:  i + 1,
			Key:   t.Key,
			Title: t.Title,
			Label: t.Title,
			Value: m.value(t),
		}
	}
	return out, nil
}

// FrequentSpeakers returns the n main speakers with the most talks.
// Ties are broken by ascending speaker name; blank speakers are skipped.
func FrequentSpeakers(talks []models.TalkMetadata, n int) ([]models.MetricRanking, error) {
	if n < 0 {
		return []models.MetricRanking{}, fmt.Errorf("count must be non-negative, got %d", n)
	}

	counts := make(map[string]int64)
	for _, t := range talks {
		speaker := strings.TrimSpace(t.MainSpeaker)
		if speaker == "" {
			continue
		}
		counts[speaker]++
	}

	speakers := make([]string, 0, len(counts))
	for s := range counts {
		speakers = append(speakers, s)
	}
	slices.SortFunc(speakers, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	limit := min(n, len(speakers))
	out := make([]models.MetricRanking, limit)
	for i, s := range speakers[:limit] {
		out[i] = models.MetricRanking{Rank: i + 1, Label: s, Value: counts[s]}
	}
	return out, nil
}
