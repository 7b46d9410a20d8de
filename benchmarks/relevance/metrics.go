// ABOUTME: Ranking quality metrics for labelled recommendation scenarios
// ABOUTME: Precision and recall at k, reciprocal rank, hit rate and forbidden-result checks

package relevance

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes ranking scores for benchmark scenarios
type MetricsCalculator struct {
	// RecallThreshold is the minimum recall@k for a scenario to pass
	RecallThreshold float64
}

// NewMetricsCalculator creates a metrics calculator with the given pass threshold
func NewMetricsCalculator(recallThreshold float64) *MetricsCalculator {
	return &MetricsCalculator{RecallThreshold: recallThreshold}
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[strings.ToUpper(k)] = true
	}
	return set
}

func topK(retrieved []string, k int) []string {
	if k < len(retrieved) {
		return retrieved[:k]
	}
	return retrieved
}

// PrecisionAtK is the share of the first k results that are relevant
func (m *MetricsCalculator) PrecisionAtK(retrieved, relevant []string, k int) float64 {
	if k <= 0 {
		return 0
	}
	want := keySet(relevant)
	hits := 0
	for _, key := range topK(retrieved, k) {
		if want[strings.ToUpper(key)] {
			hits++
		}
	}
	return float64(hits) / float64(k)
}

// RecallAtK is the share of relevant talks found in the first k results
func (m *MetricsCalculator) RecallAtK(retrieved, relevant []string, k int) float64 {
	if len(relevant) == 0 {
		return 1
	}
	want := keySet(relevant)
	hits := 0
	for _, key := range topK(retrieved, k) {
		if want[strings.ToUpper(key)] {
			hits++
		}
	}
	return float64(hits) / float64(len(want))
}

// ReciprocalRank is 1/rank of the first relevant result, or 0 if none
func (m *MetricsCalculator) ReciprocalRank(retrieved, relevant []string) float64 {
	want := keySet(relevant)
	for i, key := range retrieved {
		if want[strings.ToUpper(key)] {
			return 1 / float64(i+1)
		}
	}
	return 0
}

// ForbiddenFound lists forbidden talks that appear in the first k results
func (m *MetricsCalculator) ForbiddenFound(retrieved, forbidden []string, k int) []string {
	bad := keySet(forbidden)
	var found []string
	for _, key := range topK(retrieved, k) {
		if bad[strings.ToUpper(key)] {
			found = append(found, key)
		}
	}
	return found
}

// EvaluateTest scores one scenario's ranked keys
func (m *MetricsCalculator) EvaluateTest(scenario TestScenario, retrieved []string) TestResult {
	precision := m.PrecisionAtK(retrieved, scenario.Relevant, scenario.K)
	recall := m.RecallAtK(retrieved, scenario.Relevant, scenario.K)
	rr := m.ReciprocalRank(topK(retrieved, scenario.K), scenario.Relevant)
	forbidden := m.ForbiddenFound(retrieved, scenario.Forbidden, scenario.K)

	status := "FAIL"
	if recall >= m.RecallThreshold && len(forbidden) == 0 {
		status = "PASS"
	}

	details := map[string]any{
		"k":        scenario.K,
		"relevant": scenario.Relevant,
	}
	if len(forbidden) > 0 {
		details["forbidden_found"] = forbidden
	}
	if recall < 1 {
		details["recall_detail"] = fmt.Sprintf("found %.0f%% of relevant talks in top %d", recall*100, scenario.K)
	}

	return TestResult{
		TestID:         scenario.ID,
		TestName:       scenario.Name,
		Retrieved:      retrieved,
		Precision:      precision,
		Recall:         recall,
		ReciprocalRank: rr,
		Hit:            rr > 0,
		Status:         status,
		Details:        details,
	}
}

// Summary aggregates results across scenarios
type Summary struct {
	Timestamp     string       `json:"timestamp"`
	Documents     int          `json:"documents"`
	BuildLatency  string       `json:"build_latency"`
	TotalTests    int          `json:"total_tests"`
	Passed        int          `json:"passed"`
	Failed        int          `json:"failed"`
	MeanPrecision float64      `json:"mean_precision_at_k"`
	MeanRecall    float64      `json:"mean_recall_at_k"`
	MRR           float64      `json:"mean_reciprocal_rank"`
	HitRate       float64      `json:"hit_rate"`
	Results       []TestResult `json:"results"`
}

// Summarize computes mean metrics and pass counts
func Summarize(results []TestResult) Summary {
	s := Summary{TotalTests: len(results), Results: results}
	if len(results) == 0 {
		return s
	}
	hits := 0
	for _, r := range results {
		if r.Status == "PASS" {
			s.Passed++
		} else {
			s.Failed++
		}
		s.MeanPrecision += r.Precision
		s.MeanRecall += r.Recall
		s.MRR += r.ReciprocalRank
		if r.Hit {
			hits++
		}
	}
	n := float64(len(results))
	s.MeanPrecision /= n
	s.MeanRecall /= n
	s.MRR /= n
	s.HitRate = float64(hits) / n
	return s
}
