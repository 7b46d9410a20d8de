// ABOUTME: Benchmark runner that builds an index once and scores each scenario
// ABOUTME: Records build and query latency and exports a JSON summary

package relevance

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
)

// BenchmarkRunner executes relevance scenarios against one index
type BenchmarkRunner struct {
	index        *core.Index
	buildLatency time.Duration
	metrics      *MetricsCalculator
	verbose      bool
	out          io.Writer
}

// NewBenchmarkRunner builds the index for docs and prepares a runner
func NewBenchmarkRunner(docs []models.RawDocument, opts core.BuildOptions, recallThreshold float64, verbose bool, out io.Writer) (*BenchmarkRunner, error) {
	if out == nil {
		out = io.Discard
	}

	start := time.Now()
	idx, err := core.Build(docs, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	return &BenchmarkRunner{
		index:        idx,
		buildLatency: time.Since(start),
		metrics:      NewMetricsCalculator(recallThreshold),
		verbose:      verbose,
		out:          out,
	}, nil
}

// BuildLatency reports how long the index build took
func (r *BenchmarkRunner) BuildLatency() time.Duration { return r.buildLatency }

// RunTest executes a single scenario
func (r *BenchmarkRunner) RunTest(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Fprintf(r.out, "\nRUNNING: %s\n", scenario.Name)
		if scenario.Description != "" {
			fmt.Fprintf(r.out, "Description: %s\n", scenario.Description)
		}
	}

	start := time.Now()
	recs, err := r.index.RecommendScored(scenario.Query, scenario.K)
	latency := time.Since(start)
	if err != nil {
		return TestResult{
			TestID:       scenario.ID,
			TestName:     scenario.Name,
			Status:       "FAIL",
			ErrorMessage: err.Error(),
			QueryLatency: latency.String(),
		}, err
	}

	result := r.metrics.EvaluateTest(scenario, models.Keys(recs))
	result.QueryLatency = latency.String()

	if r.verbose {
		for _, rec := range recs {
			fmt.Fprintf(r.out, "  %d. %s (%.4f)\n", rec.Rank, rec.DisplayName, rec.Score)
		}
	}
	return result, nil
}

// RunAllTests executes every scenario, stopping at the first unknown query
func (r *BenchmarkRunner) RunAllTests(scenarios []TestScenario) ([]TestResult, error) {
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunTest(scenario)
		if err != nil {
			return nil, fmt.Errorf("test %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Summarize aggregates results and attaches index details
func (r *BenchmarkRunner) Summarize(results []TestResult) Summary {
	s := Summarize(results)
	s.Timestamp = time.Now().Format(time.RFC3339)
	s.Documents = r.index.Len()
	s.BuildLatency = r.buildLatency.String()
	return s
}

// ExportResults writes the summary as indented JSON to outputPath
func (r *BenchmarkRunner) ExportResults(summary Summary, outputPath string) error {
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Fprintf(r.out, "Results exported to: %s\n", outputPath)
	return nil
}
