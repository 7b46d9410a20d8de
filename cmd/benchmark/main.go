// ABOUTME: Command-line benchmark runner for recommendation relevance
// ABOUTME: Scores labelled scenarios, prints a summary and exports JSON results

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/talk-recommender/benchmarks/relevance"
	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/logging"
	"github.com/harper/talk-recommender/internal/storage"
)

var (
	transcriptsPath string
	casesPath       string
	testID          string
	outputPath      string
	threshold       float64
	verbose         bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Score recommendation relevance against labelled scenarios",
		Long: `Build an index and score labelled scenarios with precision@k,
recall@k, reciprocal rank and hit rate.

Without --transcripts and --cases the built-in fixture corpus and
scenarios are used. Exits non-zero when any scenario falls below the
recall threshold.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringVar(&transcriptsPath, "transcripts", "", "Transcripts CSV (default: built-in fixture corpus)")
	cmd.Flags().StringVar(&casesPath, "cases", "", "YAML scenarios file (default: built-in scenarios)")
	cmd.Flags().StringVar(&testID, "test", "", "Run only the scenario with this ID")
	cmd.Flags().StringVar(&outputPath, "output", "benchmark_results.json", "Output path for JSON results")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.9, "Minimum recall@k for a scenario to pass")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each ranking")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{Level: level, Output: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}

	docs := relevance.FixtureCorpus()
	if transcriptsPath != "" {
		if docs, err = storage.OpenTranscripts(transcriptsPath); err != nil {
			return err
		}
	}

	scenarios := relevance.GetAllTests()
	if casesPath != "" {
		if scenarios, err = relevance.LoadScenariosFile(casesPath); err != nil {
			return err
		}
	}
	if testID != "" {
		scenarios = filterScenarios(scenarios, testID)
		if len(scenarios) == 0 {
			return fmt.Errorf("unknown test ID: %s", testID)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out, "Talk Recommendation Relevance Benchmark")
	fmt.Fprintln(out, "========================================")

	runner, err := relevance.NewBenchmarkRunner(docs, core.BuildOptions{Logger: logger}, threshold, verbose, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Indexed %d talks in %s\n", len(docs), runner.BuildLatency())

	results, err := runner.RunAllTests(scenarios)
	if err != nil {
		return err
	}
	summary := runner.Summarize(results)

	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "BENCHMARK SUMMARY")
	fmt.Fprintln(out, "========================================")
	for _, r := range results {
		fmt.Fprintf(out, "\n%s: %s\n", r.TestID, r.TestName)
		fmt.Fprintf(out, "  Precision@k: %.2f\n", r.Precision)
		fmt.Fprintf(out, "  Recall@k:    %.2f\n", r.Recall)
		fmt.Fprintf(out, "  RR:          %.2f\n", r.ReciprocalRank)
		fmt.Fprintf(out, "  Latency:     %s\n", r.QueryLatency)
		fmt.Fprintf(out, "  Status:      %s\n", r.Status)
	}
	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintf(out, "Total Tests: %d\n", summary.TotalTests)
	fmt.Fprintf(out, "Passed: %d\n", summary.Passed)
	fmt.Fprintf(out, "Failed: %d\n", summary.Failed)
	fmt.Fprintf(out, "MRR: %.3f  Hit rate: %.3f\n", summary.MRR, summary.HitRate)
	fmt.Fprintln(out, "========================================")

	if err := runner.ExportResults(summary, outputPath); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d scenarios below recall %.2f", summary.Failed, summary.TotalTests, threshold)
	}
	return nil
}

func filterScenarios(scenarios []relevance.TestScenario, id string) []relevance.TestScenario {
	var out []relevance.TestScenario
	for _, s := range scenarios {
		if s.ID == id {
			out = append(out, s)
		}
	}
	return out
}
