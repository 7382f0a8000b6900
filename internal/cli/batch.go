package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/biaslens/biaslens/internal/pipeline"
	"github.com/biaslens/biaslens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple prompt/response pairs from a file in parallel",
	Long: `Batch processes multiple prompt/response pairs concurrently:
- Read tab-separated prompt/response pairs from the input file (one per line)
- Analyze pairs in parallel with a configurable worker count
- Write an individual JSON result per pair, in input order

Example:
  biaslens batch pairs.tsv
  biaslens batch pairs.tsv --concurrency 8 --output-dir ./results
  biaslens batch pairs.tsv --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./biaslens-results", "output directory for result JSON files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared analysis flags
	batchCmd.Flags().StringVar(&targetModel, "target-model", "", "model that produced the responses")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")
	batchCmd.Flags().StringVar(&catalogPath, "catalog", "", "strategy catalog YAML (overrides built-in)")
	batchCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "scoring lexicon YAML (overrides built-in)")
	batchCmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "generation attempts per pair")

	// Generation flags
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "local", "generation provider (local, openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (provider-specific)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "Timeout:     %v\n", batchTimeout)
	fmt.Fprintln(os.Stderr)

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Concurrency.Workers = concurrency

	// Create output directory
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: %v\n", result.Index, truncate(result.Request.Prompt, 50), result.Error)
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, fmt.Sprintf("result-%04d.json", result.Index))
		if err := writeResultJSON(jsonPath, result.Result); err != nil {
			fmt.Fprintf(os.Stderr, "✗ [%d] write failed: %v\n", result.Index, err)
			continue
		}

		status := "ok"
		if result.Result.GuaranteeUnmet {
			status = "guarantee unmet"
		}
		fmt.Fprintf(os.Stderr, "✓ [%d] %s  bias %.2f → %.2f (%s)\n",
			result.Index,
			truncate(result.Request.Prompt, 50),
			result.Result.Original.Scores.BiasScore(),
			result.Result.Improved.Scores.BiasScore(),
			status)
	}

	// Summary
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:     %d pairs\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "Output:    %s\n", outputDir)

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
