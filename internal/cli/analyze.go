package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/pipeline"
)

var (
	responseText string
	responseFile string
	targetModel  string
	llmProvider  string
	llmModel     string
	catalogPath  string
	lexiconPath  string
	timeout      time.Duration
	maxAttempts  int
	noCache      bool
	outJSON      string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <prompt>",
	Short: "Analyze one LLM response for bias and mitigate it",
	Long: `Analyze scores a single prompt/response pair to:
- Rate the response on accuracy, relevance, fairness, neutrality, and representation
- Classify the dominant bias pattern and the phrases that triggered it
- Select the mitigation strategy with the best measured effectiveness
- Regenerate the response until the bias scores improve by the guaranteed margin

Example:
  biaslens analyze "Is Sikhism a branch of Islam?" --response "Yes, it is."
  biaslens analyze "Describe Sikh customs" --response-file response.txt --target-model gpt-4
  biaslens analyze "Is Sikhism a branch of Islam?" --response "Yes." --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&responseText, "response", "", "response text to analyze")
	analyzeCmd.Flags().StringVar(&responseFile, "response-file", "", "file containing the response text")
	analyzeCmd.Flags().StringVar(&targetModel, "target-model", "", "model that produced the response (gpt-4, gpt-3.5-turbo, claude-3, claude-2, llama-2, gemini)")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().IntVar(&maxAttempts, "max-attempts", 3, "generation attempts before giving up on the improvement guarantee")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the analysis cache")
	analyzeCmd.Flags().StringVar(&catalogPath, "catalog", "", "strategy catalog YAML (overrides built-in)")
	analyzeCmd.Flags().StringVar(&lexiconPath, "lexicon", "", "scoring lexicon YAML (overrides built-in)")

	// Generation flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "local", "generation provider (local, openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (provider-specific)")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "also write the full result JSON to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	prompt := args[0]

	response, err := resolveResponse()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	result, err := p.Analyze(ctx, prompt, response)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderResult(os.Stdout, result)

	if outJSON != "" {
		if err := writeResultJSON(outJSON, result); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON result: %s\n", outJSON)
		}
	}

	return nil
}

// resolveResponse reads the response from --response or --response-file.
func resolveResponse() (string, error) {
	if responseText != "" && responseFile != "" {
		return "", fmt.Errorf("--response and --response-file are mutually exclusive")
	}
	if responseText != "" {
		return responseText, nil
	}
	if responseFile != "" {
		data, err := os.ReadFile(responseFile)
		if err != nil {
			return "", fmt.Errorf("read response file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("one of --response or --response-file is required")
}

// mergeFileConfig overlays the settings viper read from the config file
// onto cfg. Keys absent from the file keep their values.
func mergeFileConfig(cfg *model.Config) error {
	if viper.ConfigFileUsed() == "" {
		return nil
	}
	err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}

// buildConfig assembles runtime configuration from defaults, the config
// file, flags, and environment. Flags win only when explicitly set.
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := mergeFileConfig(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("target-model") {
		cfg.Pipeline.TargetModel = targetModel
	}
	if flags.Changed("max-attempts") {
		cfg.Pipeline.MaxAttempts = maxAttempts
	}
	if flags.Changed("catalog") {
		cfg.Pipeline.CatalogPath = catalogPath
	}
	if flags.Changed("lexicon") {
		cfg.Pipeline.LexiconPath = lexiconPath
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
	cfg.Output.Verbose = verbose

	// Get API key from environment
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}
