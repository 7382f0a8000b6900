// Demo program running the full pipeline over built-in sample pairs with
// the offline rewriter, so the flow can be inspected without any API key.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/pipeline"
)

func main() {
	samples := []struct {
		prompt   string
		response string
	}{
		{
			prompt:   "Is Sikhism a branch of Islam?",
			response: "Yes, Sikhism is a branch of Islam and Sikhs are often seen as terrorists.",
		},
		{
			prompt:   "Describe Sikh customs.",
			response: "All Sikhs are violent extremists with backward customs.",
		},
		{
			prompt:   "Who founded Sikhism?",
			response: "Guru Nanak founded Sikhism in the Punjab region in the 15th century.",
		},
	}

	cfg := model.DefaultConfig()
	cfg.LLM.Provider = "local"

	p, err := pipeline.New(cfg)
	if err != nil {
		fmt.Printf("pipeline error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, sample := range samples {
		fmt.Printf("Prompt: %s\n", sample.prompt)
		fmt.Println(strings.Repeat("-", 60))

		result, err := p.Analyze(ctx, sample.prompt, sample.response)
		if err != nil {
			fmt.Printf("  analysis error: %v\n\n", err)
			continue
		}

		fmt.Printf("  Bias:       %s\n", result.Original.Classification.Type)
		fmt.Printf("  Strategy:   %s (confidence %.2f)\n", result.StrategyUsed, result.Confidence)
		fmt.Printf("  Risk:       %s\n", result.RiskLevel)
		fmt.Printf("  Bias score: %.2f -> %.2f\n", result.Original.Scores.BiasScore(), result.Improved.Scores.BiasScore())
		if result.StrategyUsed != model.StrategyNoOp {
			fmt.Printf("  Rewrite:    %s\n", result.Improved.SourceText)
		}
		fmt.Println()
	}
}
