package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biaslens/biaslens/internal/model"
)

// renderResult writes a human-readable analysis summary.
func renderResult(w io.Writer, result *model.PipelineResult) {
	rule := strings.Repeat("─", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  BiasLens Analysis")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  Prompt:        %s\n", result.Prompt)
	fmt.Fprintf(w, "  Prompt type:   %s\n", result.PromptSubtype)
	if result.TargetModel != model.ModelUnknown {
		fmt.Fprintf(w, "  Target model:  %s\n", result.TargetModel)
	}
	fmt.Fprintf(w, "  Risk level:    %s\n", result.RiskLevel)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Bias detected: %s", result.Original.Classification.Type)
	if result.Original.Classification.Fallback {
		fmt.Fprint(w, " (inferred from scores)")
	}
	fmt.Fprintln(w)
	if len(result.Original.Classification.Triggers) > 0 {
		fmt.Fprintf(w, "  Triggers:      %s\n", strings.Join(result.Original.Classification.Triggers, "; "))
	}
	fmt.Fprintf(w, "  Strategy:      %s (confidence %.2f)\n", result.StrategyUsed, result.Confidence)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Scores (original → improved)")
	renderScoreRow(w, "accuracy", result.Original.Scores.Accuracy, result.Improved.Scores.Accuracy)
	renderScoreRow(w, "relevance", result.Original.Scores.Relevance, result.Improved.Scores.Relevance)
	renderScoreRow(w, "fairness", result.Original.Scores.Fairness, result.Improved.Scores.Fairness)
	renderScoreRow(w, "neutrality", result.Original.Scores.Neutrality, result.Improved.Scores.Neutrality)
	renderScoreRow(w, "representation", result.Original.Scores.Representation, result.Improved.Scores.Representation)
	fmt.Fprintf(w, "    %-15s %.2f → %.2f\n", "bias score", result.Original.Scores.BiasScore(), result.Improved.Scores.BiasScore())
	fmt.Fprintln(w)

	if result.StrategyUsed != model.StrategyNoOp {
		fmt.Fprintf(w, "  Attempts:      %d\n", result.Attempts)
		if result.GuaranteeUnmet {
			fmt.Fprintln(w, "  Guarantee:     NOT met (best rewrite returned)")
		} else {
			fmt.Fprintln(w, "  Guarantee:     met")
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  Improved response:")
		fmt.Fprintf(w, "    %s\n", result.Improved.SourceText)
		fmt.Fprintln(w)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "  Recommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "    - %s\n", rec)
		}
		fmt.Fprintln(w)
	}

	if len(result.SuggestedPrompts) > 0 {
		fmt.Fprintln(w, "  Suggested prompts:")
		for _, p := range result.SuggestedPrompts {
			fmt.Fprintf(w, "    - %s\n", p)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
}

func renderScoreRow(w io.Writer, name string, original, improved int) {
	fmt.Fprintf(w, "    %-15s %d → %d\n", name, original, improved)
}

// writeResultJSON writes the full result as indented JSON.
func writeResultJSON(path string, result *model.PipelineResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
