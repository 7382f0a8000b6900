package model

// ImprovementDelta records the per-dimension and composite differences
// between the original and improved results.
type ImprovementDelta struct {
	Accuracy       int     `json:"accuracy"`
	Relevance      int     `json:"relevance"`
	Fairness       int     `json:"fairness"`
	Neutrality     int     `json:"neutrality"`
	Representation int     `json:"representation"`
	BiasScore      float64 `json:"bias_score"`
	Composite      float64 `json:"composite"`
}

// DeltaBetween computes improved minus original across all dimensions.
func DeltaBetween(original, improved RubricScores) ImprovementDelta {
	return ImprovementDelta{
		Accuracy:       improved.Accuracy - original.Accuracy,
		Relevance:      improved.Relevance - original.Relevance,
		Fairness:       improved.Fairness - original.Fairness,
		Neutrality:     improved.Neutrality - original.Neutrality,
		Representation: improved.Representation - original.Representation,
		BiasScore:      improved.BiasScore() - original.BiasScore(),
		Composite:      improved.Composite() - original.Composite(),
	}
}

// PipelineResult is the aggregated outcome of one full pipeline run. It is
// owned by the invocation that produced it; the pipeline holds no reference
// back to any caller-maintained history.
type PipelineResult struct {
	Prompt        string        `json:"prompt"`
	PromptSubtype PromptSubtype `json:"prompt_subtype"`
	TargetModel   ModelIdentity `json:"target_model,omitempty"`

	Original AnalysisResult `json:"original"`
	Improved AnalysisResult `json:"improved"`

	StrategyUsed Strategy `json:"strategy_used"`
	Confidence   float64  `json:"confidence"`

	Delta ImprovementDelta `json:"delta"`

	// GuaranteeUnmet flags a result whose bias-relevant dimensions did not
	// all reach the minimum improvement margin within the attempt budget.
	// The result is still returned; scores are never fabricated.
	GuaranteeUnmet bool `json:"guarantee_unmet,omitempty"`

	// Attempts is the number of generation requests issued (0 when the
	// mitigation step was skipped for a clean classification).
	Attempts int `json:"attempts"`

	// Instruction is the mitigation instruction used for the returned text.
	Instruction string `json:"instruction,omitempty"`

	RiskLevel        RiskLevel `json:"risk_level"`
	Recommendations  []string  `json:"recommendations,omitempty"`
	SuggestedPrompts []string  `json:"suggested_prompts,omitempty"`
}
