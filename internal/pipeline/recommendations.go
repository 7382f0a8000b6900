package pipeline

import (
	"fmt"

	"github.com/biaslens/biaslens/internal/model"
)

const maxRecommendations = 5

// biasAdvice maps each bias type to the follow-up action it implies.
var biasAdvice = map[model.BiasType]string{
	model.BiasFactualError:          "Verify factual claims against primary sources before publishing this response.",
	model.BiasReligiousConflation:   "Keep distinct religious identities separate; name each tradition explicitly.",
	model.BiasTerrorismAssociation:  "Avoid security framing when describing religious or ethnic communities.",
	model.BiasHarmfulGeneralization: "Qualify group statements: describe what some or many members do, not all.",
	model.BiasCulturalBias:          "Describe practices on their own terms instead of against an outside standard.",
	model.BiasEmotionalLanguage:     "Prefer descriptive vocabulary over emotionally charged wording.",
}

// recommendations derives follow-up guidance from a completed run. Capped
// at five entries, most important first.
func recommendations(result *model.PipelineResult) []string {
	var recs []string

	if result.RiskLevel == model.RiskHigh {
		recs = append(recs, "High bias risk: review this response manually before any downstream use.")
	}

	if advice, ok := biasAdvice[result.Original.Classification.Type]; ok {
		recs = append(recs, advice)
	}

	if result.GuaranteeUnmet {
		recs = append(recs, "The rewrite did not reach the improvement target; consider a different provider or a manual edit.")
	}

	if !result.Improved.Classification.IsNone() && result.StrategyUsed != model.StrategyNoOp {
		recs = append(recs, fmt.Sprintf("Residual %s detected in the rewrite; a second pass may help.", result.Improved.Classification.Type))
	}

	if result.PromptSubtype == model.SubtypeIdentityConfusion {
		recs = append(recs, "The prompt invites identity conflation; rephrase it to ask about each tradition separately.")
	}

	if result.Original.Classification.IsNone() && len(recs) == 0 {
		recs = append(recs, "No bias detected; no action required.")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
