package strategy

import (
	"fmt"

	"github.com/biaslens/biaslens/internal/model"
)

// Selection is the selector verdict: which strategy to apply and how much
// confidence backs the choice.
type Selection struct {
	Strategy model.Strategy `json:"strategy"`

	// Confidence is BaseEffectiveness/100, scaled by the target model's
	// confidence modifier when its tendency profile matched. Always in
	// [0, 1].
	Confidence float64 `json:"confidence"`

	BaseEffectiveness int `json:"base_effectiveness"`

	// ModelAdjusted reports whether the target model's profile changed
	// the table-driven choice.
	ModelAdjusted bool `json:"model_adjusted"`

	Reasoning string `json:"reasoning"`
}

// Selector picks mitigation strategies from a catalog.
type Selector struct {
	catalog *Catalog
}

// NewSelector builds a selector over the given catalog, or the built-in
// one when catalog is nil.
func NewSelector(catalog *Catalog) *Selector {
	if catalog == nil {
		catalog = Default()
	}
	return &Selector{catalog: catalog}
}

// Select maps a classification and target model to a strategy. Clean text
// short-circuits to the no-op strategy with full confidence. A known model
// whose tendency list contains the classified bias overrides the table
// with its first preferred strategy and scales confidence by its modifier.
func (s *Selector) Select(classification model.BiasClassification, target model.ModelIdentity) Selection {
	if classification.IsNone() {
		return Selection{
			Strategy:   model.StrategyNoOp,
			Confidence: 1.0,
			Reasoning:  "no bias detected; mitigation skipped",
		}
	}

	row, ok := s.catalog.Effectiveness[classification.Type]
	if !ok {
		// Unmapped bias types get the safest general-purpose strategy.
		return Selection{
			Strategy:   model.StrategyInstructionalPrompting,
			Confidence: 0.5,
			Reasoning:  fmt.Sprintf("no effectiveness data for %s; using instructional prompting", classification.Type),
		}
	}

	sel := Selection{
		Strategy:          row.Strategy,
		Confidence:        float64(row.BaseEffectiveness) / 100,
		BaseEffectiveness: row.BaseEffectiveness,
		Reasoning:         fmt.Sprintf("%s addressed by %s (%d%% effective)", classification.Type, row.Strategy, row.BaseEffectiveness),
	}

	profile, known := s.catalog.Models[target]
	if known && hasTendency(profile, classification.Type) && len(profile.PreferredStrategies) > 0 {
		sel.Strategy = profile.PreferredStrategies[0]
		sel.Confidence *= profile.ConfidenceModifier
		sel.ModelAdjusted = true
		sel.Reasoning = fmt.Sprintf("%s is a known tendency of %s; using its preferred %s", classification.Type, target, sel.Strategy)
	}

	sel.Confidence = clampUnit(sel.Confidence)
	return sel
}

func hasTendency(profile ModelProfile, kind model.BiasType) bool {
	for _, t := range profile.Tendencies {
		if t == kind {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
