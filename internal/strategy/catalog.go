// Package strategy selects the mitigation technique for a classified bias.
package strategy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/biaslens/biaslens/internal/model"
)

// EffectivenessRow binds a bias type to its best-known mitigation strategy
// and the measured effectiveness that backs the pairing.
type EffectivenessRow struct {
	Strategy model.Strategy `yaml:"strategy"`

	// BaseEffectiveness is the percentage of evaluation cases where the
	// strategy improved the bias score for this bias type.
	BaseEffectiveness int `yaml:"base_effectiveness"`

	ResearchNote string `yaml:"research_note,omitempty"`
}

// ModelProfile captures per-model bias tendencies and the strategies that
// work best against them.
type ModelProfile struct {
	// Tendencies lists the bias types this model produces most often.
	Tendencies []model.BiasType `yaml:"tendencies"`

	// PreferredStrategies is ordered; the first entry overrides the
	// effectiveness table when the classified bias is a known tendency.
	PreferredStrategies []model.Strategy `yaml:"preferred_strategies"`

	// ConfidenceModifier scales selection confidence for this model.
	ConfidenceModifier float64 `yaml:"confidence_modifier"`
}

// Catalog is the full strategy knowledge base. It ships with built-in
// defaults and can be overridden from a YAML file.
type Catalog struct {
	Effectiveness map[model.BiasType]EffectivenessRow  `yaml:"effectiveness"`
	Models        map[model.ModelIdentity]ModelProfile `yaml:"models"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Effectiveness: map[model.BiasType]EffectivenessRow{
			model.BiasReligiousConflation: {
				Strategy:          model.StrategyRetrievalGrounding,
				BaseEffectiveness: 85,
				ResearchNote:      "grounding in sourced facts untangles merged identities",
			},
			model.BiasTerrorismAssociation: {
				Strategy:          model.StrategyNeutralLanguage,
				BaseEffectiveness: 78,
				ResearchNote:      "replacing loaded security framing removes the association",
			},
			model.BiasHarmfulGeneralization: {
				Strategy:          model.StrategyContextualReframing,
				BaseEffectiveness: 82,
				ResearchNote:      "reframing absolutes as variation breaks the generalization",
			},
			model.BiasCulturalBias: {
				Strategy:          model.StrategyCounterNarrative,
				BaseEffectiveness: 76,
				ResearchNote:      "adding insider perspectives offsets ethnocentric framing",
			},
			model.BiasEmotionalLanguage: {
				Strategy:          model.StrategyNeutralLanguage,
				BaseEffectiveness: 71,
				ResearchNote:      "tone-neutral rewording lowers affect without losing content",
			},
			model.BiasFactualError: {
				Strategy:          model.StrategyRetrievalGrounding,
				BaseEffectiveness: 88,
				ResearchNote:      "anchoring claims to verifiable facts corrects errors directly",
			},
		},
		Models: map[model.ModelIdentity]ModelProfile{
			model.ModelGPT4: {
				Tendencies:          []model.BiasType{model.BiasReligiousConflation, model.BiasCulturalBias},
				PreferredStrategies: []model.Strategy{model.StrategyRetrievalGrounding, model.StrategyCounterNarrative},
				ConfidenceModifier:  1.1,
			},
			model.ModelGPT35: {
				Tendencies:          []model.BiasType{model.BiasEmotionalLanguage, model.BiasHarmfulGeneralization},
				PreferredStrategies: []model.Strategy{model.StrategyNeutralLanguage, model.StrategyContextualReframing},
				ConfidenceModifier:  0.9,
			},
			model.ModelClaude3: {
				Tendencies:          []model.BiasType{model.BiasCulturalBias},
				PreferredStrategies: []model.Strategy{model.StrategyCounterNarrative, model.StrategyInstructionalPrompting},
				ConfidenceModifier:  1.0,
			},
			model.ModelClaude2: {
				Tendencies:          []model.BiasType{model.BiasEmotionalLanguage},
				PreferredStrategies: []model.Strategy{model.StrategyNeutralLanguage},
				ConfidenceModifier:  0.95,
			},
			model.ModelLlama2: {
				Tendencies:          []model.BiasType{model.BiasTerrorismAssociation, model.BiasHarmfulGeneralization},
				PreferredStrategies: []model.Strategy{model.StrategyNeutralLanguage, model.StrategyContextualReframing},
				ConfidenceModifier:  0.85,
			},
			model.ModelGemini: {
				Tendencies:          []model.BiasType{model.BiasReligiousConflation},
				PreferredStrategies: []model.Strategy{model.StrategyRetrievalGrounding},
				ConfidenceModifier:  1.0,
			},
		},
	}
}

// Load reads a catalog override from a YAML file. Sections absent from the
// file keep their built-in values.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy catalog: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing strategy catalog %s: %w", path, err)
	}

	catalog := Default()
	for kind, row := range override.Effectiveness {
		catalog.Effectiveness[kind] = row
	}
	for identity, profile := range override.Models {
		catalog.Models[identity] = profile
	}
	return catalog, nil
}
