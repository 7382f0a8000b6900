package model

import "time"

// RubricScores holds the five rubric dimensions on the 1-5 scale.
// Accuracy and Relevance measure response quality; Fairness, Neutrality,
// and Representation are the bias-relevant dimensions that feed BiasScore.
type RubricScores struct {
	Accuracy       int `json:"accuracy" yaml:"accuracy"`             // Factual correctness
	Relevance      int `json:"relevance" yaml:"relevance"`           // Addresses the prompt directly
	Fairness       int `json:"fairness" yaml:"fairness"`             // Balance and impartiality
	Neutrality     int `json:"neutrality" yaml:"neutrality"`         // Avoids ideological/ethnocentric framing
	Representation int `json:"representation" yaml:"representation"` // Depth and inclusivity of portrayal
}

// BiasScore is the composite bias metric: the mean of fairness, neutrality,
// and representation. Always derived from the three source fields, never
// stored independently of them.
func (s RubricScores) BiasScore() float64 {
	return float64(s.Fairness+s.Neutrality+s.Representation) / 3.0
}

// Composite is the mean of all five dimensions.
func (s RubricScores) Composite() float64 {
	return float64(s.Accuracy+s.Relevance+s.Fairness+s.Neutrality+s.Representation) / 5.0
}

// Flatten returns the per-dimension score map exposed to display and
// export collaborators. This is the only tabular shape the core exposes.
func (s RubricScores) Flatten() map[string]float64 {
	return map[string]float64{
		"accuracy":       float64(s.Accuracy),
		"relevance":      float64(s.Relevance),
		"fairness":       float64(s.Fairness),
		"neutrality":     float64(s.Neutrality),
		"representation": float64(s.Representation),
		"bias_score":     s.BiasScore(),
	}
}

// AnalysisResult is an immutable snapshot of one scored text. A re-score
// produces a new AnalysisResult, never an update to an existing one.
type AnalysisResult struct {
	SourceText     string             `json:"source_text"`
	Scores         RubricScores       `json:"scores"`
	Classification BiasClassification `json:"classification"`
	AnalyzedAt     time.Time          `json:"analyzed_at"`
}

// RiskLevel buckets a bias score for reporting.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFromScores buckets the composite bias score: >= 4.0 low,
// >= 3.0 medium, below that high.
func RiskFromScores(s RubricScores) RiskLevel {
	bias := s.BiasScore()
	switch {
	case bias >= 4.0:
		return RiskLow
	case bias >= 3.0:
		return RiskMedium
	default:
		return RiskHigh
	}
}
