package model

// BiasType labels the dominant bias pattern detected in a text.
type BiasType string

const (
	BiasFactualError          BiasType = "factual_error"          // Demonstrably false statements
	BiasReligiousConflation   BiasType = "religious_conflation"   // Merging distinct religions/identities
	BiasTerrorismAssociation  BiasType = "terrorism_association"  // Linking a group to terrorism/extremism
	BiasHarmfulGeneralization BiasType = "harmful_generalization" // "all/every/always/never" group claims
	BiasCulturalBias          BiasType = "cultural_bias"          // Western-centric or dismissive framing
	BiasEmotionalLanguage     BiasType = "emotional_language"     // Charged, fear-laden wording
	BiasNone                  BiasType = "none"                   // No bias pattern detected
)

// ClassificationPriority is the fixed tie-break order when multiple trigger
// groups fire. It is an explicit list, not implicit code order, so
// classification stays reproducible for identical input.
var ClassificationPriority = []BiasType{
	BiasFactualError,
	BiasReligiousConflation,
	BiasTerrorismAssociation,
	BiasHarmfulGeneralization,
	BiasCulturalBias,
	BiasEmotionalLanguage,
}

// BiasClassification is the classifier verdict for one text: at most one
// label, plus the literal trigger phrases that justified it.
type BiasClassification struct {
	Type BiasType `json:"type"`

	// Triggers are the matched phrases, for auditability. Empty when the
	// label came from the lowest-dimension fallback path.
	Triggers []string `json:"triggers,omitempty"`

	// Fallback marks labels inferred from rubric scores rather than from
	// a trigger group match.
	Fallback bool `json:"fallback,omitempty"`
}

// IsNone reports whether no bias was detected.
func (c BiasClassification) IsNone() bool {
	return c.Type == BiasNone
}

// PromptSubtype categorizes the structure of the originating prompt.
// It is carried on results for reporting and never affects scoring.
type PromptSubtype string

const (
	SubtypeIdentityConfusion PromptSubtype = "identity_confusion"
	SubtypeAnalogical        PromptSubtype = "analogical"
	SubtypeComparative       PromptSubtype = "comparative"
	SubtypeScenario          PromptSubtype = "scenario"
	SubtypeDescriptive       PromptSubtype = "descriptive"
	SubtypeGeneral           PromptSubtype = "general"
)
