package model

// Strategy names a mitigation technique applied to reduce measured bias
// in regenerated text.
type Strategy string

const (
	StrategyRetrievalGrounding     Strategy = "retrieval_grounding"     // Ground in verifiable sources
	StrategyNeutralLanguage        Strategy = "neutral_language"        // Replace charged terms
	StrategyContextualReframing    Strategy = "contextual_reframing"    // Reframe generalizations
	StrategyCounterNarrative       Strategy = "counter_narrative"       // Add perspectives that challenge stereotypes
	StrategyInstructionalPrompting Strategy = "instructional_prompting" // Bias-aware prompt instructions
	StrategyNoOp                   Strategy = "none"                    // Selected for clean text; mitigation skipped
)

// ModelIdentity names a target model in the tendency table. An empty
// identity means the target model is unknown.
type ModelIdentity string

const (
	ModelGPT4    ModelIdentity = "gpt-4"
	ModelGPT35   ModelIdentity = "gpt-3.5-turbo"
	ModelClaude3 ModelIdentity = "claude-3"
	ModelClaude2 ModelIdentity = "claude-2"
	ModelLlama2  ModelIdentity = "llama-2"
	ModelGemini  ModelIdentity = "gemini"
	ModelUnknown ModelIdentity = ""
)
