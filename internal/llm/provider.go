package llm

import (
	"context"
	"fmt"
)

// Generator defines the interface for text-generation providers used to
// regenerate a mitigated response.
type Generator interface {
	// Name returns the provider name
	Name() string

	// Generate produces a rewritten response under a mitigation instruction
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for a mitigation rewrite.
type GenerateRequest struct {
	// Prompt is the original user prompt that produced SourceText
	Prompt string

	// SourceText is the biased response being rewritten
	SourceText string

	// Instruction is the strategy-specific rewrite directive
	Instruction string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the provider's rewritten output.
type GenerateResponse struct {
	// Text is the regenerated response
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds generation provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "local", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "local",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

const rewriteSystemPrompt = "You rewrite model responses to remove bias while preserving every accurate, relevant fact. Follow the rewrite directive exactly. Output only the rewritten response, with no preamble."

// BuildRewritePrompt constructs the user prompt for a mitigation rewrite.
func BuildRewritePrompt(req GenerateRequest) string {
	return fmt.Sprintf(`Original question:
%s

Response to rewrite:
%s

Rewrite directive:
%s

Rewrite the response now. Keep its accurate content, correct any factual errors, and apply the directive. Output only the rewritten response.`, req.Prompt, req.SourceText, req.Instruction)
}
