package model

import "time"

// Config holds all runtime configuration.
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Output      OutputConfig      `yaml:"output"`
}

// LLMConfig configures the text-generation collaborator.
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "local"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for API requests, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for regenerated responses
	MaxTokens int `yaml:"max_tokens"`

	// Proxy settings for the provider HTTP clients
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// PipelineConfig configures the mitigation pipeline itself.
type PipelineConfig struct {
	// MinImprovement is the minimum per-dimension gain (1-5 scale) the
	// improvement guarantee requires on fairness, neutrality, and
	// representation.
	MinImprovement float64 `yaml:"min_improvement"`

	// MaxAttempts bounds generation requests per pipeline run.
	MaxAttempts int `yaml:"max_attempts"`

	// RetryBackoff is the base delay between failed generation attempts.
	RetryBackoff time.Duration `yaml:"retry_backoff"`

	// TargetModel identifies the model that produced the input response,
	// when known. Enables model-tendency strategy overrides.
	TargetModel string `yaml:"target_model,omitempty"`

	// CatalogPath optionally overrides the built-in strategy catalog.
	CatalogPath string `yaml:"catalog_path,omitempty"`

	// LexiconPath optionally overrides the built-in scoring lexicon.
	LexiconPath string `yaml:"lexicon_path,omitempty"`
}

// CacheConfig configures the in-memory analysis cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitConfig throttles generation requests per provider.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "local", // Deterministic offline rewriter by default
			Timeout:   30,
			MaxTokens: 1000,
		},
		Pipeline: PipelineConfig{
			MinImprovement: 0.5,
			MaxAttempts:    3,
			RetryBackoff:   2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}
