// Package pipeline orchestrates the full diagnose-and-mitigate flow:
// score, classify, select a strategy, regenerate, and re-score.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/biaslens/biaslens/internal/cache"
	"github.com/biaslens/biaslens/internal/classify"
	"github.com/biaslens/biaslens/internal/llm"
	"github.com/biaslens/biaslens/internal/mitigate"
	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/score"
	"github.com/biaslens/biaslens/internal/strategy"
	"github.com/biaslens/biaslens/internal/worker"
)

// Pipeline orchestrates the complete analysis process
type Pipeline struct {
	scorer      *score.Scorer
	classifier  *classify.Classifier
	selector    *strategy.Selector
	synthesizer *mitigate.Synthesizer
	cache       cache.Cache
	config      *model.Config

	// now is injectable so repeated runs over identical input can produce
	// identical results.
	now func() time.Time
}

// New creates a pipeline from configuration.
func New(cfg *model.Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	scorer := score.NewScorer()
	if cfg.Pipeline.LexiconPath != "" {
		lex, err := score.LoadLexicon(cfg.Pipeline.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		scorer = score.NewScorerWithLexicon(lex)
	}

	catalog := strategy.Default()
	if cfg.Pipeline.CatalogPath != "" {
		c, err := strategy.Load(cfg.Pipeline.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load strategy catalog: %w", err)
		}
		catalog = c
	}

	generator, err := llm.NewGenerator(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create generation provider: %w", err)
	}

	var limiter *worker.Limiter
	if cfg.RateLimit.Enabled {
		limiter = worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	synthesizer := mitigate.NewSynthesizer(generator, scorer, limiter, mitigate.Options{
		MaxAttempts:    cfg.Pipeline.MaxAttempts,
		MinImprovement: cfg.Pipeline.MinImprovement,
		RetryBackoff:   cfg.Pipeline.RetryBackoff,
		Model:          cfg.LLM.Model,
		MaxTokens:      cfg.LLM.MaxTokens,
	})

	return &Pipeline{
		scorer:      scorer,
		classifier:  classify.NewClassifier(),
		selector:    strategy.NewSelector(catalog),
		synthesizer: synthesizer,
		cache:       resultCache,
		config:      cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// Analyze runs the full flow for one prompt/response pair.
func (p *Pipeline) Analyze(ctx context.Context, prompt, response string) (*model.PipelineResult, error) {
	// 1. Validate input; missing text fails fast, never scores as neutral
	if strings.TrimSpace(prompt) == "" {
		return nil, &model.InvalidInputError{Reason: "empty prompt"}
	}
	if strings.TrimSpace(response) == "" {
		return nil, &model.InvalidInputError{Reason: "empty response"}
	}

	target := model.ModelIdentity(p.config.Pipeline.TargetModel)

	// 2. Cache lookup keyed on the analysis identity
	key := cache.Key(prompt, response, string(target))
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			return cached, nil
		}
	}

	// 3. Score the original response
	origScores, err := p.scorer.Score(response)
	if err != nil {
		return nil, &model.StageError{Stage: "score", Err: err}
	}

	// 4. Classify bias and the prompt shape
	classification := p.classifier.Classify(response, origScores)
	subtype := classify.PromptSubtype(prompt)

	// 5. Select a mitigation strategy
	selection := p.selector.Select(classification, target)

	analyzedAt := p.now()
	original := model.AnalysisResult{
		SourceText:     response,
		Scores:         origScores,
		Classification: classification,
		AnalyzedAt:     analyzedAt,
	}

	result := &model.PipelineResult{
		Prompt:        prompt,
		PromptSubtype: subtype,
		TargetModel:   target,
		Original:      original,
		StrategyUsed:  selection.Strategy,
		Confidence:    selection.Confidence,
		RiskLevel:     model.RiskFromScores(origScores),
	}

	// 6. Mitigate, unless the text classified clean
	if selection.Strategy == model.StrategyNoOp {
		result.Improved = original
	} else {
		outcome, err := p.synthesizer.Mitigate(ctx, prompt, response, origScores, selection.Strategy)
		if err != nil {
			return nil, &model.StageError{Stage: "mitigate", Scores: &origScores, Err: err}
		}

		// 7. Re-classify the rewrite so the improved snapshot is complete
		improvedClassification := p.classifier.Classify(outcome.ImprovedText, outcome.Scores)

		result.Improved = model.AnalysisResult{
			SourceText:     outcome.ImprovedText,
			Scores:         outcome.Scores,
			Classification: improvedClassification,
			AnalyzedAt:     analyzedAt,
		}
		result.Attempts = outcome.Attempts
		result.Instruction = outcome.Instruction
		result.GuaranteeUnmet = !outcome.GuaranteeMet
		result.SuggestedPrompts = outcome.SuggestedPrompts
	}

	result.Delta = model.DeltaBetween(result.Original.Scores, result.Improved.Scores)
	result.Recommendations = recommendations(result)

	if p.cache != nil {
		p.cache.Set(key, result)
	}

	return result, nil
}
