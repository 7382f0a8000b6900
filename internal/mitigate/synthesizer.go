// Package mitigate regenerates biased responses under a selected strategy
// until the rubric improvement guarantee is met or the attempt budget runs
// out.
package mitigate

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/biaslens/biaslens/internal/llm"
	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/score"
	"github.com/biaslens/biaslens/internal/worker"
)

// sleepFunc allows tests to skip retry backoff delays.
var sleepFunc = time.Sleep

// instructions holds the rewrite directives per strategy, ordered by
// escalation level. Attempt N uses level min(N, len)-1, so repeated
// failures get progressively more explicit direction.
var instructions = map[model.Strategy][]string{
	model.StrategyRetrievalGrounding: {
		"Rewrite the response so every claim is grounded in verifiable facts about the subject. Correct any factual errors.",
		"Rewrite the response using only verifiable, sourced facts. Name founders, dates, places, and scriptures explicitly, and remove every unsupported claim.",
		"Rewrite the response from scratch as a factual encyclopedia entry. State the founding figure, century, region, and central scripture, and assert the subject's distinct identity.",
	},
	model.StrategyNeutralLanguage: {
		"Rewrite the response replacing charged, fearful, or security-related wording with neutral, descriptive language.",
		"Rewrite the response in strictly neutral register. Remove every emotionally loaded word and every association with violence or threat.",
		"Rewrite the response in the dispassionate tone of a reference work. No charged vocabulary, no absolutes, no threat framing of any kind.",
	},
	model.StrategyContextualReframing: {
		"Rewrite the response reframing generalizations as variation: describe what some or many members do, not what all do.",
		"Rewrite the response removing every absolute generalization. Present practices as varying by community and individual choice.",
		"Rewrite the response around diversity of practice. Explicitly note that observance varies and that individuals make their own choices.",
	},
	model.StrategyCounterNarrative: {
		"Rewrite the response adding perspectives that counter the stereotype, including the community's own view of its traditions.",
		"Rewrite the response to foreground the community's self-understanding and contributions, displacing the external stereotype.",
		"Rewrite the response centered on the tradition's own voices: its values, service, and heritage, with the stereotype explicitly corrected.",
	},
	model.StrategyInstructionalPrompting: {
		"Rewrite the response following bias-aware guidelines: accurate, balanced, respectful, and representative of the community described.",
		"Rewrite the response as if instructed to audit it for bias first: fix accuracy, balance the framing, and broaden the representation.",
		"Rewrite the response to satisfy a bias review checklist: verifiable facts only, neutral tone, no generalizations, and inclusive portrayal.",
	},
}

// promptSuggestions offers reformulated prompts per strategy, so callers
// can avoid triggering the same bias again.
var promptSuggestions = map[model.Strategy][]string{
	model.StrategyRetrievalGrounding: {
		"Using only verifiable historical facts, describe the origins and core beliefs of the tradition.",
		"What do scholarly sources say about this topic?",
	},
	model.StrategyNeutralLanguage: {
		"In neutral, descriptive language, explain this topic.",
		"Describe this topic as a reference encyclopedia would.",
	},
	model.StrategyContextualReframing: {
		"How do practices around this topic vary between communities and individuals?",
		"Describe the range of views held within the community.",
	},
	model.StrategyCounterNarrative: {
		"How do members of the community describe their own traditions and values?",
		"What contributions has the community made to its wider society?",
	},
	model.StrategyInstructionalPrompting: {
		"Giving a balanced and accurate account, describe this topic.",
		"With attention to fairness and representation, explain this topic.",
	},
}

// Options configures a Synthesizer.
type Options struct {
	MaxAttempts    int
	MinImprovement float64
	RetryBackoff   time.Duration

	// Model and MaxTokens pass through to the generation provider.
	Model     string
	MaxTokens int
}

// Outcome is the result of a mitigation run: the best rewrite achieved and
// whether it met the improvement guarantee.
type Outcome struct {
	ImprovedText     string
	Scores           model.RubricScores
	Attempts         int
	GuaranteeMet     bool
	Instruction      string
	SuggestedPrompts []string
}

// Synthesizer drives the generate-rescore loop.
type Synthesizer struct {
	generator llm.Generator
	scorer    *score.Scorer
	limiter   *worker.Limiter
	opts      Options
}

// NewSynthesizer builds a synthesizer. The limiter may be nil when rate
// limiting is disabled.
func NewSynthesizer(generator llm.Generator, scorer *score.Scorer, limiter *worker.Limiter, opts Options) *Synthesizer {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.MinImprovement <= 0 {
		opts.MinImprovement = 0.5
	}
	return &Synthesizer{
		generator: generator,
		scorer:    scorer,
		limiter:   limiter,
		opts:      opts,
	}
}

// Mitigate regenerates sourceText under the strategy until the bias-relevant
// dimensions all meet the improvement guarantee or attempts run out. The
// best rewrite seen is returned either way; a run where every generation
// call failed returns the provider error instead.
func (s *Synthesizer) Mitigate(ctx context.Context, prompt, sourceText string, original model.RubricScores, strat model.Strategy) (*Outcome, error) {
	levels, ok := instructions[strat]
	if !ok {
		return nil, fmt.Errorf("no instructions for strategy %s", strat)
	}

	var (
		best    *Outcome
		lastErr error
	)

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		instruction := levels[minInt(attempt, len(levels))-1]

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx, s.generator.Name()); err != nil {
				return nil, err
			}
		}

		resp, err := s.generator.Generate(ctx, llm.GenerateRequest{
			Prompt:      prompt,
			SourceText:  sourceText,
			Instruction: instruction,
			Model:       s.opts.Model,
			MaxTokens:   s.opts.MaxTokens,
		})
		if err != nil {
			lastErr = err
			if attempt < s.opts.MaxAttempts {
				sleepFunc(s.opts.RetryBackoff * time.Duration(attempt))
			}
			continue
		}

		scores, err := s.scorer.Score(resp.Text)
		if err != nil {
			// Blank output counts as a failed attempt
			lastErr = &model.GenerationUnavailableError{Provider: s.generator.Name(), Err: err}
			continue
		}

		outcome := &Outcome{
			ImprovedText:     resp.Text,
			Scores:           scores,
			Attempts:         attempt,
			Instruction:      instruction,
			SuggestedPrompts: suggestionsFor(strat),
		}

		if guaranteeMet(original, scores, s.opts.MinImprovement) {
			outcome.GuaranteeMet = true
			return outcome, nil
		}

		if best == nil || scores.BiasScore() > best.Scores.BiasScore() {
			best = outcome
		}
	}

	if best != nil {
		best.Attempts = s.opts.MaxAttempts
		return best, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &model.GenerationUnavailableError{Provider: s.generator.Name(), Err: fmt.Errorf("no generation attempts made")}
}

// guaranteeMet checks the improvement guarantee on the bias-relevant
// dimensions. On the integer 1-5 scale a margin in (0,1] requires one full
// step; dimensions already at the ceiling count as satisfied.
func guaranteeMet(original, improved model.RubricScores, margin float64) bool {
	step := int(math.Ceil(margin))
	pairs := [][2]int{
		{original.Fairness, improved.Fairness},
		{original.Neutrality, improved.Neutrality},
		{original.Representation, improved.Representation},
	}
	for _, p := range pairs {
		required := minInt(p[0]+step, 5)
		if p[1] < required {
			return false
		}
	}
	return true
}

func suggestionsFor(strat model.Strategy) []string {
	suggestions := promptSuggestions[strat]
	if len(suggestions) == 0 {
		return nil
	}
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
