package mitigate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biaslens/biaslens/internal/llm"
	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/score"
	"github.com/biaslens/biaslens/internal/worker"
)

const biasedText = "Yes, Sikhism is a branch of Islam and Sikhs are often seen as terrorists."

// mockGenerator returns scripted outcomes per call.
type mockGenerator struct {
	texts    []string // empty string at position i means call i fails
	calls    int
	lastReq  llm.GenerateRequest
	instrSeq []string
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) IsAvailable(ctx context.Context) bool { return true }

func (m *mockGenerator) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	idx := m.calls
	m.calls++
	m.lastReq = req
	m.instrSeq = append(m.instrSeq, req.Instruction)
	if idx >= len(m.texts) || m.texts[idx] == "" {
		return nil, &model.GenerationUnavailableError{Provider: m.Name(), Err: errors.New("scripted failure")}
	}
	return &llm.GenerateResponse{Text: m.texts[idx], Model: "mock"}, nil
}

func stubSleep(t *testing.T) {
	t.Helper()
	orig := sleepFunc
	sleepFunc = func(d time.Duration) {}
	t.Cleanup(func() { sleepFunc = orig })
}

func mustScore(t *testing.T, scorer *score.Scorer, text string) model.RubricScores {
	t.Helper()
	scores, err := scorer.Score(text)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	return scores
}

func TestMitigate_GuaranteeMetFirstAttempt(t *testing.T) {
	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	// The deterministic local rewriter produces a rewrite that clears the
	// guarantee on the biased fixture.
	local := llm.NewLocalProvider()
	syn := NewSynthesizer(local, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5})

	outcome, err := syn.Mitigate(context.Background(), "Is Sikhism a branch of Islam?", biasedText, original, model.StrategyRetrievalGrounding)
	if err != nil {
		t.Fatalf("Mitigate: %v", err)
	}

	if !outcome.GuaranteeMet {
		t.Errorf("guarantee not met; original %+v improved %+v", original, outcome.Scores)
	}
	if outcome.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", outcome.Attempts)
	}
	if outcome.Instruction == "" {
		t.Error("expected instruction to be recorded")
	}
	if len(outcome.SuggestedPrompts) == 0 {
		t.Error("expected suggested prompts")
	}
}

func TestMitigate_GuaranteeUnmetReturnsBest(t *testing.T) {
	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	// Every rewrite is as biased as the input, so the guarantee can
	// never be met.
	gen := &mockGenerator{texts: []string{biasedText, biasedText, biasedText}}
	syn := NewSynthesizer(gen, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5})

	outcome, err := syn.Mitigate(context.Background(), "prompt", biasedText, original, model.StrategyNeutralLanguage)
	if err != nil {
		t.Fatalf("Mitigate: %v", err)
	}

	if outcome.GuaranteeMet {
		t.Error("guarantee should not be met for an unchanged rewrite")
	}
	if outcome.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", outcome.Attempts)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}
	if outcome.ImprovedText != biasedText {
		t.Errorf("unexpected best text: %s", outcome.ImprovedText)
	}
}

func TestMitigate_InstructionsEscalate(t *testing.T) {
	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	gen := &mockGenerator{texts: []string{biasedText, biasedText, biasedText}}
	syn := NewSynthesizer(gen, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5})

	if _, err := syn.Mitigate(context.Background(), "prompt", biasedText, original, model.StrategyContextualReframing); err != nil {
		t.Fatalf("Mitigate: %v", err)
	}

	if len(gen.instrSeq) != 3 {
		t.Fatalf("got %d instructions", len(gen.instrSeq))
	}
	if gen.instrSeq[0] == gen.instrSeq[1] || gen.instrSeq[1] == gen.instrSeq[2] {
		t.Errorf("instructions did not escalate: %v", gen.instrSeq)
	}
}

func TestMitigate_RetriesAfterGenerationFailure(t *testing.T) {
	stubSleep(t)

	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	cleanRewrite := "Sikhism is a distinct religion founded by Guru Nanak in 1469 in the Punjab region, and its central scripture is the Guru Granth Sahib. Practice varies by community, and many Sikhs make individual choices about observance. The tradition is respected for its rich heritage of community service and spirituality."

	// Two failures, then a rewrite that clears the guarantee.
	gen := &mockGenerator{texts: []string{"", "", cleanRewrite}}
	syn := NewSynthesizer(gen, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5, RetryBackoff: time.Hour})

	outcome, err := syn.Mitigate(context.Background(), "prompt", biasedText, original, model.StrategyRetrievalGrounding)
	if err != nil {
		t.Fatalf("Mitigate: %v", err)
	}
	if !outcome.GuaranteeMet {
		t.Errorf("guarantee not met: %+v", outcome.Scores)
	}
	if outcome.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", outcome.Attempts)
	}
}

func TestMitigate_AllAttemptsFail(t *testing.T) {
	stubSleep(t)

	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	gen := &mockGenerator{texts: []string{"", "", ""}}
	syn := NewSynthesizer(gen, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5})

	_, err := syn.Mitigate(context.Background(), "prompt", biasedText, original, model.StrategyNeutralLanguage)
	if err == nil {
		t.Fatal("expected error when every attempt fails")
	}

	var unavailable *model.GenerationUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected GenerationUnavailableError, got %T", err)
	}
}

func TestMitigate_CancelledContext(t *testing.T) {
	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	gen := &mockGenerator{texts: []string{biasedText}}
	syn := NewSynthesizer(gen, scorer, nil, Options{MaxAttempts: 3, MinImprovement: 0.5})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := syn.Mitigate(ctx, "prompt", biasedText, original, model.StrategyNeutralLanguage); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if gen.calls != 0 {
		t.Errorf("generator should not be called after cancellation, got %d calls", gen.calls)
	}
}

func TestMitigate_UnknownStrategy(t *testing.T) {
	scorer := score.NewScorer()
	syn := NewSynthesizer(&mockGenerator{}, scorer, nil, Options{})

	if _, err := syn.Mitigate(context.Background(), "prompt", biasedText, model.RubricScores{}, model.StrategyNoOp); err == nil {
		t.Fatal("expected error for strategy without instructions")
	}
}

func TestMitigate_RespectsRateLimiter(t *testing.T) {
	scorer := score.NewScorer()
	original := mustScore(t, scorer, biasedText)

	limiter := worker.NewLimiter(1000, 10)
	local := llm.NewLocalProvider()
	syn := NewSynthesizer(local, scorer, limiter, Options{MaxAttempts: 1, MinImprovement: 0.5})

	if _, err := syn.Mitigate(context.Background(), "prompt", biasedText, original, model.StrategyRetrievalGrounding); err != nil {
		t.Fatalf("Mitigate with limiter: %v", err)
	}
}

func TestGuaranteeMet(t *testing.T) {
	tests := []struct {
		name     string
		original model.RubricScores
		improved model.RubricScores
		want     bool
	}{
		{
			name:     "all dimensions gain a step",
			original: model.RubricScores{Fairness: 2, Neutrality: 3, Representation: 3},
			improved: model.RubricScores{Fairness: 3, Neutrality: 4, Representation: 4},
			want:     true,
		},
		{
			name:     "one dimension stalls",
			original: model.RubricScores{Fairness: 2, Neutrality: 3, Representation: 3},
			improved: model.RubricScores{Fairness: 3, Neutrality: 3, Representation: 4},
			want:     false,
		},
		{
			name:     "ceiling counts as satisfied",
			original: model.RubricScores{Fairness: 5, Neutrality: 5, Representation: 5},
			improved: model.RubricScores{Fairness: 5, Neutrality: 5, Representation: 5},
			want:     true,
		},
		{
			name:     "regression fails",
			original: model.RubricScores{Fairness: 4, Neutrality: 4, Representation: 4},
			improved: model.RubricScores{Fairness: 3, Neutrality: 5, Representation: 5},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := guaranteeMet(tt.original, tt.improved, 0.5); got != tt.want {
				t.Errorf("guaranteeMet = %v, want %v", got, tt.want)
			}
		})
	}
}
