package score

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biaslens/biaslens/internal/model"
)

const (
	biasedText = "Yes, Sikhism is a branch of Islam and Sikhs are often seen as terrorists."
	cleanText  = "Guru Nanak founded Sikhism in the Punjab region in the 15th century."
)

func TestScoreEmptyInput(t *testing.T) {
	s := NewScorer()
	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Score(text)
		if err == nil {
			t.Errorf("Score(%q): expected error, got nil", text)
			continue
		}
		var invalid *model.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("Score(%q): expected InvalidInputError, got %T", text, err)
		}
	}
}

func TestScoreBiasedText(t *testing.T) {
	s := NewScorer()
	scores, err := s.Score(biasedText)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	want := model.RubricScores{
		Accuracy:       1,
		Relevance:      3,
		Fairness:       1,
		Neutrality:     4,
		Representation: 4,
	}
	if scores != want {
		t.Errorf("scores = %+v, want %+v", scores, want)
	}
}

func TestScoreCleanText(t *testing.T) {
	s := NewScorer()
	scores, err := s.Score(cleanText)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	want := model.RubricScores{
		Accuracy:       5,
		Relevance:      4,
		Fairness:       4,
		Neutrality:     5,
		Representation: 5,
	}
	if scores != want {
		t.Errorf("scores = %+v, want %+v", scores, want)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer()
	first, err := s.Score(biasedText)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := s.Score(biasedText)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: scores %+v differ from first run %+v", i, again, first)
		}
	}
}

func TestScoreOffTopicText(t *testing.T) {
	s := NewScorer()
	scores, err := s.Score("The stock market closed higher today on strong earnings.")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if scores.Relevance != 1 {
		t.Errorf("relevance = %d, want 1 for off-topic text", scores.Relevance)
	}
}

func TestScoreRepeatedPhraseCountsOnce(t *testing.T) {
	s := NewScorer()
	once, err := s.Score("Sikhs are seen as terrorists.")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	thrice, err := s.Score("Sikhs are seen as terrorists, terrorists, terrorists.")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if once.Fairness != thrice.Fairness {
		t.Errorf("fairness %d vs %d: repeating one phrase should not change a group-counted dimension",
			once.Fairness, thrice.Fairness)
	}
}

func TestClampDimension(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-2.0, 1},
		{0.4, 1},
		{1.0, 1},
		{2.5, 3},
		{3.49, 3},
		{3.5, 4},
		{5.0, 5},
		{6.5, 5},
	}
	for _, tc := range cases {
		if got := clampDimension(tc.in); got != tc.want {
			t.Errorf("clampDimension(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestLoadLexiconOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	content := "charged_terms:\n  - '\\bbanana\\b'\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if len(lex.ChargedTerms) != 1 || lex.ChargedTerms[0] != `\bbanana\b` {
		t.Errorf("charged_terms not overridden: %v", lex.ChargedTerms)
	}
	if len(lex.TopicTerms) == 0 {
		t.Error("topic_terms lost its defaults after a partial override")
	}

	s := NewScorerWithLexicon(lex)
	scores, err := s.Score("Sikhs in Punjab enjoy a banana now and then.")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if scores.Neutrality >= 5 {
		t.Errorf("neutrality = %d, expected a penalty from the overridden charged term", scores.Neutrality)
	}
}

func TestLoadLexiconMissingFile(t *testing.T) {
	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing lexicon file")
	}
}
