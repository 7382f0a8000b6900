package score

import (
	"math"
	"regexp"
	"strings"

	"github.com/biaslens/biaslens/internal/model"
)

// Dimension baselines, per the calibration table. Unmitigated biased text
// lands well below these; mitigated text lands at or above them.
const (
	baselineAccuracy       = 4.0
	baselineRelevance      = 4.0
	baselineFairness       = 3.5
	baselineNeutrality     = 4.5
	baselineRepresentation = 5.0
)

// Scorer evaluates text against the five-dimension rubric. It is
// deterministic and pure with respect to its configured lexicon.
type Scorer struct {
	criticalErrors []*regexp.Regexp
	majorErrors    []*regexp.Regexp
	accurateFacts  []*regexp.Regexp

	topicTerms []*regexp.Regexp

	overtBias       []*regexp.Regexp
	unevenFraming   []*regexp.Regexp
	respectfulTerms []*regexp.Regexp

	ideologicalSlant   []*regexp.Regexp
	ethnocentricTerms  []*regexp.Regexp
	chargedTerms       []*regexp.Regexp
	absoluteQualifiers []*regexp.Regexp
	neutralTerms       []*regexp.Regexp

	stereotypes    []*regexp.Regexp
	reductionist   []*regexp.Regexp
	diversityTerms []*regexp.Regexp
	culturalDepth  []*regexp.Regexp
}

// NewScorer creates a scorer with the compiled-in lexicon.
func NewScorer() *Scorer {
	return NewScorerWithLexicon(DefaultLexicon())
}

// NewScorerWithLexicon creates a scorer from an externally supplied lexicon.
func NewScorerWithLexicon(lex Lexicon) *Scorer {
	return &Scorer{
		criticalErrors:     compile(lex.CriticalErrors),
		majorErrors:        compile(lex.MajorErrors),
		accurateFacts:      compile(lex.AccurateFacts),
		topicTerms:         compile(lex.TopicTerms),
		overtBias:          compile(lex.OvertBias),
		unevenFraming:      compile(lex.UnevenFraming),
		respectfulTerms:    compile(lex.RespectfulTerms),
		ideologicalSlant:   compile(lex.IdeologicalSlant),
		ethnocentricTerms:  compile(lex.EthnocentricTerms),
		chargedTerms:       compile(lex.ChargedTerms),
		absoluteQualifiers: compile(lex.AbsoluteQualifiers),
		neutralTerms:       compile(lex.NeutralTerms),
		stereotypes:        compile(lex.Stereotypes),
		reductionist:       compile(lex.Reductionist),
		diversityTerms:     compile(lex.DiversityTerms),
		culturalDepth:      compile(lex.CulturalDepth),
	}
}

func compile(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

// Score evaluates text on all five dimensions. Each dimension starts from
// its baseline, moves by fixed increments per matched pattern group, and is
// clamped into the closed integer range [1,5].
func (s *Scorer) Score(text string) (model.RubricScores, error) {
	if strings.TrimSpace(text) == "" {
		return model.RubricScores{}, &model.InvalidInputError{Reason: "empty text"}
	}

	return model.RubricScores{
		Accuracy:       clampDimension(s.scoreAccuracy(text)),
		Relevance:      clampDimension(s.scoreRelevance(text)),
		Fairness:       clampDimension(s.scoreFairness(text)),
		Neutrality:     clampDimension(s.scoreNeutrality(text)),
		Representation: clampDimension(s.scoreRepresentation(text)),
	}, nil
}

func (s *Scorer) scoreAccuracy(text string) float64 {
	v := baselineAccuracy
	v -= 3.0 * float64(countGroups(s.criticalErrors, text))
	v -= 1.5 * float64(countGroups(s.majorErrors, text))
	v += 0.5 * float64(countGroups(s.accurateFacts, text))
	return v
}

func (s *Scorer) scoreRelevance(text string) float64 {
	v := baselineRelevance
	topical := countGroups(s.topicTerms, text)
	switch {
	case topical == 0:
		v -= 3.0
	case topical == 1:
		v -= 1.0
	case topical >= 3 && len(text) > 200:
		v += 1.0
	}
	return v
}

func (s *Scorer) scoreFairness(text string) float64 {
	v := baselineFairness
	v -= 2.5 * float64(countGroups(s.overtBias, text))
	v -= 1.5 * float64(countGroups(s.unevenFraming, text))
	v += 0.75 * float64(minInt(countGroups(s.respectfulTerms, text), 2))
	return v
}

func (s *Scorer) scoreNeutrality(text string) float64 {
	v := baselineNeutrality
	v -= 3.0 * float64(countGroups(s.ideologicalSlant, text))
	v -= 2.0 * float64(countGroups(s.ethnocentricTerms, text))
	v -= 1.0 * float64(countGroups(s.chargedTerms, text))
	v -= 0.5 * float64(countOccurrences(s.absoluteQualifiers, text))
	v += 0.25 * float64(minInt(countGroups(s.neutralTerms, text), 3))
	return v
}

func (s *Scorer) scoreRepresentation(text string) float64 {
	v := baselineRepresentation
	v -= 3.0 * float64(countGroups(s.stereotypes, text))
	v -= 1.5 * float64(countGroups(s.reductionist, text))

	// Shallow portrayals: no diversity acknowledgment and no cultural depth.
	if countGroups(s.diversityTerms, text) == 0 && countGroups(s.culturalDepth, text) == 0 {
		v -= 1.5
	}
	return v
}

// countGroups counts how many patterns match at least once. Counting at the
// group level keeps a single repeated phrase from dominating a dimension.
func countGroups(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// countOccurrences counts every match across all patterns.
func countOccurrences(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllString(text, -1))
	}
	return n
}

// clampDimension rounds to the nearest integer (ties round up) and clamps
// into [1,5].
func clampDimension(v float64) int {
	n := int(math.Floor(v + 0.5))
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
