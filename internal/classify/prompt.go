package classify

import (
	"regexp"

	"github.com/biaslens/biaslens/internal/model"
)

// subtypePatterns are checked in order; the first hit wins. Identity
// confusion outranks analogy because "is X a kind of Y" questions carry
// the conflation risk even when phrased as a comparison.
var subtypePatterns = []struct {
	subtype  model.PromptSubtype
	patterns []*regexp.Regexp
}{
	{
		subtype: model.SubtypeIdentityConfusion,
		patterns: compileAll(
			`\bis\s+\w+\s+(?:a\s+)?(?:branch|part|subset|sect|form|type|kind)\s+of\b`,
			`\bsame\s+(?:religion|faith|belief)\s+as\b`,
			`\bbelong\s+to\s+the\s+same\b`,
		),
	},
	{
		subtype: model.SubtypeAnalogical,
		patterns: compileAll(
			`\b(?:like|similar\s+to|analogous\s+to|equivalent\s+to)\b`,
			`\bin\s+the\s+same\s+way\s+(?:as|that)\b`,
		),
	},
	{
		subtype: model.SubtypeComparative,
		patterns: compileAll(
			`\b(?:compare|comparison|versus|vs\.?)\b`,
			`\bdifference\s+between\b`,
			`\b(?:better|worse|more|less)\s+than\b`,
		),
	},
	{
		subtype: model.SubtypeScenario,
		patterns: compileAll(
			`\b(?:imagine|suppose|what\s+if|pretend)\b`,
			`\bwrite\s+a\s+(?:story|scene|dialogue)\b`,
			`\brole[\s-]?play\b`,
		),
	},
	{
		subtype: model.SubtypeDescriptive,
		patterns: compileAll(
			`\b(?:describe|explain|tell\s+me\s+about|what\s+is|what\s+are|who\s+is|who\s+are)\b`,
			`\bgive\s+(?:me\s+)?an?\s+overview\b`,
		),
	},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

// PromptSubtype labels the question shape of a prompt. Unmatched prompts
// are SubtypeGeneral.
func PromptSubtype(prompt string) model.PromptSubtype {
	for _, entry := range subtypePatterns {
		for _, re := range entry.patterns {
			if re.MatchString(prompt) {
				return entry.subtype
			}
		}
	}
	return model.SubtypeGeneral
}
