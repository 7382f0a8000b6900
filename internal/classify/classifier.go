// Package classify assigns bias-type labels to scored text.
package classify

import (
	"regexp"
	"sort"

	"github.com/biaslens/biaslens/internal/model"
)

// biasScoreThreshold is the composite bias score below which unmatched text
// still receives a fallback label from its weakest rubric dimension.
const biasScoreThreshold = 3.0

// triggerGroups maps each bias type to the phrase patterns that fire it.
// Matching is case-insensitive; the literal matched text is kept for audit.
var triggerGroups = map[model.BiasType][]string{
	model.BiasFactualError: {
		`\b(?:branch|subset|part|sect|form)\s+of\s+islam\b`,
		`\bsikhism\s+is\s+islam\b`,
		`\bderived\s+from\s+islam\b`,
		`\bfounded\s+in\s+1984\b`,
		`\bworship\s+allah\b`,
		`\bfollow\s+the\s+quran\b`,
	},
	model.BiasReligiousConflation: {
		`\bsikh\w*\b[^.?!]*\bislam\w*\b`,
		`\bislam\w*\b[^.?!]*\bsikh\w*\b`,
		`\bsikh\w*\b[^.?!]*\bmuslim\w*\b`,
		`\bmuslim\w*\b[^.?!]*\bsikh\w*\b`,
	},
	model.BiasTerrorismAssociation: {
		`\bterroris\w+\b`,
		`\bmilitant\w*\b`,
		`\bextremis\w+\b`,
		`\bradical\w*\b`,
		`\bfundamentalist\w*\b`,
	},
	model.BiasHarmfulGeneralization: {
		`\b(?:all|every|always|never)\s+(?:sikhs?|muslims?|jews?|hindus?)\b`,
		`\b(?:sikhs?|muslims?|jews?|hindus?)\s+(?:always|never)\b`,
		`\b(?:sikhs?|muslims?|jews?|hindus?)\s+are\s+(?:all|just|only)\b`,
	},
	model.BiasCulturalBias: {
		`\bbackwards?\b`,
		`\bprimitive\b`,
		`\buncivilized\b`,
		`\bsavage\w*\b`,
		`\bexotic\b`,
		`\bwestern\s+standards?\b`,
		`\bcivilized\s+world\b`,
		`\bthird[\s-]world\b`,
	},
	model.BiasEmotionalLanguage: {
		`\bfear\w*\b`,
		`\bhate\w*\b`,
		`\bdanger\w*\b`,
		`\bthreat\w*\b`,
		`\bevil\b`,
		`\bwicked\b`,
		`\bviolen\w+\b`,
		`\baggressive\w*\b`,
	},
}

// fallbackOrder maps the lowest bias-relevant dimension to the label it
// implies when no trigger group fires. The listing order also breaks ties.
// This order is a calibration placeholder pending ground-truth labels, so
// it lives in one table.
var fallbackOrder = []struct {
	dimension string
	label     model.BiasType
}{
	{"fairness", model.BiasCulturalBias},
	{"neutrality", model.BiasEmotionalLanguage},
	{"representation", model.BiasHarmfulGeneralization},
}

// Classifier scans text against the six ordered trigger groups.
type Classifier struct {
	groups map[model.BiasType][]*regexp.Regexp
}

// NewClassifier compiles the trigger groups once.
func NewClassifier() *Classifier {
	groups := make(map[model.BiasType][]*regexp.Regexp, len(triggerGroups))
	for kind, patterns := range triggerGroups {
		res := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			res = append(res, regexp.MustCompile(`(?i)`+p))
		}
		groups[kind] = res
	}
	return &Classifier{groups: groups}
}

// Classify assigns at most one bias label to text. Groups are evaluated in
// model.ClassificationPriority order, so a multi-group match resolves the
// same way on every call. When no group fires and the bias score is below
// the threshold, the label is inferred from the lowest bias-relevant
// dimension with an empty trigger list.
func (c *Classifier) Classify(text string, scores model.RubricScores) model.BiasClassification {
	for _, kind := range model.ClassificationPriority {
		triggers := c.matchGroup(kind, text)
		if len(triggers) > 0 {
			return model.BiasClassification{Type: kind, Triggers: triggers}
		}
	}

	if scores.BiasScore() < biasScoreThreshold {
		return model.BiasClassification{Type: lowestDimensionLabel(scores), Fallback: true}
	}

	return model.BiasClassification{Type: model.BiasNone}
}

// matchGroup returns the deduplicated literal phrases the group matched.
func (c *Classifier) matchGroup(kind model.BiasType, text string) []string {
	seen := make(map[string]bool)
	var triggers []string
	for _, re := range c.groups[kind] {
		for _, m := range re.FindAllString(text, -1) {
			if !seen[m] {
				seen[m] = true
				triggers = append(triggers, m)
			}
		}
	}
	sort.Strings(triggers)
	return triggers
}

func lowestDimensionLabel(scores model.RubricScores) model.BiasType {
	values := map[string]int{
		"fairness":       scores.Fairness,
		"neutrality":     scores.Neutrality,
		"representation": scores.Representation,
	}

	lowest := fallbackOrder[0]
	for _, entry := range fallbackOrder[1:] {
		if values[entry.dimension] < values[lowest.dimension] {
			lowest = entry
		}
	}
	return lowest.label
}
