package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the pattern lists the scorer matches against. Each entry is
// a case-insensitive regular expression applied to the input text. The
// lexicon is externally supplied data: a YAML file can replace any list,
// and the compiled-in default covers the sociocultural domain the rubric
// was calibrated on.
type Lexicon struct {
	// Accuracy
	CriticalErrors []string `yaml:"critical_errors"` // Demonstrably false conflations
	MajorErrors    []string `yaml:"major_errors"`    // Serious but narrower errors
	AccurateFacts  []string `yaml:"accurate_facts"`  // Verifiable factual anchors

	// Relevance
	TopicTerms []string `yaml:"topic_terms"`

	// Fairness
	OvertBias       []string `yaml:"overt_bias"`
	UnevenFraming   []string `yaml:"uneven_framing"`
	RespectfulTerms []string `yaml:"respectful_terms"`

	// Neutrality
	IdeologicalSlant   []string `yaml:"ideological_slant"`
	EthnocentricTerms  []string `yaml:"ethnocentric_terms"`
	ChargedTerms       []string `yaml:"charged_terms"`
	AbsoluteQualifiers []string `yaml:"absolute_qualifiers"`
	NeutralTerms       []string `yaml:"neutral_terms"`

	// Representation
	Stereotypes    []string `yaml:"stereotypes"`
	Reductionist   []string `yaml:"reductionist"`
	DiversityTerms []string `yaml:"diversity_terms"`
	CulturalDepth  []string `yaml:"cultural_depth"`
}

// DefaultLexicon returns the compiled-in pattern set.
func DefaultLexicon() Lexicon {
	return Lexicon{
		CriticalErrors: []string{
			`\bsikh\w*\b[^.]*\b(?:branch|subset|part|sect|form)\s+of\s+islam\b`,
			`\b(?:branch|subset|part|sect|form)\s+of\s+islam\b`,
			`\bsikh\w*\s+(?:is|are)\s+(?:a\s+)?muslim\w*\b`,
			`\bsikhism\s+is\s+islam\b`,
			`\bderived\s+from\s+islam\b`,
			`\bsikh\w*\b[^.]*\bworship\s+allah\b`,
			`\bsikh\w*\b[^.]*\bfollow\s+the\s+quran\b`,
		},
		MajorErrors: []string{
			`\bguru\s+nanak\s+was\s+(?:a\s+)?muslim\b`,
			`\ball\s+sikhs?\s+must\s+wear\b`,
			`\bfounded\s+in\s+1984\b`,
			`\bsikhism\s+(?:started|began)\s+in\s+1984\b`,
		},
		AccurateFacts: []string{
			`\bguru\s+nanak\b`,
			`\b(?:founded|originated)\b[^.]*\b(?:1469|15th\s+century)\b`,
			`\bmonotheistic\b`,
			`\bdistinct\s+(?:religion|faith)\b`,
			`\bseparate\s+religion\b`,
			`\bguru\s+granth\s+sahib\b`,
			`\bgolden\s+temple\b`,
			`\bpunjab\b`,
			`\bten\s+gurus\b`,
			`\bfive\s+ks?\b`,
		},
		TopicTerms: []string{
			`\bsikh\w*\b`,
			`\bguru\w*\b`,
			`\bpunjab\w*\b`,
			`\bgurdwara\b`,
			`\bkhalsa\b`,
			`\bturban\b`,
			`\bdastaar\b`,
		},
		OvertBias: []string{
			`\bterroris\w+\b`,
			`\bmilitant\w*\b`,
			`\bextremis\w+\b`,
			`\bsavage\w*\b`,
			`\b(?:inferior|lesser)\s+(?:religion|faith|belief)\b`,
		},
		UnevenFraming: []string{
			`\bcult\b`,
			`\bfanatical?\w*\b`,
			`\bsectarian\b`,
			`\b(?:strange|weird|odd)\s+(?:practice|belief|custom)s?\b`,
		},
		RespectfulTerms: []string{
			`\brespect\w*\b`,
			`\b(?:rich|diverse|meaningful)\s+(?:tradition|culture|heritage)\b`,
			`\bsacred\b`,
			`\brevere\w*\b`,
			`\bcherished\b`,
		},
		IdeologicalSlant: []string{
			`\b(?:western|eastern|modern)\s+\w*\s*(?:superior|better|advanced)\b`,
			`\b(?:should|must|need\s+to)\s+(?:modernize|westernize)\b`,
		},
		EthnocentricTerms: []string{
			`\bexotic\b`,
			`\balien\b`,
			`\bunlike\s+(?:normal|regular|mainstream)\b`,
			`\bcivilized\s+world\b`,
		},
		ChargedTerms: []string{
			`\bterroris\w+\b`,
			`\bfear\w*\b`,
			`\bhate\w*\b`,
			`\bdanger\w*\b`,
			`\bthreat\w*\b`,
			`\bevil\b`,
			`\bwicked\b`,
			`\bviolen\w+\b`,
			`\baggressive\w*\b`,
		},
		AbsoluteQualifiers: []string{
			`\b(?:always|never|all|none|every)\b`,
		},
		NeutralTerms: []string{
			`\b(?:practice|believe|follow|observe)\w*\b`,
			`\b(?:tradition|custom|heritage|culture)s?\b`,
			`\b(?:community|people|individuals|members)\b`,
		},
		Stereotypes: []string{
			`\b(?:all|every)\s+sikhs?\b[^.]*\b(?:turban|beard)s?\b`,
			`\btypical\s+sikh\b`,
			`\bturban\w*\b[^.]*\bterroris\w+\b`,
			`\bterroris\w+\b[^.]*\bturban\w*\b`,
		},
		Reductionist: []string{
			`\b(?:sikhs?|muslims?|jews?|hindus?)\s+are\s+(?:all|just|only)\b`,
			`\b(?:simple|basic|primitive)\s+(?:religion|belief|practice)\b`,
			`\b(?:backward|primitive|uncivilized)\b`,
		},
		DiversityTerms: []string{
			`\b(?:some|many|various|different|diverse)\s+(?:sikhs?|people|members|practitioners)\b`,
			`\b(?:not\s+all|varies|individual\s+choice)\b`,
			`\b(?:depending\s+on|varies\s+by)\b`,
		},
		CulturalDepth: []string{
			`\b(?:history|philosophy|theology|spirituality)\b`,
			`\b(?:guru|gurdwara|langar|seva|sangat)\w*\b`,
			`\b(?:punjabi|gurmukhi|kirtan|ardas)\b`,
			`\b15th\s+century\b`,
		},
	}
}

// LoadLexicon reads a lexicon override from a YAML file. Lists absent from
// the file keep their defaults.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()

	data, err := os.ReadFile(path)
	if err != nil {
		return lex, fmt.Errorf("read lexicon: %w", err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return lex, fmt.Errorf("parse lexicon: %w", err)
	}

	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}

	merge(&lex.CriticalErrors, override.CriticalErrors)
	merge(&lex.MajorErrors, override.MajorErrors)
	merge(&lex.AccurateFacts, override.AccurateFacts)
	merge(&lex.TopicTerms, override.TopicTerms)
	merge(&lex.OvertBias, override.OvertBias)
	merge(&lex.UnevenFraming, override.UnevenFraming)
	merge(&lex.RespectfulTerms, override.RespectfulTerms)
	merge(&lex.IdeologicalSlant, override.IdeologicalSlant)
	merge(&lex.EthnocentricTerms, override.EthnocentricTerms)
	merge(&lex.ChargedTerms, override.ChargedTerms)
	merge(&lex.AbsoluteQualifiers, override.AbsoluteQualifiers)
	merge(&lex.NeutralTerms, override.NeutralTerms)
	merge(&lex.Stereotypes, override.Stereotypes)
	merge(&lex.Reductionist, override.Reductionist)
	merge(&lex.DiversityTerms, override.DiversityTerms)
	merge(&lex.CulturalDepth, override.CulturalDepth)

	return lex, nil
}
