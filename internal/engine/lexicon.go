package engine

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"fairhire360/internal/errors"
)

// Lexicon holds the word lists and patterns the detection rules consult.
// The compiled-in defaults reproduce the published demo scenarios exactly;
// deployments can override individual lists from a YAML file.
type Lexicon struct {
	// Name tiers checked by the name-proxy rule, most severe first.
	HighBiasNames   []string `yaml:"high_bias_names"`
	MediumBiasNames []string `yaml:"medium_bias_names"`
	LowBiasNames    []string `yaml:"low_bias_names"`

	// Words the gender-language rule treats as literal evidence.
	GenderCodedWords []string `yaml:"gender_coded_words"`

	// Institution names the institution rule treats as "brand name" schools.
	EliteInstitutions []string `yaml:"elite_institutions"`

	// Fairness summary templates for candidates with detected factors.
	// Selected by hash(name) modulo the template count. Placeholders:
	// %s role title, %d factor count, %s top factor label, %+d correction.
	FairnessTemplates []string `yaml:"fairness_templates"`

	eliteRe *regexp.Regexp
}

// DefaultLexicon returns the compiled-in rule lists.
func DefaultLexicon() *Lexicon {
	lex := &Lexicon{
		HighBiasNames:   []string{"Priya", "Fatima", "Nguyen", "Mohammed", "Lakshmi", "Xiao", "Dmitri"},
		MediumBiasNames: []string{"Maria", "Carlos", "Ahmed", "Wei", "Yuki", "Aisha"},
		LowBiasNames:    []string{"Chen", "Kim", "Singh", "Park", "Lee", "Garcia"},
		GenderCodedWords: []string{
			"assertive", "aggressive", "collaborative", "nurturing", "competitive", "supportive",
		},
		EliteInstitutions: []string{
			"stanford", "mit", "harvard", "yale", "princeton", "berkeley", "cambridge", "oxford",
		},
		FairnessTemplates: []string{
			"Fairness analysis for %s identified %d bias factor(s). Primary correction: %s (%+d points). Adjusted score reflects skill-based evaluation aligned with role requirements.",
			"Evaluation for %s surfaced %d correctable signal(s), led by %s (%+d points). The adjusted score removes non-skill influences from the assessment.",
			"%s screening applied %d correction(s). Largest single adjustment: %s (%+d points). Remaining score is driven by demonstrated skills and experience.",
		},
	}
	if err := lex.compile(); err != nil {
		panic(err)
	}
	return lex
}

// LoadLexicon reads YAML overrides from path on top of the defaults. Lists
// absent from the file keep their default contents.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"failed to read lexicon file", err).WithContext("path", path)
	}

	lex := DefaultLexicon()
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to parse lexicon file", err).WithContext("path", path)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	if err := lex.compile(); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"failed to compile lexicon patterns", err).WithContext("path", path)
	}
	return lex, nil
}

// Validate checks that every list a rule depends on is non-empty.
func (l *Lexicon) Validate() error {
	checks := []struct {
		name string
		n    int
	}{
		{"high_bias_names", len(l.HighBiasNames)},
		{"medium_bias_names", len(l.MediumBiasNames)},
		{"low_bias_names", len(l.LowBiasNames)},
		{"gender_coded_words", len(l.GenderCodedWords)},
		{"elite_institutions", len(l.EliteInstitutions)},
		{"fairness_templates", len(l.FairnessTemplates)},
	}
	for _, c := range checks {
		if c.n == 0 {
			return errors.NewConfigError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("lexicon list %s must not be empty", c.name), nil)
		}
	}
	return nil
}

func (l *Lexicon) compile() error {
	parts := make([]string, len(l.EliteInstitutions))
	for i, inst := range l.EliteInstitutions {
		parts[i] = regexp.QuoteMeta(strings.ToLower(inst))
	}
	re, err := regexp.Compile(`(?i)(` + strings.Join(parts, "|") + `)`)
	if err != nil {
		return err
	}
	l.eliteRe = re
	return nil
}

// IsEliteInstitution reports whether the institution name matches one of the
// configured "brand name" schools.
func (l *Lexicon) IsEliteInstitution(institution string) bool {
	return l.eliteRe.MatchString(institution)
}
