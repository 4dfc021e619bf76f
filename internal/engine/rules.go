package engine

import (
	"fmt"
	"strings"

	"fairhire360/internal/hashutil"
	"fairhire360/internal/types"
)

// biasRule is one independent detection rule. Rules return nil when they do
// not apply; each returns at most one factor.
type biasRule func(lex *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor

// biasRules is the full battery in evaluation order. The order is part of
// the reproducibility contract: a candidate's factor list is the
// concatenation of every rule that fired, in this sequence.
var biasRules = []biasRule{
	detectNameBias,
	detectAccentBias,
	detectAppearanceBias,
	detectBackgroundBias,
	detectGenderLanguageBias,
	detectInstitutionBias,
	detectResumeLanguageBias,
}

// DetectBiasFactors runs the rule battery for one candidate.
func (e *Engine) DetectBiasFactors(in *CandidateInput, jd *types.JobDescription) []types.BiasFactor {
	lex := e.Lexicon()
	var factors []types.BiasFactor
	for _, rule := range biasRules {
		if f := rule(lex, in, jd); f != nil {
			factors = append(factors, *f)
		}
	}
	return factors
}

// detectNameBias checks the candidate's first name against the severity
// tiers. Containment runs both directions so "Chen" matches "Chenille" and
// "Mo" matches "Mohammed".
func detectNameBias(lex *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	firstName := strings.ToLower(strings.SplitN(in.Name, " ", 2)[0])
	if firstName == "" {
		return nil
	}

	tiers := []struct {
		severity     types.Severity
		names        []string
		contribution int
	}{
		{types.SeverityHigh, lex.HighBiasNames, -12},
		{types.SeverityMedium, lex.MediumBiasNames, -8},
		{types.SeverityLow, lex.LowBiasNames, -4},
	}

	for _, tier := range tiers {
		for _, n := range tier.names {
			listed := strings.ToLower(n)
			if strings.Contains(firstName, listed) || strings.Contains(listed, firstName) {
				return &types.BiasFactor{
					Type:         types.BiasNameProxy,
					Label:        "Name-Based Bias",
					Severity:     tier.severity,
					Contribution: tier.contribution,
					Explanation:  "Statistical analysis suggests the candidate's name may have triggered unconscious bias in ATS scoring algorithms.",
					JDContext:    fmt.Sprintf("Name pattern detected that historically correlates with scoring penalties unrelated to %s requirements.", jd.RoleTitle),
				}
			}
		}
	}
	return nil
}

// detectAccentBias applies only when an audio modality is present.
func detectAccentBias(_ *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if !in.hasModality(types.ModalityAudio) {
		return nil
	}
	if hashutil.Mod(in.Name+"accent", 3) != 0 {
		return nil
	}

	jdRequiresEnglish := false
	for _, l := range jd.LanguageRequirements {
		if strings.Contains(strings.ToLower(l), "english") {
			jdRequiresEnglish = true
			break
		}
	}

	severity := types.SeverityHigh
	contribution := -18
	jdContext := "JD language requirements do not justify accent-based scoring penalties."
	if jdRequiresEnglish {
		severity = types.SeverityMedium
		contribution = -10
		jdContext = fmt.Sprintf("While %s requires English proficiency, accent is not a valid competency indicator.", jd.RoleTitle)
	}

	return &types.BiasFactor{
		Type:         types.BiasAccentPenalty,
		Label:        "Accent-Based Penalty",
		Severity:     severity,
		Contribution: contribution,
		Explanation:  "Non-native accent pattern detected in audio analysis. This was identified as a non-skill factor and corrected.",
		JDContext:    jdContext,
	}
}

func detectAppearanceBias(_ *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if !in.hasModality(types.ModalityVideo) {
		return nil
	}
	if hashutil.Mod(in.Name+"appearance", 4) != 0 {
		return nil
	}
	return &types.BiasFactor{
		Type:         types.BiasAppearance,
		Label:        "Appearance-Related Bias",
		Severity:     types.SeverityLow,
		Contribution: -5,
		Explanation:  "Video analysis detected appearance-correlated scoring factors unrelated to job competency.",
		JDContext:    fmt.Sprintf("%s role does not require specific appearance attributes.", jd.RoleTitle),
	}
}

func detectBackgroundBias(_ *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if !in.hasModality(types.ModalityVideo) {
		return nil
	}
	if hashutil.Mod(in.Name+"background", 5) != 0 {
		return nil
	}
	return &types.BiasFactor{
		Type:         types.BiasBackgroundEnvironment,
		Label:        "Background Environment Bias",
		Severity:     types.SeverityLow,
		Contribution: -4,
		Explanation:  "Interview background and lighting conditions influenced initial scoring unfairly.",
		JDContext:    fmt.Sprintf("Remote interview environment variance is not relevant to %s performance.", jd.RoleTitle),
	}
}

// detectGenderLanguageBias fires on the hash rule or on literal gender-coded
// words in the resume text. A literal hit raises the severity.
func detectGenderLanguageBias(lex *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if !in.hasModality(types.ModalityResume) {
		return nil
	}

	hashTriggered := hashutil.Mod(in.Name+"gender", 4) == 1

	foundPattern := false
	if in.ParsedResume != nil {
		rawLower := strings.ToLower(in.ParsedResume.RawText)
		for _, word := range lex.GenderCodedWords {
			if strings.Contains(rawLower, strings.ToLower(word)) {
				foundPattern = true
				break
			}
		}
	}

	if !hashTriggered && !foundPattern {
		return nil
	}

	severity := types.SeverityLow
	contribution := -5
	if foundPattern {
		severity = types.SeverityMedium
		contribution = -8
	}

	explanation := "Resume contains language patterns historically associated with gender bias in ATS systems."
	if in.ParsedResume != nil {
		explanation = "Resume phrasing contains language patterns historically associated with gender bias in ATS systems."
	}

	return &types.BiasFactor{
		Type:         types.BiasGenderLanguage,
		Label:        "Gender-Coded Language",
		Severity:     severity,
		Contribution: contribution,
		Explanation:  explanation,
		JDContext:    fmt.Sprintf("%s evaluation should focus on skills, not gendered language patterns.", jd.RoleTitle),
	}
}

// detectInstitutionBias penalty-corrects for institutional prestige proxies.
// A parsed non-elite institution raises the severity.
func detectInstitutionBias(lex *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if !in.hasModality(types.ModalityResume) {
		return nil
	}
	if hashutil.Mod(in.Name+"institution", 6) != 0 {
		return nil
	}

	jdContext := fmt.Sprintf("%s requirements focus on skills and experience, not institutional prestige.", jd.RoleTitle)

	if in.ParsedResume != nil && len(in.ParsedResume.Education) > 0 {
		edu := in.ParsedResume.Education[0]
		if !lex.IsEliteInstitution(edu.Institution) {
			return &types.BiasFactor{
				Type:         types.BiasInstitution,
				Label:        "Institution Proxy Bias",
				Severity:     types.SeverityMedium,
				Contribution: -7,
				Explanation:  fmt.Sprintf("Educational institution %q may have influenced scoring beyond skill relevance. Credential verified: %s.", edu.Institution, edu.Degree),
				JDContext:    jdContext,
			}
		}
	}

	return &types.BiasFactor{
		Type:         types.BiasInstitution,
		Label:        "Institution Proxy Bias",
		Severity:     types.SeverityLow,
		Contribution: -5,
		Explanation:  "Educational institution name may have influenced scoring beyond skill relevance.",
		JDContext:    jdContext,
	}
}

// detectResumeLanguageBias flags low-confidence parses and non-English
// language lists as structure bias. Needs a parsed resume to inspect.
func detectResumeLanguageBias(_ *Lexicon, in *CandidateInput, jd *types.JobDescription) *types.BiasFactor {
	if in.ParsedResume == nil {
		return nil
	}

	nonStandardStructure := in.ParsedResume.ParseConfidence < 70

	eslPattern := false
	for _, l := range in.ParsedResume.Languages {
		if l != "English" {
			eslPattern = true
			break
		}
	}

	if !nonStandardStructure && !eslPattern {
		return nil
	}

	return &types.BiasFactor{
		Type:         types.BiasLanguageFluency,
		Label:        "Resume Language Structure Bias",
		Severity:     types.SeverityMedium,
		Contribution: -9,
		Explanation:  "Resume language structure or formatting differs from standard Western templates. This may indicate ESL background or international education, neither of which affects job competency.",
		JDContext:    fmt.Sprintf("%s role should evaluate candidates on skill merit, not resume formatting conventions.", jd.RoleTitle),
	}
}
