package engine

import (
	"fmt"
	"strings"

	"fairhire360/internal/hashutil"
	"fairhire360/internal/types"
)

// buildExplanations produces the correction audit trail: one entry per bias
// factor followed by the skills-alignment confirmation.
func buildExplanations(factors []types.BiasFactor, jd *types.JobDescription) []types.CandidateExplanation {
	explanations := make([]types.CandidateExplanation, 0, len(factors)+1)

	for _, f := range factors {
		explanations = append(explanations, types.CandidateExplanation{
			Type:        types.ExplanationCorrection,
			Title:       f.Label + " Corrected",
			Description: f.Explanation,
			Impact:      abs(f.Contribution),
		})
	}

	explanations = append(explanations, types.CandidateExplanation{
		Type:        types.ExplanationInfo,
		Title:       "Skills Alignment Confirmed",
		Description: fmt.Sprintf("Technical skills and experience remain the primary contributors to the adjusted score for %s.", jd.RoleTitle),
		Impact:      0,
	})

	return explanations
}

// reviewWarning is prepended to a flagged candidate's explanation list.
func reviewWarning() types.CandidateExplanation {
	return types.CandidateExplanation{
		Type:        types.ExplanationWarning,
		Title:       "Low Confidence — Human Review Required",
		Description: "Conflicting or ambiguous bias signals detected. System confidence is below threshold for automated correction.",
		Impact:      0,
	}
}

// resumeInsights summarizes extraction and skill-match counts for candidates
// that arrived with parsed resume data.
func resumeInsights(in *CandidateInput, jd *types.JobDescription) []types.CandidateExplanation {
	if in.ParsedResume == nil || in.JDMatchResult == nil {
		return nil
	}

	insights := []types.CandidateExplanation{{
		Type:  types.ExplanationInfo,
		Title: "Resume Parsed Successfully",
		Description: fmt.Sprintf("Extracted %d skills, %d experience entries, and %d education credentials from uploaded resume.",
			len(in.ParsedResume.Skills), len(in.ParsedResume.Experience), len(in.ParsedResume.Education)),
		Impact: 0,
	}}

	if len(in.JDMatchResult.MatchedSkills) > 0 {
		detail := "All required skills present."
		if len(in.JDMatchResult.MissingSkills) > 0 {
			named := in.JDMatchResult.MissingSkills
			if len(named) > 3 {
				named = named[:3]
			}
			detail = fmt.Sprintf("Missing: %s", strings.Join(named, ", "))
		}
		insights = append(insights, types.CandidateExplanation{
			Type:  types.ExplanationDetection,
			Title: "JD Skill Match Analysis",
			Description: fmt.Sprintf("%d of %d required skills matched. %s",
				len(in.JDMatchResult.MatchedSkills), len(jd.RequiredSkills), detail),
			Impact: len(in.JDMatchResult.MatchedSkills) * 3,
		})
	}

	return insights
}

// buildCounterfactuals emits "what if" scenarios for the interventions that
// have a corresponding detected factor. A candidate with no qualifying
// factor still gets one default scenario.
func buildCounterfactuals(originalScore int, factors []types.BiasFactor) []types.CounterfactualScenario {
	var scenarios []types.CounterfactualScenario

	if f := findFactor(factors, types.BiasNameProxy); f != nil {
		scenarios = append(scenarios, types.CounterfactualScenario{
			Intervention:          "Name changed to gender-neutral variant",
			OriginalOutcome:       originalScore,
			CounterfactualOutcome: originalScore + abs(f.Contribution),
			BiasDetected:          true,
		})
	}

	if f := findFactor(factors, types.BiasAccentPenalty); f != nil {
		scenarios = append(scenarios, types.CounterfactualScenario{
			Intervention:          "Accent normalized to native speaker",
			OriginalOutcome:       originalScore,
			CounterfactualOutcome: originalScore + abs(f.Contribution),
			BiasDetected:          true,
		})
	}

	if f := findFactor(factors, types.BiasInstitution); f != nil {
		scenarios = append(scenarios, types.CounterfactualScenario{
			Intervention:          "Institution anonymized",
			OriginalOutcome:       originalScore,
			CounterfactualOutcome: originalScore + abs(f.Contribution),
			BiasDetected:          abs(f.Contribution) > 3,
		})
	}

	if len(scenarios) == 0 {
		scenarios = append(scenarios, types.CounterfactualScenario{
			Intervention:          "All demographic markers anonymized",
			OriginalOutcome:       originalScore,
			CounterfactualOutcome: originalScore + 2,
			BiasDetected:          false,
		})
	}

	return scenarios
}

// buildFairnessSummary picks the prose summary. Review and no-factor cases
// have dedicated texts; otherwise a template is chosen deterministically by
// the candidate's name hash.
func buildFairnessSummary(lex *Lexicon, name string, factors []types.BiasFactor, originalScore, adjustedScore int, jd *types.JobDescription, needsReview bool) string {
	if needsReview {
		return fmt.Sprintf("Low confidence assessment for %s. Conflicting bias signals detected across modalities. Human review recommended before proceeding.", jd.RoleTitle)
	}
	if len(factors) == 0 {
		return fmt.Sprintf("Candidate evaluation for %s shows minimal bias indicators. Original assessment appears fair.", jd.RoleTitle)
	}

	top := factors[0]
	for _, f := range factors[1:] {
		if abs(f.Contribution) > abs(top.Contribution) {
			top = f
		}
	}

	correction := adjustedScore - originalScore
	template := lex.FairnessTemplates[hashutil.Mod(name, len(lex.FairnessTemplates))]
	return fmt.Sprintf(template, jd.RoleTitle, len(factors), top.Label, correction)
}

func findFactor(factors []types.BiasFactor, t types.BiasType) *types.BiasFactor {
	for i := range factors {
		if factors[i].Type == t {
			return &factors[i]
		}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
