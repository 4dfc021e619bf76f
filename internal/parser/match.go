package parser

import (
	"fmt"
	"math"
	"strings"

	"fairhire360/internal/types"
)

// MatchResumeToJD compares a parsed resume against a job description's
// required skills and experience range. Each required skill is classified as
// matched (exact or substring against parsed skills), partial (present only
// in the raw text), or missing. The function is pure and total: a JD with no
// required skills yields a neutral skill component rather than an error.
func MatchResumeToJD(resume *types.ParsedResume, jd *types.JobDescription) *types.JDMatchResult {
	resumeSkillsLower := make([]string, len(resume.Skills))
	for i, s := range resume.Skills {
		resumeSkillsLower[i] = strings.ToLower(s)
	}
	rawLower := strings.ToLower(resume.RawText)

	matched := []string{}
	missing := []string{}
	partial := []string{}

	for _, skill := range jd.RequiredSkills {
		skillLower := strings.ToLower(skill)
		switch {
		case skillInList(skillLower, resumeSkillsLower):
			matched = append(matched, skill)
		case strings.Contains(rawLower, skillLower):
			partial = append(partial, skill)
		default:
			missing = append(missing, skill)
		}
	}

	experienceYears := len(resume.Experience)
	if experienceYears < 1 {
		experienceYears = 1
	}

	experienceMatch := types.ExperienceMeets
	if experienceYears < jd.ExperienceRange.Min {
		experienceMatch = types.ExperienceBelow
	} else if experienceYears > jd.ExperienceRange.Max {
		experienceMatch = types.ExperienceExceeds
	}

	skillScore := 50.0
	if len(jd.RequiredSkills) > 0 {
		skillScore = (float64(len(matched)) + float64(len(partial))*0.5) /
			float64(len(jd.RequiredSkills)) * 60
	}

	expScore := 25.0
	switch experienceMatch {
	case types.ExperienceExceeds:
		expScore = 30
	case types.ExperienceBelow:
		expScore = 15
	}

	eduScore := 5.0
	if len(resume.Education) > 0 {
		eduScore = 10
	}

	overall := int(math.Round(skillScore + expScore + eduScore))
	if overall > 100 {
		overall = 100
	}

	var strengths, improvements []string
	if float64(len(matched)) >= float64(len(jd.RequiredSkills))*0.5 {
		strengths = append(strengths, "Good skill alignment")
	}
	if experienceMatch == types.ExperienceExceeds {
		strengths = append(strengths, "Experience exceeds requirements")
	}
	if len(missing) > 0 {
		named := missing
		if len(named) > 3 {
			named = named[:3]
		}
		improvements = append(improvements, fmt.Sprintf("Missing: %s", strings.Join(named, ", ")))
	}

	return &types.JDMatchResult{
		OverallScore:     overall,
		MatchedSkills:    matched,
		MissingSkills:    missing,
		PartialMatches:   partial,
		ExperienceMatch:  experienceMatch,
		ExperienceYears:  experienceYears,
		StrengthAreas:    strengths,
		ImprovementAreas: improvements,
	}
}

// skillInList checks for an exact match or a substring containment in
// either direction, so "Node" matches "Node.js" and vice versa.
func skillInList(skill string, list []string) bool {
	for _, rs := range list {
		if rs == skill || strings.Contains(rs, skill) || strings.Contains(skill, rs) {
			return true
		}
	}
	return false
}
