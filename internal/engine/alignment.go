package engine

import (
	"fmt"
	"math"
	"strings"

	"fairhire360/internal/types"
)

// descriptionMatchFactor maps resume/description overlap into a score
// multiplier in [0.9, 1.15]. Neutral (1.0) when the JD has no free text or
// no parsed resume is available.
func descriptionMatchFactor(in *CandidateInput, jd *types.JobDescription) float64 {
	if jd.Description == "" || in.ParsedResume == nil || len(in.ParsedResume.Skills) == 0 {
		return 1.0
	}

	descLower := strings.ToLower(jd.Description)

	skillHits := 0
	for _, skill := range in.ParsedResume.Skills {
		if strings.Contains(descLower, strings.ToLower(skill)) {
			skillHits++
		}
	}

	titleWordHits := 0
	seen := make(map[string]bool)
	for _, exp := range in.ParsedResume.Experience {
		for _, word := range strings.Fields(strings.ToLower(exp.Title)) {
			if len(word) < 4 || seen[word] {
				continue
			}
			seen[word] = true
			if strings.Contains(descLower, word) {
				titleWordHits++
			}
		}
	}

	ratio := (float64(skillHits) + 0.5*float64(titleWordHits)) / float64(len(in.ParsedResume.Skills))
	if ratio > 1 {
		ratio = 1
	}
	return 0.9 + ratio*0.25
}

// buildDescriptionAlignment summarizes how the candidate's resume lines up
// with the JD's free-text description. Returns nil when either side is
// missing.
func buildDescriptionAlignment(in *CandidateInput, jd *types.JobDescription) *types.JDDescriptionAlignment {
	if jd.Description == "" || in.ParsedResume == nil {
		return nil
	}

	// Compare against the skills detected in the description, falling back
	// to the JD's required list when the description yielded none.
	targetSkills := jd.RequiredSkills
	if jd.ParsedFeatures != nil && len(jd.ParsedFeatures.DetectedSkills) > 0 {
		targetSkills = jd.ParsedFeatures.DetectedSkills
	}

	resumeLower := make(map[string]bool, len(in.ParsedResume.Skills))
	for _, s := range in.ParsedResume.Skills {
		resumeLower[strings.ToLower(s)] = true
	}

	overlap := 0
	var missing []string
	for _, skill := range targetSkills {
		if resumeLower[strings.ToLower(skill)] {
			overlap++
		} else if len(missing) < 4 {
			missing = append(missing, skill)
		}
	}

	overlapPercent := 0
	if len(targetSkills) > 0 {
		overlapPercent = int(math.Round(float64(overlap) / float64(len(targetSkills)) * 100))
	}

	factor := descriptionMatchFactor(in, jd)
	responsibilities := "low"
	switch {
	case factor >= 1.05:
		responsibilities = "high"
	case factor >= 0.97:
		responsibilities = "medium"
	}

	summary := fmt.Sprintf(
		"Resume covers %d%% of the skills referenced in the %s description with %s responsibilities overlap.",
		overlapPercent, jd.RoleTitle, responsibilities)
	if len(missing) > 0 {
		summary += fmt.Sprintf(" Gaps remain around %s.", strings.Join(missing, ", "))
	}

	return &types.JDDescriptionAlignment{
		SkillOverlapPercent:   overlapPercent,
		ResponsibilitiesMatch: responsibilities,
		MissingAreas:          missing,
		AlignmentSummary:      summary,
	}
}
