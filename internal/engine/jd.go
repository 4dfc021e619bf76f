package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"fairhire360/internal/errors"
	"fairhire360/internal/parser"
	"fairhire360/internal/types"
)

// JobDescriptionInput is the user-facing creation payload for a JD. ID is
// optional: when set, the JD keeps that id across re-creations, so repeated
// runs against the same JD file accumulate candidates under one cap instead
// of minting a fresh JD each time.
type JobDescriptionInput struct {
	ID                   string                `json:"id,omitempty" validate:"omitempty,min=1,max=64"`
	RoleTitle            string                `json:"roleTitle" validate:"required,min=2,max=120"`
	RoleType             string                `json:"roleType,omitempty" validate:"omitempty,oneof=engineering data product design operations general"`
	Description          string                `json:"description,omitempty"`
	RequiredSkills       []string              `json:"requiredSkills" validate:"required,min=1,dive,required"`
	ExperienceRange      types.ExperienceRange `json:"experienceRange"`
	LanguageRequirements []string              `json:"languageRequirements"`
	SkillsWeight         int                   `json:"skillsWeight" validate:"gte=20,lte=80"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Description word count bounds; a JD without free text skips the check.
const (
	descriptionMinWords = 50
	descriptionMaxWords = 300
)

// NewJobDescription validates the input and mints an immutable JD with
// derived description features. The input's id is kept when present;
// otherwise a fresh uuid is assigned.
func NewJobDescription(in *JobDescriptionInput, now time.Time) (*types.JobDescription, error) {
	if err := validate.Struct(in); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidJD,
			"invalid job description input", err)
	}
	if in.ExperienceRange.Min < 0 || in.ExperienceRange.Max < in.ExperienceRange.Min {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidJD,
			fmt.Sprintf("experience range must satisfy 0 <= min <= max, got [%d,%d]",
				in.ExperienceRange.Min, in.ExperienceRange.Max), nil)
	}
	if in.Description != "" {
		words := len(strings.Fields(in.Description))
		if words < descriptionMinWords || words > descriptionMaxWords {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidJD,
				fmt.Sprintf("description must be %d-%d words, got %d",
					descriptionMinWords, descriptionMaxWords, words), nil)
		}
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	jd := &types.JobDescription{
		ID:                   id,
		RoleTitle:            in.RoleTitle,
		RoleType:             in.RoleType,
		Description:          in.Description,
		RequiredSkills:       in.RequiredSkills,
		ExperienceRange:      in.ExperienceRange,
		LanguageRequirements: in.LanguageRequirements,
		SkillsWeight:         in.SkillsWeight,
		CreatedAt:            now,
	}
	if in.Description != "" {
		jd.ParsedFeatures = DeriveJDFeatures(in.Description)
	}
	return jd, nil
}

var domainKeywords = map[string][]string{
	"engineering": {"software", "engineer", "backend", "frontend", "infrastructure", "api", "cloud"},
	"data":        {"data", "analytics", "machine learning", "statistics", "pipeline", "model"},
	"product":     {"product", "roadmap", "stakeholder", "user research", "market"},
	"design":      {"design", "ux", "ui", "prototype", "figma", "visual"},
}

var seniorityMarkers = []string{"senior", "lead", "principal", "staff", "architect", "director"}

var featureWordRe = regexp.MustCompile(`[a-zA-Z][a-zA-Z+#.]{3,}`)

var stopwords = map[string]bool{
	"with": true, "this": true, "that": true, "have": true, "will": true,
	"from": true, "your": true, "their": true, "about": true, "work": true,
	"team": true, "role": true, "years": true, "experience": true,
	"candidate": true, "must": true, "should": true, "strong": true,
	"ability": true, "skills": true, "required": true, "including": true,
}

// DeriveJDFeatures computes the description-derived feature block once at JD
// creation: detected skills via the shared vocabulary scan, a keyword-bucket
// domain classification, a complexity tier, and the leading distinct terms.
func DeriveJDFeatures(description string) *types.JDParsedFeatures {
	descLower := strings.ToLower(description)

	domain := "general"
	bestHits := 0
	// Deterministic iteration over the bucket map.
	domains := make([]string, 0, len(domainKeywords))
	for d := range domainKeywords {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	for _, d := range domains {
		hits := 0
		for _, kw := range domainKeywords[d] {
			if strings.Contains(descLower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			domain = d
		}
	}

	seniorHits := 0
	for _, marker := range seniorityMarkers {
		if strings.Contains(descLower, marker) {
			seniorHits++
		}
	}
	complexity := "low"
	switch {
	case seniorHits >= 2 || (seniorHits >= 1 && len(strings.Fields(description)) > 150):
		complexity = "high"
	case seniorHits >= 1 || len(strings.Fields(description)) > 100:
		complexity = "medium"
	}

	var keywords []string
	seen := make(map[string]bool)
	for _, w := range featureWordRe.FindAllString(descLower, -1) {
		if stopwords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) >= 8 {
			break
		}
	}

	return &types.JDParsedFeatures{
		DetectedSkills: parser.ScanSkills(description),
		Domain:         domain,
		Complexity:     complexity,
		Keywords:       keywords,
	}
}
