package types

import "time"

// Modality is an input channel a candidate may supply.
type Modality string

const (
	ModalityResume Modality = "resume"
	ModalityVideo  Modality = "video"
	ModalityAudio  Modality = "audio"
)

// Severity grades a detected bias signal.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// BiasType identifies the category of a detected bias factor.
type BiasType string

const (
	BiasNameProxy             BiasType = "name_proxy"
	BiasAccentPenalty         BiasType = "accent_penalty"
	BiasLanguageFluency       BiasType = "language_fluency"
	BiasAppearance            BiasType = "appearance_bias"
	BiasBackgroundEnvironment BiasType = "background_environment"
	BiasGenderLanguage        BiasType = "gender_language"
	BiasInstitution           BiasType = "institution_bias"
	BiasAgeProxy              BiasType = "age_proxy"
)

// BiasSource tracks which modality a candidate's bias signals came from.
type BiasSource string

const (
	BiasSourceText     BiasSource = "text"
	BiasSourceAudio    BiasSource = "audio"
	BiasSourceVideo    BiasSource = "video"
	BiasSourceMultiple BiasSource = "multiple"
)

// CandidateStatus is the processing state of a candidate record.
type CandidateStatus string

const (
	StatusProcessed CandidateStatus = "processed"
	StatusReview    CandidateStatus = "review"
	StatusPending   CandidateStatus = "pending"
)

// ExperienceRange bounds the years of experience a role expects.
type ExperienceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// JDParsedFeatures is derived once from a job description's free text.
type JDParsedFeatures struct {
	DetectedSkills []string `json:"detectedSkills"`
	Domain         string   `json:"domain"`
	Complexity     string   `json:"complexity"`
	Keywords       []string `json:"keywords"`
}

// JobDescription is the role specification candidates are evaluated against.
// Immutable after creation.
type JobDescription struct {
	ID                   string            `json:"id"`
	RoleTitle            string            `json:"roleTitle"`
	RoleType             string            `json:"roleType,omitempty"`
	Description          string            `json:"description,omitempty"`
	ParsedFeatures       *JDParsedFeatures `json:"parsedFeatures,omitempty"`
	RequiredSkills       []string          `json:"requiredSkills"`
	ExperienceRange      ExperienceRange   `json:"experienceRange"`
	LanguageRequirements []string          `json:"languageRequirements"`
	SkillsWeight         int               `json:"skillsWeight"`
	CreatedAt            time.Time         `json:"createdAt"`
}

// EducationEntry is one parsed education credential.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Year        string `json:"year"`
}

// ExperienceEntry is one parsed work history item.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ProjectEntry is one parsed projects-section item.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ParsedResume is the read-only projection of an uploaded document.
type ParsedResume struct {
	RawText         string            `json:"rawText"`
	CandidateName   string            `json:"candidateName"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Education       []EducationEntry  `json:"education"`
	Skills          []string          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Projects        []ProjectEntry    `json:"projects"`
	Languages       []string          `json:"languages"`
	Summary         string            `json:"summary"`
	ParseConfidence int               `json:"parseConfidence"`
}

// ExperienceMatch classifies estimated experience against a JD's range.
type ExperienceMatch string

const (
	ExperienceBelow   ExperienceMatch = "below"
	ExperienceMeets   ExperienceMatch = "meets"
	ExperienceExceeds ExperienceMatch = "exceeds"
)

// JDMatchResult is the outcome of comparing a parsed resume to a JD.
type JDMatchResult struct {
	OverallScore     int             `json:"overallScore"`
	MatchedSkills    []string        `json:"matchedSkills"`
	MissingSkills    []string        `json:"missingSkills"`
	PartialMatches   []string        `json:"partialMatches"`
	ExperienceMatch  ExperienceMatch `json:"experienceMatch"`
	ExperienceYears  int             `json:"experienceYears"`
	StrengthAreas    []string        `json:"strengthAreas"`
	ImprovementAreas []string        `json:"improvementAreas"`
}

// BiasFactor is one detected bias signal. Contribution is negative: the
// magnitude is the number of points originally penalized and corrected back.
type BiasFactor struct {
	Type         BiasType `json:"type"`
	Label        string   `json:"label"`
	Severity     Severity `json:"severity"`
	Contribution int      `json:"contribution"`
	Explanation  string   `json:"explanation"`
	JDContext    string   `json:"jdContext"`
}

// ModalityScore is the per-modality score breakdown for display and audit.
type ModalityScore struct {
	Modality        Modality     `json:"modality"`
	OriginalScore   int          `json:"originalScore"`
	AdjustedScore   int          `json:"adjustedScore"`
	BiasFactors     []BiasFactor `json:"biasFactors"`
	ConfidenceScore int          `json:"confidenceScore"`
}

// ExplanationType classifies an explanation entry.
type ExplanationType string

const (
	ExplanationCorrection ExplanationType = "correction"
	ExplanationDetection  ExplanationType = "detection"
	ExplanationInfo       ExplanationType = "info"
	ExplanationWarning    ExplanationType = "warning"
)

// CandidateExplanation is one human-readable entry in a candidate's audit trail.
type CandidateExplanation struct {
	Type        ExplanationType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Impact      int             `json:"impact"`
}

// CounterfactualScenario describes a simulated "what if" intervention.
type CounterfactualScenario struct {
	Intervention          string `json:"intervention"`
	OriginalOutcome       int    `json:"originalOutcome"`
	CounterfactualOutcome int    `json:"counterfactualOutcome"`
	BiasDetected          bool   `json:"biasDetected"`
}

// CrossModalConsistency summarizes agreement across a candidate's modalities.
type CrossModalConsistency struct {
	ResumeVsInterviewScore int        `json:"resumeVsInterviewScore"`
	SkillMatchLevel        string     `json:"skillMatchLevel"`
	AccentPenaltyDetected  bool       `json:"accentPenaltyDetected"`
	FluencyBiasDetected    bool       `json:"fluencyBiasDetected"`
	VisualBiasDetected     bool       `json:"visualBiasDetected"`
	BiasSource             BiasSource `json:"biasSource"`
	ConsistencyScore       int        `json:"consistencyScore"`
	Flags                  []string   `json:"flags"`
}

// InterviewVideo holds metadata for an uploaded interview recording.
type InterviewVideo struct {
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	Duration   int       `json:"duration,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
	Format     string    `json:"format"`
}

// JDDescriptionAlignment measures how a candidate's resume lines up with the
// JD's free-text description. Present only when the JD carries a description.
type JDDescriptionAlignment struct {
	SkillOverlapPercent   int      `json:"skillOverlapPercent"`
	ResponsibilitiesMatch string   `json:"responsibilitiesMatch"`
	MissingAreas          []string `json:"missingAreas"`
	AlignmentSummary      string   `json:"alignmentSummary"`
}

// Candidate is the aggregate evaluation record. Immutable once composed;
// reprocessing creates a new Candidate.
type Candidate struct {
	ID                     string                   `json:"id"`
	Name                   string                   `json:"name"`
	Position               string                   `json:"position"`
	OriginalScore          int                      `json:"originalScore"`
	AdjustedScore          int                      `json:"adjustedScore"`
	BiasLevel              Severity                 `json:"biasLevel"`
	Modalities             []Modality               `json:"modalities"`
	Status                 CandidateStatus          `json:"status"`
	JobDescriptionID       string                   `json:"jobDescriptionId"`
	ModalityScores         []ModalityScore          `json:"modalityScores"`
	BiasFactors            []BiasFactor             `json:"biasFactors"`
	Explanations           []CandidateExplanation   `json:"explanations"`
	Counterfactuals        []CounterfactualScenario `json:"counterfactuals"`
	FairnessSummary        string                   `json:"fairnessSummary"`
	ProcessedAt            time.Time                `json:"processedAt"`
	ParsedResume           *ParsedResume            `json:"parsedResume,omitempty"`
	JDMatchResult          *JDMatchResult           `json:"jdMatchResult,omitempty"`
	JDDescriptionAlignment *JDDescriptionAlignment  `json:"jdDescriptionAlignment,omitempty"`
	ResumeFileName         string                   `json:"resumeFileName,omitempty"`
	InterviewVideo         *InterviewVideo          `json:"interviewVideo,omitempty"`
	CrossModalConsistency  *CrossModalConsistency   `json:"crossModalConsistency,omitempty"`
}

// HasModality reports whether the candidate supplied the given input channel.
func (c *Candidate) HasModality(m Modality) bool {
	for _, have := range c.Modalities {
		if have == m {
			return true
		}
	}
	return false
}

// DashboardStats is the derived summary over a candidate collection.
type DashboardStats struct {
	CandidatesAnalyzed int     `json:"candidatesAnalyzed"`
	FairnessScore      float64 `json:"fairnessScore"`
	BiasCorrections    int     `json:"biasCorrections"`
	AvgScoreChange     float64 `json:"avgScoreChange"`
}
