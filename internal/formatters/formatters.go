package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"fairhire360/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "Candidate", &CandidateTextFormatter{})
	registry.RegisterFormatter("markdown", "Candidate", &CandidateMarkdownFormatter{})
	registry.RegisterFormatter("text", "ParsedResume", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ParsedResume", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "JDMatchResult", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "JDMatchResult", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "DashboardStats", &StatsTextFormatter{})
	registry.RegisterFormatter("markdown", "DashboardStats", &StatsMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.Candidate:
		return "Candidate"
	case types.ParsedResume:
		return "ParsedResume"
	case types.JDMatchResult:
		return "JDMatchResult"
	case types.DashboardStats:
		return "DashboardStats"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// CandidateTextFormatter handles text formatting for processed candidates
type CandidateTextFormatter struct{}

func (cf *CandidateTextFormatter) Format(data any) (string, error) {
	c, ok := data.(types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected Candidate, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE ASSESSMENT ===\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", c.Name))
	output.WriteString(fmt.Sprintf("Position: %s\n", c.Position))
	output.WriteString(fmt.Sprintf("Status: %s\n", c.Status))
	output.WriteString(fmt.Sprintf("Score: %d -> %d (bias level: %s)\n\n", c.OriginalScore, c.AdjustedScore, c.BiasLevel))

	if len(c.BiasFactors) > 0 {
		output.WriteString("Bias Factors:\n")
		for _, f := range c.BiasFactors {
			output.WriteString(fmt.Sprintf("  - %s [%s] %d: %s\n", f.Label, f.Severity, f.Contribution, f.Explanation))
		}
		output.WriteString("\n")
	}

	if len(c.ModalityScores) > 0 {
		output.WriteString("Modality Scores:\n")
		for _, m := range c.ModalityScores {
			output.WriteString(fmt.Sprintf("  - %s: %d -> %d (confidence %d)\n",
				m.Modality, m.OriginalScore, m.AdjustedScore, m.ConfidenceScore))
		}
		output.WriteString("\n")
	}

	if len(c.Counterfactuals) > 0 {
		output.WriteString("Counterfactuals:\n")
		for _, cf := range c.Counterfactuals {
			output.WriteString(fmt.Sprintf("  - %s: %d -> %d\n",
				cf.Intervention, cf.OriginalOutcome, cf.CounterfactualOutcome))
		}
		output.WriteString("\n")
	}

	output.WriteString("Fairness Summary:\n")
	output.WriteString(c.FairnessSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (cf *CandidateTextFormatter) SupportedType() string {
	return "Candidate"
}

// CandidateMarkdownFormatter handles markdown formatting for processed candidates
type CandidateMarkdownFormatter struct{}

func (cf *CandidateMarkdownFormatter) Format(data any) (string, error) {
	c, ok := data.(types.Candidate)
	if !ok {
		return "", fmt.Errorf("expected Candidate, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Candidate Assessment: %s\n\n", c.Name))
	output.WriteString(fmt.Sprintf("**Position:** %s  \n", c.Position))
	output.WriteString(fmt.Sprintf("**Status:** %s  \n", c.Status))
	output.WriteString(fmt.Sprintf("**Score:** %d → %d  \n", c.OriginalScore, c.AdjustedScore))
	output.WriteString(fmt.Sprintf("**Bias Level:** %s\n\n", c.BiasLevel))

	if len(c.BiasFactors) > 0 {
		output.WriteString("## Bias Factors\n\n")
		output.WriteString("| Factor | Severity | Contribution |\n")
		output.WriteString("|--------|----------|-------------|\n")
		for _, f := range c.BiasFactors {
			output.WriteString(fmt.Sprintf("| %s | %s | %d |\n", f.Label, f.Severity, f.Contribution))
		}
		output.WriteString("\n")
	}

	if len(c.Explanations) > 0 {
		output.WriteString("## Explanations\n\n")
		for _, e := range c.Explanations {
			output.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", e.Title, e.Type, e.Description))
		}
		output.WriteString("\n")
	}

	if len(c.Counterfactuals) > 0 {
		output.WriteString("## Counterfactual Scenarios\n\n")
		for _, cf := range c.Counterfactuals {
			output.WriteString(fmt.Sprintf("- %s: %d → %d\n",
				cf.Intervention, cf.OriginalOutcome, cf.CounterfactualOutcome))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Fairness Summary\n\n")
	output.WriteString(c.FairnessSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (cf *CandidateMarkdownFormatter) SupportedType() string {
	return "Candidate"
}

// ResumeTextFormatter handles text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rf *ResumeTextFormatter) Format(data any) (string, error) {
	r, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n")
	output.WriteString(fmt.Sprintf("Candidate: %s\n", r.CandidateName))
	if r.Email != "" {
		output.WriteString(fmt.Sprintf("Email: %s\n", r.Email))
	}
	if r.Phone != "" {
		output.WriteString(fmt.Sprintf("Phone: %s\n", r.Phone))
	}
	output.WriteString(fmt.Sprintf("Parse Confidence: %d/100\n\n", r.ParseConfidence))

	if len(r.Skills) > 0 {
		output.WriteString(fmt.Sprintf("Skills (%d): %s\n\n", len(r.Skills), strings.Join(r.Skills, ", ")))
	}

	if len(r.Education) > 0 {
		output.WriteString("Education:\n")
		for _, e := range r.Education {
			output.WriteString(fmt.Sprintf("  - %s, %s (%s)\n", e.Degree, e.Institution, e.Year))
		}
		output.WriteString("\n")
	}

	if len(r.Experience) > 0 {
		output.WriteString("Experience:\n")
		for _, e := range r.Experience {
			output.WriteString(fmt.Sprintf("  - %s\n", e.Title))
		}
		output.WriteString("\n")
	}

	if len(r.Languages) > 0 {
		output.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(r.Languages, ", ")))
	}

	return output.String(), nil
}

func (rf *ResumeTextFormatter) SupportedType() string {
	return "ParsedResume"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	r, ok := data.(types.ParsedResume)
	if !ok {
		return "", fmt.Errorf("expected ParsedResume, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Resume: %s\n\n", r.CandidateName))
	if r.Email != "" {
		output.WriteString(fmt.Sprintf("**Email:** %s  \n", r.Email))
	}
	if r.Phone != "" {
		output.WriteString(fmt.Sprintf("**Phone:** %s  \n", r.Phone))
	}
	output.WriteString(fmt.Sprintf("**Parse Confidence:** %d/100\n\n", r.ParseConfidence))

	if len(r.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		for _, s := range r.Skills {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}

	if len(r.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, e := range r.Education {
			output.WriteString(fmt.Sprintf("- %s, %s (%s)\n", e.Degree, e.Institution, e.Year))
		}
		output.WriteString("\n")
	}

	if len(r.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, e := range r.Experience {
			output.WriteString(fmt.Sprintf("- %s\n", e.Title))
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rf *ResumeMarkdownFormatter) SupportedType() string {
	return "ParsedResume"
}

// MatchTextFormatter handles text formatting for resume-to-JD match results
type MatchTextFormatter struct{}

func (mf *MatchTextFormatter) Format(data any) (string, error) {
	m, ok := data.(types.JDMatchResult)
	if !ok {
		return "", fmt.Errorf("expected JDMatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== JOB MATCH ===\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", m.OverallScore))
	output.WriteString(fmt.Sprintf("Experience: %s (%d years)\n\n", m.ExperienceMatch, m.ExperienceYears))

	if len(m.MatchedSkills) > 0 {
		output.WriteString(fmt.Sprintf("Matched Skills: %s\n", strings.Join(m.MatchedSkills, ", ")))
	}
	if len(m.PartialMatches) > 0 {
		output.WriteString(fmt.Sprintf("Partial Matches: %s\n", strings.Join(m.PartialMatches, ", ")))
	}
	if len(m.MissingSkills) > 0 {
		output.WriteString(fmt.Sprintf("Missing Skills: %s\n", strings.Join(m.MissingSkills, ", ")))
	}
	output.WriteString("\n")

	if len(m.StrengthAreas) > 0 {
		output.WriteString("Strengths:\n")
		for _, s := range m.StrengthAreas {
			output.WriteString(fmt.Sprintf("  + %s\n", s))
		}
	}
	if len(m.ImprovementAreas) > 0 {
		output.WriteString("Areas for Improvement:\n")
		for _, s := range m.ImprovementAreas {
			output.WriteString(fmt.Sprintf("  - %s\n", s))
		}
	}

	return output.String(), nil
}

func (mf *MatchTextFormatter) SupportedType() string {
	return "JDMatchResult"
}

// MatchMarkdownFormatter handles markdown formatting for resume-to-JD match results
type MatchMarkdownFormatter struct{}

func (mf *MatchMarkdownFormatter) Format(data any) (string, error) {
	m, ok := data.(types.JDMatchResult)
	if !ok {
		return "", fmt.Errorf("expected JDMatchResult, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Job Match Result\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100  \n", m.OverallScore))
	output.WriteString(fmt.Sprintf("**Experience:** %s (%d years)\n\n", m.ExperienceMatch, m.ExperienceYears))

	output.WriteString("## Skills\n\n")
	output.WriteString("| Category | Skills |\n")
	output.WriteString("|----------|--------|\n")
	output.WriteString(fmt.Sprintf("| Matched | %s |\n", strings.Join(m.MatchedSkills, ", ")))
	output.WriteString(fmt.Sprintf("| Partial | %s |\n", strings.Join(m.PartialMatches, ", ")))
	output.WriteString(fmt.Sprintf("| Missing | %s |\n\n", strings.Join(m.MissingSkills, ", ")))

	if len(m.StrengthAreas) > 0 {
		output.WriteString("## Strengths\n\n")
		for _, s := range m.StrengthAreas {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
		output.WriteString("\n")
	}
	if len(m.ImprovementAreas) > 0 {
		output.WriteString("## Areas for Improvement\n\n")
		for _, s := range m.ImprovementAreas {
			output.WriteString(fmt.Sprintf("- %s\n", s))
		}
	}

	return output.String(), nil
}

func (mf *MatchMarkdownFormatter) SupportedType() string {
	return "JDMatchResult"
}

// StatsTextFormatter handles text formatting for dashboard statistics
type StatsTextFormatter struct{}

func (sf *StatsTextFormatter) Format(data any) (string, error) {
	s, ok := data.(types.DashboardStats)
	if !ok {
		return "", fmt.Errorf("expected DashboardStats, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== FAIRNESS DASHBOARD ===\n")
	output.WriteString(fmt.Sprintf("Candidates Analyzed: %d\n", s.CandidatesAnalyzed))
	output.WriteString(fmt.Sprintf("Fairness Score: %.1f\n", s.FairnessScore))
	output.WriteString(fmt.Sprintf("Bias Corrections: %d\n", s.BiasCorrections))
	output.WriteString(fmt.Sprintf("Avg Score Change: %.1f\n", s.AvgScoreChange))

	return output.String(), nil
}

func (sf *StatsTextFormatter) SupportedType() string {
	return "DashboardStats"
}

// StatsMarkdownFormatter handles markdown formatting for dashboard statistics
type StatsMarkdownFormatter struct{}

func (sf *StatsMarkdownFormatter) Format(data any) (string, error) {
	s, ok := data.(types.DashboardStats)
	if !ok {
		return "", fmt.Errorf("expected DashboardStats, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Fairness Dashboard\n\n")
	output.WriteString("| Metric | Value |\n")
	output.WriteString("|--------|-------|\n")
	output.WriteString(fmt.Sprintf("| Candidates Analyzed | %d |\n", s.CandidatesAnalyzed))
	output.WriteString(fmt.Sprintf("| Fairness Score | %.1f |\n", s.FairnessScore))
	output.WriteString(fmt.Sprintf("| Bias Corrections | %d |\n", s.BiasCorrections))
	output.WriteString(fmt.Sprintf("| Avg Score Change | %.1f |\n", s.AvgScoreChange))

	return output.String(), nil
}

func (sf *StatsMarkdownFormatter) SupportedType() string {
	return "DashboardStats"
}

// GlobalRegistry is the default formatter registry
var GlobalRegistry = NewFormatterRegistry()
