package parser

import (
	"regexp"
	"strings"

	"fairhire360/internal/types"
)

var (
	namePatternRe  = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+){1,3}$`)
	nameLabelRe    = regexp.MustCompile(`(?i)Name[:\s]+([A-Za-z\s]+)`)
	alphaLineRe    = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailRe        = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe        = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	yearRe         = regexp.MustCompile(`20\d{2}|19\d{2}`)
	institutionRe  = regexp.MustCompile(`(?i)(?:University|College|Institute|School)[^,\n]*`)
	skillSectionRe = regexp.MustCompile(`(?is)(?:SKILLS|TECHNICAL SKILLS|KEY SKILLS|CORE COMPETENCIES)[:\s]*(.*?)(?:\n\s*(?:EDUCATION|EXPERIENCE|PROJECTS|WORK|CERTIFICATION)|$)`)
	projSectionRe  = regexp.MustCompile(`(?is)(?:PROJECTS|PERSONAL PROJECTS)[:\s]*(.*?)(?:\n\s*(?:EDUCATION|EXPERIENCE|SKILLS)|$)`)
	lineSplitRe    = regexp.MustCompile(`[\n\r]+`)
)

// skillVocabulary is the fixed keyword list scanned for in every resume,
// technical skills first, soft skills at the end.
var skillVocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Ruby", "Go", "Rust", "Swift", "Kotlin", "PHP",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "Rails", "Next.js",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch", "Firebase",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "CI/CD", "Linux",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "NLP", "Computer Vision", "AI",
	"HTML", "CSS", "SASS", "Tailwind", "Bootstrap", "Figma",
	"REST", "GraphQL", "API", "Microservices", "WebSocket",
	"Agile", "Scrum", "JIRA", "Confluence", "Trello",
	"Excel", "PowerPoint", "Word", "Tableau", "Power BI", "Data Analysis",
	"Communication", "Leadership", "Teamwork", "Problem Solving", "Critical Thinking",
	"Project Management", "Time Management", "Analytical Skills", "Public Speaking",
}

var degreePatterns = []struct {
	pattern *regexp.Regexp
	name    string
}{
	{regexp.MustCompile(`(?i)Ph\.?D\.?|Doctorate`), "Ph.D."},
	{regexp.MustCompile(`(?i)Master|M\.?S\.?|M\.?A\.?|M\.?E\.?|M\.?Tech|MBA`), "Master's"},
	{regexp.MustCompile(`(?i)Bachelor|B\.?S\.?|B\.?A\.?|B\.?E\.?|B\.?Tech`), "Bachelor's"},
}

var jobTitleKeywords = []string{
	"Engineer", "Developer", "Manager", "Analyst", "Designer",
	"Consultant", "Lead", "Director", "Specialist", "Intern",
}

var commonLanguages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Mandarin", "Hindi",
	"Arabic", "Portuguese", "Japanese", "Korean", "Russian", "Italian",
}

// unknownCandidate is the sentinel name used when no name-shaped line is
// found. It counts against parse confidence.
const unknownCandidate = "Unknown Candidate"

var (
	skillRes    = compileWordRes(skillVocabulary)
	languageRes = compileWordRes(commonLanguages)
	titleRes    = compileTitleRes(jobTitleKeywords)
)

func compileWordRes(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return res
}

func compileTitleRes(keywords []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		res[i] = regexp.MustCompile(`(?i)[A-Za-z\s]*` + kw + `[A-Za-z\s]*`)
	}
	return res
}

// ParseText runs the field heuristics over already-extracted resume text.
func ParseText(rawText string) *types.ParsedResume {
	parsed := &types.ParsedResume{
		RawText:       rawText,
		CandidateName: extractName(rawText),
		Email:         extractEmail(rawText),
		Phone:         extractPhone(rawText),
		Education:     extractEducation(rawText),
		Skills:        extractSkills(rawText),
		Experience:    extractExperience(rawText),
		Projects:      extractProjects(rawText),
		Languages:     extractLanguages(rawText),
		Summary:       summarize(rawText),
	}
	parsed.ParseConfidence = calculateConfidence(parsed)
	return parsed
}

// extractName looks for a name-shaped line near the top of the resume: two
// to four capitalized words, or an explicit "Name:" label.
func extractName(text string) string {
	var lines []string
	for _, l := range lineSplitRe.Split(text, -1) {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	top := lines
	if len(top) > 8 {
		top = top[:8]
	}
	for _, line := range top {
		cleaned := strings.TrimSpace(line)
		if len(cleaned) < 40 && namePatternRe.MatchString(cleaned) {
			return cleaned
		}
		if m := nameLabelRe.FindStringSubmatch(cleaned); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	for _, line := range lines {
		t := strings.TrimSpace(line)
		if len(t) > 3 && len(t) < 50 && alphaLineRe.MatchString(t) {
			return t
		}
	}
	return unknownCandidate
}

func extractEmail(text string) string {
	return emailRe.FindString(text)
}

func extractPhone(text string) string {
	return phoneRe.FindString(text)
}

// ScanSkills scans the fixed skill vocabulary over arbitrary text. Used for
// resumes and for job description free text alike.
func ScanSkills(text string) []string {
	return extractSkills(text)
}

// extractSkills scans the fixed vocabulary, preferring a detected skills
// section but falling back to the whole document.
func extractSkills(text string) []string {
	skillText := text
	if m := skillSectionRe.FindStringSubmatch(text); m != nil {
		skillText = m[1]
	}

	var skills []string
	for i, skill := range skillVocabulary {
		if skillRes[i].MatchString(skillText) {
			skills = append(skills, skill)
			if len(skills) >= 20 {
				break
			}
		}
	}
	return skills
}

// extractEducation reports at most one entry, keyed off the highest degree
// level mentioned anywhere in the text.
func extractEducation(text string) []types.EducationEntry {
	for _, dp := range degreePatterns {
		if !dp.pattern.MatchString(text) {
			continue
		}
		institution := "Institution detected"
		if inst := institutionRe.FindString(text); inst != "" {
			institution = strings.TrimSpace(inst)
		}
		return []types.EducationEntry{{
			Institution: institution,
			Degree:      dp.name,
			Field:       "",
			Year:        yearRe.FindString(text),
		}}
	}
	return nil
}

// extractExperience approximates experience entries from job-title keywords.
// The first keyword with hits wins, capped at three entries.
func extractExperience(text string) []types.ExperienceEntry {
	var experience []types.ExperienceEntry
	for i := range jobTitleKeywords {
		matches := titleRes[i].FindAllString(text, -1)
		if len(matches) > 2 {
			matches = matches[:2]
		}
		for _, m := range matches {
			if len(m) > 5 && len(m) < 60 {
				experience = append(experience, types.ExperienceEntry{
					Company:     "Company detected",
					Title:       strings.TrimSpace(m),
					Duration:    "",
					Description: "Experience details in resume",
				})
			}
		}
		if len(experience) > 0 {
			break
		}
	}
	if len(experience) > 3 {
		experience = experience[:3]
	}
	return experience
}

func extractProjects(text string) []types.ProjectEntry {
	if !projSectionRe.MatchString(text) {
		return nil
	}
	return []types.ProjectEntry{{
		Name:         "Projects detected",
		Description:  "Project details in resume",
		Technologies: []string{},
	}}
}

func extractLanguages(text string) []string {
	var languages []string
	for i, lang := range commonLanguages {
		if languageRes[i].MatchString(text) {
			languages = append(languages, lang)
		}
	}
	return languages
}

func summarize(text string) string {
	runes := []rune(text)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return text
}

// calculateConfidence weighs presence signals: name 20, email 15, phone 10,
// education 15, three or more skills 25, experience 15, capped at 100.
func calculateConfidence(p *types.ParsedResume) int {
	score := 0
	if p.CandidateName != "" && p.CandidateName != unknownCandidate {
		score += 20
	}
	if p.Email != "" {
		score += 15
	}
	if p.Phone != "" {
		score += 10
	}
	if len(p.Education) > 0 {
		score += 15
	}
	if len(p.Skills) >= 3 {
		score += 25
	}
	if len(p.Experience) > 0 {
		score += 15
	}
	if score > 100 {
		score = 100
	}
	return score
}
