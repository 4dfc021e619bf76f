package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const sampleResume = `Jane Doe
Software Engineer
jane.doe@example.com
(555) 123-4567

PROFILE
Experienced engineer building backend services.

SKILLS: Python, Go, SQL, Docker, Kubernetes, Leadership

EXPERIENCE
Senior Software Engineer, Example Corp
Backend Developer, Startup Inc

EDUCATION
Bachelor of Science, State University, 2015

Languages: English, Spanish
`

func TestParseTextFields(t *testing.T) {
	parsed := ParseText(sampleResume)

	if parsed.CandidateName != "Jane Doe" {
		t.Errorf("CandidateName = %q, want %q", parsed.CandidateName, "Jane Doe")
	}
	if parsed.Email != "jane.doe@example.com" {
		t.Errorf("Email = %q", parsed.Email)
	}
	if parsed.Phone == "" {
		t.Error("expected phone to be extracted")
	}
	if len(parsed.Education) != 1 {
		t.Fatalf("Education count = %d, want 1", len(parsed.Education))
	}
	if parsed.Education[0].Degree != "Bachelor's" {
		t.Errorf("Degree = %q, want Bachelor's", parsed.Education[0].Degree)
	}
	if parsed.Education[0].Year != "2015" {
		t.Errorf("Year = %q, want 2015", parsed.Education[0].Year)
	}
	if len(parsed.Experience) == 0 {
		t.Error("expected at least one experience entry")
	}
	for _, want := range []string{"Python", "Go", "SQL", "Docker", "Kubernetes", "Leadership"} {
		found := false
		for _, s := range parsed.Skills {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("skill %q not extracted, got %v", want, parsed.Skills)
		}
	}
	if len(parsed.Languages) != 2 {
		t.Errorf("Languages = %v, want English and Spanish", parsed.Languages)
	}
}

func TestParseTextConfidence(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "full signals",
			text:     sampleResume,
			expected: 100,
		},
		{
			name:     "bare text no signals",
			text:     "this writing holds nothing that looks like a hiring profile at all",
			expected: 0,
		},
		{
			name: "name and email only",
			text: "Jane Doe\ncontact jane@example.com for details about availability",
			// name 20 + email 15
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseText(tt.text)
			if parsed.ParseConfidence != tt.expected {
				t.Errorf("ParseConfidence = %d, want %d", parsed.ParseConfidence, tt.expected)
			}
		})
	}
}

func TestExtractNameFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "name shaped first line",
			text:     "Priya Sharma\nData Scientist",
			expected: "Priya Sharma",
		},
		{
			name:     "name label",
			text:     "RESUME 2024\nName: Wei Chen\nEngineer",
			expected: "Wei Chen",
		},
		{
			name:     "no name present",
			text:     "1234 5678 9012\n!!! ??? !!!\nx",
			expected: unknownCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractName(tt.text)
			if got != tt.expected {
				t.Errorf("extractName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSummaryTruncation(t *testing.T) {
	long := strings.Repeat("word ", 100)
	parsed := ParseText(long)
	if len(parsed.Summary) != 200 {
		t.Errorf("Summary length = %d, want 200", len(parsed.Summary))
	}
}

func TestSummaryTruncationMultiByte(t *testing.T) {
	long := strings.Repeat("currículum vítæ reseña ", 30)
	parsed := ParseText(long)

	if !utf8.ValidString(parsed.Summary) {
		t.Errorf("Summary is not valid UTF-8: %q", parsed.Summary)
	}
	if got := utf8.RuneCountInString(parsed.Summary); got != 200 {
		t.Errorf("Summary rune count = %d, want 200", got)
	}
}
