package parser

import (
	"bytes"
	"strings"
	"testing"

	"fairhire360/internal/errors"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		expected Format
	}{
		{
			name:     "pdf extension",
			fileName: "resume.pdf",
			data:     []byte("anything"),
			expected: FormatPDF,
		},
		{
			name:     "docx extension",
			fileName: "resume.docx",
			data:     []byte("anything"),
			expected: FormatDOCX,
		},
		{
			name:     "legacy doc extension",
			fileName: "resume.doc",
			data:     []byte("anything"),
			expected: FormatDOCX,
		},
		{
			name:     "txt extension",
			fileName: "resume.txt",
			data:     []byte("plain text resume"),
			expected: FormatText,
		},
		{
			name:     "pdf magic without extension",
			fileName: "upload",
			data:     []byte("%PDF-1.4 rest of file"),
			expected: FormatPDF,
		},
		{
			name:     "zip magic without extension",
			fileName: "upload",
			data:     []byte{'P', 'K', 0x03, 0x04, 0x00},
			expected: FormatDOCX,
		},
		{
			name:     "printable ascii without extension",
			fileName: "upload",
			data:     []byte("Jane Doe\nSoftware Engineer\njane@example.com"),
			expected: FormatText,
		},
		{
			name:     "binary garbage without extension",
			fileName: "upload",
			data:     bytes.Repeat([]byte{0x00, 0xFF, 0x8A, 0x13}, 64),
			expected: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SniffFormat(tt.fileName, tt.data)
			if got != tt.expected {
				t.Errorf("SniffFormat() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractTextPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\nBT (Jane Doe) Tj (Software Engineer at Example) Tj ET\nBT [(jane@example.com) (555-123-4567)] TJ ET\nendobj")

	text, err := ExtractText("resume.pdf", pdf)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	for _, want := range []string{"Jane Doe", "Software Engineer", "jane@example.com"} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q: %s", want, text)
		}
	}
}

func TestExtractTextDOCX(t *testing.T) {
	docx := []byte(`PK` + "\x03\x04" + `<w:document><w:body><w:p><w:t>Jane Doe</w:t><w:t>Senior Developer with Python and SQL</w:t></w:p></w:body></w:document>`)

	text, err := ExtractText("resume.docx", docx)
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(text, "Jane Doe") {
		t.Errorf("extracted text missing name: %s", text)
	}
	if !strings.Contains(text, "Python") {
		t.Errorf("extracted text missing skill: %s", text)
	}
}

func TestExtractTextFailures(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
	}{
		{
			name:     "empty file",
			fileName: "resume.pdf",
			data:     nil,
		},
		{
			name:     "image-only pdf",
			fileName: "scan.pdf",
			data:     []byte("%PDF-1.4\nstream\x00\x01\x02endstream"),
		},
		{
			name:     "too short plain text",
			fileName: "resume.txt",
			data:     []byte("Jane"),
		},
		{
			name:     "random binary no extension",
			fileName: "upload",
			data:     bytes.Repeat([]byte{0x8F, 0x00, 0x42}, 100),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.fileName, tt.data)
			if err == nil {
				t.Fatal("expected parse error, got nil")
			}
			if !errors.IsParseError(err) {
				t.Errorf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestParseDocumentNeverFabricates(t *testing.T) {
	_, err := ParseDocument("empty.txt", []byte{})
	if err == nil {
		t.Fatal("expected parse error for empty document")
	}
	if !errors.IsParseError(err) {
		t.Errorf("expected ParseError, got %v", err)
	}
}
