package parser

import (
	"path/filepath"
	"regexp"
	"strings"

	"fairhire360/internal/errors"
	"fairhire360/internal/types"
)

// Format identifies the document container a resume arrived in.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatText    Format = "text"
	FormatUnknown Format = "unknown"
)

// minExtractedLength is the floor below which extracted text is treated as
// unusable. Shorter output almost always means an image-only scan or a
// corrupt container.
const minExtractedLength = 20

var (
	pdfTextObjectRe = regexp.MustCompile(`(?s)BT.*?ET`)
	pdfTjRe         = regexp.MustCompile(`\(([^)]*)\)\s*Tj`)
	pdfTJArrayRe    = regexp.MustCompile(`\[(.*?)\]\s*TJ`)
	pdfParenRe      = regexp.MustCompile(`\(([^)]*)\)`)
	pdfReadableRe   = regexp.MustCompile(`[A-Za-z][A-Za-z\s,.@\-()0-9]{10,}`)

	docxTextRe = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	xmlTagRe   = regexp.MustCompile(`<[^>]+>`)

	nonPrintableRe = regexp.MustCompile(`[^\x20-\x7E\n]`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

// SniffFormat determines the document format from the file name extension,
// falling back to magic bytes when the extension is unhelpful.
func SniffFormat(fileName string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return FormatPDF
	case ".docx", ".doc":
		return FormatDOCX
	case ".txt", ".text", ".md":
		return FormatText
	}
	if len(data) >= 4 {
		if string(data[:4]) == "%PDF" {
			return FormatPDF
		}
		if data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04 {
			return FormatDOCX
		}
	}
	if looksLikeText(data) {
		return FormatText
	}
	return FormatUnknown
}

// looksLikeText reports whether the byte stream is predominantly printable
// ASCII, which is good enough to treat an extension-less upload as plain text.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	printable := 0
	for _, b := range sample {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7F) {
			printable++
		}
	}
	return printable*10 >= len(sample)*9
}

// ExtractText pulls raw text out of a resume document. It never fabricates
// content: when the document yields less than minExtractedLength characters
// the caller gets a parse error, not an empty transcript.
func ExtractText(fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.NewParseError(errors.ErrCodeEmptyDocument,
			"document is empty", nil).WithContext("file", fileName)
	}

	var text string
	switch SniffFormat(fileName, data) {
	case FormatPDF:
		text = extractPDF(data)
	case FormatDOCX:
		text = extractDOCX(data)
	case FormatText:
		text = string(data)
	default:
		return "", errors.NewParseError(errors.ErrCodeUnsupportedFormat,
			"unsupported document format", nil).WithContext("file", fileName)
	}

	if len(strings.TrimSpace(text)) < minExtractedLength {
		return "", errors.NewParseError(errors.ErrCodeEmptyDocument,
			"could not extract text from document, the file may be image-based", nil).
			WithContext("file", fileName)
	}

	return text, nil
}

// extractPDF scrapes text-showing operators out of a PDF byte stream. This is
// deliberately approximate: Tj and TJ operands inside BT/ET text objects,
// plus a readable-ASCII sweep for uncompressed content streams.
func extractPDF(data []byte) string {
	src := string(data)
	var b strings.Builder

	for _, obj := range pdfTextObjectRe.FindAllString(src, -1) {
		for _, tj := range pdfTjRe.FindAllStringSubmatch(obj, -1) {
			b.WriteString(tj[1])
			b.WriteByte(' ')
		}
		for _, arr := range pdfTJArrayRe.FindAllStringSubmatch(obj, -1) {
			for _, part := range pdfParenRe.FindAllStringSubmatch(arr[1], -1) {
				b.WriteString(part[1])
				b.WriteByte(' ')
			}
		}
	}

	for _, chunk := range pdfReadableRe.FindAllString(src, -1) {
		if strings.Contains(chunk, "stream") ||
			strings.Contains(chunk, "endobj") ||
			strings.Contains(chunk, "xref") {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(chunk)
	}

	text := b.String()
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\r`, "")
	return cleanupText(text)
}

// extractDOCX reads <w:t> runs out of the document XML. When the runs yield
// too little (the XML part may be deflate-compressed inside the ZIP) it
// falls back to stripping tags from whatever readable text is present.
func extractDOCX(data []byte) string {
	src := string(data)

	var parts []string
	for _, m := range docxTextRe.FindAllStringSubmatch(src, -1) {
		parts = append(parts, m[1])
	}
	text := strings.Join(parts, " ")

	if len(text) < 50 {
		text = xmlTagRe.ReplaceAllString(src, " ")
		text = nonPrintableRe.ReplaceAllString(text, " ")
		text = cleanupText(text)
	}

	return text
}

func cleanupText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// ParseDocument extracts text from the document and runs the field
// heuristics over it, producing a complete ParsedResume.
func ParseDocument(fileName string, data []byte) (*types.ParsedResume, error) {
	text, err := ExtractText(fileName, data)
	if err != nil {
		return nil, err
	}
	return ParseText(text), nil
}
