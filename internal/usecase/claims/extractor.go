package claims

import (
	"fmt"
	"strings"
	"unicode"

	"vetfile-api/internal/domain/entity"

	"github.com/ledongthuc/pdf"
)

type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract returns the text content of one stored file. It never returns an
// error: a file that cannot be parsed contributes an inline diagnostic
// section instead, so one bad document does not block the rest of the batch.
func (te *TextExtractor) Extract(file entity.FileRecord) string {
	switch file.MediaType {
	case "application/pdf":
		text, err := te.extractFromPDF(file.Path)
		if err != nil {
			return fmt.Sprintf("[Error extracting text from %s: %v]", file.OriginalName, err)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Sprintf("[No text content extracted from %s]", file.OriginalName)
		}
		return normalizeWhitespace(text)
	case "image/jpeg", "image/png":
		return fmt.Sprintf("[Image document %s: content requires OCR or manual review]", file.OriginalName)
	default:
		return fmt.Sprintf("[Unsupported file type %s for %s]", file.MediaType, file.OriginalName)
	}
}

func (te *TextExtractor) extractFromPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var fullText strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		fullText.WriteString(text)
		fullText.WriteString("\n")
	}

	return fullText.String(), nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(text string) string {
	var result strings.Builder
	prevSpace := false

	for _, r := range strings.TrimSpace(text) {
		if unicode.IsSpace(r) {
			if !prevSpace {
				result.WriteRune(' ')
				prevSpace = true
			}
		} else {
			result.WriteRune(r)
			prevSpace = false
		}
	}

	return result.String()
}
