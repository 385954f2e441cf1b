package ocr

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	pageNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*page\s*\d+\s*$`),    // "Page 1"
		regexp.MustCompile(`(?i)^\s*\d+\s*/\s*\d+\s*$`), // "1/5"
		regexp.MustCompile(`(?i)^\s*page\s*\d+\s*of\s*\d+\s*$`),
	}
	pricePattern    = regexp.MustCompile(`^[₹$€£]?\d*[.,]?\d+$`)
	spaceRun        = regexp.MustCompile(`[ \t]+`)
	blankLineRun    = regexp.MustCompile(`\n{3,}`)
	ocrGarbageRunes = []string{"\ufffd", "\f", "\u00a0"}
)

// Cleaner tidies OCR output before it is sent to the model. It is opt-in:
// the default pipeline forwards text verbatim.
type Cleaner struct {
	// MaxChars truncates the cleaned text when > 0.
	MaxChars int
}

// Clean drops page markers and noise lines, collapses whitespace and
// optionally truncates at a paragraph boundary.
func (c Cleaner) Clean(raw string) string {
	if raw == "" {
		return raw
	}

	text := raw
	for _, g := range ocrGarbageRunes {
		text = strings.ReplaceAll(text, g, " ")
	}
	text = removeNoiseLines(text)
	text = normalizeWhitespace(text)

	if c.MaxChars > 0 {
		text = truncateAtParagraph(text, c.MaxChars)
	}
	return text
}

func removeNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isPageMarker(trimmed) {
			continue
		}
		// very short fragments are usually specks, unless they look like a price
		if trimmed != "" && len([]rune(trimmed)) < 3 && !pricePattern.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

func isPageMarker(line string) bool {
	for _, p := range pageNumberPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	return blankLineRun.ReplaceAllString(text, "\n\n")
}

func truncateAtParagraph(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]

	if idx := strings.LastIndex(truncated, "\n\n"); idx > limit/2 {
		truncated = truncated[:idx]
	}
	return truncated
}
