package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	htmlTagRegex        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	unsafeFilenameRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)
)

// StripHTML removes tags and unescapes entities.
func StripHTML(s string) string {
	return html.UnescapeString(htmlTagRegex.ReplaceAllString(s, ""))
}

// NormalizeWhitespace collapses whitespace runs into single spaces.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Preview renders a single-line plain-text excerpt of at most max runes,
// ending with an ellipsis when cut.
func Preview(s string, isHTML bool, max int) string {
	if isHTML {
		s = StripHTML(s)
	}
	s = NormalizeWhitespace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// TextToHTML escapes plain text and turns line breaks into <br> tags.
func TextToHTML(s string) string {
	s = html.EscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return strings.ReplaceAll(s, "\n", "<br>\n")
}

// SanitizeFilename keeps [a-zA-Z0-9-_.], maps spaces to underscores,
// lower-cases, and truncates to 100 bytes. Empty results become fallback.
func SanitizeFilename(s, fallback string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameRegex.ReplaceAllString(s, "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = fallback
	}
	return strings.ToLower(s)
}
