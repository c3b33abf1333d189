package services

import (
	"html"
	"regexp"
	"strings"
)

const maxInputLength = 5000

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// SanitizeUserText strips HTML markup, decodes entities, collapses
// whitespace, and caps the length so the pipeline always receives a plain
// text string. Returns "" when nothing remains.
func SanitizeUserText(text string) string {
	text = htmlTagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if len(text) > maxInputLength {
		text = text[:maxInputLength]
	}
	return text
}
