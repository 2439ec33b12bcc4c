package services

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// plainText strips every tag; free-text fields are rendered as text, never as markup
var plainText = bluemonday.StrictPolicy()

// SanitizeText strips markup from user-entered text and truncates it to maxLen runes.
// maxLen <= 0 disables truncation.
func SanitizeText(value string, maxLen int) string {
	cleaned := strings.TrimSpace(html.UnescapeString(plainText.Sanitize(value)))
	if maxLen > 0 && utf8.RuneCountInString(cleaned) > maxLen {
		cleaned = string([]rune(cleaned)[:maxLen])
	}
	return cleaned
}
