package prompt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultExcerptBudget is the number of characters of reference material
// embedded into the structure prompt.
const DefaultExcerptBudget = 8000

// TruncationMarker is appended when reference material was cut.
const TruncationMarker = "\n[... reference material truncated ...]"

// Excerpt bounds reference text to budget runes. The cut falls on the last
// whitespace before the budget so no word is split; text without whitespace
// is cut at the budget itself.
func Excerpt(text string, budget int) string {
	text = strings.TrimSpace(text)
	if budget <= 0 {
		budget = DefaultExcerptBudget
	}
	if utf8.RuneCountInString(text) <= budget {
		return text
	}

	runes := []rune(text)[:budget]
	cut := len(runes)
	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace) + TruncationMarker
}
