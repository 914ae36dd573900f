// ABOUTME: Slot extractors deriving an app key or a search query from raw text
// ABOUTME: Pure functions, independent of which resolution stage produced the intent
package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/harper/vegra/internal/models"
)

// ExtractAppName returns the longest app key contained in text.
// Equal-length matches resolve to the earlier table entry.
func ExtractAppName(text string, apps []models.App) (string, bool) {
	t := normalize(text)
	best, bestLen := "", 0
	for _, app := range apps {
		if app.Key == "" || !strings.Contains(t, app.Key) {
			continue
		}
		if n := utf8.RuneCountInString(app.Key); n > bestLen {
			best, bestLen = app.Key, n
		}
	}
	return best, bestLen > 0
}

// queryLeadTrim is stripped between a trigger and the query ("найди, пожалуйста, ...")
const queryLeadTrim = " \t,.:;!?-"

// ExtractSearchQuery strips the longest matching search trigger from the start of text.
// Without a trigger the whole trimmed text is the query.
func (r *Rules) ExtractSearchQuery(text string) string {
	t := strings.TrimSpace(text)
	for _, tr := range r.searchByLength {
		if rest, ok := cutPrefixFold(t, tr); ok {
			return strings.TrimSpace(strings.TrimLeft(rest, queryLeadTrim))
		}
	}
	return t
}

// cutPrefixFold is a case-insensitive strings.CutPrefix
func cutPrefixFold(s, prefix string) (string, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return "", false
		}
		sr, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(sr) != unicode.ToLower(pr) {
			return "", false
		}
		i += size
	}
	return s[i:], true
}
