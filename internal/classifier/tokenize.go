// ABOUTME: Tokenizer shared by training and prediction
// ABOUTME: Lower-cased runs of Latin or Cyrillic letters and digits
package classifier

import (
	"regexp"
	"strings"
)

// EmptyToken stands in for input that has no word characters
const EmptyToken = "<пусто>"

var wordPattern = regexp.MustCompile(`[a-zа-яё0-9]+`)

// Tokenize splits text into lower-case words. It never returns an empty slice.
func Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(strings.TrimSpace(text)), -1)
	if len(words) == 0 {
		return []string{EmptyToken}
	}
	return words
}
