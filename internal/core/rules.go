// ABOUTME: Lexical rule tables that pre-empt the classifier
// ABOUTME: Prefix tables per stage plus the short-reply blocklist for follow-ups
package core

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minFollowUpLen is the shortest remainder (in runes) accepted as a follow-up query
const minFollowUpLen = 2

// Rules holds every trigger table the resolver consults. Tables are read-only after construction.
type Rules struct {
	// FollowUpPrefixes continue a previous search ("а теперь смартфон")
	FollowUpPrefixes []string
	// ImplicitSearchPrefixes are task descriptions searched verbatim
	ImplicitSearchPrefixes []string
	// SearchTriggers are explicit search verbs; also stripped during query extraction
	SearchTriggers []string
	// OpenAppPrefixes are imperative launch verbs
	OpenAppPrefixes []string
	// ShortReplies never become follow-up queries
	ShortReplies map[string]struct{}

	// searchByLength is SearchTriggers sorted longest first
	searchByLength []string
}

// DefaultRules returns the built-in Russian rule tables
func DefaultRules() *Rules {
	return NewRules(
		[]string{"а теперь ", "теперь ", "и ещё ", "ещё ", "а ещё ", "и еще ", "еще ", "а еще "},
		[]string{
			"как сделать", "как приготовить", "как починить", "как установить",
			"как настроить", "рецепт ", "инструкция ", "где купить", "сколько стоит ",
		},
		[]string{
			"найди в интернете",
			"поищи в интернете",
			"найди в гугл",
			"поищи в гугле",
			"найди в браузере",
			"открой в браузере",
			"поиск в интернете",
			"найди в яндексе",
			"поищи в яндексе",
			"найди мне",
			"найдите",
			"найди",
			"поищите",
			"поискать",
			"поищи",
			"загуглить",
			"загугли",
			"погуглить",
			"погугли",
			"поиск",
		},
		[]string{"открой ", "запусти ", "включи "},
		[]string{
			"да", "нет", "ок", "окей", "ага", "угу", "ладно", "хорошо",
			"понятно", "ясно", "спасибо", "отлично", "супер", "круто", "давай",
		},
	)
}

// NewRules builds a rule set. Phrases are lower-cased; prefix tables keep their trailing spaces.
func NewRules(followUp, implicit, search, openApp, shortReplies []string) *Rules {
	r := &Rules{
		FollowUpPrefixes:       lowerAll(followUp),
		ImplicitSearchPrefixes: lowerAll(implicit),
		SearchTriggers:         lowerAll(search),
		OpenAppPrefixes:        lowerAll(openApp),
		ShortReplies:           make(map[string]struct{}, len(shortReplies)),
	}
	for _, s := range shortReplies {
		r.ShortReplies[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	r.searchByLength = append([]string(nil), r.SearchTriggers...)
	sort.SliceStable(r.searchByLength, func(i, j int) bool {
		return utf8.RuneCountInString(r.searchByLength[i]) > utf8.RuneCountInString(r.searchByLength[j])
	})
	return r
}

// IsShortReply reports whether s is a bare acknowledgement
func (r *Rules) IsShortReply(s string) bool {
	_, ok := r.ShortReplies[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// matchFollowUp returns the remainder after a continuation prefix
func (r *Rules) matchFollowUp(normalized string) (string, bool) {
	for _, p := range r.FollowUpPrefixes {
		if strings.HasPrefix(normalized, p) {
			return strings.TrimSpace(normalized[len(p):]), true
		}
	}
	return "", false
}

func (r *Rules) isImplicitSearch(normalized string) bool {
	return hasAnyPrefix(normalized, r.ImplicitSearchPrefixes)
}

func (r *Rules) isSearchCommand(normalized string) bool {
	return hasAnyPrefix(normalized, r.SearchTriggers)
}

func (r *Rules) isOpenApp(normalized string) bool {
	return hasAnyPrefix(normalized, r.OpenAppPrefixes)
}

// normalize case-folds and trims an utterance for matching
func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
