// ABOUTME: Classifier backend that asks a chat model to pick a catalog tag
// ABOUTME: Answers outside the catalog are rejected with ErrUnknownTag
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/vegra/internal/models"
)

// examplesPerTag bounds how many patterns are shown per tag in the prompt
const examplesPerTag = 3

// Completer is a single-shot chat completion
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// LLM classifies by prompting a language model with the catalog's tags
type LLM struct {
	completer Completer
	tags      []models.Tag
	prompt    string
}

// NewLLM builds the classification prompt from the catalog
func NewLLM(completer Completer, catalog *models.Catalog) (*LLM, error) {
	if catalog == nil || len(catalog.Intents) == 0 {
		return nil, ErrNotTrained
	}

	var b strings.Builder
	b.WriteString("Определи намерение пользователя голосового помощника.\n")
	b.WriteString("Ответь ровно одним тегом из списка, без пояснений.\n\nТеги:\n")
	for _, intent := range catalog.Intents {
		b.WriteString("- ")
		b.WriteString(string(intent.Tag))
		if n := min(len(intent.Patterns), examplesPerTag); n > 0 {
			b.WriteString(" (например: ")
			b.WriteString(strings.Join(intent.Patterns[:n], "; "))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}

	return &LLM{
		completer: completer,
		tags:      catalog.Tags(),
		prompt:    b.String(),
	}, nil
}

// Prompt returns the system prompt sent with every request
func (l *LLM) Prompt() string {
	return l.prompt
}

// Predict implements the classifier contract
func (l *LLM) Predict(ctx context.Context, text string) (models.Tag, error) {
	answer, err := l.completer.Complete(ctx, l.prompt, text)
	if err != nil {
		return "", fmt.Errorf("llm classify: %w", err)
	}
	if tag, ok := l.match(answer); ok {
		return tag, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTag, answer)
}

// match accepts an exact tag or the longest tag mentioned in a chatty answer
func (l *LLM) match(answer string) (models.Tag, bool) {
	clean := strings.ToLower(strings.Trim(strings.TrimSpace(answer), "\"'`.«» "))
	for _, tag := range l.tags {
		if string(tag) == clean {
			return tag, true
		}
	}

	var best models.Tag
	for _, tag := range l.tags {
		if strings.Contains(clean, string(tag)) && len(tag) > len(best) {
			best = tag
		}
	}
	return best, best != ""
}
