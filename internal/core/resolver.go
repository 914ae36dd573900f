// ABOUTME: Resolver implements the ordered intent resolution cascade
// ABOUTME: Follow-up, implicit search, search command, open app, then classifier fallback
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/vegra/internal/models"
)

// Classifier maps free text to a catalog tag
type Classifier interface {
	Predict(ctx context.Context, text string) (models.Tag, error)
}

// Resolver decides which intent a turn carries.
// It holds no per-conversation state; the previous tag is passed in on every call.
type Resolver struct {
	rules      *Rules
	classifier Classifier
}

// NewResolver creates a Resolver. A nil rules value selects DefaultRules.
func NewResolver(rules *Rules, classifier Classifier) *Resolver {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Resolver{
		rules:      rules,
		classifier: classifier,
	}
}

// Rules returns the rule tables the resolver matches against
func (r *Resolver) Rules() *Rules {
	return r.rules
}

// Resolve runs the cascade for one utterance. The first matching stage wins.
// Only the classifier stage can fail.
func (r *Resolver) Resolve(ctx context.Context, utterance string, previous models.Tag) (models.Resolution, error) {
	t := normalize(utterance)

	// Stage 1: follow-up continuation of a previous search
	if previous == models.TagSearch {
		if rest, ok := r.rules.matchFollowUp(t); ok && r.acceptFollowUp(rest) {
			return models.Resolution{
				Tag:           models.TagSearch,
				Stage:         models.StageFollowUp,
				QueryOverride: rest,
				HasOverride:   true,
			}, nil
		}
	}

	// Stage 2: task description searched verbatim
	if r.rules.isImplicitSearch(t) {
		return models.Resolution{
			Tag:           models.TagSearch,
			Stage:         models.StageImplicitSearch,
			QueryOverride: strings.TrimSpace(utterance),
			HasOverride:   true,
		}, nil
	}

	// Stage 3: explicit search command, query extracted later
	if r.rules.isSearchCommand(t) {
		return models.Resolution{Tag: models.TagSearch, Stage: models.StageSearchCommand}, nil
	}

	// Stage 4: explicit open-app command
	if r.rules.isOpenApp(t) {
		return models.Resolution{Tag: models.TagOpenApp, Stage: models.StageOpenApp}, nil
	}

	// Stage 5: classifier fallback
	if r.classifier == nil {
		return models.Resolution{Stage: models.StageClassifier}, fmt.Errorf("no classifier configured")
	}
	tag, err := r.classifier.Predict(ctx, utterance)
	if err != nil {
		return models.Resolution{Stage: models.StageClassifier}, fmt.Errorf("classifier: %w", err)
	}
	return models.Resolution{Tag: tag, Stage: models.StageClassifier}, nil
}

// acceptFollowUp rejects near-empty remainders and bare acknowledgements
func (r *Resolver) acceptFollowUp(rest string) bool {
	if len([]rune(rest)) < minFollowUpLen {
		return false
	}
	return !r.rules.IsShortReply(rest)
}
