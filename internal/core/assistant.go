// ABOUTME: Assistant is the single per-turn entry point used by every orchestrator
// ABOUTME: Runs resolution then dispatch and never returns an error to the caller
package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harper/vegra/internal/classifier"
	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/metrics"
	"github.com/harper/vegra/internal/models"
	"go.uber.org/zap"
)

// Options bundles the optional parts of an Assistant
type Options struct {
	Rules *Rules
	DispatcherOptions
}

// Assistant wires a Resolver to a Dispatcher
type Assistant struct {
	catalog    *models.Catalog
	resolver   *Resolver
	dispatcher *Dispatcher
}

// NewAssistant creates an Assistant. The catalog must already be loaded.
func NewAssistant(catalog *models.Catalog, cls Classifier, launcher Launcher, opts Options) *Assistant {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &Assistant{
		catalog:    catalog,
		resolver:   NewResolver(rules, cls),
		dispatcher: NewDispatcher(catalog, rules, launcher, opts.DispatcherOptions),
	}
}

// Catalog returns the intent catalog the assistant answers from
func (a *Assistant) Catalog() *models.Catalog {
	return a.catalog
}

// ResolveAndRespond processes one utterance given the previous turn's tag.
// The returned Tag should be passed back as previous on the next call.
func (a *Assistant) ResolveAndRespond(ctx context.Context, utterance string, previous models.Tag) models.TurnResult {
	if strings.TrimSpace(utterance) == "" {
		metrics.TurnsFailed.WithLabelValues("empty").Inc()
		return models.TurnResult{Text: msgNotHeard, Tag: previous}
	}

	start := time.Now()
	res, err := a.resolver.Resolve(ctx, utterance, previous)
	if err != nil {
		if errors.Is(err, classifier.ErrNotTrained) {
			metrics.TurnsFailed.WithLabelValues("not_trained").Inc()
			logger.Log.Error("classifier has no model", zap.Error(err))
			return models.TurnResult{Text: NotTrainedText}
		}
		metrics.TurnsFailed.WithLabelValues("classifier").Inc()
		logger.Log.Warn("intent resolution failed", zap.Error(err))
		return models.TurnResult{Text: msgUnknownIntent}
	}

	logger.Log.Debug("intent resolved",
		zap.String("stage", string(res.Stage)),
		zap.String("tag", string(res.Tag)),
		zap.Bool("override", res.HasOverride),
	)

	result := a.dispatcher.Dispatch(ctx, utterance, res)
	if result.HasTag() {
		metrics.TurnsResolved.WithLabelValues(string(res.Stage), string(result.Tag)).Inc()
	}
	metrics.TurnDuration.WithLabelValues(string(res.Stage)).Observe(time.Since(start).Seconds())
	return result
}
