// ABOUTME: Dispatcher turns a resolved intent into an action and a reply
// ABOUTME: Handles app launch, web search, clock, calendar, exit, and conversational tags
package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/metrics"
	"github.com/harper/vegra/internal/models"
	"go.uber.org/zap"
)

// Launcher performs side-effecting actions. Success means the spawn was attempted.
type Launcher interface {
	OpenApp(key string) bool
	SearchInBrowser(query string) bool
}

// Replier produces a free-form reply for conversational intents
type Replier interface {
	Reply(ctx context.Context, utterance string, tag models.Tag) (string, error)
}

// Chooser picks an index in [0, n)
type Chooser func(n int) int

// DispatcherOptions configures optional collaborators. Zero values select defaults.
type DispatcherOptions struct {
	Apps         []models.App
	Replier      Replier
	Choose       Chooser
	Now          func() time.Time
	MaxReplyLen  int
	ReplyTimeout time.Duration
}

// Dispatcher executes resolved intents
type Dispatcher struct {
	catalog  *models.Catalog
	rules    *Rules
	launcher Launcher
	apps     []models.App
	replier  Replier
	choose   Chooser
	now      func() time.Time

	maxReplyLen  int
	replyTimeout time.Duration
}

// NewDispatcher creates a Dispatcher over a loaded catalog
func NewDispatcher(catalog *models.Catalog, rules *Rules, launcher Launcher, opts DispatcherOptions) *Dispatcher {
	if rules == nil {
		rules = DefaultRules()
	}
	if opts.Apps == nil {
		opts.Apps = models.DefaultApps
	}
	if opts.Choose == nil {
		opts.Choose = rand.IntN
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if launcher == nil {
		launcher = noLauncher{}
	}
	return &Dispatcher{
		catalog:      catalog,
		rules:        rules,
		launcher:     launcher,
		apps:         opts.Apps,
		replier:      opts.Replier,
		choose:       opts.Choose,
		now:          opts.Now,
		maxReplyLen:  opts.MaxReplyLen,
		replyTimeout: opts.ReplyTimeout,
	}
}

// Dispatch performs the action for res and renders the reply
func (d *Dispatcher) Dispatch(ctx context.Context, utterance string, res models.Resolution) models.TurnResult {
	intent, ok := d.catalog.Lookup(res.Tag)
	if !ok {
		metrics.TurnsFailed.WithLabelValues("unknown_tag").Inc()
		logger.Log.Debug("tag not in catalog", zap.String("tag", string(res.Tag)))
		return models.TurnResult{Text: msgUnknownIntent}
	}

	switch res.Tag {
	case models.TagOpenApp:
		return d.openApp(utterance, intent)
	case models.TagSearch:
		return d.search(utterance, res, intent)
	case models.TagTime:
		text := strings.ReplaceAll(d.pick(intent), models.PlaceholderTime, FormatTime(d.now()))
		return models.TurnResult{Text: text, Tag: res.Tag}
	case models.TagDate:
		text := strings.ReplaceAll(d.pick(intent), models.PlaceholderDate, FormatDate(d.now()))
		return models.TurnResult{Text: text, Tag: res.Tag}
	case models.TagFarewell:
		return models.TurnResult{Text: d.pick(intent), Exit: true, Tag: res.Tag}
	default:
		return models.TurnResult{Text: d.converse(ctx, utterance, intent), Tag: res.Tag}
	}
}

func (d *Dispatcher) openApp(utterance string, intent *models.Intent) models.TurnResult {
	key, ok := ExtractAppName(utterance, d.apps)
	if !ok {
		return models.TurnResult{Text: msgWhichApp, Tag: intent.Tag}
	}
	if !d.launcher.OpenApp(key) {
		metrics.ActionFailures.WithLabelValues("open_app").Inc()
		logger.Log.Warn("app launch failed", zap.String("app", key))
		return models.TurnResult{Text: fmt.Sprintf(msgAppFailed, key), Tag: intent.Tag}
	}
	text := strings.ReplaceAll(d.pick(intent), models.PlaceholderApp, key)
	return models.TurnResult{Text: text, Tag: intent.Tag}
}

func (d *Dispatcher) search(utterance string, res models.Resolution, intent *models.Intent) models.TurnResult {
	query := res.QueryOverride
	if !res.HasOverride {
		query = d.rules.ExtractSearchQuery(utterance)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return models.TurnResult{Text: msgWhatToSearch, Tag: intent.Tag}
	}
	if !d.launcher.SearchInBrowser(query) {
		metrics.ActionFailures.WithLabelValues("search").Inc()
		logger.Log.Warn("web search failed", zap.String("query", query))
		return models.TurnResult{Text: msgBrowserFailed, Tag: intent.Tag}
	}
	text := strings.ReplaceAll(d.pick(intent), models.PlaceholderQuery, query)
	return models.TurnResult{Text: text, Tag: intent.Tag}
}

// converse tries the generative collaborator and falls back to a template on any failure
func (d *Dispatcher) converse(ctx context.Context, utterance string, intent *models.Intent) string {
	if d.replier != nil {
		rctx := ctx
		if d.replyTimeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, d.replyTimeout)
			defer cancel()
		}

		reply, err := d.replier.Reply(rctx, utterance, intent.Tag)
		if err != nil {
			logger.Log.Debug("generative reply failed", zap.Error(err))
		} else if text := TruncateReply(reply, d.maxReplyLen); text != "" {
			metrics.Replies.WithLabelValues("generative").Inc()
			return text
		}
	}
	metrics.Replies.WithLabelValues("template").Inc()
	return d.pick(intent)
}

// pick selects a random response template
func (d *Dispatcher) pick(intent *models.Intent) string {
	if len(intent.Responses) == 0 {
		return msgDefaultResponse
	}
	i := d.choose(len(intent.Responses))
	if i < 0 || i >= len(intent.Responses) {
		i = 0
	}
	return intent.Responses[i]
}

// noLauncher reports every action as failed
type noLauncher struct{}

func (noLauncher) OpenApp(string) bool         { return false }
func (noLauncher) SearchInBrowser(string) bool { return false }
