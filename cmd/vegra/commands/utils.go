// ABOUTME: Shared wiring for CLI commands
// ABOUTME: Builds the assistant, its collaborators, and the state store from config
package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harper/vegra/internal/catalog"
	"github.com/harper/vegra/internal/charm"
	"github.com/harper/vegra/internal/classifier"
	"github.com/harper/vegra/internal/config"
	"github.com/harper/vegra/internal/core"
	"github.com/harper/vegra/internal/launcher"
	"github.com/harper/vegra/internal/llm"
	"github.com/harper/vegra/internal/logger"
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/state"
	"go.uber.org/zap"
)

// generator is what both LLM clients provide
type generator interface {
	classifier.Completer
	core.Replier
	Model() string
}

// runtime bundles everything a turn-running command needs
type runtime struct {
	cfg       *config.Config
	catalog   *models.Catalog
	assistant *core.Assistant
	// trained is false when the bag-of-words model is missing
	trained bool
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildRuntime loads config, catalog and classifier and assembles the assistant.
// A missing model is not an error here; callers decide whether to fail.
func buildRuntime() (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var gen generator
	if cfg.LLM.Enabled || cfg.Classifier.Backend == "llm" {
		gen, err = newGenerator(cfg)
		if err != nil {
			return nil, fmt.Errorf("initializing LLM client: %w", err)
		}
	}

	cls, trained, err := newClassifier(cfg, cat, gen)
	if err != nil {
		return nil, err
	}

	opts := core.Options{
		DispatcherOptions: core.DispatcherOptions{
			Apps:         cfg.Apps,
			MaxReplyLen:  cfg.LLM.MaxLength,
			ReplyTimeout: cfg.LLM.Timeout,
		},
	}
	if cfg.LLM.Enabled {
		opts.Replier = gen
		logger.Log.Debug("generative replies enabled",
			zap.String("backend", cfg.LLM.Backend),
			zap.String("model", gen.Model()),
		)
	}

	return &runtime{
		cfg:       cfg,
		catalog:   cat,
		assistant: core.NewAssistant(cat, cls, launcher.New(cfg.Apps, cfg.SearchURL), opts),
		trained:   trained,
	}, nil
}

func newGenerator(cfg *config.Config) (generator, error) {
	switch cfg.LLM.Backend {
	case "openai":
		cc := llm.DefaultConfig(cfg.LLM.APIKey)
		cc.BaseURL = cfg.LLM.BaseURL
		if cfg.LLM.Model != "" {
			cc.ChatModel = cfg.LLM.Model
		}
		cc.Temperature = cfg.LLM.Temperature
		cc.MaxTokens = cfg.LLM.MaxTokens
		return llm.NewOpenAIClientWithConfig(cc)
	default:
		return llm.NewOllamaClient(llm.OllamaConfig{
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}), nil
	}
}

// newClassifier returns the configured backend and whether it is ready
func newClassifier(cfg *config.Config, cat *models.Catalog, gen generator) (core.Classifier, bool, error) {
	if cfg.Classifier.Backend == "llm" {
		c, err := classifier.NewLLM(gen, cat)
		if err != nil {
			return nil, false, fmt.Errorf("initializing LLM classifier: %w", err)
		}
		return c, true, nil
	}

	b, err := classifier.LoadBayes(cfg.ModelPath)
	if errors.Is(err, classifier.ErrNotTrained) {
		logger.Log.Warn("no trained model", zap.String("path", cfg.ModelPath))
		return classifier.NewBayes(nil), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading model: %w", err)
	}
	return b, true, nil
}

func openStore(ctx context.Context, cfg *config.Config) (state.Store, error) {
	store, err := state.Open(ctx, state.Options{
		Backend:    cfg.State.Backend,
		SQLitePath: cfg.State.SQLitePath,
		Redis: state.RedisConfig{
			Address:  cfg.State.Redis.Address,
			Password: cfg.State.Redis.Password,
			DB:       cfg.State.Redis.DB,
			TTL:      cfg.State.Redis.TTL,
		},
		Charm: charmConfig(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s state store: %w", cfg.State.Backend, err)
	}
	return store, nil
}

func charmConfig(cfg *config.Config) *charm.Config {
	return &charm.Config{
		Host:     cfg.State.Charm.Host,
		DBName:   cfg.State.Charm.DBName,
		AutoSync: cfg.State.Charm.AutoSync,
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// useJSON reports whether --format asks for JSON output
func useJSON() bool {
	return format == "json"
}
