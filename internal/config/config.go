// ABOUTME: Centralized configuration for the vegra assistant
// ABOUTME: Defaults, optional vegra.yaml, .env, and VEGRA_* environment overrides via viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/harper/vegra/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. VEGRA_LLM_ENABLED
const EnvPrefix = "VEGRA"

// Config holds all configuration for the assistant
type Config struct {
	DataDir     string       `mapstructure:"data_dir"`
	CatalogPath string       `mapstructure:"catalog_path"`
	ModelPath   string       `mapstructure:"model_path"`
	SearchURL   string       `mapstructure:"search_url"`
	Apps        []models.App `mapstructure:"apps"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	Classifier ClassifierConfig `mapstructure:"classifier"`
	LLM        LLMConfig        `mapstructure:"llm"`
	State      StateConfig      `mapstructure:"state"`
	Server     ServerConfig     `mapstructure:"server"`
}

// ClassifierConfig selects the intent classifier
type ClassifierConfig struct {
	// Backend is "bayes" (trained model file) or "llm"
	Backend string `mapstructure:"backend"`
}

// LLMConfig configures generative replies and the llm classifier
type LLMConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Backend is "ollama" (native API) or "openai" (any OpenAI-compatible endpoint)
	Backend     string        `mapstructure:"backend"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	MaxLength   int           `mapstructure:"max_length"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// StateConfig selects where the last intent per session is kept
type StateConfig struct {
	Backend    string      `mapstructure:"backend"`
	SQLitePath string      `mapstructure:"sqlite_path"`
	Redis      RedisConfig `mapstructure:"redis"`
	Charm      CharmConfig `mapstructure:"charm"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CharmConfig holds Charm KV settings
type CharmConfig struct {
	Host     string `mapstructure:"host"`
	DBName   string `mapstructure:"db"`
	AutoSync bool   `mapstructure:"auto_sync"`
}

// ServerConfig configures the HTTP skill endpoint
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration from the default locations
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration, using path as the config file when non-empty.
// Without a path, vegra.yaml is looked up in the working directory and the XDG config home.
func LoadFile(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vegra")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "vegra"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDerived(&cfg)

	return &cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", filepath.Join(xdg.DataHome, "vegra"))
	v.SetDefault("catalog_path", "")
	v.SetDefault("model_path", "")
	v.SetDefault("search_url", "https://www.google.com/search?q={query}")
	v.SetDefault("apps", models.DefaultApps)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetDefault("classifier.backend", "bayes")

	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.backend", "ollama")
	v.SetDefault("llm.model", "llama3.2")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.max_length", 600)
	v.SetDefault("llm.max_tokens", 300)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("state.backend", "sqlite")
	v.SetDefault("state.sqlite_path", "")
	v.SetDefault("state.redis.address", "localhost:6379")
	v.SetDefault("state.redis.password", "")
	v.SetDefault("state.redis.db", 0)
	v.SetDefault("state.redis.ttl", 24*time.Hour)
	v.SetDefault("state.charm.host", "charm.2389.dev")
	v.SetDefault("state.charm.db", "vegra")
	v.SetDefault("state.charm.auto_sync", true)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
}

// applyDerived fills paths that depend on other settings
func applyDerived(c *Config) {
	if c.ModelPath == "" {
		c.ModelPath = filepath.Join(c.DataDir, "model.json")
	}
	if c.State.SQLitePath == "" {
		c.State.SQLitePath = filepath.Join(c.DataDir, "state.db")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	apps := make([]models.App, len(c.Apps))
	for i, a := range c.Apps {
		apps[i] = models.App{Key: strings.ToLower(strings.TrimSpace(a.Key)), Command: a.Command}
	}
	c.Apps = apps
}

func (c *Config) Validate() error {
	switch c.Classifier.Backend {
	case "bayes", "llm":
	default:
		return fmt.Errorf("classifier.backend must be bayes or llm, got %q", c.Classifier.Backend)
	}
	switch c.LLM.Backend {
	case "ollama", "openai":
	default:
		return fmt.Errorf("llm.backend must be ollama or openai, got %q", c.LLM.Backend)
	}
	switch c.State.Backend {
	case "memory", "sqlite", "redis", "charm":
	default:
		return fmt.Errorf("state.backend must be memory, sqlite, redis or charm, got %q", c.State.Backend)
	}
	if c.LLM.MaxLength < 0 {
		return fmt.Errorf("llm.max_length must be >= 0, got %d", c.LLM.MaxLength)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must be >= 0, got %v", c.LLM.Timeout)
	}
	if !strings.Contains(c.SearchURL, "{query}") {
		return fmt.Errorf("search_url must contain {query}, got %q", c.SearchURL)
	}
	for i, a := range c.Apps {
		if a.Key == "" || a.Command == "" {
			return fmt.Errorf("apps[%d] needs both key and command", i)
		}
	}
	return nil
}
