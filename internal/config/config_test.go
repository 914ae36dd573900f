// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies defaults, YAML files, environment overrides, and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/vegra/internal/models"
)

// isolate points XDG paths and the working directory at a temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Classifier.Backend != "bayes" {
		t.Errorf("Classifier.Backend = %s, want bayes", cfg.Classifier.Backend)
	}
	if cfg.LLM.Enabled {
		t.Error("LLM.Enabled = true, want false")
	}
	if cfg.LLM.Model != "llama3.2" {
		t.Errorf("LLM.Model = %s, want llama3.2", cfg.LLM.Model)
	}
	if cfg.LLM.MaxLength != 600 {
		t.Errorf("LLM.MaxLength = %d, want 600", cfg.LLM.MaxLength)
	}
	if cfg.LLM.Timeout != 30*time.Second {
		t.Errorf("LLM.Timeout = %v, want 30s", cfg.LLM.Timeout)
	}
	if cfg.State.Backend != "sqlite" {
		t.Errorf("State.Backend = %s, want sqlite", cfg.State.Backend)
	}
	if cfg.ModelPath != filepath.Join(cfg.DataDir, "model.json") {
		t.Errorf("ModelPath = %s, want under DataDir", cfg.ModelPath)
	}
	if cfg.State.SQLitePath != filepath.Join(cfg.DataDir, "state.db") {
		t.Errorf("State.SQLitePath = %s, want under DataDir", cfg.State.SQLitePath)
	}
	if len(cfg.Apps) != len(models.DefaultApps) {
		t.Errorf("len(Apps) = %d, want %d", len(cfg.Apps), len(models.DefaultApps))
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("VEGRA_LLM_ENABLED", "true")
	t.Setenv("VEGRA_LLM_BACKEND", "openai")
	t.Setenv("VEGRA_LLM_TIMEOUT", "5s")
	t.Setenv("VEGRA_STATE_BACKEND", "redis")
	t.Setenv("VEGRA_STATE_REDIS_ADDRESS", "redis:6380")
	t.Setenv("VEGRA_DATA_DIR", "/tmp/vegra-test")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.LLM.Enabled {
		t.Error("LLM.Enabled = false, want true")
	}
	if cfg.LLM.Backend != "openai" {
		t.Errorf("LLM.Backend = %s, want openai", cfg.LLM.Backend)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("LLM.Timeout = %v, want 5s", cfg.LLM.Timeout)
	}
	if cfg.State.Redis.Address != "redis:6380" {
		t.Errorf("State.Redis.Address = %s, want redis:6380", cfg.State.Redis.Address)
	}
	if cfg.ModelPath != "/tmp/vegra-test/model.json" {
		t.Errorf("ModelPath = %s, want /tmp/vegra-test/model.json", cfg.ModelPath)
	}
	if cfg.LLM.APIKey != "sk-test" {
		t.Errorf("LLM.APIKey = %q, want OPENAI_API_KEY fallback", cfg.LLM.APIKey)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	yaml := `
catalog_path: /etc/vegra/intents.yaml
search_url: https://yandex.ru/search/?text={query}
apps:
  - key: Терминал
    command: gnome-terminal
llm:
  enabled: true
  max_length: 200
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.CatalogPath != "/etc/vegra/intents.yaml" {
		t.Errorf("CatalogPath = %s", cfg.CatalogPath)
	}
	if len(cfg.Apps) != 1 || cfg.Apps[0].Key != "терминал" || cfg.Apps[0].Command != "gnome-terminal" {
		t.Errorf("Apps = %+v, want one lower-cased terminal entry", cfg.Apps)
	}
	if cfg.LLM.MaxLength != 200 {
		t.Errorf("LLM.MaxLength = %d, want 200", cfg.LLM.MaxLength)
	}
	if cfg.LLM.Model != "llama3.2" {
		t.Errorf("LLM.Model = %s, default should survive partial file", cfg.LLM.Model)
	}
}

func TestLoad_VegraYAMLInWorkingDir(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "vegra.yaml"), []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	isolate(t)
	if _, err := LoadFile("/nonexistent/vegra.yaml"); err == nil {
		t.Error("LoadFile() with missing explicit path should fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SearchURL:  "https://example.com/?q={query}",
			Classifier: ClassifierConfig{Backend: "bayes"},
			LLM:        LLMConfig{Backend: "ollama", MaxLength: 600},
			State:      StateConfig{Backend: "memory"},
			Apps:       []models.App{{Key: "блокнот", Command: "notepad"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad classifier", func(c *Config) { c.Classifier.Backend = "svm" }, true},
		{"bad llm backend", func(c *Config) { c.LLM.Backend = "bard" }, true},
		{"bad state backend", func(c *Config) { c.State.Backend = "etcd" }, true},
		{"negative max length", func(c *Config) { c.LLM.MaxLength = -1 }, true},
		{"search url without placeholder", func(c *Config) { c.SearchURL = "https://example.com" }, true},
		{"app without command", func(c *Config) { c.Apps = []models.App{{Key: "x"}} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
