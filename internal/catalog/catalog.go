// ABOUTME: Loads the intent catalog from JSON or YAML, or the built-in default
// ABOUTME: Returned catalogs are indexed and safe to share between goroutines
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/vegra/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyCatalog means the file parsed but had no intents
	ErrEmptyCatalog = errors.New("intent catalog is empty")
	// ErrUnsupportedFormat means the file extension is not .json, .yaml or .yml
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

//go:embed intents.json
var defaultIntents []byte

// Default returns the built-in Russian catalog
func Default() (*models.Catalog, error) {
	return Parse(defaultIntents, ".json")
}

// Load reads a catalog file. An empty path selects the built-in catalog.
func Load(path string) (*models.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog data by extension and validates it
func Parse(data []byte, ext string) (*models.Catalog, error) {
	var c models.Catalog
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := Validate(&c); err != nil {
		return nil, err
	}
	c.Index()
	return &c, nil
}

// Validate rejects empty catalogs and intents without a tag
func Validate(c *models.Catalog) error {
	if c == nil || len(c.Intents) == 0 {
		return ErrEmptyCatalog
	}
	for i, in := range c.Intents {
		if strings.TrimSpace(string(in.Tag)) == "" {
			return fmt.Errorf("intent %d has no tag", i)
		}
	}
	return nil
}

// Write saves a catalog in the format implied by the path's extension
func Write(path string, c *models.Catalog) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
