// ABOUTME: Multinomial naive Bayes intent model trained from catalog patterns
// ABOUTME: Persisted as JSON; a missing model file means the assistant is not trained
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/harper/vegra/internal/models"
)

const (
	// ModelVersion is bumped when the on-disk format changes
	ModelVersion = 1
	// MaxTokens caps how many words of an utterance are scored
	MaxTokens = 20
)

// Model holds word counts per tag. It is read-only once trained or loaded.
type Model struct {
	Version     int                           `json:"version"`
	Tags        []models.Tag                  `json:"tags"`
	Vocab       map[string]int                `json:"vocab"`
	DocCounts   map[models.Tag]int            `json:"doc_counts"`
	TokenCounts map[models.Tag]map[string]int `json:"token_counts"`
	TokenTotals map[models.Tag]int            `json:"token_totals"`
	Samples     int                           `json:"samples"`
}

// Train builds a model from every intent's patterns. Tags without patterns are never predicted.
func Train(catalog *models.Catalog) (*Model, error) {
	m := &Model{
		Version:     ModelVersion,
		Vocab:       make(map[string]int),
		DocCounts:   make(map[models.Tag]int),
		TokenCounts: make(map[models.Tag]map[string]int),
		TokenTotals: make(map[models.Tag]int),
	}
	if catalog == nil {
		return nil, ErrNoSamples
	}

	for _, intent := range catalog.Intents {
		for _, pattern := range intent.Patterns {
			if _, seen := m.DocCounts[intent.Tag]; !seen {
				m.Tags = append(m.Tags, intent.Tag)
				m.TokenCounts[intent.Tag] = make(map[string]int)
			}
			m.DocCounts[intent.Tag]++
			m.Samples++

			for _, tok := range capTokens(Tokenize(pattern)) {
				if _, ok := m.Vocab[tok]; !ok {
					m.Vocab[tok] = len(m.Vocab)
				}
				m.TokenCounts[intent.Tag][tok]++
				m.TokenTotals[intent.Tag]++
			}
		}
	}

	if m.Samples == 0 {
		return nil, ErrNoSamples
	}
	sort.Slice(m.Tags, func(i, j int) bool { return m.Tags[i] < m.Tags[j] })
	return m, nil
}

// Predict returns the most probable tag. Ties go to the tag that sorts first.
func (m *Model) Predict(text string) models.Tag {
	tokens := capTokens(Tokenize(text))
	vocabSize := float64(len(m.Vocab))

	var best models.Tag
	bestScore := math.Inf(-1)
	for _, tag := range m.Tags {
		score := math.Log(float64(m.DocCounts[tag]) / float64(m.Samples))
		denom := float64(m.TokenTotals[tag]) + vocabSize
		counts := m.TokenCounts[tag]
		for _, tok := range tokens {
			if _, known := m.Vocab[tok]; !known {
				continue
			}
			score += math.Log((float64(counts[tok]) + 1) / denom)
		}
		if score > bestScore {
			best, bestScore = tag, score
		}
	}
	return best
}

// Save writes the model as JSON, creating parent directories
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// LoadModel reads a model saved by Save. A missing file yields ErrNotTrained.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", ErrNotTrained, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}
	if m.Version != ModelVersion {
		return nil, fmt.Errorf("%w: model version %d, want %d", ErrNotTrained, m.Version, ModelVersion)
	}
	if m.Samples == 0 || len(m.Tags) == 0 {
		return nil, fmt.Errorf("%w: model is empty", ErrNotTrained)
	}
	return &m, nil
}

// Bayes adapts a Model to the assistant's classifier contract
type Bayes struct {
	model *Model
}

// NewBayes wraps a trained model. A nil model reports ErrNotTrained on every call.
func NewBayes(model *Model) *Bayes {
	return &Bayes{model: model}
}

// LoadBayes loads a model from disk
func LoadBayes(path string) (*Bayes, error) {
	m, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	return NewBayes(m), nil
}

// Predict implements the classifier contract
func (b *Bayes) Predict(_ context.Context, text string) (models.Tag, error) {
	if b == nil || b.model == nil {
		return "", ErrNotTrained
	}
	return b.model.Predict(text), nil
}

// Model returns the wrapped model
func (b *Bayes) Model() *Model {
	return b.model
}

func capTokens(tokens []string) []string {
	if len(tokens) > MaxTokens {
		return tokens[:MaxTokens]
	}
	return tokens
}
