// ABOUTME: Store persists the last resolved intent tag per conversation
// ABOUTME: That single tag is the only state carried between turns
package state

import (
	"context"
	"errors"
	"time"

	"github.com/harper/vegra/internal/models"
)

// ErrNotFound is returned for sessions that have never been saved
var ErrNotFound = errors.New("session not found")

// Session is the stored conversational state for one session id
type Session struct {
	ID        string     `json:"id"`
	Tag       models.Tag `json:"tag"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Store is implemented by every backend
type Store interface {
	// Get returns ErrNotFound for unknown sessions
	Get(ctx context.Context, id string) (Session, error)
	// Set replaces the session's tag. An empty tag clears it but keeps the session.
	Set(ctx context.Context, id string, tag models.Tag) error
	Delete(ctx context.Context, id string) error
	// List returns sessions ordered by id
	List(ctx context.Context) ([]Session, error)
	Close() error
}

// PreviousTag returns the stored tag, or empty for a new session
func PreviousTag(ctx context.Context, s Store, id string) (models.Tag, error) {
	sess, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return sess.Tag, nil
}
