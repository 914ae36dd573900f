// ABOUTME: Store on top of Charm KV so the last intent follows the user across machines
// ABOUTME: Values are JSON-encoded Sessions under session:<id>
package state

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harper/vegra/internal/charm"
	"github.com/harper/vegra/internal/models"
)

// KV is the subset of the charm client the store needs
type KV interface {
	SetJSON(key string, value interface{}) error
	GetJSON(key string, dest interface{}) error
	Delete(key string) error
	ListKeys(prefix string) ([]string, error)
	Close() error
}

// CharmStore persists sessions in a Charm KV database
type CharmStore struct {
	kv KV
}

// NewCharmStore wraps an opened KV, usually a *charm.Client
func NewCharmStore(kv KV) *CharmStore {
	return &CharmStore{kv: kv}
}

func (c *CharmStore) Get(_ context.Context, id string) (Session, error) {
	var sess Session
	err := c.kv.GetJSON(charm.SessionKey(id), &sess)
	if errors.Is(err, charm.ErrKeyNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("charm get: %w", err)
	}
	sess.ID = id
	return sess, nil
}

func (c *CharmStore) Set(_ context.Context, id string, tag models.Tag) error {
	sess := Session{ID: id, Tag: tag, UpdatedAt: time.Now().UTC()}
	if err := c.kv.SetJSON(charm.SessionKey(id), sess); err != nil {
		return fmt.Errorf("charm set: %w", err)
	}
	return nil
}

func (c *CharmStore) Delete(_ context.Context, id string) error {
	return c.kv.Delete(charm.SessionKey(id))
}

func (c *CharmStore) List(ctx context.Context) ([]Session, error) {
	keys, err := c.kv.ListKeys(charm.SessionPrefix)
	if err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(keys))
	for _, key := range keys {
		sess, err := c.Get(ctx, strings.TrimPrefix(key, charm.SessionPrefix))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *CharmStore) Close() error {
	return c.kv.Close()
}
