// ABOUTME: Selects and opens a Store backend by name
// ABOUTME: memory, sqlite, redis, or charm
package state

import (
	"context"
	"fmt"

	"github.com/harper/vegra/internal/charm"
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendCharm  = "charm"
)

// Options selects a backend and carries its settings
type Options struct {
	Backend    string
	SQLitePath string
	Redis      RedisConfig
	Charm      *charm.Config
}

// Open creates the configured store
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite state backend needs a path")
		}
		return OpenSQLite(opts.SQLitePath)
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	case BackendCharm:
		cfg := opts.Charm
		if cfg == nil {
			cfg = charm.DefaultConfig()
		}
		c, err := charm.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewCharmStore(c), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", opts.Backend)
	}
}
