// ABOUTME: Redis-backed Store for servers running several replicas
// ABOUTME: Sessions are JSON values under a key prefix with an optional TTL
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/util"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys
const DefaultRedisPrefix = "vegra:session:"

// RedisConfig configures the Redis store
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Prefix   string
	// TTL expires idle sessions; zero keeps them forever
	TTL time.Duration
}

// RedisStore keeps sessions in Redis
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

type redisSession struct {
	Tag       models.Tag `json:"tag"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const (
	connectAttempts = 3
	connectBackoff  = 200 * time.Millisecond
)

// NewRedisStore connects and pings the server, retrying while it starts up
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ping := func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	if err := util.Retry(ctx, connectAttempts, connectBackoff, ping); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return newRedisStore(rdb, cfg), nil
}

func newRedisStore(rdb *redis.Client, cfg RedisConfig) *RedisStore {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: rdb, prefix: prefix, ttl: cfg.TTL}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return Session{ID: id, Tag: rs.Tag, UpdatedAt: rs.UpdatedAt}, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, tag models.Tag) error {
	data, err := json.Marshal(redisSession{Tag: tag, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context) ([]Session, error) {
	var out []Session
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id := strings.TrimPrefix(iter.Val(), r.prefix)
		sess, err := r.Get(ctx, id)
		if errors.Is(err, ErrNotFound) {
			// expired between SCAN and GET
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisStore) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
