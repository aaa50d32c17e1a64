package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daschober/planesketch/pkg/scenefile"
)

// RedisConfig configures the Redis-backed session store.
type RedisConfig struct {
	Addr     string // host:port
	Password string // empty for no auth
	DB       int
	// KeyPrefix namespaces session keys; defaults to "planesketch:session:".
	KeyPrefix string
}

// RedisStore stores sessions in Redis with native TTL expiry.
// Scenes are serialized through the scenefile record format.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping %s: %v", ErrStoreUnavailable, cfg.Addr, err)
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "planesketch:session:"
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// record is the JSON shape stored in Redis.
type record struct {
	ID        string         `json:"id"`
	Scene     scenefile.File `json:"scene"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Get retrieves a session by id. Returns nil, nil when the key is
// missing (Redis already expires stale sessions natively).
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %v", ErrStoreUnavailable, err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", id, err)
	}
	sc, err := scenefile.ToScene(rec.Scene)
	if err != nil {
		return nil, fmt.Errorf("restore scene %s: %w", id, err)
	}
	return &Session{
		ID:        rec.ID,
		Scene:     sc,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Set stores a session with a TTL matching its expiry.
func (s *RedisStore) Set(ctx context.Context, sess *Session) error {
	rec := record{
		ID:        sess.ID,
		Scene:     scenefile.FromScene(sess.Scene),
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		ExpiresAt: sess.ExpiresAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.ID, err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Cleanup is a no-op: Redis expires sessions natively.
func (s *RedisStore) Cleanup(ctx context.Context) error {
	return nil
}
