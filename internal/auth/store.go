package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stwalsh4118/rentdesk/internal/config"
)

// TokenStore remembers revoked token ids until the token would have expired.
type TokenStore interface {
	// Revoke marks id as revoked until expiresAt.
	Revoke(ctx context.Context, id string, expiresAt time.Time) error

	// IsRevoked reports whether id was revoked and has not yet expired.
	IsRevoked(ctx context.Context, id string) (bool, error)

	Close() error
}

// NewTokenStore returns a redis-backed store when an address is configured
// and an in-process store otherwise.
func NewTokenStore(ctx context.Context, cfg config.RedisConfig) (TokenStore, error) {
	if cfg.Addr == "" {
		return NewMemoryTokenStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisTokenStore(client), nil
}

const revokedKeyPrefix = "rentdesk:revoked:"

// RedisTokenStore keeps revoked ids as expiring redis keys.
type RedisTokenStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisTokenStore wraps an existing redis client.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client, now: time.Now}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

// MemoryTokenStore is a TokenStore for single-instance deployments and tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenStore creates an empty in-process store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, k)
		}
	}
	if expiresAt.After(now) {
		s.revoked[id] = expiresAt
	}
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if !exp.After(s.now()) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Close() error {
	return nil
}
