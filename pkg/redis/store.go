package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifykit/pkg/kvstore"
)

// Store implements kvstore.Store on top of a Redis client.
type Store struct {
	db     redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ kvstore.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix namespaces every key.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires every written key after ttl. Zero means no expiration.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewStore wraps client.
func NewStore(client redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{db: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", kvstore.ErrNotFound
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.db.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.Del(ctx, s.prefix+key).Err()
}

// Conn returns the underlying client.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}
