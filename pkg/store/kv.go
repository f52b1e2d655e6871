package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waleedan253-cmd/Moxiepro/pkg/domain"
)

// KV is the narrow key-value contract the data layer is built on.
// A zero TTL means the key never expires.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Update re-reads key inside an optimistic transaction, applies fn to the
	// current value and writes the result. It retries on concurrent writers.
	Update(ctx context.Context, key string, ttl time.Duration, fn func(current string, found bool) (string, error)) error
}

// RedisKV implements KV on a shared Redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an existing Redis client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get returns the string value at key, reporting presence separately.
func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", domain.ErrDatabase, key, err)
	}
	return val, true, nil
}

// Set writes value at key with an optional TTL.
func (s *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", domain.ErrDatabase, key, err)
	}
	return nil
}

const updateRetries = 5

// Update applies a WATCH/MULTI read-modify-write so concurrent writers to the
// same key cannot lose updates.
func (s *RedisKV) Update(ctx context.Context, key string, ttl time.Duration, fn func(current string, found bool) (string, error)) error {
	txn := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			current, found = "", false
		} else if err != nil {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < updateRetries; i++ {
		err = s.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			return err
		}
		return fmt.Errorf("%w: update %s: %v", domain.ErrDatabase, key, err)
	}
	return nil
}

// NormalizeURL produces the canonical cache key form of a profile URL:
// lower-cased, scheme and www. stripped, trailing slash and query removed.
// Two submissions are the same profile iff they normalize identically.
func NormalizeURL(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return strings.TrimSuffix(u, "/")
}
