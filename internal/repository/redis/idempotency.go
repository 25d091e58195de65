package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemLock   = "LOCK"
	idemResult = "RES:"
)

type IdemState int

const (
	// IdemAcquired means the caller owns the key and must save a result or
	// release it.
	IdemAcquired IdemState = iota
	// IdemInFlight means another request with the same key is still running.
	IdemInFlight
	// IdemDone means a result was already stored for the key.
	IdemDone
)

type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// Begin claims key for lockTTL. When the key already holds a result it is
// returned as is.
//
// Returns:
//   - IdemState: whether the caller owns the key, must wait, or can replay.
//   - string: the stored JSON payload when the state is IdemDone.
//   - error: if redis fails.
func (s *IdempotencyStore) Begin(ctx context.Context, key string, lockTTL time.Duration) (IdemState, string, error) {
	ok, err := s.rdb.SetNX(ctx, key, idemLock, lockTTL).Result()
	if err != nil {
		return 0, "", err
	}
	if ok {
		return IdemAcquired, "", nil
	}

	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		// The lock expired between the two calls.
		return s.Begin(ctx, key, lockTTL)
	}
	if err != nil {
		return 0, "", err
	}

	if payload, ok := strings.CutPrefix(v, idemResult); ok {
		return IdemDone, payload, nil
	}

	return IdemInFlight, "", nil
}

func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, jsonPayload string) error {
	return s.rdb.Set(ctx, key, idemResult+jsonPayload, s.ttl).Err()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
