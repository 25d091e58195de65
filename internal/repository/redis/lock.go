package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("resource is locked")

// Release only deletes the key if it still carries our token.
// KEYS[1] = key
// ARGV[1] = token
const luaRelease = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`

// Locker hands out short leases on named resources.
type Locker struct {
	rdb     *redis.Client
	release *redis.Script
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{
		rdb:     rdb,
		release: redis.NewScript(luaRelease),
	}
}

// Acquire takes the lease on key for ttl.
//
// Returns:
//   - string: the token to pass to Release.
//   - error: ErrLocked if someone else holds the lease.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrLocked
	}

	return token, nil
}

func (l *Locker) Release(ctx context.Context, key, token string) error {
	return l.release.Run(ctx, l.rdb, []string{key}, token).Err()
}
