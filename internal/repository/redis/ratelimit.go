package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sliding window over a sorted set scored by hit time in ms. A rejected hit
// is removed again so retrying while blocked does not extend the block.
//
// KEYS[1] window key
// ARGV    now_ms, window_ms, limit, member
// returns {allowed 0|1, hits in window, retry_after_ms}
const luaSlidingWindow = `
local key    = KEYS[1]
local now    = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit  = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)

local hits = redis.call('ZCARD', key)
if hits <= limit then
  return {1, hits, 0}
end

redis.call('ZREM', key, ARGV[4])
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local wait = window
if oldest[2] then
  wait = window - (now - tonumber(oldest[2]))
end
if wait < 0 then wait = 0 end
return {0, hits - 1, wait}
`

// SlidingWindowLimiter allows at most limit hits per window for each caller
// id within scope.
type SlidingWindowLimiter struct {
	rdb    *redis.Client
	scope  string
	limit  int
	window time.Duration
	script *redis.Script
}

func NewSlidingWindowLimiter(
	rdb *redis.Client,
	scope string,
	limit int,
	window time.Duration,
) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		script: redis.NewScript(luaSlidingWindow),
	}
}

// Allow records a hit for id.
//
// Returns:
//   - allowed: whether the hit fits in the window.
//   - current: hits counted in the window, the rejected one excluded.
//   - retryAfter: how long until a slot frees up when not allowed.
//   - err: if redis fails or the script answers something unexpected.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, id string) (allowed bool, current int64, retryAfter time.Duration, err error) {
	const op = "redis.SlidingWindowLimiter.Allow"

	now := time.Now()
	member := strconv.FormatInt(now.UnixNano(), 36) + "-" + randomHex(6)

	res, err := l.script.Run(
		ctx,
		l.rdb,
		[]string{KeyRateLimit(l.scope, id)},
		now.UnixMilli(), l.window.Milliseconds(), l.limit, member,
	).Slice()
	if err != nil {
		return false, 0, 0, fmt.Errorf("%s:%w", op, err)
	}

	if len(res) != 3 {
		return false, 0, 0, fmt.Errorf("%s: unexpected script result %v", op, res)
	}

	return toInt(res[0]) == 1, toInt(res[1]), time.Duration(toInt(res[2])) * time.Millisecond, nil
}

// toInt reads an integer reply. Scripts answer int64, mocks may not.
func toInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		x, _ := strconv.ParseInt(t, 10, 64)
		return x
	default:
		return 0
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
