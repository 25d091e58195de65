package httpgin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
)

const idemLockTTL = 60 * time.Second

// IdempotencyStore remembers the response of a write keyed by the client's
// Idempotency-Key header.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string, lockTTL time.Duration) (redisrepo.IdemState, string, error)
	SaveResult(ctx context.Context, key string, jsonPayload string) error
	Release(ctx context.Context, key string) error
}

// idempotent runs fn at most once per Idempotency-Key within scope and
// replays the stored response for repeats. Requests without the header,
// or a nil store, run fn directly.
func idempotent(
	c *gin.Context,
	store IdempotencyStore,
	scope string,
	status int,
	fn func(ctx context.Context) (any, error),
) {
	ctx := c.Request.Context()
	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

	if store == nil || key == "" {
		resp, err := fn(ctx)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(status, resp)
		return
	}

	storageKey := redisrepo.KeyIdem(scope, key)

	state, payload, err := store.Begin(ctx, storageKey, idemLockTTL)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.Header("Idempotency-Key", key)

	switch state {
	case redisrepo.IdemDone:
		c.Header("Idempotent-Replay", "true")
		c.Data(status, "application/json; charset=utf-8", []byte(payload))
		return
	case redisrepo.IdemInFlight:
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, ErrorResponse{Error: "request with this Idempotency-Key is in progress"})
		return
	}

	resp, err := fn(ctx)
	if err != nil {
		// Let the client retry with the same key.
		_ = store.Release(context.WithoutCancel(ctx), storageKey)
		respondErr(c, err)
		return
	}

	b, err := json.Marshal(resp)
	if err != nil {
		_ = store.Release(context.WithoutCancel(ctx), storageKey)
		respondErr(c, err)
		return
	}

	_ = store.SaveResult(context.WithoutCancel(ctx), storageKey, string(b))
	c.Data(status, "application/json; charset=utf-8", b)
}
