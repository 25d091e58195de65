package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps seat selections between requests. A session that is not
// touched for ttl disappears.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess domain.SeatSession) error {
	const op = "redis.SessionStore.Save"

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if err := s.rdb.Set(ctx, KeySession(sess.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// Load returns repository.ErrNotFound for unknown or expired sessions.
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (domain.SeatSession, error) {
	const op = "redis.SessionStore.Load"

	b, err := s.rdb.Get(ctx, KeySession(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SeatSession{}, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	if err != nil {
		return domain.SeatSession{}, fmt.Errorf("%s:%w", op, err)
	}

	var sess domain.SeatSession
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.SeatSession{}, fmt.Errorf("%s:%w", op, err)
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, KeySession(id)).Err()
}
