package reservation

import (
	"context"
	"fmt"
	"log/slog"

	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
)

type forgetter interface {
	Forget(showtimeID int64)
}

// Service reclaims seat leases that were never paid for.
type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.ShowtimesPubSub
	local  forgetter
	log    *slog.Logger
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.ShowtimesPubSub,
	local forgetter,
	log *slog.Logger,
) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		local:  local,
		log:    log,
	}
}

// Expire releases all seat leases that have exceeded their TTL.
//
// Parameters:
//   - ctx: request-scoped context.
//
// Returns:
//   - int64: the number of released seats.
//   - error: if the expiration fails.
func (s *Service) Expire(ctx context.Context) (int64, error) {
	const op = "service.reservation.Expire"

	showtimes, released, err := s.store.Reservations().ExpireHolds(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	for _, id := range showtimes {
		s.local.Forget(id)
		_ = s.cache.InvalidateShowtime(ctx, id)
		_ = s.pubsub.PublishShowtimeChanged(ctx, id)
	}

	if released > 0 {
		s.log.Info("expired seat leases",
			slog.Int64("released", released),
			slog.Int("showtimes", len(showtimes)),
		)
	}

	return released, nil
}
