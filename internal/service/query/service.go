package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

type Config struct {
	ShowtimeTTL     time.Duration
	ScreenTTL       time.Duration
	AvailabilityTTL time.Duration
	SeatMapTTL      time.Duration
	// StatusTTL bounds how stale an in-process status matrix may get when a
	// change notification is missed.
	StatusTTL        time.Duration
	DefaultPageLimit int
	MaxPageLimit     int
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config

	grids    sync.Map // screen id -> *seatmap.Grid
	statuses *statusCache
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ShowtimeTTL <= 0 {
		cfg.ShowtimeTTL = 60 * time.Second
	}

	if cfg.ScreenTTL <= 0 {
		cfg.ScreenTTL = 10 * time.Minute
	}

	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	if cfg.SeatMapTTL <= 0 {
		cfg.SeatMapTTL = 15 * time.Second
	}

	if cfg.StatusTTL <= 0 {
		cfg.StatusTTL = 2 * time.Second
	}

	if cfg.DefaultPageLimit <= 0 {
		cfg.DefaultPageLimit = 50
	}

	if cfg.MaxPageLimit <= 0 {
		cfg.MaxPageLimit = 200
	}

	return &Service{
		store:    store,
		cache:    cache,
		cfg:      cfg,
		statuses: newStatusCache(cfg.StatusTTL),
	}
}

// GetShowtime retrieves a showtime by its ID through the cache.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the showtime to retrieve.
//
// Returns:
//   - *domain.Showtime: the showtime.
//   - error: query.ErrShowtimeNotFound if the showtime does not exist.
func (s *Service) GetShowtime(ctx context.Context, id int64) (*domain.Showtime, error) {
	const op = "service.query.GetShowtime"

	st, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyShowtime(id),
		s.cfg.ShowtimeTTL,
		func(ctx context.Context) (domain.Showtime, error) {
			st, err := s.store.Query().GetShowtime(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Showtime{}, ErrShowtimeNotFound
				}

				return domain.Showtime{}, err
			}

			return *st, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &st, nil
}

// ListShowtimes pages through showtimes ordered by start time.
func (s *Service) ListShowtimes(ctx context.Context, limit, offset int) ([]domain.Showtime, error) {
	const op = "service.query.ListShowtimes"

	if limit <= 0 {
		limit = s.cfg.DefaultPageLimit
	}

	if limit > s.cfg.MaxPageLimit {
		limit = s.cfg.MaxPageLimit
	}

	if offset < 0 {
		offset = 0
	}

	out, err := s.store.Query().ListShowtimes(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *Service) GetScreen(ctx context.Context, id int64) (*domain.Screen, error) {
	const op = "service.query.GetScreen"

	sc, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyScreen(id),
		s.cfg.ScreenTTL,
		func(ctx context.Context) (domain.Screen, error) {
			sc, err := s.store.Query().GetScreen(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Screen{}, ErrScreenNotFound
				}

				return domain.Screen{}, err
			}

			return *sc, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sc, nil
}

func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "service.query.GetVenue"

	v, err := s.store.Query().GetVenue(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

// Board loads the grid and current seat statuses of a showtime.
//
// Parameters:
//   - ctx: request-scoped context.
//   - showtimeID: ID of the showtime.
//
// Returns:
//   - Board: the showtime with its grid and a fresh status matrix.
//   - error: query.ErrShowtimeNotFound if the showtime does not exist.
//   - error: query.ErrBrokenLayout if the stored layout is not a valid grid.
func (s *Service) Board(ctx context.Context, showtimeID int64) (Board, error) {
	const op = "service.query.Board"

	st, err := s.GetShowtime(ctx, showtimeID)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", op, err)
	}

	g, err := s.grid(ctx, st.ScreenID)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w", op, err)
	}

	statuses, ok := s.statuses.get(showtimeID, time.Now())
	if !ok {
		seats, err := s.store.Query().ShowtimeSeats(ctx, showtimeID)
		if err != nil {
			return Board{}, fmt.Errorf("%s: %w", op, err)
		}

		statuses = buildStatuses(g, seats)
		s.statuses.put(showtimeID, statuses, time.Now())
	}

	m, err := seatmap.NewStatusMatrix(g, statuses)
	if err != nil {
		return Board{}, fmt.Errorf("%s: %w: %w", op, ErrBrokenLayout, err)
	}

	return Board{Showtime: *st, Grid: g, Matrix: m}, nil
}

// SeatMap returns the rendered grid of a showtime with seat statuses.
func (s *Service) SeatMap(ctx context.Context, showtimeID int64) (*domain.SeatMapView, error) {
	const op = "service.query.SeatMap"

	view, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyShowtimeSeatMap(showtimeID),
		s.cfg.SeatMapTTL,
		func(ctx context.Context) (domain.SeatMapView, error) {
			b, err := s.Board(ctx, showtimeID)
			if err != nil {
				return domain.SeatMapView{}, err
			}

			return buildView(showtimeID, b.Grid, b.Matrix), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &view, nil
}

// CountsByStatus retrieves the count of seats by their status for a showtime.
//
// Parameters:
//   - ctx: request-scoped context.
//   - showtimeID: ID of the showtime.
//
// Returns:
//   - *domain.ShowtimeCounts: the seat counts.
//   - error: query.ErrShowtimeNotFound if the showtime does not exist.
func (s *Service) CountsByStatus(ctx context.Context, showtimeID int64) (*domain.ShowtimeCounts, error) {
	const op = "service.query.CountsByStatus"

	if _, err := s.GetShowtime(ctx, showtimeID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	counts, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisrepo.KeyShowtimeAvailability(showtimeID),
		s.cfg.AvailabilityTTL,
		func(ctx context.Context) (domain.ShowtimeCounts, error) {
			c, err := s.store.Query().CountsByStatus(ctx, showtimeID)
			if err != nil {
				return domain.ShowtimeCounts{}, err
			}

			return *c, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &counts, nil
}

// Forget drops the in-process statuses of a showtime.
func (s *Service) Forget(showtimeID int64) {
	s.statuses.forget(showtimeID)
}

// Grid builds (once per process) the seat grid of a screen.
func (s *Service) Grid(ctx context.Context, screenID int64) (*seatmap.Grid, error) {
	return s.grid(ctx, screenID)
}

func (s *Service) grid(ctx context.Context, screenID int64) (*seatmap.Grid, error) {
	if g, ok := s.grids.Load(screenID); ok {
		return g.(*seatmap.Grid), nil
	}

	sc, err := s.GetScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}

	g, err := seatmap.NewGrid(sc.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: screen %d: %w", ErrBrokenLayout, screenID, err)
	}

	actual, _ := s.grids.LoadOrStore(screenID, g)

	return actual.(*seatmap.Grid), nil
}
