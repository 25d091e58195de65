package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	"github.com/kirinyoku/boxoffice/internal/service/query"
	"github.com/kirinyoku/boxoffice/internal/service/seating"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

type reservationRepo interface {
	HoldSeats(ctx context.Context, showtimeID int64, seats []domain.Coord, ttl time.Duration) (uuid.UUID, error)
	CommitHold(ctx context.Context, holdID uuid.UUID) ([]domain.Coord, error)
	CancelHold(ctx context.Context, holdID uuid.UUID) (int64, error)
	MarkSold(ctx context.Context, showtimeID int64, seats []domain.Coord) error
}

type bookingRepo interface {
	Insert(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error)
}

type queryRepo interface {
	LookupDiscount(ctx context.Context, code string) (*domain.Discount, error)
	GeneralAdmissionSold(ctx context.Context, showtimeID int64) (int, error)
	BookingByLocalID(ctx context.Context, localID string) (*domain.BookingRecord, error)
}

// repos hands out repositories bound to tx. A nil tx binds them to the pool.
type repos interface {
	Reservations(tx postgresrepo.DB) reservationRepo
	Bookings(tx postgresrepo.DB) bookingRepo
	Query(tx postgresrepo.DB) queryRepo
}

type txRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error) error
}

type sessions interface {
	Resume(ctx context.Context, id uuid.UUID) (seating.Live, error)
	Close(ctx context.Context, live *seating.Live) error
}

type catalog interface {
	Board(ctx context.Context, showtimeID int64) (query.Board, error)
	GetShowtime(ctx context.Context, id int64) (*domain.Showtime, error)
	Forget(showtimeID int64)
}

type showtimeCache interface {
	InvalidateShowtime(ctx context.Context, showtimeID int64) error
}

type showtimeFeed interface {
	PublishShowtimeChanged(ctx context.Context, showtimeID int64) error
}

type pgRepos struct {
	store *postgresrepo.Store
}

func (r pgRepos) Reservations(tx postgresrepo.DB) reservationRepo {
	return r.store.Reservations().With(tx)
}

func (r pgRepos) Bookings(tx postgresrepo.DB) bookingRepo {
	return r.store.Bookings().With(tx)
}

func (r pgRepos) Query(tx postgresrepo.DB) queryRepo {
	return r.store.Query().With(tx)
}
