package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/boxoffice/internal/domain"
)

type AdminRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AdminRepo) With(db DB) *AdminRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AdminRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *AdminRepo) CreateVenue(
	ctx context.Context,
	name string,
	fullDayPrice, perHourPrice int,
) (int64, error) {
	const op = "postgres.AdminRepo.CreateVenue"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO venues(name, full_day_price, per_hour_price)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, fullDayPrice, perHourPrice,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// CreateScreen stores a screen and its layout. The layout is expected to be
// validated already.
func (r *AdminRepo) CreateScreen(
	ctx context.Context,
	venueID int64,
	name string,
	layout domain.SeatLayout,
) (int64, error) {
	const op = "postgres.AdminRepo.CreateScreen"

	b, err := json.Marshal(layout)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO screens(venue_id, name, layout)
		 VALUES ($1, $2, $3::jsonb)
		 RETURNING id`,
		venueID, name, b,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *AdminRepo) CreateShowtime(
	ctx context.Context,
	screenID int64,
	title string,
	startsAt time.Time,
	gaPrice, gaCapacity int,
) (int64, error) {
	const op = "postgres.AdminRepo.CreateShowtime"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO showtimes(screen_id, title, starts_at, ga_price, ga_capacity)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		screenID, title, startsAt, gaPrice, gaCapacity,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

// InitShowtimeSeats creates one available status row per seat.
func (r *AdminRepo) InitShowtimeSeats(
	ctx context.Context,
	showtimeID int64,
	seats []domain.Coord,
) error {
	const op = "postgres.AdminRepo.InitShowtimeSeats"

	db := r.handle()

	batch := &pgx.Batch{}
	for _, at := range seats {
		batch.Queue(
			`INSERT INTO showtime_seats(showtime_id, seat_row, seat_col, status)
			 VALUES ($1, $2, $3, 'available')
			 ON CONFLICT (showtime_id, seat_row, seat_col) DO NOTHING`,
			showtimeID, at.Row, at.Col,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *AdminRepo) UpsertDiscount(ctx context.Context, d domain.Discount) error {
	const op = "postgres.AdminRepo.UpsertDiscount"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO discounts(code, amount, type, active)
		 VALUES ($1, $2, $3, TRUE)
		 ON CONFLICT (code) DO UPDATE
		 SET amount = EXCLUDED.amount, type = EXCLUDED.type, active = TRUE`,
		d.Code, d.Amount, string(d.Type),
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
