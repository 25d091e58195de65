package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
)

// ReservationRepo leases seats between checkout and payment. A lease moves
// seats from available to held; committing it moves them to sold.
type ReservationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReservationRepo) With(db DB) *ReservationRepo {
	cp := *r
	cp.db = db
	return &cp
}

// inTx runs fn on the bound transaction, or in a fresh serializable one.
func (r *ReservationRepo) inTx(ctx context.Context, fn func(db DB) error) error {
	if r.db != nil {
		return fn(r.db)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// HoldSeats leases seats of a showtime.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - showtimeID: showtime the seats belong to.
//   - seats: grid coordinates to lease.
//   - ttl: how long the lease lives before the expiry sweep reclaims it.
//
// Returns:
//   - uuid.UUID: the hold ID when every seat was leased.
//   - error: repository.ErrSeatsUnavailable if any seat is held or sold.
func (r *ReservationRepo) HoldSeats(
	ctx context.Context,
	showtimeID int64,
	seats []domain.Coord,
	ttl time.Duration,
) (uuid.UUID, error) {
	const op = "postgres.ReservationRepo.HoldSeats"

	var holdID uuid.UUID
	err := r.inTx(ctx, func(db DB) error {
		var err error
		holdID, err = r.holdSeatsCore(ctx, db, showtimeID, seats, ttl)
		return err
	})
	if err != nil {
		return uuid.Nil, wrapDBErr(op, err)
	}

	return holdID, nil
}

// CommitHold turns a live hold into sold seats.
//
// Returns:
//   - []domain.Coord: the seats that were sold.
//   - error: repository.ErrHoldExpired if the hold is gone or timed out.
//   - error: repository.ErrNothingToConfirm if the hold has no seats left.
func (r *ReservationRepo) CommitHold(ctx context.Context, holdID uuid.UUID) ([]domain.Coord, error) {
	const op = "postgres.ReservationRepo.CommitHold"

	var sold []domain.Coord
	err := r.inTx(ctx, func(db DB) error {
		var err error
		sold, err = r.commitHoldCore(ctx, db, holdID)
		return err
	})
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return sold, nil
}

// CancelHold returns a hold's seats to sale.
//
// Returns:
//   - int64: the showtime the hold belonged to.
//   - error: repository.ErrHoldNotFound if the hold does not exist.
func (r *ReservationRepo) CancelHold(ctx context.Context, holdID uuid.UUID) (int64, error) {
	const op = "postgres.ReservationRepo.CancelHold"

	var showtimeID int64
	err := r.inTx(ctx, func(db DB) error {
		var err error
		showtimeID, err = r.cancelHoldCore(ctx, db, holdID)
		return err
	})
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return showtimeID, nil
}

// MarkSold sells seats directly without a lease. Offline box office sales
// use it when they are replayed.
//
// Returns:
//   - error: repository.ErrSeatsUnavailable if any seat is held or sold.
func (r *ReservationRepo) MarkSold(ctx context.Context, showtimeID int64, seats []domain.Coord) error {
	const op = "postgres.ReservationRepo.MarkSold"

	err := r.inTx(ctx, func(db DB) error {
		rows, cols := splitCoords(seats)

		tag, err := db.Exec(ctx,
			`UPDATE showtime_seats s
			 SET status = 'sold', hold_id = NULL, hold_expires_at = NULL
			 FROM unnest($2::int[], $3::int[]) AS c(seat_row, seat_col)
			 WHERE s.showtime_id = $1
			   AND s.seat_row = c.seat_row
			   AND s.seat_col = c.seat_col
			   AND (s.status = 'available'
			        OR (s.status = 'held' AND s.hold_expires_at <= now()))`,
			showtimeID, rows, cols,
		)
		if err != nil {
			return err
		}

		if int(tag.RowsAffected()) != len(seats) {
			return repository.ErrSeatsUnavailable
		}

		return nil
	})
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ExpireHolds releases every lease past its expiry.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//
// Returns:
//   - []int64: showtimes that had seats released.
//   - int64: the number of seats released.
//   - error: if any error occurs while expiring holds.
func (r *ReservationRepo) ExpireHolds(ctx context.Context) ([]int64, int64, error) {
	const op = "postgres.ReservationRepo.ExpireHolds"

	var (
		showtimes []int64
		released  int64
	)

	err := r.inTx(ctx, func(db DB) error {
		rows, err := db.Query(ctx,
			`WITH released AS (
			     UPDATE showtime_seats
			     SET status = 'available', hold_id = NULL, hold_expires_at = NULL
			     WHERE status = 'held' AND hold_expires_at <= now()
			     RETURNING showtime_id
			 )
			 SELECT showtime_id, count(*) FROM released GROUP BY showtime_id`,
		)
		if err != nil {
			return err
		}

		defer rows.Close()

		for rows.Next() {
			var id, n int64
			if err := rows.Scan(&id, &n); err != nil {
				return err
			}
			showtimes = append(showtimes, id)
			released += n
		}
		if err := rows.Err(); err != nil {
			return err
		}

		_, err = db.Exec(ctx, `DELETE FROM holds WHERE expires_at <= now()`)
		return err
	})
	if err != nil {
		return nil, 0, wrapDBErr(op, err)
	}

	return showtimes, released, nil
}

func (r *ReservationRepo) holdSeatsCore(
	ctx context.Context,
	db DB,
	showtimeID int64,
	seats []domain.Coord,
	ttl time.Duration,
) (uuid.UUID, error) {
	const op = "postgres.ReservationRepo.holdSeatsCore"

	if len(seats) == 0 {
		return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrNothingToConfirm)
	}

	holdID := uuid.New()
	expires := time.Now().Add(ttl)

	if _, err := db.Exec(ctx,
		`INSERT INTO holds(id, showtime_id, expires_at)
		 VALUES ($1, $2, $3)`,
		holdID, showtimeID, expires,
	); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	rows, cols := splitCoords(seats)

	tag, err := db.Exec(ctx,
		`UPDATE showtime_seats s
		 SET status = 'held', hold_id = $4, hold_expires_at = $5
		 FROM unnest($2::int[], $3::int[]) AS c(seat_row, seat_col)
		 WHERE s.showtime_id = $1
		   AND s.seat_row = c.seat_row
		   AND s.seat_col = c.seat_col
		   AND (s.status = 'available'
		        OR (s.status = 'held' AND s.hold_expires_at <= now()))`,
		showtimeID, rows, cols, holdID, expires,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if int(tag.RowsAffected()) != len(seats) {
		return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrSeatsUnavailable)
	}

	return holdID, nil
}

func (r *ReservationRepo) commitHoldCore(ctx context.Context, db DB, holdID uuid.UUID) ([]domain.Coord, error) {
	const op = "postgres.ReservationRepo.commitHoldCore"

	var showtimeID int64
	if err := db.QueryRow(ctx,
		`SELECT showtime_id
		 FROM holds
		 WHERE id = $1 AND expires_at > now()`,
		holdID,
	).Scan(&showtimeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s:%w", op, repository.ErrHoldExpired)
		}
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	rows, err := db.Query(ctx,
		`UPDATE showtime_seats
		 SET status = 'sold', hold_id = NULL, hold_expires_at = NULL
		 WHERE hold_id = $1 AND status = 'held'
		 RETURNING seat_row, seat_col`,
		holdID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var sold []domain.Coord
	for rows.Next() {
		var at domain.Coord
		if err := rows.Scan(&at.Row, &at.Col); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		sold = append(sold, at)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if len(sold) == 0 {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNothingToConfirm)
	}

	if _, err := db.Exec(ctx, `DELETE FROM holds WHERE id = $1`, holdID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return sold, nil
}

func (r *ReservationRepo) cancelHoldCore(ctx context.Context, db DB, holdID uuid.UUID) (int64, error) {
	const op = "postgres.ReservationRepo.cancelHoldCore"

	var showtimeID int64
	if err := db.QueryRow(ctx,
		`DELETE FROM holds WHERE id = $1 RETURNING showtime_id`,
		holdID,
	).Scan(&showtimeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s:%w", op, repository.ErrHoldNotFound)
		}
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if _, err := db.Exec(ctx,
		`UPDATE showtime_seats
		 SET status = 'available', hold_id = NULL, hold_expires_at = NULL
		 WHERE hold_id = $1 AND status = 'held'`,
		holdID,
	); err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return showtimeID, nil
}

func splitCoords(seats []domain.Coord) (rows, cols []int32) {
	rows = make([]int32, len(seats))
	cols = make([]int32, len(seats))
	for i, at := range seats {
		rows[i] = int32(at.Row)
		cols[i] = int32(at.Col)
	}
	return rows, cols
}
