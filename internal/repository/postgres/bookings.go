package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/boxoffice/internal/domain"
)

// BookingRepo is the booking store. It assigns identity to assembled
// records and persists them unchanged.
type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Insert stores a booking record with its ticket lines and, for venue
// bookings, the occupied range.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - rec: an assembled record without identity. A zero CreatedAt means now;
//     offline sales keep the time they were made.
//
// Returns:
//   - domain.BookingRecord: the record with ID and CreatedAt assigned.
//   - error: repository.ErrConflict if the local id was already synced.
func (r *BookingRepo) Insert(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error) {
	const op = "postgres.BookingRepo.Insert"

	db := r.handle()

	rec.ID = uuid.New()

	var (
		localID   *string
		venueID   *int64
		venueDate *string
		venueKind *string
		startTime *string
		hours     *int
		createdAt *time.Time
	)
	if rec.LocalID != "" {
		localID = &rec.LocalID
	}
	if !rec.CreatedAt.IsZero() {
		createdAt = &rec.CreatedAt
	}
	if v := rec.Venue; v != nil {
		venueID = &v.VenueID
		venueDate = &v.Date
		kind := string(v.Kind)
		venueKind = &kind
		if v.Kind == domain.VenuePerHour {
			startTime = &v.StartTime
			hours = &v.Hours
		}
	}

	err := db.QueryRow(ctx,
		`INSERT INTO bookings(
		     id, local_id, kind, showtime_id, venue_id, venue_date, venue_kind, start_time, hours,
		     total_price, discount_code, discount_amount, amount_due,
		     user_id, guest_name, guest_phone, guest_email,
		     payment_method, payment_ref, sync_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9,
		         $10, $11, $12, $13,
		         $14, $15, $16, $17,
		         $18, $19, $20, COALESCE($21::timestamptz, now()))
		 RETURNING created_at`,
		rec.ID, localID, string(rec.Kind), rec.ShowtimeID, venueID, venueDate, venueKind, startTime, hours,
		rec.TotalPrice, rec.DiscountCode, rec.DiscountAmount, rec.AmountDue,
		rec.Buyer.UserID, rec.Buyer.GuestName, rec.Buyer.GuestPhone, rec.Buyer.GuestEmail,
		string(rec.PaymentMethod), rec.PaymentRef, string(rec.SyncStatus), createdAt,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return domain.BookingRecord{}, wrapDBErr(op, err)
	}

	batch := &pgx.Batch{}
	for i, t := range rec.Tickets {
		var (
			label    *string
			row, col *int
		)
		if t.SeatLabel != "" {
			l := t.SeatLabel
			label = &l
		}
		if t.Seat != nil {
			rr, cc := t.Seat.Row, t.Seat.Col
			row, col = &rr, &cc
		}
		batch.Queue(
			`INSERT INTO booking_tickets(id, booking_id, position, category_name, price, quantity, seat_label, seat_row, seat_col)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.New(), rec.ID, i, t.CategoryName, t.Price, t.Quantity, label, row, col,
		)
	}

	if v := rec.Venue; v != nil {
		batch.Queue(
			`INSERT INTO venue_bookings(id, booking_id, venue_id, date, kind, start_time, hours_booked)
			 VALUES ($1, $2, $3, $4::date, $5, $6, $7)`,
			uuid.New(), rec.ID, v.VenueID, v.Date, string(v.Kind), startTime, v.Hours,
		)
	}

	if batch.Len() > 0 {
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
	}

	return rec, nil
}
