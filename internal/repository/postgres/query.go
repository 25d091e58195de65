package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/boxoffice/internal/domain"
)

type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// SeatState is one stored seat status of a showtime.
type SeatState struct {
	Row    int
	Col    int
	Status domain.SeatStatus
}

// GetVenue retrieves a venue by its ID.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: unique identifier of the venue to retrieve.
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: repository.ErrNotFound if the venue is not found.
func (r *QueryRepo) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "postgres.QueryRepo.GetVenue"

	db := r.handle()

	var v domain.Venue
	err := db.QueryRow(ctx,
		`SELECT id, name, full_day_price, per_hour_price
		 FROM venues WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.FullDayPrice, &v.PerHourPrice)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &v, nil
}

// GetScreen retrieves a screen together with its stored layout.
//
// Returns:
//   - *domain.Screen: the screen when found.
//   - error: repository.ErrNotFound if the screen is not found.
func (r *QueryRepo) GetScreen(ctx context.Context, id int64) (*domain.Screen, error) {
	const op = "postgres.QueryRepo.GetScreen"

	db := r.handle()

	var (
		s      domain.Screen
		layout []byte
	)
	err := db.QueryRow(ctx,
		`SELECT id, venue_id, name, layout
		 FROM screens WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.VenueID, &s.Name, &layout)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if err := json.Unmarshal(layout, &s.Layout); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &s, nil
}

// GetShowtime retrieves a showtime by its ID.
//
// Returns:
//   - *domain.Showtime: the showtime when found.
//   - error: repository.ErrNotFound if the showtime is not found.
func (r *QueryRepo) GetShowtime(ctx context.Context, id int64) (*domain.Showtime, error) {
	const op = "postgres.QueryRepo.GetShowtime"

	db := r.handle()

	var st domain.Showtime
	err := db.QueryRow(ctx,
		`SELECT id, screen_id, title, starts_at, ga_price, ga_capacity
		 FROM showtimes WHERE id = $1`,
		id,
	).Scan(&st.ID, &st.ScreenID, &st.Title, &st.StartsAt, &st.GAPrice, &st.GACapacity)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &st, nil
}

// ListShowtimes lists showtimes ordered by start time.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - limit, offset: pagination parameters.
//
// Returns:
//   - []domain.Showtime: list of showtimes, possibly empty.
//   - error: on query failure.
func (r *QueryRepo) ListShowtimes(ctx context.Context, limit, offset int) ([]domain.Showtime, error) {
	const op = "postgres.QueryRepo.ListShowtimes"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, screen_id, title, starts_at, ga_price, ga_capacity
		 FROM showtimes
		 ORDER BY starts_at, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.Showtime{}
	for rows.Next() {
		var st domain.Showtime
		if err := rows.Scan(&st.ID, &st.ScreenID, &st.Title, &st.StartsAt, &st.GAPrice, &st.GACapacity); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ShowtimeSeats returns the stored status of every seat of a showtime. Held
// seats whose lease ran out are reported as available.
func (r *QueryRepo) ShowtimeSeats(ctx context.Context, showtimeID int64) ([]SeatState, error) {
	const op = "postgres.QueryRepo.ShowtimeSeats"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT seat_row, seat_col,
		        CASE WHEN status = 'held' AND hold_expires_at <= now()
		             THEN 'available' ELSE status END
		 FROM showtime_seats
		 WHERE showtime_id = $1
		 ORDER BY seat_row, seat_col`,
		showtimeID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []SeatState
	for rows.Next() {
		var (
			s      SeatState
			status string
		)
		if err := rows.Scan(&s.Row, &s.Col, &status); err != nil {
			return nil, wrapDBErr(op, err)
		}

		s.Status = domain.SeatStatus(status)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// CountsByStatus counts seats by status for a showtime.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - showtimeID: unique identifier of the showtime.
//
// Returns:
//   - *domain.ShowtimeCounts: the counts; all zero for a showtime with no seats.
//   - error: on query failure.
func (r *QueryRepo) CountsByStatus(ctx context.Context, showtimeID int64) (*domain.ShowtimeCounts, error) {
	const op = "postgres.QueryRepo.CountsByStatus"

	db := r.handle()

	var c domain.ShowtimeCounts
	err := db.QueryRow(ctx,
		`SELECT
		 	COALESCE(SUM(CASE WHEN status = 'available'
		 	                    OR (status = 'held' AND hold_expires_at <= now()) THEN 1 ELSE 0 END), 0),
		 	COALESCE(SUM(CASE WHEN status = 'held' AND hold_expires_at > now() THEN 1 ELSE 0 END), 0),
		 	COALESCE(SUM(CASE WHEN status = 'sold' THEN 1 ELSE 0 END), 0)
		 FROM showtime_seats
		 WHERE showtime_id = $1`,
		showtimeID,
	).Scan(&c.Available, &c.Held, &c.Sold)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	c.Total = c.Available + c.Held + c.Sold

	return &c, nil
}

// GeneralAdmissionSold sums the general admission tickets sold for a showtime.
func (r *QueryRepo) GeneralAdmissionSold(ctx context.Context, showtimeID int64) (int, error) {
	const op = "postgres.QueryRepo.GeneralAdmissionSold"

	db := r.handle()

	var sold int
	err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(t.quantity), 0)
		 FROM booking_tickets t
		 JOIN bookings b ON b.id = t.booking_id
		 WHERE b.showtime_id = $1 AND b.kind = 'general'`,
		showtimeID,
	).Scan(&sold)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return sold, nil
}

// VenueBookingsOn lists the bookings of a venue on one date.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - venueID: venue to look at.
//   - date: calendar date, "YYYY-MM-DD".
//
// Returns:
//   - []domain.VenueBooking: bookings for the date, possibly empty.
//   - error: on query failure.
func (r *QueryRepo) VenueBookingsOn(ctx context.Context, venueID int64, date string) ([]domain.VenueBooking, error) {
	const op = "postgres.QueryRepo.VenueBookingsOn"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, venue_id, to_char(date, 'YYYY-MM-DD'), kind,
		        COALESCE(start_time, ''), hours_booked
		 FROM venue_bookings
		 WHERE venue_id = $1 AND date = $2::date
		 ORDER BY start_time NULLS FIRST`,
		venueID, date,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	out := []domain.VenueBooking{}
	for rows.Next() {
		var (
			vb   domain.VenueBooking
			kind string
		)
		if err := rows.Scan(&vb.ID, &vb.VenueID, &vb.Date, &kind, &vb.StartTime, &vb.HoursBooked); err != nil {
			return nil, wrapDBErr(op, err)
		}

		vb.Kind = domain.VenueBookingKind(kind)
		out = append(out, vb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// LookupDiscount finds an active discount code.
//
// Returns:
//   - *domain.Discount: the discount when found.
//   - error: repository.ErrNotFound for unknown or inactive codes.
func (r *QueryRepo) LookupDiscount(ctx context.Context, code string) (*domain.Discount, error) {
	const op = "postgres.QueryRepo.LookupDiscount"

	db := r.handle()

	var (
		d   domain.Discount
		typ string
	)
	err := db.QueryRow(ctx,
		`SELECT code, amount, type
		 FROM discounts
		 WHERE code = $1 AND active`,
		code,
	).Scan(&d.Code, &d.Amount, &typ)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	d.Type = domain.DiscountType(typ)

	return &d, nil
}

// GetBooking retrieves a booking record with its ticket lines.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: booking identifier.
//
// Returns:
//   - *domain.BookingRecord: the booking when found.
//   - error: repository.ErrNotFound if the booking is not found.
func (r *QueryRepo) GetBooking(ctx context.Context, id uuid.UUID) (*domain.BookingRecord, error) {
	const op = "postgres.QueryRepo.GetBooking"

	db := r.handle()

	rec, err := scanBooking(db.QueryRow(ctx, selectBooking+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if err := r.loadTickets(ctx, db, rec); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return rec, nil
}

// BookingByLocalID retrieves a booking by the identity an offline box office
// gave it.
//
// Returns:
//   - *domain.BookingRecord: the booking when found.
//   - error: repository.ErrNotFound if no booking carries the local id.
func (r *QueryRepo) BookingByLocalID(ctx context.Context, localID string) (*domain.BookingRecord, error) {
	const op = "postgres.QueryRepo.BookingByLocalID"

	db := r.handle()

	rec, err := scanBooking(db.QueryRow(ctx, selectBooking+` WHERE b.local_id = $1`, localID))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if err := r.loadTickets(ctx, db, rec); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return rec, nil
}

const selectBooking = `SELECT b.id, COALESCE(b.local_id, ''), b.kind, b.showtime_id,
        b.venue_id, COALESCE(to_char(b.venue_date, 'YYYY-MM-DD'), ''), COALESCE(b.venue_kind, ''),
        COALESCE(b.start_time, ''), COALESCE(b.hours, 0),
        b.total_price, b.discount_code, b.discount_amount, b.amount_due,
        b.user_id, b.guest_name, b.guest_phone, b.guest_email,
        b.payment_method, b.payment_ref, b.sync_status, b.created_at
 FROM bookings b`

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.BookingRecord, error) {
	var (
		rec                  domain.BookingRecord
		kind, method, sync   string
		venueID              *int64
		venueDate, venueKind string
		startTime            string
		hours                int
	)

	if err := row.Scan(
		&rec.ID,
		&rec.LocalID,
		&kind,
		&rec.ShowtimeID,
		&venueID,
		&venueDate,
		&venueKind,
		&startTime,
		&hours,
		&rec.TotalPrice,
		&rec.DiscountCode,
		&rec.DiscountAmount,
		&rec.AmountDue,
		&rec.Buyer.UserID,
		&rec.Buyer.GuestName,
		&rec.Buyer.GuestPhone,
		&rec.Buyer.GuestEmail,
		&method,
		&rec.PaymentRef,
		&sync,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	rec.Kind = domain.BookingKind(kind)
	rec.PaymentMethod = domain.PaymentMethod(method)
	rec.SyncStatus = domain.SyncStatus(sync)

	if venueID != nil {
		rec.Venue = &domain.VenueRange{
			VenueID:   *venueID,
			Date:      venueDate,
			Kind:      domain.VenueBookingKind(venueKind),
			StartTime: startTime,
			Hours:     hours,
		}
	}

	return &rec, nil
}

func (r *QueryRepo) loadTickets(ctx context.Context, db DB, rec *domain.BookingRecord) error {
	rows, err := db.Query(ctx,
		`SELECT category_name, price, quantity, COALESCE(seat_label, ''), seat_row, seat_col
		 FROM booking_tickets
		 WHERE booking_id = $1
		 ORDER BY position`,
		rec.ID,
	)
	if err != nil {
		return err
	}

	defer rows.Close()

	rec.Tickets = []domain.BookedTicket{}
	for rows.Next() {
		var (
			t        domain.BookedTicket
			row, col *int
		)
		if err := rows.Scan(&t.CategoryName, &t.Price, &t.Quantity, &t.SeatLabel, &row, &col); err != nil {
			return err
		}

		if row != nil && col != nil {
			t.Seat = &domain.Coord{Row: *row, Col: *col}
		}

		rec.Tickets = append(rec.Tickets, t)
	}

	return rows.Err()
}
