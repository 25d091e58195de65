package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/booking"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

// OfflineSale is a box office sale made while the counter had no
// connection. Payment was collected at the counter, so Total and AmountDue
// are what the buyer was charged and are stored as given.
type OfflineSale struct {
	LocalID       string
	Kind          domain.BookingKind
	ShowtimeID    int64
	Seats         []domain.Coord
	Quantity      int
	Total         int
	AmountDue     int
	DiscountCode  string
	Buyer         domain.Buyer
	PaymentMethod domain.PaymentMethod
	PaymentRef    string
	SoldAt        time.Time
}

type SyncStatus string

const (
	SyncStored    SyncStatus = "synced"
	SyncDuplicate SyncStatus = "duplicate"
	SyncRejected  SyncStatus = "rejected"
)

type SyncResult struct {
	LocalID   string     `json:"local_id"`
	Status    SyncStatus `json:"status"`
	BookingID *uuid.UUID `json:"booking_id,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// SyncOffline replays pending box office sales. Seats and capacity are
// checked against the current showtime, but the amounts stay those charged
// at the counter. Each sale is stored at most once per local id; a sale
// whose seats were sold online in the meantime is rejected.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sales: pending sales in the order they were made.
//
// Returns:
//   - []SyncResult: one result per sale, in input order.
//   - error: only when the context is cancelled.
func (s *Service) SyncOffline(ctx context.Context, sales []OfflineSale) ([]SyncResult, error) {
	const op = "service.checkout.SyncOffline"

	out := make([]SyncResult, 0, len(sales))

	for _, sale := range sales {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("%s:%w", op, err)
		}

		rec, err := s.syncOne(ctx, sale)
		out = append(out, syncResult(sale.LocalID, rec, err))

		if err != nil && !errors.Is(err, ErrDuplicate) {
			s.log.Warn("offline sale rejected",
				slog.String("local_id", sale.LocalID),
				slog.Any("error", err),
			)
		}
	}

	return out, nil
}

func syncResult(localID string, rec domain.BookingRecord, err error) SyncResult {
	res := SyncResult{LocalID: localID}

	switch {
	case err == nil:
		id := rec.ID
		res.Status = SyncStored
		res.BookingID = &id
	case errors.Is(err, ErrDuplicate):
		res.Status = SyncDuplicate
		if rec.ID != uuid.Nil {
			id := rec.ID
			res.BookingID = &id
		}
	default:
		res.Status = SyncRejected
		res.Error = err.Error()
	}

	return res
}

func (s *Service) syncOne(ctx context.Context, sale OfflineSale) (domain.BookingRecord, error) {
	const op = "service.checkout.syncOne"

	if sale.LocalID == "" {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, booking.ErrMissingLocalID)
	}

	existing, err := s.repos.Query(nil).BookingByLocalID(ctx, sale.LocalID)
	if err == nil {
		return *existing, ErrDuplicate
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	var (
		quote      seatmap.Quote
		seats      []domain.Coord
		gaCapacity int
	)

	switch sale.Kind {
	case domain.BookingSeated:
		s.query.Forget(sale.ShowtimeID)

		b, err := s.query.Board(ctx, sale.ShowtimeID)
		if err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}

		sess, err := selectAll(b.Grid, b.Matrix, sale.Seats)
		if err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}

		quote = sess.Derive()
		seats = sess.Selection()

	case domain.BookingGeneral:
		st, err := s.query.GetShowtime(ctx, sale.ShowtimeID)
		if err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}

		if quote, err = generalQuote(st.GAPrice, sale.Quantity); err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}
		gaCapacity = st.GACapacity

	default:
		return domain.BookingRecord{}, fmt.Errorf("%s:%w: kind %q", op, booking.ErrNoTarget, sale.Kind)
	}

	disc, err := counterDiscount(sale)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	showtimeID := sale.ShowtimeID
	rec, err := booking.Assemble(booking.Input{
		Kind:          sale.Kind,
		ShowtimeID:    &showtimeID,
		Tickets:       quote.Tickets,
		Total:         sale.Total,
		Discount:      disc,
		Buyer:         sale.Buyer,
		PaymentMethod: sale.PaymentMethod,
		PaymentRef:    sale.PaymentRef,
		SyncStatus:    domain.Synced,
		LocalID:       sale.LocalID,
		CreatedAt:     sale.SoldAt,
	})
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	var stored domain.BookingRecord

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		switch sale.Kind {
		case domain.BookingSeated:
			if err := s.repos.Reservations(tx).MarkSold(ctx, showtimeID, seats); err != nil {
				if errors.Is(err, repository.ErrSeatsUnavailable) {
					return ErrSeatsTaken
				}
				return err
			}
		case domain.BookingGeneral:
			sold, err := s.repos.Query(tx).GeneralAdmissionSold(ctx, showtimeID)
			if err != nil {
				return err
			}
			if !capacityLeft(gaCapacity, sold, sale.Quantity) {
				return ErrCapacityExceeded
			}
		}

		stored, err = s.repos.Bookings(tx).Insert(ctx, rec)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrDuplicate
			}
			return err
		}

		after(func(ctx context.Context) {
			s.announce(ctx, stored)
		})

		return nil
	})
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	return stored, nil
}

// counterDiscount turns the amounts charged at the counter into a flat
// discount, so the record keeps them even if the discount table changed
// since the sale.
func counterDiscount(sale OfflineSale) (*domain.Discount, error) {
	if sale.AmountDue < 0 || sale.AmountDue > sale.Total {
		return nil, fmt.Errorf("%w: amount due %d of total %d", ErrAmountMismatch, sale.AmountDue, sale.Total)
	}

	off := sale.Total - sale.AmountDue
	if sale.DiscountCode == "" {
		if off != 0 {
			return nil, fmt.Errorf("%w: %d off without a discount code", ErrAmountMismatch, off)
		}
		return nil, nil
	}

	return &domain.Discount{Code: sale.DiscountCode, Amount: off, Type: domain.DiscountFlat}, nil
}
