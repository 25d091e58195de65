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
	"github.com/kirinyoku/boxoffice/internal/payment"
	"github.com/kirinyoku/boxoffice/internal/queue"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
	"github.com/kirinyoku/boxoffice/internal/service/query"
	"github.com/kirinyoku/boxoffice/internal/service/seating"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

type Config struct {
	HoldTTL time.Duration
}

// Request carries what the buyer adds to a priced selection.
type Request struct {
	DiscountCode  string
	Buyer         domain.Buyer
	PaymentMethod domain.PaymentMethod
}

type Service struct {
	repos     repos
	uow       txRunner
	seating   sessions
	query     catalog
	cache     showtimeCache
	pubsub    showtimeFeed
	payments  payment.Gateway
	publisher queue.Publisher
	log       *slog.Logger
	cfg       Config
}

func New(
	store *postgresrepo.Store,
	seatingSvc *seating.Service,
	querySvc *query.Service,
	cache *redisrepo.Cache,
	pubsub *redisrepo.ShowtimesPubSub,
	payments payment.Gateway,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	return newService(pgRepos{store: store}, uow.NewUoW(store), seatingSvc, querySvc, cache, pubsub, payments, publisher, log, cfg)
}

func newService(
	r repos,
	tx txRunner,
	seatingSvc sessions,
	querySvc catalog,
	cache showtimeCache,
	pubsub showtimeFeed,
	payments payment.Gateway,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 5 * time.Minute
	}

	return &Service{
		repos:     r,
		uow:       tx,
		seating:   seatingSvc,
		query:     querySvc,
		cache:     cache,
		pubsub:    pubsub,
		payments:  payments,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// ConfirmSeats turns a selection session into a paid booking.
//
// The selection is priced by the engine, leased in the store, charged, and
// then sold and recorded in one transaction. A failed charge gives the lease
// back. The session is closed only once the booking is stored.
//
// Parameters:
//   - ctx: request-scoped context.
//   - sessionID: the selection session to check out.
//   - req: discount, buyer and payment method.
//
// Returns:
//   - domain.BookingRecord: the stored booking.
//   - error: checkout.ErrNothingToPay if the selection costs nothing.
//   - error: checkout.ErrSeatsTaken if a seat was leased or sold meanwhile.
//   - error: checkout.ErrPaymentFailed if the charge did not go through.
//   - error: checkout.ErrHoldLost if the lease expired before the commit.
func (s *Service) ConfirmSeats(ctx context.Context, sessionID uuid.UUID, req Request) (domain.BookingRecord, error) {
	const op = "service.checkout.ConfirmSeats"

	live, err := s.seating.Resume(ctx, sessionID)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}
	if live.Session.State() == seatmap.StateConfirmed {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, seating.ErrSessionClosed)
	}

	quote := live.Session.Derive()
	if quote.Total <= 0 {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrNothingToPay)
	}

	disc, err := s.resolveDiscount(ctx, req.DiscountCode)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	showtimeID := live.Stored.ShowtimeID
	in := booking.Input{
		Kind:          domain.BookingSeated,
		ShowtimeID:    &showtimeID,
		Tickets:       quote.Tickets,
		Total:         quote.Total,
		Discount:      disc,
		Buyer:         req.Buyer,
		PaymentMethod: req.PaymentMethod,
		SyncStatus:    domain.Synced,
	}

	rec, err := booking.Assemble(in)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	seats := live.Session.Selection()

	holdID, err := s.repos.Reservations(nil).HoldSeats(ctx, showtimeID, seats, s.cfg.HoldTTL)
	if err != nil {
		if errors.Is(err, repository.ErrSeatsUnavailable) {
			s.query.Forget(showtimeID)
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrSeatsTaken)
		}

		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	s.touchShowtime(ctx, showtimeID)

	rec, err = s.collect(ctx, in, rec, holdID.String(), fmt.Sprintf("showtime %d: %d seats", showtimeID, len(seats)))
	if err != nil {
		s.releaseHold(ctx, holdID)
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	var stored domain.BookingRecord

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		sold, err := s.repos.Reservations(tx).CommitHold(ctx, holdID)
		if err != nil {
			if errors.Is(err, repository.ErrHoldExpired) || errors.Is(err, repository.ErrNothingToConfirm) {
				return ErrHoldLost
			}

			return err
		}
		if len(sold) != len(seats) {
			return ErrHoldLost
		}

		stored, err = s.repos.Bookings(tx).Insert(ctx, rec)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.announce(ctx, stored)
		})

		return nil
	})
	if err != nil {
		s.paidButNotStored(ctx, rec, err)
		s.releaseHold(ctx, holdID)
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	if _, err := live.Session.Confirm(); err == nil {
		if err := s.seating.Close(ctx, &live); err != nil {
			s.log.Warn("failed to close session",
				slog.String("session_id", sessionID.String()),
				slog.Any("error", err),
			)
		}
	}

	return stored, nil
}

// ConfirmGeneralAdmission sells unseated tickets for a showtime.
//
// Parameters:
//   - ctx: request-scoped context.
//   - showtimeID: the showtime.
//   - quantity: number of tickets, at least 1.
//   - req: discount, buyer and payment method.
//
// Returns:
//   - domain.BookingRecord: the stored booking.
//   - error: checkout.ErrNoGeneralAdmission if the showtime sells none.
//   - error: checkout.ErrCapacityExceeded if too few tickets are left.
func (s *Service) ConfirmGeneralAdmission(
	ctx context.Context,
	showtimeID int64,
	quantity int,
	req Request,
) (domain.BookingRecord, error) {
	const op = "service.checkout.ConfirmGeneralAdmission"

	st, err := s.query.GetShowtime(ctx, showtimeID)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}
	if st.GACapacity <= 0 {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrNoGeneralAdmission)
	}

	quote, err := generalQuote(st.GAPrice, quantity)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	disc, err := s.resolveDiscount(ctx, req.DiscountCode)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	in := booking.Input{
		Kind:          domain.BookingGeneral,
		ShowtimeID:    &showtimeID,
		Tickets:       quote.Tickets,
		Total:         quote.Total,
		Discount:      disc,
		Buyer:         req.Buyer,
		PaymentMethod: req.PaymentMethod,
		SyncStatus:    domain.Synced,
	}

	rec, err := booking.Assemble(in)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	sold, err := s.repos.Query(nil).GeneralAdmissionSold(ctx, showtimeID)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}
	if !capacityLeft(st.GACapacity, sold, quantity) {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrCapacityExceeded)
	}

	rec, err = s.collect(ctx, in, rec, uuid.NewString(), fmt.Sprintf("showtime %d: %d general admission", showtimeID, quantity))
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	var stored domain.BookingRecord

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		sold, err := s.repos.Query(tx).GeneralAdmissionSold(ctx, showtimeID)
		if err != nil {
			return err
		}
		if !capacityLeft(st.GACapacity, sold, quantity) {
			return ErrCapacityExceeded
		}

		stored, err = s.repos.Bookings(tx).Insert(ctx, rec)
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.announce(ctx, stored)
		})

		return nil
	})
	if err != nil {
		s.paidButNotStored(ctx, rec, err)
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	return stored, nil
}

func (s *Service) resolveDiscount(ctx context.Context, code string) (*domain.Discount, error) {
	if code == "" {
		return nil, nil
	}

	d, err := s.repos.Query(nil).LookupDiscount(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownDiscount
		}

		return nil, err
	}

	return d, nil
}

// collect charges the amount due and reassembles the record with the
// payment reference. Nothing is charged when the discount covers everything.
func (s *Service) collect(
	ctx context.Context,
	in booking.Input,
	rec domain.BookingRecord,
	reference, description string,
) (domain.BookingRecord, error) {
	if rec.AmountDue <= 0 {
		return rec, nil
	}

	rcpt, err := s.payments.Charge(ctx, payment.Charge{
		Amount:      rec.AmountDue,
		Description: description,
		Method:      in.PaymentMethod,
		Reference:   reference,
	})
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	in.PaymentRef = rcpt.Ref

	return booking.Assemble(in)
}

func (s *Service) releaseHold(ctx context.Context, holdID uuid.UUID) {
	showtimeID, err := s.repos.Reservations(nil).CancelHold(ctx, holdID)
	if err != nil {
		if !errors.Is(err, repository.ErrHoldNotFound) {
			s.log.Error("failed to release seat lease",
				slog.String("hold_id", holdID.String()),
				slog.Any("error", err),
			)
		}
		return
	}

	s.touchShowtime(ctx, showtimeID)
}

// paidButNotStored logs a charge whose booking could not be stored, so it
// can be refunded by hand.
func (s *Service) paidButNotStored(ctx context.Context, rec domain.BookingRecord, err error) {
	if rec.PaymentRef == "" || rec.PaymentMethod == domain.PayCash {
		return
	}

	s.log.ErrorContext(ctx, "booking not stored after payment, refund required",
		slog.String("payment_ref", rec.PaymentRef),
		slog.Int("amount", rec.AmountDue),
		slog.String("kind", string(rec.Kind)),
		slog.Any("error", err),
	)
}

// touchShowtime drops cached statuses of a showtime here and on every other
// instance.
func (s *Service) touchShowtime(ctx context.Context, showtimeID int64) {
	s.query.Forget(showtimeID)
	_ = s.cache.InvalidateShowtime(ctx, showtimeID)
	_ = s.pubsub.PublishShowtimeChanged(ctx, showtimeID)
}

func (s *Service) announce(ctx context.Context, rec domain.BookingRecord) {
	if rec.ShowtimeID != nil {
		s.touchShowtime(ctx, *rec.ShowtimeID)
	}

	if err := s.publisher.PublishBookingConfirmed(ctx, queue.NewBookingConfirmed(rec)); err != nil {
		s.log.Warn("failed to publish booking confirmed",
			slog.String("booking_id", rec.ID.String()),
			slog.Any("error", err),
		)
	}

	s.log.Info("booking confirmed",
		slog.String("booking_id", rec.ID.String()),
		slog.String("kind", string(rec.Kind)),
		slog.Int("total", rec.TotalPrice),
		slog.Int("amount_due", rec.AmountDue),
	)
}
