package venue

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
	"github.com/kirinyoku/boxoffice/internal/slots"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

type Config struct {
	LockTTL time.Duration
}

// Availability is the occupancy of one venue date.
type Availability struct {
	VenueID     int64    `json:"venue_id"`
	Date        string   `json:"date"`
	FullyBooked bool     `json:"fully_booked"`
	Occupied    []string `json:"occupied"`
	Free        []string `json:"free"`
}

type Request struct {
	Date          string
	Proposal      slots.Proposal
	DiscountCode  string
	Buyer         domain.Buyer
	PaymentMethod domain.PaymentMethod
}

type venueQueries interface {
	GetVenue(ctx context.Context, id int64) (*domain.Venue, error)
	VenueBookingsOn(ctx context.Context, venueID int64, date string) ([]domain.VenueBooking, error)
	LookupDiscount(ctx context.Context, code string) (*domain.Discount, error)
}

type bookingRepo interface {
	Insert(ctx context.Context, rec domain.BookingRecord) (domain.BookingRecord, error)
}

// repos hands out repositories bound to tx. A nil tx binds them to the pool.
type repos interface {
	Query(tx postgresrepo.DB) venueQueries
	Bookings(tx postgresrepo.DB) bookingRepo
}

type txRunner interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error) error
}

type dayLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	Release(ctx context.Context, key, token string) error
}

type pgRepos struct {
	store *postgresrepo.Store
}

func (r pgRepos) Query(tx postgresrepo.DB) venueQueries {
	return r.store.Query().With(tx)
}

func (r pgRepos) Bookings(tx postgresrepo.DB) bookingRepo {
	return r.store.Bookings().With(tx)
}

type Service struct {
	repos     repos
	uow       txRunner
	locker    dayLocker
	payments  payment.Gateway
	publisher queue.Publisher
	log       *slog.Logger
	cfg       Config
}

func New(
	store *postgresrepo.Store,
	locker *redisrepo.Locker,
	payments payment.Gateway,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	return newService(pgRepos{store: store}, uow.NewUoW(store), locker, payments, publisher, log, cfg)
}

func newService(
	r repos,
	tx txRunner,
	locker dayLocker,
	payments payment.Gateway,
	publisher queue.Publisher,
	log *slog.Logger,
	cfg Config,
) *Service {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 30 * time.Second
	}

	return &Service{
		repos:     r,
		uow:       tx,
		locker:    locker,
		payments:  payments,
		publisher: publisher,
		log:       log,
		cfg:       cfg,
	}
}

// Slots lists which hours of a date are taken and which are free.
//
// Parameters:
//   - ctx: request-scoped context.
//   - venueID: ID of the venue.
//   - date: calendar date, YYYY-MM-DD.
//
// Returns:
//   - Availability: occupied and free hours.
//   - error: venue.ErrVenueNotFound if the venue does not exist.
//   - error: venue.ErrInvalidDate for a malformed date.
func (s *Service) Slots(ctx context.Context, venueID int64, date string) (Availability, error) {
	const op = "service.venue.Slots"

	if _, err := slots.ParseDate(date); err != nil {
		return Availability{}, fmt.Errorf("%s:%w", op, ErrInvalidDate)
	}

	if _, err := s.venue(ctx, s.repos.Query(nil), venueID); err != nil {
		return Availability{}, fmt.Errorf("%s:%w", op, err)
	}

	existing, err := s.repos.Query(nil).VenueBookingsOn(ctx, venueID, date)
	if err != nil {
		return Availability{}, fmt.Errorf("%s:%w", op, err)
	}

	fullyBooked, occupied, err := slots.Occupancy(existing)
	if err != nil {
		return Availability{}, fmt.Errorf("%s:%w", op, err)
	}

	return Availability{
		VenueID:     venueID,
		Date:        date,
		FullyBooked: fullyBooked,
		Occupied:    slots.Labels(occupied),
		Free:        slots.Labels(slots.Free(fullyBooked, occupied)),
	}, nil
}

// Quote checks a proposal against the date's bookings and prices it.
// Conflicts are reported in the result, not as errors.
func (s *Service) Quote(ctx context.Context, venueID int64, date string, p slots.Proposal) (slots.Result, error) {
	const op = "service.venue.Quote"

	res, _, err := s.detect(ctx, s.repos.Query(nil), venueID, date, p)
	if err != nil {
		return slots.Result{}, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

// Book reserves a venue for a full day or a range of hours.
//
// The date is locked for the duration of the call, so two bookings for the
// same date are checked one after the other.
//
// Parameters:
//   - ctx: request-scoped context.
//   - venueID: ID of the venue.
//   - req: date, proposal, buyer and payment.
//
// Returns:
//   - domain.BookingRecord: the stored booking.
//   - error: venue.ErrSlotConflict or venue.ErrFullyBooked when the range is taken.
//   - error: venue.ErrDayBusy if another booking for the date is in progress.
func (s *Service) Book(ctx context.Context, venueID int64, req Request) (domain.BookingRecord, error) {
	const op = "service.venue.Book"

	if _, err := slots.ParseDate(req.Date); err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrInvalidDate)
	}

	lockKey := redisrepo.KeyVenueDay(venueID, req.Date)
	token, err := s.locker.Acquire(ctx, lockKey, s.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, redisrepo.ErrLocked) {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrDayBusy)
		}

		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey, token); err != nil {
			s.log.Warn("failed to release venue lock", slog.String("key", lockKey), slog.Any("error", err))
		}
	}()

	res, v, err := s.detect(ctx, s.repos.Query(nil), venueID, req.Date, req.Proposal)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	disc, err := s.resolveDiscount(ctx, req.DiscountCode)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	in := booking.Input{
		Kind:          domain.BookingVenue,
		Venue:         venueRange(v.ID, req.Date, req.Proposal, res),
		FullyBooked:   res.FullyBooked,
		Conflict:      res.Conflict,
		Tickets:       []domain.BookedTicket{},
		Total:         res.Total,
		Discount:      disc,
		Buyer:         req.Buyer,
		PaymentMethod: req.PaymentMethod,
		SyncStatus:    domain.Synced,
	}

	rec, err := booking.Assemble(in)
	if err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	if rec.AmountDue > 0 {
		rcpt, err := s.payments.Charge(ctx, payment.Charge{
			Amount:      rec.AmountDue,
			Description: fmt.Sprintf("venue %d on %s", v.ID, req.Date),
			Method:      req.PaymentMethod,
			Reference:   uuid.NewString(),
		})
		if err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w: %w", op, ErrPaymentFailed, err)
		}

		in.PaymentRef = rcpt.Ref
		if rec, err = booking.Assemble(in); err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}
	}

	var stored domain.BookingRecord

	err = s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		// The lock may have lapsed during payment; check again inside the
		// transaction.
		again, _, err := s.detect(ctx, s.repos.Query(tx), venueID, req.Date, req.Proposal)
		if err != nil {
			return err
		}
		if again.FullyBooked {
			return ErrFullyBooked
		}
		if again.Conflict {
			return ErrSlotConflict
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
		if rec.PaymentRef != "" && rec.PaymentMethod != domain.PayCash {
			s.log.ErrorContext(ctx, "venue booking not stored after payment, refund required",
				slog.String("payment_ref", rec.PaymentRef),
				slog.Int("amount", rec.AmountDue),
				slog.Any("error", err),
			)
		}
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	return stored, nil
}

func (s *Service) venue(ctx context.Context, q venueQueries, venueID int64) (*domain.Venue, error) {
	v, err := q.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVenueNotFound
		}

		return nil, err
	}

	return v, nil
}

func (s *Service) detect(
	ctx context.Context,
	q venueQueries,
	venueID int64,
	date string,
	p slots.Proposal,
) (slots.Result, *domain.Venue, error) {
	if _, err := slots.ParseDate(date); err != nil {
		return slots.Result{}, nil, ErrInvalidDate
	}

	if err := slots.CheckWithinDay(p); err != nil {
		return slots.Result{}, nil, err
	}

	v, err := s.venue(ctx, q, venueID)
	if err != nil {
		return slots.Result{}, nil, err
	}

	existing, err := q.VenueBookingsOn(ctx, venueID, date)
	if err != nil {
		return slots.Result{}, nil, err
	}

	res, err := slots.Detect(existing, p, slots.Pricing{
		FullDayPrice: v.FullDayPrice,
		PerHourPrice: v.PerHourPrice,
	})
	if err != nil {
		return slots.Result{}, nil, err
	}

	return res, v, nil
}

func (s *Service) resolveDiscount(ctx context.Context, code string) (*domain.Discount, error) {
	if code == "" {
		return nil, nil
	}

	d, err := s.repos.Query(nil).LookupDiscount(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", booking.ErrInvalidDiscount, code)
		}

		return nil, err
	}

	return d, nil
}

func (s *Service) announce(ctx context.Context, rec domain.BookingRecord) {
	if err := s.publisher.PublishBookingConfirmed(ctx, queue.NewBookingConfirmed(rec)); err != nil {
		s.log.Warn("failed to publish booking confirmed",
			slog.String("booking_id", rec.ID.String()),
			slog.Any("error", err),
		)
	}

	s.log.Info("venue booked",
		slog.String("booking_id", rec.ID.String()),
		slog.Int64("venue_id", rec.Venue.VenueID),
		slog.String("date", rec.Venue.Date),
		slog.String("kind", string(rec.Venue.Kind)),
	)
}

// venueRange describes the booked range as it is stored on the record.
func venueRange(venueID int64, date string, p slots.Proposal, res slots.Result) *domain.VenueRange {
	r := &domain.VenueRange{
		VenueID: venueID,
		Date:    date,
		Kind:    p.Kind,
		Slots:   slots.Labels(res.Proposed),
	}

	if p.Kind == domain.VenuePerHour && len(res.Proposed) > 0 {
		r.StartTime = res.Proposed[0].String()
		r.Hours = len(res.Proposed)
	}

	return r
}
