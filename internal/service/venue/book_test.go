package venue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/payment"
	"github.com/kirinyoku/boxoffice/internal/queue"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/slots"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

type fakeStore struct {
	venue    domain.Venue
	existing []domain.VenueBooking
	inserted []domain.BookingRecord
}

func (f *fakeStore) GetVenue(_ context.Context, id int64) (*domain.Venue, error) {
	if id != f.venue.ID {
		return nil, fmt.Errorf("get venue: %w", repository.ErrNotFound)
	}
	v := f.venue
	return &v, nil
}

func (f *fakeStore) VenueBookingsOn(_ context.Context, _ int64, date string) ([]domain.VenueBooking, error) {
	var out []domain.VenueBooking
	for _, b := range f.existing {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) LookupDiscount(context.Context, string) (*domain.Discount, error) {
	return nil, fmt.Errorf("lookup: %w", repository.ErrNotFound)
}

func (f *fakeStore) Insert(_ context.Context, rec domain.BookingRecord) (domain.BookingRecord, error) {
	rec.ID = uuid.New()
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

type fakeRepos struct{ store *fakeStore }

func (f fakeRepos) Query(postgresrepo.DB) venueQueries   { return f.store }
func (f fakeRepos) Bookings(postgresrepo.DB) bookingRepo { return f.store }

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error) error {
	var hooks []uow.AfterCommit
	if err := fn(ctx, nil, func(h uow.AfterCommit) { hooks = append(hooks, h) }); err != nil {
		return err
	}
	for _, h := range hooks {
		h(ctx)
	}
	return nil
}

type fakeLocker struct {
	held     map[string]string
	releases int
}

func (f *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, ok := f.held[key]; ok {
		return "", redisrepo.ErrLocked
	}
	token := uuid.NewString()
	f.held[key] = token
	return token, nil
}

func (f *fakeLocker) Release(_ context.Context, key, token string) error {
	if f.held[key] == token {
		delete(f.held, key)
		f.releases++
	}
	return nil
}

// fakeGateway runs onCharge while the payment is in flight.
type fakeGateway struct {
	onCharge func()
	charges  int
}

func (f *fakeGateway) Charge(_ context.Context, c payment.Charge) (payment.Receipt, error) {
	f.charges++
	if f.onCharge != nil {
		f.onCharge()
	}
	return payment.Receipt{Ref: "rcpt", Amount: c.Amount}, nil
}

type fakePublisher struct{ events int }

func (f *fakePublisher) PublishBookingConfirmed(context.Context, queue.BookingConfirmedEvent) error {
	f.events++
	return nil
}

func (f *fakePublisher) Close() error { return nil }

const testDate = "2026-05-01"

func newBookHarness() (*Service, *fakeStore, *fakeLocker, *fakeGateway, *fakePublisher) {
	store := &fakeStore{venue: domain.Venue{ID: 3, Name: "Hall", FullDayPrice: 1000, PerHourPrice: 100}}
	locker := &fakeLocker{held: map[string]string{}}
	gw := &fakeGateway{}
	pub := &fakePublisher{}

	svc := newService(fakeRepos{store: store}, fakeTx{}, locker, gw, pub,
		slog.New(slog.NewTextHandler(io.Discard, nil)), Config{})

	return svc, store, locker, gw, pub
}

func perHourRequest(start string, hours int) Request {
	return Request{
		Date:          testDate,
		Proposal:      slots.Proposal{Kind: domain.VenuePerHour, StartTime: start, Hours: hours},
		Buyer:         domain.Buyer{GuestName: "Meera"},
		PaymentMethod: domain.PayCard,
	}
}

func TestBook_Stores(t *testing.T) {
	svc, store, locker, gw, pub := newBookHarness()

	rec, err := svc.Book(context.Background(), 3, perHourRequest("11:00", 2))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rec.TotalPrice != 200 || rec.PaymentRef != "rcpt" || rec.Venue == nil || rec.Venue.Hours != 2 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(store.inserted) != 1 || gw.charges != 1 || pub.events != 1 {
		t.Fatalf("expected one insert, charge and event, got %d %d %d", len(store.inserted), gw.charges, pub.events)
	}
	if locker.releases != 1 || len(locker.held) != 0 {
		t.Fatalf("expected the day lock released, releases=%d held=%d", locker.releases, len(locker.held))
	}
}

func TestBook_ConflictRecheckedInsideTransaction(t *testing.T) {
	cases := []struct {
		name   string
		racing domain.VenueBooking
		want   error
	}{
		{
			"overlapping hours",
			domain.VenueBooking{Kind: domain.VenuePerHour, StartTime: "10:00", HoursBooked: 2},
			ErrSlotConflict,
		},
		{
			"full day",
			domain.VenueBooking{Kind: domain.VenueFullDay},
			ErrFullyBooked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, locker, gw, pub := newBookHarness()

			racing := tc.racing
			racing.ID = uuid.New()
			racing.VenueID = 3
			racing.Date = testDate
			// Another booking lands while the charge is in flight.
			gw.onCharge = func() { store.existing = append(store.existing, racing) }

			_, err := svc.Book(context.Background(), 3, perHourRequest("11:00", 2))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if gw.charges != 1 {
				t.Fatalf("expected the free day to be charged once, got %d", gw.charges)
			}
			if len(store.inserted) != 0 || pub.events != 0 {
				t.Fatalf("nothing may be stored, got %d inserts %d events", len(store.inserted), pub.events)
			}
			if locker.releases != 1 {
				t.Fatalf("expected the day lock released, got %d", locker.releases)
			}
		})
	}
}

func TestBook_DayBusy(t *testing.T) {
	svc, store, locker, gw, _ := newBookHarness()
	locker.held[redisrepo.KeyVenueDay(3, testDate)] = "other"

	_, err := svc.Book(context.Background(), 3, perHourRequest("11:00", 2))
	if !errors.Is(err, ErrDayBusy) {
		t.Fatalf("expected ErrDayBusy, got %v", err)
	}
	if gw.charges != 0 || len(store.inserted) != 0 {
		t.Fatalf("busy day must not be charged or stored, got %d charges %d inserts", gw.charges, len(store.inserted))
	}
	if locker.held[redisrepo.KeyVenueDay(3, testDate)] != "other" {
		t.Fatalf("lock held by another booking must stay")
	}
}
