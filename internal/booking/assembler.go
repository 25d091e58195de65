package booking

import (
	"fmt"
	"slices"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

// Input is everything needed to turn a finished selection or venue range into
// a booking record.
type Input struct {
	Kind       domain.BookingKind
	ShowtimeID *int64
	Venue      *domain.VenueRange

	// FullyBooked and Conflict carry the conflict detector's verdict for
	// venue bookings. They are ignored for showtime bookings.
	FullyBooked bool
	Conflict    bool

	Tickets []domain.BookedTicket
	// Total is the engine-derived total. It is copied into the record as is.
	Total int

	Discount      *domain.Discount
	Buyer         domain.Buyer
	PaymentMethod domain.PaymentMethod
	PaymentRef    string
	SyncStatus    domain.SyncStatus
	LocalID       string
	CreatedAt     time.Time
}

// Assemble builds an immutable booking record. It never reprices anything:
// TotalPrice is Input.Total and AmountDue is that total with the discount
// clamped at zero.
//
// The record comes back without an ID; the booking store assigns one.
//
// Returns:
//   - domain.BookingRecord: the assembled record.
//   - error: ErrNothingToPay, ErrSlotConflict or ErrFullyBooked when the
//     booking cannot proceed, or a validation error for malformed input.
func Assemble(in Input) (domain.BookingRecord, error) {
	const op = "booking.Assemble"

	if err := checkTarget(in); err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	if in.Total <= 0 {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrNothingToPay)
	}

	if err := checkTickets(in.Kind, in.Tickets); err != nil {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
	}

	if in.Buyer.IsGuest() && in.Buyer.GuestName == "" {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrInvalidBuyer)
	}

	if !in.PaymentMethod.Valid() {
		return domain.BookingRecord{}, fmt.Errorf("%s:%w: %q", op, ErrInvalidPayment, in.PaymentMethod)
	}

	sync := in.SyncStatus
	switch sync {
	case "":
		sync = domain.Synced
	case domain.Synced:
	case domain.Pending:
		if in.LocalID == "" {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, ErrMissingLocalID)
		}
	default:
		return domain.BookingRecord{}, fmt.Errorf("%s:%w: %q", op, ErrInvalidSync, sync)
	}

	rec := domain.BookingRecord{
		LocalID:       in.LocalID,
		Kind:          in.Kind,
		Tickets:       cloneTickets(in.Tickets),
		TotalPrice:    in.Total,
		AmountDue:     in.Total,
		Buyer:         cloneBuyer(in.Buyer),
		PaymentMethod: in.PaymentMethod,
		PaymentRef:    in.PaymentRef,
		SyncStatus:    sync,
		CreatedAt:     in.CreatedAt,
	}

	if in.ShowtimeID != nil {
		id := *in.ShowtimeID
		rec.ShowtimeID = &id
	}

	if in.Venue != nil {
		v := *in.Venue
		v.Slots = slices.Clone(in.Venue.Slots)
		rec.Venue = &v
	}

	if in.Discount != nil {
		amount, err := DiscountAmount(*in.Discount, in.Total)
		if err != nil {
			return domain.BookingRecord{}, fmt.Errorf("%s:%w", op, err)
		}
		rec.DiscountCode = in.Discount.Code
		rec.AmountDue = ApplyDiscount(in.Total, amount)
		rec.DiscountAmount = in.Total - rec.AmountDue
	}

	return rec, nil
}

func checkTarget(in Input) error {
	switch in.Kind {
	case domain.BookingSeated, domain.BookingGeneral:
		if in.ShowtimeID == nil {
			return ErrNoTarget
		}
	case domain.BookingVenue:
		if in.Venue == nil {
			return ErrNoTarget
		}
		if in.FullyBooked {
			return ErrFullyBooked
		}
		if in.Conflict {
			return ErrSlotConflict
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrNoTarget, in.Kind)
	}

	return nil
}

func checkTickets(kind domain.BookingKind, tickets []domain.BookedTicket) error {
	if kind != domain.BookingVenue && len(tickets) == 0 {
		return ErrNothingToPay
	}

	for i, t := range tickets {
		if t.Quantity < 1 || t.Price < 0 {
			return fmt.Errorf("%w: line %d", ErrInvalidTicket, i)
		}
		if kind == domain.BookingSeated && (t.Quantity != 1 || t.SeatLabel == "") {
			return fmt.Errorf("%w: seated line %d needs a label and quantity 1", ErrInvalidTicket, i)
		}
	}

	return nil
}

func cloneTickets(in []domain.BookedTicket) []domain.BookedTicket {
	out := make([]domain.BookedTicket, len(in))
	for i, t := range in {
		out[i] = t
		if t.Seat != nil {
			seat := *t.Seat
			out[i].Seat = &seat
		}
	}
	return out
}

func cloneBuyer(b domain.Buyer) domain.Buyer {
	if b.UserID != nil {
		id := *b.UserID
		b.UserID = &id
	}
	return b
}
