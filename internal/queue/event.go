package queue

import (
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

// BookingConfirmedEvent is the message body published to booking.confirmed.
type BookingConfirmedEvent struct {
	BookingID     string               `json:"booking_id"`
	LocalID       string               `json:"local_id,omitempty"`
	Kind          domain.BookingKind   `json:"kind"`
	ShowtimeID    *int64               `json:"showtime_id,omitempty"`
	VenueID       *int64               `json:"venue_id,omitempty"`
	VenueDate     string               `json:"venue_date,omitempty"`
	Slots         []string             `json:"slots,omitempty"`
	Seats         []string             `json:"seats,omitempty"`
	Tickets       int                  `json:"tickets"`
	TotalPrice    int                  `json:"total_price"`
	AmountDue     int                  `json:"amount_due"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	SyncStatus    domain.SyncStatus    `json:"sync_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewBookingConfirmed summarises a stored booking. Guest contact details are
// left out of the message.
func NewBookingConfirmed(rec domain.BookingRecord) BookingConfirmedEvent {
	ev := BookingConfirmedEvent{
		BookingID:     rec.ID.String(),
		LocalID:       rec.LocalID,
		Kind:          rec.Kind,
		ShowtimeID:    rec.ShowtimeID,
		TotalPrice:    rec.TotalPrice,
		AmountDue:     rec.AmountDue,
		PaymentMethod: rec.PaymentMethod,
		SyncStatus:    rec.SyncStatus,
		CreatedAt:     rec.CreatedAt.UTC(),
	}

	for _, t := range rec.Tickets {
		ev.Tickets += t.Quantity
		if t.SeatLabel != "" {
			ev.Seats = append(ev.Seats, t.SeatLabel)
		}
	}

	if v := rec.Venue; v != nil {
		id := v.VenueID
		ev.VenueID = &id
		ev.VenueDate = v.Date
		ev.Slots = append([]string(nil), v.Slots...)
	}

	return ev
}
