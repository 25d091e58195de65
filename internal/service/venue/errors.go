package venue

import (
	"errors"

	"github.com/kirinyoku/boxoffice/internal/booking"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrDayBusy       = errors.New("another booking for this date is in progress")
	ErrSlotConflict  = booking.ErrSlotConflict
	ErrFullyBooked   = booking.ErrFullyBooked
	ErrPaymentFailed = errors.New("payment failed")
)
