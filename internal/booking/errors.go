package booking

import (
	"errors"

	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

var (
	ErrNothingToPay    = seatmap.ErrNothingToPay
	ErrSlotConflict    = errors.New("requested hours overlap an existing booking")
	ErrFullyBooked     = errors.New("venue is booked for the whole day")
	ErrNoTarget        = errors.New("booking has no showtime or venue")
	ErrInvalidTicket   = errors.New("invalid ticket line")
	ErrInvalidBuyer    = errors.New("buyer needs a user id or a guest name")
	ErrInvalidPayment  = errors.New("unsupported payment method")
	ErrInvalidSync     = errors.New("invalid sync status")
	ErrMissingLocalID  = errors.New("pending booking needs a local id")
	ErrInvalidDiscount = errors.New("invalid discount")
)
