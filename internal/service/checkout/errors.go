package checkout

import (
	"errors"

	"github.com/kirinyoku/boxoffice/internal/booking"
)

var (
	ErrNothingToPay       = booking.ErrNothingToPay
	ErrSeatsTaken         = errors.New("some selected seats were taken")
	ErrHoldLost           = errors.New("seat lease expired before the booking was stored")
	ErrCapacityExceeded   = errors.New("not enough general admission tickets left")
	ErrNoGeneralAdmission = errors.New("showtime has no general admission")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrUnknownDiscount    = errors.New("unknown discount code")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrDuplicate          = errors.New("booking already synced")
	ErrAmountMismatch     = errors.New("amount due does not match total and discount")
)
