package admin

import (
	"errors"
)

var (
	ErrInvalidLayout   = errors.New("invalid seat layout")
	ErrInvalidInput    = errors.New("invalid input")
	ErrVenueNotFound   = errors.New("venue not found")
	ErrScreenNotFound  = errors.New("screen not found")
	ErrVenueConflict   = errors.New("venue already exists")
	ErrScreenConflict  = errors.New("screen already exists")
	ErrDiscountInvalid = errors.New("invalid discount")
)
