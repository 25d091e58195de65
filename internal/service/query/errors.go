package query

import (
	"errors"
)

var (
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrScreenNotFound   = errors.New("screen not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrBrokenLayout     = errors.New("screen layout cannot be served")
)
