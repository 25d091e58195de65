package seatmap

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("invalid seat map configuration")
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrNotASeat      = errors.New("cell is not a seat")
	ErrSessionClosed = errors.New("session already confirmed")
	ErrNothingToPay  = errors.New("nothing to pay for")
)

// ConfigurationError reports a grid, registry or status matrix that can never
// be served. It is not recoverable at runtime.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
}

func (e ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(format string, args ...any) error {
	return ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: (%d,%d) outside %dx%d", ErrOutOfBounds, e.Row, e.Col, e.Rows, e.Cols)
}

func (e OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
