package seating

import (
	"errors"

	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = seatmap.ErrSessionClosed
)
