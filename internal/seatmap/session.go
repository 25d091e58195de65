package seatmap

import (
	"sort"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

type State string

const (
	StateEmpty     State = "empty"
	StateSelecting State = "selecting"
	StateConfirmed State = "confirmed"
)

// Quote is what a selection costs right now.
type Quote struct {
	Tickets []domain.BookedTicket `json:"tickets"`
	Total   int                   `json:"total"`
}

// Session tracks the seats picked during one booking attempt against one
// showtime. It is a plain value owned by the caller; nothing here is shared
// between sessions. A selection is a soft hold only: the status matrix can
// change underneath it until the store leases the seats on confirm.
type Session struct {
	grid     *Grid
	matrix   *StatusMatrix
	selected map[Coord]struct{}
	state    State
}

func NewSession(g *Grid, m *StatusMatrix) *Session {
	return &Session{
		grid:     g,
		matrix:   m,
		selected: make(map[Coord]struct{}),
		state:    StateEmpty,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Len() int {
	return len(s.selected)
}

func (s *Session) IsSelected(r, c int) bool {
	_, ok := s.selected[Coord{Row: r, Col: c}]
	return ok
}

// Toggle adds (r, c) to the selection when it is a free seat, or removes it
// when it is already selected. Toggling a structural, held or sold cell does
// nothing.
//
// Returns:
//   - bool: whether the selection changed.
//   - error: OutOfBoundsError for coordinates outside the grid (the selection
//     is left untouched); ErrSessionClosed after Confirm.
func (s *Session) Toggle(r, c int) (bool, error) {
	if s.state == StateConfirmed {
		return false, ErrSessionClosed
	}
	if err := s.grid.bounds(r, c); err != nil {
		return false, err
	}

	key := Coord{Row: r, Col: c}
	if _, ok := s.selected[key]; ok {
		delete(s.selected, key)
		s.syncState()
		return true, nil
	}

	if !s.grid.IsBookable(r, c) || !s.matrix.IsAvailable(r, c) {
		return false, nil
	}

	s.selected[key] = struct{}{}
	s.syncState()

	return true, nil
}

// Derive prices the current selection. It never mutates the session or the
// matrix, so two calls without a Toggle in between return equal quotes.
// Seats whose category is free are left out of both tickets and total.
func (s *Session) Derive() Quote {
	q := Quote{Tickets: []domain.BookedTicket{}}

	for _, at := range s.Selection() {
		cat, ok, err := s.grid.CategoryOf(at.Row, at.Col)
		if err != nil || !ok || cat.Price <= 0 {
			continue
		}
		label, err := s.grid.LabelOf(at.Row, at.Col)
		if err != nil {
			continue
		}

		seat := at
		q.Tickets = append(q.Tickets, domain.BookedTicket{
			CategoryName: cat.Name,
			Price:        cat.Price,
			Quantity:     1,
			SeatLabel:    label,
			Seat:         &seat,
		})
		q.Total += cat.Price
	}

	return q
}

// Selection returns the selected coordinates in row-major order.
func (s *Session) Selection() []Coord {
	out := make([]Coord, 0, len(s.selected))
	for at := range s.selected {
		out = append(out, at)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (s *Session) Reset() {
	s.selected = make(map[Coord]struct{})
	s.state = StateEmpty
}

// Rebind points the session at another showtime's grid and matrix. The old
// coordinates mean nothing there, so the selection is cleared.
func (s *Session) Rebind(g *Grid, m *StatusMatrix) {
	s.grid = g
	s.matrix = m
	s.Reset()
}

// Confirm closes the session and returns the final quote. A selection that
// costs nothing cannot be confirmed.
func (s *Session) Confirm() (Quote, error) {
	if s.state == StateConfirmed {
		return Quote{}, ErrSessionClosed
	}

	q := s.Derive()
	if q.Total <= 0 {
		return q, ErrNothingToPay
	}

	s.state = StateConfirmed

	return q, nil
}

// Restore replays a stored selection against the current matrix. Seats that
// were sold or held by someone else in the meantime are dropped silently, and
// repeated coordinates count once. If any coordinate is outside the grid the
// session is left untouched.
func (s *Session) Restore(coords []Coord, state State) error {
	for _, at := range coords {
		if err := s.grid.bounds(at.Row, at.Col); err != nil {
			return err
		}
	}

	s.Reset()
	for _, at := range coords {
		if s.IsSelected(at.Row, at.Col) {
			continue
		}
		if _, err := s.Toggle(at.Row, at.Col); err != nil {
			return err
		}
	}
	if state == StateConfirmed {
		s.state = StateConfirmed
	}
	return nil
}

func (s *Session) syncState() {
	if len(s.selected) == 0 {
		s.state = StateEmpty
		return
	}
	s.state = StateSelecting
}
