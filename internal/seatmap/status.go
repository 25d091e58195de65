package seatmap

import "github.com/kirinyoku/boxoffice/internal/domain"

type Status = domain.SeatStatus

const (
	Available = domain.SeatAvailable
	Held      = domain.SeatHeld
	Sold      = domain.SeatSold
)

// StatusMatrix is the per-showtime sale state of every cell. The engine only
// reads it; the showtime's store updates it when holds and sales happen.
type StatusMatrix struct {
	rows, cols int
	cells      [][]Status
}

// NewStatusMatrix pairs a status matrix with its grid. A nil matrix means
// every cell is available.
//
// Returns:
//   - *StatusMatrix: a private copy of statuses.
//   - error: ConfigurationError when the dimensions disagree with the grid or
//     a status value is unknown.
func NewStatusMatrix(g *Grid, statuses [][]Status) (*StatusMatrix, error) {
	m := &StatusMatrix{
		rows:  g.Rows(),
		cols:  g.Cols(),
		cells: make([][]Status, g.Rows()),
	}

	if statuses == nil {
		for r := range m.cells {
			m.cells[r] = make([]Status, m.cols)
			for c := range m.cells[r] {
				m.cells[r][c] = Available
			}
		}
		return m, nil
	}

	if len(statuses) != m.rows {
		return nil, configErr("status matrix has %d rows, grid has %d", len(statuses), m.rows)
	}

	for r, row := range statuses {
		if len(row) != m.cols {
			return nil, configErr("status row %d has %d cells, grid has %d", r, len(row), m.cols)
		}
		for c, s := range row {
			if !s.Valid() {
				return nil, configErr("unknown seat status %q at (%d,%d)", s, r, c)
			}
		}
		m.cells[r] = append([]Status(nil), row...)
	}

	return m, nil
}

func (m *StatusMatrix) StatusOf(r, c int) (Status, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return "", OutOfBoundsError{Row: r, Col: c, Rows: m.rows, Cols: m.cols}
	}
	return m.cells[r][c], nil
}

func (m *StatusMatrix) IsAvailable(r, c int) bool {
	s, err := m.StatusOf(r, c)
	return err == nil && s == Available
}

// Snapshot returns a copy of the matrix suitable for serialisation.
func (m *StatusMatrix) Snapshot() [][]Status {
	out := make([][]Status, m.rows)
	for r := range m.cells {
		out[r] = append([]Status(nil), m.cells[r]...)
	}
	return out
}
