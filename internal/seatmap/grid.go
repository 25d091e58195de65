package seatmap

import (
	"strconv"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

// Structural cell markers. They shape the room and are never sold, whatever
// the category table says.
const (
	MarkerAisle      = "aisle"
	MarkerEmpty      = "empty"
	MarkerStageLeft  = "stage-left"
	MarkerStageRight = "stage-right"
	MarkerRamp       = "ramp"
)

const (
	DefaultRowStartIndex = 0
	DefaultColStartIndex = 1

	// Rows are lettered A to Z.
	maxRowLetters = 26
)

func IsStructural(code string) bool {
	switch code {
	case MarkerAisle, MarkerEmpty, MarkerStageLeft, MarkerStageRight, MarkerRamp:
		return true
	}
	return false
}

type Coord = domain.Coord

// Grid is the fixed 2-D arrangement of a screen. Dimensions and labels never
// change once built.
type Grid struct {
	rows, cols int
	rowStart   int
	colStart   int
	cells      [][]string
	labels     [][]string
	registry   *Registry
}

// NewGrid validates a layout and precomputes every seat label.
//
// Returns:
//   - *Grid: the grid when the layout is consistent.
//   - error: ConfigurationError for ragged rows, bad dimensions, or a cell
//     code that is neither a structural marker nor a known category.
func NewGrid(layout domain.SeatLayout) (*Grid, error) {
	registry, err := NewRegistry(layout.Categories)
	if err != nil {
		return nil, err
	}

	if layout.Rows <= 0 || layout.Cols <= 0 {
		return nil, configErr("grid must have positive dimensions, got %dx%d", layout.Rows, layout.Cols)
	}

	if len(layout.Cells) != layout.Rows {
		return nil, configErr("grid declares %d rows but has %d", layout.Rows, len(layout.Cells))
	}

	g := &Grid{
		rows:     layout.Rows,
		cols:     layout.Cols,
		rowStart: DefaultRowStartIndex,
		colStart: DefaultColStartIndex,
		cells:    make([][]string, layout.Rows),
		labels:   make([][]string, layout.Rows),
		registry: registry,
	}
	if layout.RowStartIndex != nil {
		g.rowStart = *layout.RowStartIndex
	}
	if layout.ColStartIndex != nil {
		g.colStart = *layout.ColStartIndex
	}
	if g.rowStart < 0 || g.colStart < 0 {
		return nil, configErr("start indices must not be negative")
	}
	if g.rowStart+layout.Rows > maxRowLetters {
		return nil, configErr("rows %d from start index %d run past row letter Z", layout.Rows, g.rowStart)
	}

	for r, row := range layout.Cells {
		if len(row) != layout.Cols {
			return nil, configErr("row %d has %d cells, want %d", r, len(row), layout.Cols)
		}

		g.cells[r] = append([]string(nil), row...)
		g.labels[r] = make([]string, layout.Cols)

		letter := string(rune('A' + r + g.rowStart))
		next := g.colStart
		for c, code := range row {
			if IsStructural(code) {
				continue
			}
			if _, ok := registry.Resolve(code); !ok {
				return nil, configErr("cell (%d,%d) references unknown category %q", r, c, code)
			}
			g.labels[r][c] = letter + strconv.Itoa(next)
			next++
		}
	}

	return g, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) RowStartIndex() int { return g.rowStart }
func (g *Grid) ColStartIndex() int { return g.colStart }

func (g *Grid) inBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

func (g *Grid) bounds(r, c int) error {
	if !g.inBounds(r, c) {
		return OutOfBoundsError{Row: r, Col: c, Rows: g.rows, Cols: g.cols}
	}
	return nil
}

// IsBookable reports whether (r, c) is a real seat. Out-of-range coordinates
// are simply not bookable.
func (g *Grid) IsBookable(r, c int) bool {
	if !g.inBounds(r, c) {
		return false
	}
	return !IsStructural(g.cells[r][c])
}

// LabelOf returns the printed seat label, e.g. "A3". Seat numbers count only
// bookable cells of the row, so aisles do not leave gaps.
func (g *Grid) LabelOf(r, c int) (string, error) {
	if err := g.bounds(r, c); err != nil {
		return "", err
	}
	if g.labels[r][c] == "" {
		return "", ErrNotASeat
	}
	return g.labels[r][c], nil
}

func (g *Grid) CategoryOf(r, c int) (SeatCategory, bool, error) {
	if err := g.bounds(r, c); err != nil {
		return SeatCategory{}, false, err
	}
	cat, ok := g.registry.Resolve(g.cells[r][c])
	return cat, ok, nil
}

func (g *Grid) CellType(r, c int) (string, error) {
	if err := g.bounds(r, c); err != nil {
		return "", err
	}
	return g.cells[r][c], nil
}

// Seats lists the coordinates of all bookable cells in row-major order.
func (g *Grid) Seats() []Coord {
	var out []Coord
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.labels[r][c] != "" {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}
