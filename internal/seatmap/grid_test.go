package seatmap

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

func intPtr(v int) *int { return &v }

func testLayout() domain.SeatLayout {
	return domain.SeatLayout{
		Rows: 3,
		Cols: 5,
		Cells: [][]string{
			{"std", "std", "aisle", "std", "std"},
			{"vip", "empty", "vip", "aisle", "vip"},
			{"comp", "std", "ramp", "stage-left", "std"},
		},
		Categories: []domain.SeatCategory{
			{ID: "std", Name: "Standard", Price: 200},
			{ID: "vip", Name: "Recliner", Price: 450},
			{ID: "comp", Name: "Companion", Price: 0},
		},
	}
}

func mustGrid(t *testing.T, layout domain.SeatLayout) *Grid {
	t.Helper()
	g, err := NewGrid(layout)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return g
}

func TestLabelOf_SkipsStructuralCells(t *testing.T) {
	g := mustGrid(t, domain.SeatLayout{
		Rows:       1,
		Cols:       4,
		Cells:      [][]string{{"s", "s", "aisle", "s"}},
		Categories: []domain.SeatCategory{{ID: "s", Name: "Seat", Price: 100}},
	})

	want := map[int]string{0: "A1", 1: "A2", 3: "A3"}
	for col, label := range want {
		got, err := g.LabelOf(0, col)
		if err != nil {
			t.Fatalf("col %d: expected nil error, got %v", col, err)
		}
		if got != label {
			t.Fatalf("col %d: expected %s, got %s", col, label, got)
		}
	}

	if _, err := g.LabelOf(0, 2); !errors.Is(err, ErrNotASeat) {
		t.Fatalf("expected ErrNotASeat for aisle, got %v", err)
	}
}

func TestLabelOf_StartIndices(t *testing.T) {
	layout := testLayout()
	layout.RowStartIndex = intPtr(2)
	layout.ColStartIndex = intPtr(10)
	g := mustGrid(t, layout)

	cases := []struct {
		r, c int
		want string
	}{
		{0, 0, "C10"},
		{0, 4, "C13"},
		{1, 2, "D11"},
		{2, 4, "E12"},
	}
	for _, tc := range cases {
		got, err := g.LabelOf(tc.r, tc.c)
		if err != nil {
			t.Fatalf("(%d,%d): expected nil error, got %v", tc.r, tc.c, err)
		}
		if got != tc.want {
			t.Fatalf("(%d,%d): expected %s, got %s", tc.r, tc.c, tc.want, got)
		}
	}
}

func TestLabelOf_GapFreeSequencePerRow(t *testing.T) {
	layout := testLayout()
	layout.ColStartIndex = intPtr(1)
	g := mustGrid(t, layout)

	for r := 0; r < g.Rows(); r++ {
		expected := g.ColStartIndex()
		for c := 0; c < g.Cols(); c++ {
			if !g.IsBookable(r, c) {
				continue
			}
			label, err := g.LabelOf(r, c)
			if err != nil {
				t.Fatalf("(%d,%d): expected nil error, got %v", r, c, err)
			}
			n, err := strconv.Atoi(label[1:])
			if err != nil {
				t.Fatalf("(%d,%d): label %q has no numeric suffix", r, c, label)
			}
			if n != expected {
				t.Fatalf("row %d: expected seat number %d, got %d (%s)", r, expected, n, label)
			}
			expected++
		}
	}
}

func TestLabelOf_Stable(t *testing.T) {
	g := mustGrid(t, testLayout())

	first, _ := g.LabelOf(1, 4)
	for i := 0; i < 5; i++ {
		again, _ := g.LabelOf(1, 4)
		if again != first {
			t.Fatalf("expected stable label %s, got %s", first, again)
		}
	}
}

func TestIsBookable(t *testing.T) {
	g := mustGrid(t, testLayout())

	cases := []struct {
		r, c int
		want bool
	}{
		{0, 0, true},
		{0, 2, false},
		{1, 1, false},
		{2, 0, true},
		{2, 3, false},
		{-1, 0, false},
		{0, 5, false},
		{3, 0, false},
	}
	for _, tc := range cases {
		if got := g.IsBookable(tc.r, tc.c); got != tc.want {
			t.Fatalf("(%d,%d): expected %v, got %v", tc.r, tc.c, tc.want, got)
		}
	}
}

func TestCategoryOf(t *testing.T) {
	g := mustGrid(t, testLayout())

	cat, ok, err := g.CategoryOf(1, 0)
	if err != nil || !ok {
		t.Fatalf("expected category, got ok=%v err=%v", ok, err)
	}
	if cat.Name != "Recliner" || cat.Price != 450 {
		t.Fatalf("unexpected category %+v", cat)
	}

	if _, ok, err := g.CategoryOf(0, 2); err != nil || ok {
		t.Fatalf("expected no category for aisle, got ok=%v err=%v", ok, err)
	}

	_, _, err = g.CategoryOf(9, 9)
	var oob OutOfBoundsError
	if !errors.As(err, &oob) {
		t.Fatalf("expected OutOfBoundsError, got %v", err)
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected error to wrap ErrOutOfBounds")
	}
}

func TestNewGrid_ConfigurationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.SeatLayout)
		reason string
	}{
		{"unknown code", func(l *domain.SeatLayout) { l.Cells[0][0] = "balcony" }, "unknown category"},
		{"ragged row", func(l *domain.SeatLayout) { l.Cells[1] = l.Cells[1][:3] }, "has 3 cells"},
		{"row count", func(l *domain.SeatLayout) { l.Rows = 4 }, "declares 4 rows"},
		{"zero cols", func(l *domain.SeatLayout) { l.Cols = 0 }, "positive dimensions"},
		{"negative price", func(l *domain.SeatLayout) { l.Categories[0].Price = -1 }, "negative price"},
		{"duplicate", func(l *domain.SeatLayout) {
			l.Categories = append(l.Categories, domain.SeatCategory{ID: "std", Name: "Dup", Price: 1})
		}, "duplicate"},
		{"marker as code", func(l *domain.SeatLayout) {
			l.Categories = append(l.Categories, domain.SeatCategory{ID: "aisle", Name: "Aisle", Price: 1})
		}, "structural marker"},
		{"negative start", func(l *domain.SeatLayout) { l.ColStartIndex = intPtr(-1) }, "negative"},
		{"past Z", func(l *domain.SeatLayout) { l.RowStartIndex = intPtr(24) }, "past row letter Z"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := testLayout()
			tc.mutate(&layout)

			_, err := NewGrid(layout)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.reason) {
				t.Fatalf("expected %q in error, got %v", tc.reason, err)
			}
		})
	}
}

func TestSeats_RowMajor(t *testing.T) {
	g := mustGrid(t, testLayout())

	seats := g.Seats()
	if len(seats) != 10 {
		t.Fatalf("expected 10 seats, got %d", len(seats))
	}
	if seats[0] != (Coord{Row: 0, Col: 0}) || seats[len(seats)-1] != (Coord{Row: 2, Col: 4}) {
		t.Fatalf("unexpected ordering %+v", seats)
	}
}

func TestLabelOf_LastRowLetterIsZ(t *testing.T) {
	layout := testLayout()
	layout.RowStartIndex = intPtr(23)
	g := mustGrid(t, layout)

	label, err := g.LabelOf(2, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.HasPrefix(label, "Z") {
		t.Fatalf("expected last row to be lettered Z, got %q", label)
	}
}
