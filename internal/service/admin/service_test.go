package admin

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

func validLayout() domain.SeatLayout {
	return domain.SeatLayout{
		Rows:       2,
		Cols:       2,
		Cells:      [][]string{{"std", "std"}, {"aisle", "std"}},
		Categories: []domain.SeatCategory{{ID: "std", Name: "Standard", Price: 200}},
	}
}

func TestCheckLayout(t *testing.T) {
	v := validator.New()

	if err := checkLayout(v, validLayout()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*domain.SeatLayout)
		grid   bool
	}{
		{"zero rows", func(l *domain.SeatLayout) { l.Rows = 0 }, false},
		{"negative price", func(l *domain.SeatLayout) { l.Categories[0].Price = -1 }, false},
		{"category without name", func(l *domain.SeatLayout) { l.Categories[0].Name = "" }, false},
		{"ragged row", func(l *domain.SeatLayout) { l.Cells[1] = []string{"std"} }, true},
		{"unknown category", func(l *domain.SeatLayout) { l.Cells[0][0] = "gold" }, true},
		{"row count mismatch", func(l *domain.SeatLayout) { l.Rows = 3 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := validLayout()
			tc.mutate(&layout)

			err := checkLayout(v, layout)
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("expected ErrInvalidLayout, got %v", err)
			}
			if tc.grid && !errors.Is(err, seatmap.ErrConfiguration) {
				t.Fatalf("expected a configuration error from the grid, got %v", err)
			}
		})
	}
}
