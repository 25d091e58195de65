package query

import (
	"testing"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

func testGrid(t *testing.T) *seatmap.Grid {
	t.Helper()

	g, err := seatmap.NewGrid(domain.SeatLayout{
		Rows: 2,
		Cols: 3,
		Cells: [][]string{
			{"std", "aisle", "std"},
			{"vip", "vip", "empty"},
		},
		Categories: []domain.SeatCategory{
			{ID: "std", Name: "Standard", Price: 200},
			{ID: "vip", Name: "Recliner", Price: 450},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return g
}

func TestBuildStatuses(t *testing.T) {
	g := testGrid(t)

	statuses := buildStatuses(g, []postgresrepo.SeatState{
		{Row: 0, Col: 2, Status: domain.SeatSold},
		{Row: 1, Col: 0, Status: domain.SeatHeld},
		{Row: 5, Col: 0, Status: domain.SeatSold},
		{Row: 1, Col: 1, Status: "bogus"},
	})

	if len(statuses) != 2 || len(statuses[0]) != 3 {
		t.Fatalf("expected 2x3 matrix, got %v", statuses)
	}

	want := [][]seatmap.Status{
		{seatmap.Available, seatmap.Available, seatmap.Sold},
		{seatmap.Held, seatmap.Available, seatmap.Available},
	}
	for r := range want {
		for c := range want[r] {
			if statuses[r][c] != want[r][c] {
				t.Fatalf("(%d,%d): expected %s, got %s", r, c, want[r][c], statuses[r][c])
			}
		}
	}

	if _, err := seatmap.NewStatusMatrix(g, statuses); err != nil {
		t.Fatalf("built statuses must fit the grid, got %v", err)
	}
}

func TestBuildView(t *testing.T) {
	g := testGrid(t)
	m, err := seatmap.NewStatusMatrix(g, buildStatuses(g, []postgresrepo.SeatState{
		{Row: 1, Col: 1, Status: domain.SeatSold},
	}))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	v := buildView(7, g, m)

	if v.ShowtimeID != 7 || v.Rows != 2 || v.Cols != 3 {
		t.Fatalf("unexpected view header %+v", v)
	}

	aisle := v.Cells[0][1]
	if aisle.Type != "aisle" || aisle.Label != "" || aisle.Status != "" {
		t.Fatalf("structural cell must carry only its type, got %+v", aisle)
	}

	seat := v.Cells[0][2]
	if seat.Label != "A2" || seat.Category != "Standard" || seat.Price != 200 || seat.Status != domain.SeatAvailable {
		t.Fatalf("unexpected seat cell %+v", seat)
	}

	sold := v.Cells[1][1]
	if sold.Label != "B2" || sold.Status != domain.SeatSold {
		t.Fatalf("unexpected sold cell %+v", sold)
	}
}

func TestStatusCache(t *testing.T) {
	c := newStatusCache(time.Second)
	now := time.Now()
	statuses := [][]seatmap.Status{{seatmap.Available}}

	if _, ok := c.get(1, now); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.put(1, statuses, now)
	if _, ok := c.get(1, now.Add(500*time.Millisecond)); !ok {
		t.Fatal("expected hit within ttl")
	}
	if _, ok := c.get(1, now.Add(2*time.Second)); ok {
		t.Fatal("expected miss after ttl")
	}

	c.put(1, statuses, now)
	c.forget(1)
	if _, ok := c.get(1, now); ok {
		t.Fatal("expected miss after forget")
	}
}
