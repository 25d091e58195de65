package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

func TestGeneralQuote(t *testing.T) {
	q, err := generalQuote(150, 4)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if q.Total != 600 || len(q.Tickets) != 1 {
		t.Fatalf("unexpected quote %+v", q)
	}
	if line := q.Tickets[0]; line.Quantity != 4 || line.Price != 150 || line.SeatLabel != "" {
		t.Fatalf("unexpected line %+v", line)
	}
	if q.Tickets[0].Subtotal() != q.Total {
		t.Fatalf("line subtotal %d differs from total %d", q.Tickets[0].Subtotal(), q.Total)
	}

	if _, err := generalQuote(150, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := generalQuote(0, 2); !errors.Is(err, ErrNoGeneralAdmission) {
		t.Fatalf("expected ErrNoGeneralAdmission, got %v", err)
	}
}

func testBoard(t *testing.T, statuses [][]seatmap.Status) (*seatmap.Grid, *seatmap.StatusMatrix) {
	t.Helper()

	g, err := seatmap.NewGrid(domain.SeatLayout{
		Rows:  1,
		Cols:  4,
		Cells: [][]string{{"std", "std", "aisle", "free"}},
		Categories: []domain.SeatCategory{
			{ID: "std", Name: "Standard", Price: 200},
			{ID: "free", Name: "Companion", Price: 0},
		},
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	m, err := seatmap.NewStatusMatrix(g, statuses)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	return g, m
}

func TestSelectAll(t *testing.T) {
	g, m := testBoard(t, nil)

	sess, err := selectAll(g, m, []domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 0}, {Row: 0, Col: 3}})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if sess.Len() != 3 {
		t.Fatalf("expected 3 distinct seats, got %d", sess.Len())
	}
	if q := sess.Derive(); q.Total != 400 || len(q.Tickets) != 2 {
		t.Fatalf("free seat must not be priced, got %+v", q)
	}
}

func TestSelectAll_Rejects(t *testing.T) {
	g, m := testBoard(t, [][]seatmap.Status{{seatmap.Available, seatmap.Sold, seatmap.Available, seatmap.Available}})

	cases := []struct {
		name  string
		seats []domain.Coord
		want  error
	}{
		{"sold seat", []domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, ErrSeatsTaken},
		{"aisle", []domain.Coord{{Row: 0, Col: 2}}, ErrSeatsTaken},
		{"out of bounds", []domain.Coord{{Row: 1, Col: 0}}, seatmap.ErrOutOfBounds},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := selectAll(g, m, tc.seats); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCapacityLeft(t *testing.T) {
	if !capacityLeft(10, 8, 2) {
		t.Fatal("expected exact fit to be allowed")
	}
	if capacityLeft(10, 9, 2) {
		t.Fatal("expected overflow to be refused")
	}
}

func TestSyncResult(t *testing.T) {
	id := uuid.New()

	res := syncResult("L1", domain.BookingRecord{ID: id}, nil)
	if res.Status != SyncStored || res.BookingID == nil || *res.BookingID != id {
		t.Fatalf("unexpected stored result %+v", res)
	}

	res = syncResult("L2", domain.BookingRecord{ID: id}, fmt.Errorf("op:%w", ErrDuplicate))
	if res.Status != SyncDuplicate || res.BookingID == nil || res.Error != "" {
		t.Fatalf("unexpected duplicate result %+v", res)
	}

	res = syncResult("L3", domain.BookingRecord{}, fmt.Errorf("op:%w", ErrSeatsTaken))
	if res.Status != SyncRejected || res.BookingID != nil || res.Error == "" {
		t.Fatalf("unexpected rejected result %+v", res)
	}
}
