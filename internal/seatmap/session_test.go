package seatmap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

func newTestSession(t *testing.T, statuses [][]Status) *Session {
	t.Helper()
	g := mustGrid(t, testLayout())
	m, err := NewStatusMatrix(g, statuses)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	return NewSession(g, m)
}

func soldAt(rows, cols int, sold ...Coord) [][]Status {
	out := make([][]Status, rows)
	for r := range out {
		out[r] = make([]Status, cols)
		for c := range out[r] {
			out[r][c] = Available
		}
	}
	for _, at := range sold {
		out[at.Row][at.Col] = Sold
	}
	return out
}

func TestToggle_AddRemove(t *testing.T) {
	s := newTestSession(t, nil)

	if s.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", s.State())
	}

	changed, err := s.Toggle(0, 0)
	if err != nil || !changed {
		t.Fatalf("expected seat added, got changed=%v err=%v", changed, err)
	}
	if s.State() != StateSelecting || !s.IsSelected(0, 0) {
		t.Fatalf("expected selecting state with (0,0) selected")
	}

	changed, err = s.Toggle(0, 0)
	if err != nil || !changed {
		t.Fatalf("expected seat removed, got changed=%v err=%v", changed, err)
	}
	if s.State() != StateEmpty || s.Len() != 0 {
		t.Fatalf("expected empty session after second toggle")
	}
}

func TestToggle_StructuralIsNoop(t *testing.T) {
	s := newTestSession(t, nil)

	changed, err := s.Toggle(0, 2)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if changed || s.Len() != 0 {
		t.Fatalf("expected aisle toggle to be a no-op")
	}
}

func TestToggle_SoldNeverSelected(t *testing.T) {
	s := newTestSession(t, soldAt(3, 5, Coord{Row: 1, Col: 0}))

	for i := 0; i < 4; i++ {
		changed, err := s.Toggle(1, 0)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if changed || s.IsSelected(1, 0) {
			t.Fatalf("toggle %d: sold seat must never be selected", i)
		}
	}
}

func TestToggle_HeldNeverSelected(t *testing.T) {
	statuses := soldAt(3, 5)
	statuses[0][1] = Held
	s := newTestSession(t, statuses)

	if changed, _ := s.Toggle(0, 1); changed {
		t.Fatal("held seat must not be selected")
	}
}

func TestToggle_OutOfBoundsKeepsSelection(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(0, 0)

	_, err := s.Toggle(7, 7)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if s.Len() != 1 || !s.IsSelected(0, 0) {
		t.Fatalf("selection changed after out-of-bounds toggle: %+v", s.Selection())
	}
}

func TestDerive_TicketsAndTotal(t *testing.T) {
	s := newTestSession(t, nil)
	for _, at := range []Coord{{Row: 1, Col: 4}, {Row: 0, Col: 0}, {Row: 0, Col: 3}} {
		if _, err := s.Toggle(at.Row, at.Col); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	q := s.Derive()
	if q.Total != 200+200+450 {
		t.Fatalf("expected total 850, got %d", q.Total)
	}

	labels := make([]string, 0, len(q.Tickets))
	for _, tk := range q.Tickets {
		if tk.Quantity != 1 {
			t.Fatalf("expected quantity 1, got %d", tk.Quantity)
		}
		labels = append(labels, tk.SeatLabel)
	}
	if want := []string{"A1", "A3", "B3"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("expected labels %v, got %v", want, labels)
	}
}

func TestDerive_Idempotent(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(0, 1)
	_, _ = s.Toggle(1, 2)
	_, _ = s.Toggle(2, 4)

	first := s.Derive()
	second := s.Derive()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical quotes, got %+v and %+v", first, second)
	}
	if s.Len() != 3 {
		t.Fatalf("derive must not mutate the selection")
	}
}

func TestDerive_ExcludesFreeSeats(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(2, 0)

	if !s.IsSelected(2, 0) {
		t.Fatal("free seat is bookable and should stay selected")
	}

	q := s.Derive()
	if len(q.Tickets) != 0 || q.Total != 0 {
		t.Fatalf("expected free seat excluded, got %+v", q)
	}

	_, _ = s.Toggle(2, 1)
	q = s.Derive()
	if len(q.Tickets) != 1 || q.Total != 200 {
		t.Fatalf("expected one paid ticket, got %+v", q)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(0, 0)
	_, _ = s.Toggle(1, 0)

	s.Reset()

	q := s.Derive()
	if len(q.Tickets) != 0 || q.Total != 0 {
		t.Fatalf("expected empty quote after reset, got %+v", q)
	}
	if s.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", s.State())
	}
}

func TestRebind_ClearsSelection(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(0, 0)

	other := mustGrid(t, domain.SeatLayout{
		Rows:       1,
		Cols:       1,
		Cells:      [][]string{{"s"}},
		Categories: []domain.SeatCategory{{ID: "s", Name: "Seat", Price: 90}},
	})
	m, _ := NewStatusMatrix(other, nil)
	s.Rebind(other, m)

	if s.Len() != 0 || s.State() != StateEmpty {
		t.Fatal("expected selection cleared after rebind")
	}
}

func TestConfirm(t *testing.T) {
	s := newTestSession(t, nil)

	if _, err := s.Confirm(); !errors.Is(err, ErrNothingToPay) {
		t.Fatalf("expected ErrNothingToPay, got %v", err)
	}
	if s.State() != StateEmpty {
		t.Fatalf("failed confirm must not close the session")
	}

	_, _ = s.Toggle(1, 0)
	q, err := s.Confirm()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if q.Total != 450 || s.State() != StateConfirmed {
		t.Fatalf("unexpected confirm result %+v state=%s", q, s.State())
	}

	if _, err := s.Toggle(0, 0); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := s.Confirm(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestRestore_DropsSeatsSoldMeanwhile(t *testing.T) {
	s := newTestSession(t, soldAt(3, 5, Coord{Row: 0, Col: 1}))

	err := s.Restore([]Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 2}}, StateSelecting)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	want := []Coord{{Row: 0, Col: 0}, {Row: 1, Col: 2}}
	if got := s.Selection(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRestore_RepeatedCoordinateCountsOnce(t *testing.T) {
	s := newTestSession(t, nil)

	if err := s.Restore([]Coord{{Row: 0, Col: 0}, {Row: 0, Col: 0}}, StateSelecting); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if s.Len() != 1 || !s.IsSelected(0, 0) {
		t.Fatalf("expected (0,0) selected once, got %v", s.Selection())
	}
}

func TestRestore_OutOfBoundsLeavesSessionUntouched(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.Toggle(1, 0)

	err := s.Restore([]Coord{{Row: 0, Col: 1}, {Row: 5, Col: 0}}, StateSelecting)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}

	want := []Coord{{Row: 1, Col: 0}}
	if got := s.Selection(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected previous selection %v, got %v", want, got)
	}
	if s.State() != StateSelecting {
		t.Fatalf("expected state unchanged, got %s", s.State())
	}
}
