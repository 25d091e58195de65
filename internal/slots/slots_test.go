package slots

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

var pricing = Pricing{FullDayPrice: 5000, PerHourPrice: 300}

func perHour(start string, hours int) domain.VenueBooking {
	return domain.VenueBooking{Kind: domain.VenuePerHour, StartTime: start, HoursBooked: hours}
}

func TestExpand(t *testing.T) {
	cases := []struct {
		start Slot
		hours int
		want  []Slot
	}{
		{10, 2, []Slot{10, 11}},
		{9, 1, []Slot{9}},
		{22, 4, []Slot{22, 23}},
		{5, 0, nil},
		{5, -3, nil},
	}
	for _, tc := range cases {
		got := Expand(tc.start, tc.hours)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Expand(%d,%d): expected %v, got %v", tc.start, tc.hours, tc.want, got)
		}
	}
}

func TestParseStart(t *testing.T) {
	cases := []struct {
		in   string
		want Slot
		ok   bool
	}{
		{"10:00", 10, true},
		{"09:30", 9, true},
		{"7", 7, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"", 0, false},
		{"noon", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseStart(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q: expected nil error, got %v", tc.in, err)
		}
		if !tc.ok {
			if !errors.Is(err, ErrInvalidStartTime) {
				t.Fatalf("%q: expected ErrInvalidStartTime, got %v", tc.in, err)
			}
			continue
		}
		if got != tc.want {
			t.Fatalf("%q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestDetect_OverlapExample(t *testing.T) {
	existing := []domain.VenueBooking{perHour("10:00", 2)}

	res, err := Detect(existing, Proposal{Kind: domain.VenuePerHour, StartTime: "11:00", Hours: 1}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Conflict {
		t.Fatal("expected 11:00 to conflict with 10:00+2h")
	}
	if !reflect.DeepEqual(res.Occupied, []Slot{10, 11}) {
		t.Fatalf("expected occupied {10,11}, got %v", res.Occupied)
	}

	res, err = Detect(existing, Proposal{Kind: domain.VenuePerHour, StartTime: "12:00", Hours: 1}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Conflict {
		t.Fatal("expected 12:00 to be free")
	}
	if res.Total != pricing.PerHourPrice {
		t.Fatalf("expected total %d, got %d", pricing.PerHourPrice, res.Total)
	}
}

func TestDetect_FullDayExclusivity(t *testing.T) {
	existing := []domain.VenueBooking{{Kind: domain.VenueFullDay}}

	for _, p := range []Proposal{
		{Kind: domain.VenuePerHour, StartTime: "00:00", Hours: 1},
		{Kind: domain.VenuePerHour, StartTime: "13:00", Hours: 3},
		{Kind: domain.VenuePerHour, StartTime: "23:00", Hours: 1},
		{Kind: domain.VenuePerHour, StartTime: "08:00", Hours: 0},
		{Kind: domain.VenuePerHour, StartTime: "25:99", Hours: 2},
		{Kind: domain.VenuePerHour, StartTime: "", Hours: 1},
		{Kind: domain.VenueFullDay},
	} {
		res, err := Detect(existing, p, pricing)
		if err != nil {
			t.Fatalf("%+v: expected nil error, got %v", p, err)
		}
		if !res.FullyBooked || !res.Conflict {
			t.Fatalf("%+v: expected fully booked conflict, got %+v", p, res)
		}
	}
}

func TestDetect_FullDayMalformedStartStillPriced(t *testing.T) {
	existing := []domain.VenueBooking{{Kind: domain.VenueFullDay}}

	res, err := Detect(existing, Proposal{Kind: domain.VenuePerHour, StartTime: "25:99", Hours: 2}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Total != 2*pricing.PerHourPrice {
		t.Fatalf("expected total %d, got %d", 2*pricing.PerHourPrice, res.Total)
	}
	if len(res.Proposed) != 0 {
		t.Fatalf("expected no proposed hours for an unreadable start, got %v", res.Proposed)
	}

	if _, err := Detect(nil, Proposal{Kind: domain.VenuePerHour, StartTime: "25:99", Hours: 2}, pricing); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime on a free day, got %v", err)
	}
}

func TestDetect_TotalIndependentOfConflict(t *testing.T) {
	existing := []domain.VenueBooking{perHour("10:00", 3)}

	res, err := Detect(existing, Proposal{Kind: domain.VenuePerHour, StartTime: "11:00", Hours: 4}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Conflict {
		t.Fatal("expected conflict")
	}
	if res.Total != 4*pricing.PerHourPrice {
		t.Fatalf("expected total %d, got %d", 4*pricing.PerHourPrice, res.Total)
	}
}

func TestDetect_NonPositiveHours(t *testing.T) {
	res, err := Detect(nil, Proposal{Kind: domain.VenuePerHour, StartTime: "10:00", Hours: 0}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(res.Proposed) != 0 || res.Total != 0 || res.Conflict {
		t.Fatalf("expected empty zero-priced proposal, got %+v", res)
	}

	res, err = Detect(nil, Proposal{Kind: domain.VenueFullDay, Hours: -2}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if res.Total != pricing.FullDayPrice {
		t.Fatalf("expected full-day price regardless of hours, got %d", res.Total)
	}
}

func TestDetect_FullDayProposalOnBusyDay(t *testing.T) {
	res, err := Detect([]domain.VenueBooking{perHour("18:00", 1)}, Proposal{Kind: domain.VenueFullDay}, pricing)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !res.Conflict || res.FullyBooked {
		t.Fatalf("expected conflict without fully booked flag, got %+v", res)
	}

	res, _ = Detect(nil, Proposal{Kind: domain.VenueFullDay}, pricing)
	if res.Conflict || len(res.Proposed) != HoursPerDay {
		t.Fatalf("expected free full day covering 24 slots, got %+v", res)
	}
}

func TestDetect_InvalidInput(t *testing.T) {
	if _, err := Detect(nil, Proposal{Kind: "weekly"}, pricing); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if _, err := Detect(nil, Proposal{Kind: domain.VenuePerHour, StartTime: "late", Hours: 2}, pricing); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime, got %v", err)
	}
	if _, err := Detect([]domain.VenueBooking{perHour("x", 1)}, Proposal{Kind: domain.VenueFullDay}, pricing); !errors.Is(err, ErrInvalidStartTime) {
		t.Fatalf("expected ErrInvalidStartTime from stored booking, got %v", err)
	}
}

func TestCheckWithinDay(t *testing.T) {
	if err := CheckWithinDay(Proposal{Kind: domain.VenuePerHour, StartTime: "22:00", Hours: 2}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := CheckWithinDay(Proposal{Kind: domain.VenuePerHour, StartTime: "22:00", Hours: 3}); !errors.Is(err, ErrPastMidnight) {
		t.Fatalf("expected ErrPastMidnight, got %v", err)
	}
}

func TestFree(t *testing.T) {
	full, occupied, err := Occupancy([]domain.VenueBooking{perHour("00:00", 20), perHour("21:00", 1)})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if full {
		t.Fatal("expected day not fully booked")
	}
	if got := Free(full, occupied); !reflect.DeepEqual(got, []Slot{20, 22, 23}) {
		t.Fatalf("expected free {20,22,23}, got %v", got)
	}
	if got := Free(true, nil); len(got) != 0 {
		t.Fatalf("expected no free hours on a full-day booking, got %v", got)
	}
}

func TestSlot_JSON(t *testing.T) {
	b, err := json.Marshal([]Slot{9, 10})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if string(b) != `["09:00","10:00"]` {
		t.Fatalf("unexpected encoding %s", b)
	}
}

func TestOccupancy_MalformedStoredBooking(t *testing.T) {
	cases := []domain.VenueBooking{
		{Kind: domain.VenuePerHour, StartTime: "9am", HoursBooked: 2},
		{Kind: "weekly"},
	}

	for _, b := range cases {
		_, _, err := Occupancy([]domain.VenueBooking{b})
		if !errors.Is(err, ErrStoredBooking) {
			t.Fatalf("%+v: expected ErrStoredBooking, got %v", b, err)
		}
		if _, err := Detect([]domain.VenueBooking{b}, Proposal{Kind: domain.VenueFullDay}, pricing); !errors.Is(err, ErrStoredBooking) {
			t.Fatalf("%+v: expected Detect to report ErrStoredBooking, got %v", b, err)
		}
	}
}
