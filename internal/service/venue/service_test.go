package venue

import (
	"testing"

	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/slots"
)

func TestVenueRange_PerHour(t *testing.T) {
	p := slots.Proposal{Kind: domain.VenuePerHour, StartTime: "10:30", Hours: 3}

	res, err := slots.Detect(nil, p, slots.Pricing{FullDayPrice: 1000, PerHourPrice: 100})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	r := venueRange(4, "2024-05-01", p, res)

	if r.VenueID != 4 || r.Date != "2024-05-01" || r.Kind != domain.VenuePerHour {
		t.Fatalf("unexpected range %+v", r)
	}
	if r.StartTime != "10:00" || r.Hours != 3 {
		t.Fatalf("expected floored start 10:00 for 3h, got %s for %dh", r.StartTime, r.Hours)
	}
	want := []string{"10:00", "11:00", "12:00"}
	if len(r.Slots) != len(want) {
		t.Fatalf("expected slots %v, got %v", want, r.Slots)
	}
	for i := range want {
		if r.Slots[i] != want[i] {
			t.Fatalf("expected slots %v, got %v", want, r.Slots)
		}
	}
}

func TestVenueRange_FullDay(t *testing.T) {
	p := slots.Proposal{Kind: domain.VenueFullDay}

	res, err := slots.Detect(nil, p, slots.Pricing{FullDayPrice: 1000, PerHourPrice: 100})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	r := venueRange(4, "2024-05-01", p, res)

	if r.StartTime != "" || r.Hours != 0 {
		t.Fatalf("full-day range must not carry a start or hours, got %+v", r)
	}
	if len(r.Slots) != slots.HoursPerDay {
		t.Fatalf("expected %d slots, got %d", slots.HoursPerDay, len(r.Slots))
	}
}
