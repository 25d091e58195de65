package slots

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
)

const (
	HoursPerDay = 24

	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)

var (
	ErrInvalidStartTime = errors.New("invalid start time")
	ErrPastMidnight     = errors.New("booking runs past the end of the day")
	ErrInvalidKind      = errors.New("invalid booking kind")

	// ErrStoredBooking marks a booking already on record that cannot be read.
	ErrStoredBooking = errors.New("stored venue booking is malformed")
)

// Slot is a one-hour unit of a venue day, identified by its start hour.
type Slot int

func (s Slot) String() string {
	return fmt.Sprintf("%02d:00", int(s))
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStart reads "HH:MM" (or a bare "HH") and returns the hour it falls in.
func ParseStart(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidStartTime
	}

	if !strings.Contains(s, ":") {
		h, err := strconv.Atoi(s)
		if err != nil || h < 0 || h >= HoursPerDay {
			return 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
		}
		return Slot(h), nil
	}

	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, s)
	}

	return Slot(t.Hour()), nil
}

// Expand returns the contiguous hours occupied by a booking that starts at
// start and lasts hours. Hours past midnight are cut off; hours <= 0 occupy
// nothing.
func Expand(start Slot, hours int) []Slot {
	if hours <= 0 {
		return nil
	}

	out := make([]Slot, 0, hours)
	for h := int(start); h < int(start)+hours && h < HoursPerDay; h++ {
		out = append(out, Slot(h))
	}

	return out
}

type Proposal struct {
	Kind      domain.VenueBookingKind `json:"kind"`
	StartTime string                  `json:"start_time,omitempty"`
	Hours     int                     `json:"hours,omitempty"`
}

type Pricing struct {
	FullDayPrice int `json:"full_day_price"`
	PerHourPrice int `json:"per_hour_price"`
}

type Result struct {
	FullyBooked bool   `json:"fully_booked"`
	Conflict    bool   `json:"conflict"`
	Occupied    []Slot `json:"occupied"`
	Proposed    []Slot `json:"proposed"`
	Total       int    `json:"total"`
}

// Occupancy folds the existing bookings of one date into the set of hours
// they hold. A full-day booking holds the whole day.
func Occupancy(existing []domain.VenueBooking) (fullyBooked bool, occupied []Slot, err error) {
	seen := make(map[Slot]struct{})

	for _, b := range existing {
		switch b.Kind {
		case domain.VenueFullDay:
			fullyBooked = true
		case domain.VenuePerHour:
			start, err := ParseStart(b.StartTime)
			if err != nil {
				return false, nil, fmt.Errorf("%w: booking %s: %w", ErrStoredBooking, b.ID, err)
			}
			for _, s := range Expand(start, b.HoursBooked) {
				seen[s] = struct{}{}
			}
		default:
			return false, nil, fmt.Errorf("%w: booking %s: %w: %q", ErrStoredBooking, b.ID, ErrInvalidKind, b.Kind)
		}
	}

	occupied = make([]Slot, 0, len(seen))
	for s := range seen {
		occupied = append(occupied, s)
	}
	sort.Slice(occupied, func(i, j int) bool { return occupied[i] < occupied[j] })

	return fullyBooked, occupied, nil
}

// Detect checks a proposed booking against the bookings already made for the
// same date and prices it.
//
// The total is computed whether or not the proposal conflicts; a caller must
// check Conflict before charging it.
//
// Parameters:
//   - existing: bookings already stored for the date.
//   - p: the proposed booking.
//   - price: the venue's full-day and hourly rates.
//
// Returns:
//   - Result: occupancy, the proposed hours, conflict flags and the total.
//   - error: ErrInvalidStartTime or ErrInvalidKind for malformed input.
func Detect(existing []domain.VenueBooking, p Proposal, price Pricing) (Result, error) {
	fullyBooked, occupied, err := Occupancy(existing)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		FullyBooked: fullyBooked,
		Occupied:    occupied,
		Proposed:    []Slot{},
	}

	switch p.Kind {
	case domain.VenueFullDay:
		res.Proposed = Expand(0, HoursPerDay)
		res.Total = price.FullDayPrice
		res.Conflict = fullyBooked || len(occupied) > 0
		return res, nil

	case domain.VenuePerHour:
		if p.Hours > 0 {
			res.Total = price.PerHourPrice * p.Hours
		}

		// A full-day booking excludes every hour, whatever the proposal says.
		if fullyBooked {
			res.Conflict = true
			if start, err := ParseStart(p.StartTime); err == nil && p.Hours > 0 {
				res.Proposed = Expand(start, p.Hours)
			}
			return res, nil
		}

		if p.Hours > 0 {
			start, err := ParseStart(p.StartTime)
			if err != nil {
				return Result{}, err
			}
			res.Proposed = Expand(start, p.Hours)
		}

		taken := make(map[Slot]struct{}, len(occupied))
		for _, s := range occupied {
			taken[s] = struct{}{}
		}
		for _, s := range res.Proposed {
			if _, ok := taken[s]; ok {
				res.Conflict = true
				break
			}
		}

		return res, nil
	}

	return Result{}, fmt.Errorf("%w: %q", ErrInvalidKind, p.Kind)
}

// CheckWithinDay rejects hourly proposals that would need hours of the next
// day.
func CheckWithinDay(p Proposal) error {
	if p.Kind != domain.VenuePerHour || p.Hours <= 0 {
		return nil
	}

	start, err := ParseStart(p.StartTime)
	if err != nil {
		return err
	}

	if int(start)+p.Hours > HoursPerDay {
		return fmt.Errorf("%w: %s + %dh", ErrPastMidnight, start, p.Hours)
	}

	return nil
}

// Free lists the hours of the day not covered by any booking.
func Free(fullyBooked bool, occupied []Slot) []Slot {
	out := []Slot{}
	if fullyBooked {
		return out
	}

	taken := make(map[Slot]struct{}, len(occupied))
	for _, s := range occupied {
		taken[s] = struct{}{}
	}
	for h := 0; h < HoursPerDay; h++ {
		if _, ok := taken[Slot(h)]; !ok {
			out = append(out, Slot(h))
		}
	}

	return out
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

func Labels(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
