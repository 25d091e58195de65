package redis

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestKeysAreNamespaced(t *testing.T) {
	id := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

	keys := []string{
		KeyScreen(1),
		KeyShowtime(2),
		KeyShowtimeAvailability(2),
		KeyShowtimeSeatMap(2),
		KeySession(id),
		KeyVenueDay(3, "2024-05-01"),
		KeyRateLimit("checkout", "10.0.0.1"),
		KeyIdem("checkout", "abc"),
		ChannelShowtimesChanged(),
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if !strings.HasPrefix(k, ns+":") {
			t.Fatalf("key %q is not under %q", k, ns)
		}
		if seen[k] {
			t.Fatalf("duplicate key %q", k)
		}
		seen[k] = true
	}

	if got, want := KeyVenueDay(3, "2024-05-01"), "boxoffice:v1:lock:venue:3:2024-05-01"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDecodeShowtimeChanged(t *testing.T) {
	cases := []struct {
		payload string
		id      int64
		ok      bool
	}{
		{`{"type":"showtime_changed","showtime_id":42,"ts_unix":1}`, 42, true},
		{`{"type":"showtime_changed","showtime_id":0}`, 0, false},
		{`not json`, 0, false},
	}

	for _, tc := range cases {
		id, ok := decodeShowtimeChanged(tc.payload)
		if id != tc.id || ok != tc.ok {
			t.Fatalf("%s: expected (%d,%v), got (%d,%v)", tc.payload, tc.id, tc.ok, id, ok)
		}
	}
}

func TestToInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{int64(7), 7},
		{3, 3},
		{float64(2), 2},
		{"15", 15},
		{"x", 0},
		{nil, 0},
	}

	for _, tc := range cases {
		if got := toInt(tc.in); got != tc.want {
			t.Fatalf("toInt(%v): expected %d, got %d", tc.in, tc.want, got)
		}
	}
}
