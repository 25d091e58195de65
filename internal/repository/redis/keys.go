package redis

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "boxoffice:v1"

func KeyScreen(screenID int64) string {
	return fmt.Sprintf("%s:screen:%d", ns, screenID)
}

func KeyShowtime(showtimeID int64) string {
	return fmt.Sprintf("%s:showtime:%d", ns, showtimeID)
}

func KeyShowtimeAvailability(showtimeID int64) string {
	return fmt.Sprintf("%s:showtime:%d:availability", ns, showtimeID)
}

func KeyShowtimeSeatMap(showtimeID int64) string {
	return fmt.Sprintf("%s:showtime:%d:seatmap", ns, showtimeID)
}

func KeySession(id uuid.UUID) string {
	return fmt.Sprintf("%s:session:%s", ns, id)
}

// KeyVenueDay names the lock taken while a venue date is being booked.
func KeyVenueDay(venueID int64, date string) string {
	return fmt.Sprintf("%s:lock:venue:%d:%s", ns, venueID, date)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func KeyIdem(scope, idemKey string) string {
	return fmt.Sprintf("%s:idem:%s:%s", ns, scope, idemKey)
}

func ChannelShowtimesChanged() string {
	return ns + ":showtimes:changed"
}
