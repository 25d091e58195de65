package query

import (
	"sync"
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

// Board is everything the selection engine needs for one showtime.
type Board struct {
	Showtime domain.Showtime
	Grid     *seatmap.Grid
	Matrix   *seatmap.StatusMatrix
}

// buildStatuses spreads stored seat rows over the grid. Cells without a row,
// structural ones included, read as available; the grid keeps structural
// cells unbookable anyway.
func buildStatuses(g *seatmap.Grid, seats []postgresrepo.SeatState) [][]seatmap.Status {
	out := make([][]seatmap.Status, g.Rows())
	for r := range out {
		out[r] = make([]seatmap.Status, g.Cols())
		for c := range out[r] {
			out[r][c] = seatmap.Available
		}
	}

	for _, s := range seats {
		if s.Row < 0 || s.Row >= g.Rows() || s.Col < 0 || s.Col >= g.Cols() {
			continue
		}
		if s.Status.Valid() {
			out[s.Row][s.Col] = s.Status
		}
	}

	return out
}

// buildView renders the grid with statuses for clients.
func buildView(showtimeID int64, g *seatmap.Grid, m *seatmap.StatusMatrix) domain.SeatMapView {
	v := domain.SeatMapView{
		ShowtimeID: showtimeID,
		Rows:       g.Rows(),
		Cols:       g.Cols(),
		Cells:      make([][]domain.SeatMapCell, g.Rows()),
	}

	for r := 0; r < g.Rows(); r++ {
		v.Cells[r] = make([]domain.SeatMapCell, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			code, _ := g.CellType(r, c)
			cell := domain.SeatMapCell{Type: code}

			if g.IsBookable(r, c) {
				cell.Label, _ = g.LabelOf(r, c)
				if cat, ok, _ := g.CategoryOf(r, c); ok {
					cell.Category = cat.Name
					cell.Price = cat.Price
				}
				cell.Status, _ = m.StatusOf(r, c)
			}

			v.Cells[r][c] = cell
		}
	}

	return v
}

// statusCache keeps status matrices in process for a short time. Entries are
// dropped on writes, locally and through the showtime pubsub.
type statusCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[int64]statusEntry
}

type statusEntry struct {
	statuses [][]seatmap.Status
	at       time.Time
}

func newStatusCache(ttl time.Duration) *statusCache {
	return &statusCache{
		ttl:     ttl,
		entries: make(map[int64]statusEntry),
	}
}

func (c *statusCache) get(showtimeID int64, now time.Time) ([][]seatmap.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[showtimeID]
	if !ok || now.Sub(e.at) > c.ttl {
		delete(c.entries, showtimeID)
		return nil, false
	}

	return e.statuses, true
}

func (c *statusCache) put(showtimeID int64, statuses [][]seatmap.Status, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[showtimeID] = statusEntry{statuses: statuses, at: now}
}

func (c *statusCache) forget(showtimeID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, showtimeID)
}
