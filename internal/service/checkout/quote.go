package checkout

import (
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
)

const generalAdmissionName = "General Admission"

// generalQuote prices an unseated purchase as a single ticket line.
func generalQuote(price, quantity int) (seatmap.Quote, error) {
	if quantity < 1 {
		return seatmap.Quote{}, ErrInvalidQuantity
	}
	if price <= 0 {
		return seatmap.Quote{}, ErrNoGeneralAdmission
	}

	return seatmap.Quote{
		Tickets: []domain.BookedTicket{{
			CategoryName: generalAdmissionName,
			Price:        price,
			Quantity:     quantity,
		}},
		Total: price * quantity,
	}, nil
}

// selectAll replays seats into a fresh session. Every seat must be free and
// bookable, otherwise ErrSeatsTaken.
func selectAll(g *seatmap.Grid, m *seatmap.StatusMatrix, seats []domain.Coord) (*seatmap.Session, error) {
	sess := seatmap.NewSession(g, m)

	for _, at := range seats {
		if sess.IsSelected(at.Row, at.Col) {
			continue
		}
		changed, err := sess.Toggle(at.Row, at.Col)
		if err != nil {
			return nil, err
		}
		if !changed {
			return nil, ErrSeatsTaken
		}
	}

	return sess, nil
}

func capacityLeft(capacity, sold, want int) bool {
	return sold+want <= capacity
}
