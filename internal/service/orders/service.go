package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
)

var ErrBookingNotFound = errors.New("booking not found")

type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// GetBooking retrieves a booking with its ticket lines.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the booking to retrieve.
//
// Returns:
//   - *domain.BookingRecord: the booking.
//   - error: orders.ErrBookingNotFound if the booking is not found.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*domain.BookingRecord, error) {
	const op = "service.orders.GetBooking"

	rec, err := s.store.Query().GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}
