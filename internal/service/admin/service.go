package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
	"github.com/kirinyoku/boxoffice/internal/uow"
)

type Service struct {
	store    *postgresrepo.Store
	uow      *uow.UoW
	validate *validator.Validate
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store:    store,
		uow:      uow.NewUoW(store),
		validate: validator.New(),
	}
}

// CreateVenue creates a venue record and returns its ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - name: venue name.
//   - fullDayPrice: price of booking the whole day.
//   - perHourPrice: price of one hour.
//
// Returns:
//   - int64: the created venue ID on success.
//   - error: admin.ErrVenueConflict if a venue with the same name already exists.
func (s *Service) CreateVenue(ctx context.Context, name string, fullDayPrice, perHourPrice int) (int64, error) {
	const op = "service.admin.CreateVenue"

	if name == "" || fullDayPrice < 0 || perHourPrice < 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.store.Admin().CreateVenue(ctx, name, fullDayPrice, perHourPrice)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s: %w", op, ErrVenueConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// CreateScreen stores a screen after checking that its layout builds a grid.
//
// Returns:
//   - int64: the created screen ID.
//   - error: admin.ErrInvalidLayout wrapping the validation or grid error.
//   - error: admin.ErrVenueNotFound if the venue does not exist.
func (s *Service) CreateScreen(ctx context.Context, venueID int64, name string, layout domain.SeatLayout) (int64, error) {
	const op = "service.admin.CreateScreen"

	if name == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	if err := s.checkLayout(layout); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.Admin().CreateScreen(ctx, venueID, name, layout)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return 0, fmt.Errorf("%s: %w", op, ErrVenueNotFound)
		case errors.Is(err, repository.ErrConflict):
			return 0, fmt.Errorf("%s: %w", op, ErrScreenConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// CreateShowtime schedules a showtime on a screen and creates one available
// status row per seat of the screen's grid, in one transaction.
//
// Parameters:
//   - ctx: request-scoped context.
//   - screenID: ID of the screen.
//   - title: what is showing.
//   - startsAt: start time.
//   - gaPrice, gaCapacity: general admission price and capacity, 0 for none.
//
// Returns:
//   - int64: the created showtime ID.
//   - error: admin.ErrScreenNotFound if the screen does not exist.
func (s *Service) CreateShowtime(
	ctx context.Context,
	screenID int64,
	title string,
	startsAt time.Time,
	gaPrice, gaCapacity int,
) (int64, error) {
	const op = "service.admin.CreateShowtime"

	if title == "" || startsAt.IsZero() || gaPrice < 0 || gaCapacity < 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx postgresrepo.DB, after func(uow.AfterCommit)) error {
		screen, err := s.store.Query().With(tx).GetScreen(ctx, screenID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrScreenNotFound
			}
			return err
		}

		g, err := seatmap.NewGrid(screen.Layout)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
		}

		id, err = s.store.Admin().With(tx).CreateShowtime(ctx, screenID, title, startsAt, gaPrice, gaCapacity)
		if err != nil {
			return err
		}

		return s.store.Admin().With(tx).InitShowtimeSeats(ctx, id, g.Seats())
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpsertDiscount creates or replaces an active discount code.
func (s *Service) UpsertDiscount(ctx context.Context, d domain.Discount) error {
	const op = "service.admin.UpsertDiscount"

	if d.Code == "" || d.Amount < 0 {
		return fmt.Errorf("%s: %w", op, ErrDiscountInvalid)
	}
	if d.Type != domain.DiscountFlat && d.Type != domain.DiscountPercent {
		return fmt.Errorf("%s: %w: type %q", op, ErrDiscountInvalid, d.Type)
	}
	if d.Type == domain.DiscountPercent && d.Amount > 100 {
		return fmt.Errorf("%s: %w: percent above 100", op, ErrDiscountInvalid)
	}

	if err := s.store.Admin().UpsertDiscount(ctx, d); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) checkLayout(layout domain.SeatLayout) error {
	return checkLayout(s.validate, layout)
}

func checkLayout(v *validator.Validate, layout domain.SeatLayout) error {
	if err := v.Struct(layout); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	if _, err := seatmap.NewGrid(layout); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLayout, err)
	}

	return nil
}
