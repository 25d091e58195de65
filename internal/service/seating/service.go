package seating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/repository"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
	"github.com/kirinyoku/boxoffice/internal/service/query"
)

type boardLoader interface {
	Board(ctx context.Context, showtimeID int64) (query.Board, error)
}

type sessionStore interface {
	Save(ctx context.Context, sess domain.SeatSession) error
	Load(ctx context.Context, id uuid.UUID) (domain.SeatSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// View is what a client sees of a session after every call.
type View struct {
	Session domain.SeatSession `json:"session"`
	Quote   seatmap.Quote      `json:"quote"`
}

// Live is a session replayed against its showtime's current statuses.
type Live struct {
	Stored  domain.SeatSession
	Board   query.Board
	Session *seatmap.Session
}

// Service keeps selection sessions in the session store and replays them
// through the selection engine on every call.
type Service struct {
	boards   boardLoader
	sessions sessionStore
	now      func() time.Time
}

func New(q *query.Service, sessions *redisrepo.SessionStore) *Service {
	return newService(q, sessions)
}

func newService(boards boardLoader, sessions sessionStore) *Service {
	return &Service{
		boards:   boards,
		sessions: sessions,
		now:      time.Now,
	}
}

// Open starts an empty selection for a showtime.
//
// Parameters:
//   - ctx: request-scoped context.
//   - showtimeID: ID of the showtime to pick seats for.
//
// Returns:
//   - View: the new session.
//   - error: query.ErrShowtimeNotFound if the showtime does not exist.
func (s *Service) Open(ctx context.Context, showtimeID int64) (View, error) {
	const op = "service.seating.Open"

	b, err := s.boards.Board(ctx, showtimeID)
	if err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	live := Live{
		Stored:  domain.SeatSession{ID: uuid.New(), ShowtimeID: showtimeID},
		Board:   b,
		Session: seatmap.NewSession(b.Grid, b.Matrix),
	}

	if err := s.save(ctx, &live); err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	return viewOf(live), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (View, error) {
	const op = "service.seating.Get"

	live, err := s.Resume(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	return viewOf(live), nil
}

// Toggle selects or deselects one seat.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: session ID.
//   - at: grid coordinate of the seat.
//
// Returns:
//   - View: the session after the toggle.
//   - bool: whether the selection changed.
//   - error: seatmap.ErrOutOfBounds for coordinates outside the grid.
//   - error: seating.ErrSessionClosed if the session was confirmed.
func (s *Service) Toggle(ctx context.Context, id uuid.UUID, at domain.Coord) (View, bool, error) {
	const op = "service.seating.Toggle"

	live, err := s.Resume(ctx, id)
	if err != nil {
		return View{}, false, fmt.Errorf("%s:%w", op, err)
	}

	changed, err := live.Session.Toggle(at.Row, at.Col)
	if err != nil {
		return View{}, false, fmt.Errorf("%s:%w", op, err)
	}

	if changed {
		if err := s.save(ctx, &live); err != nil {
			return View{}, false, fmt.Errorf("%s:%w", op, err)
		}
	}

	return viewOf(live), changed, nil
}

func (s *Service) Reset(ctx context.Context, id uuid.UUID) (View, error) {
	const op = "service.seating.Reset"

	live, err := s.Resume(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}
	if live.Session.State() == seatmap.StateConfirmed {
		return View{}, fmt.Errorf("%s:%w", op, ErrSessionClosed)
	}

	live.Session.Reset()

	if err := s.save(ctx, &live); err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	return viewOf(live), nil
}

// ChangeShowtime moves a session to another showtime. The selection is
// cleared because coordinates of one screen mean nothing on another.
func (s *Service) ChangeShowtime(ctx context.Context, id uuid.UUID, showtimeID int64) (View, error) {
	const op = "service.seating.ChangeShowtime"

	live, err := s.Resume(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}
	if live.Session.State() == seatmap.StateConfirmed {
		return View{}, fmt.Errorf("%s:%w", op, ErrSessionClosed)
	}

	b, err := s.boards.Board(ctx, showtimeID)
	if err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	live.Board = b
	live.Stored.ShowtimeID = showtimeID
	live.Session.Rebind(b.Grid, b.Matrix)

	if err := s.save(ctx, &live); err != nil {
		return View{}, fmt.Errorf("%s:%w", op, err)
	}

	return viewOf(live), nil
}

// Resume loads a session and replays its selection. Seats taken by others
// since the last call drop out of the selection, and the shrunk selection is
// stored. A confirmed session is replayed as it was confirmed.
//
// Returns:
//   - Live: the replayed session.
//   - error: seating.ErrSessionNotFound for unknown or expired sessions.
func (s *Service) Resume(ctx context.Context, id uuid.UUID) (Live, error) {
	const op = "service.seating.Resume"

	stored, err := s.sessions.Load(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Live{}, fmt.Errorf("%s:%w", op, ErrSessionNotFound)
		}

		return Live{}, fmt.Errorf("%s:%w", op, err)
	}

	b, err := s.boards.Board(ctx, stored.ShowtimeID)
	if err != nil {
		return Live{}, fmt.Errorf("%s:%w", op, err)
	}

	matrix := b.Matrix
	state := seatmap.State(stored.State)
	if state == seatmap.StateConfirmed {
		// Our own seats are sold by now; replay on a clean matrix.
		if matrix, err = seatmap.NewStatusMatrix(b.Grid, nil); err != nil {
			return Live{}, fmt.Errorf("%s:%w", op, err)
		}
	}

	sess := seatmap.NewSession(b.Grid, matrix)
	if err := sess.Restore(stored.Seats, state); err != nil {
		return Live{}, fmt.Errorf("%s:%w", op, err)
	}

	live := Live{Stored: stored, Board: b, Session: sess}

	if sess.Len() != len(stored.Seats) {
		if err := s.save(ctx, &live); err != nil {
			return Live{}, fmt.Errorf("%s:%w", op, err)
		}
	}

	return live, nil
}

// Close stores a session as confirmed.
func (s *Service) Close(ctx context.Context, live *Live) error {
	const op = "service.seating.Close"

	if live.Session.State() != seatmap.StateConfirmed {
		return fmt.Errorf("%s: session %s is not confirmed", op, live.Stored.ID)
	}

	if err := s.save(ctx, live); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) Discard(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

func (s *Service) save(ctx context.Context, live *Live) error {
	live.Stored.Seats = live.Session.Selection()
	live.Stored.State = string(live.Session.State())
	live.Stored.UpdatedAt = s.now().UTC()

	return s.sessions.Save(ctx, live.Stored)
}

func viewOf(live Live) View {
	stored := live.Stored
	stored.Seats = live.Session.Selection()
	stored.State = string(live.Session.State())

	return View{
		Session: stored,
		Quote:   live.Session.Derive(),
	}
}
