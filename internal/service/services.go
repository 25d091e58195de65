package service

import (
	"log/slog"

	"github.com/kirinyoku/boxoffice/internal/payment"
	"github.com/kirinyoku/boxoffice/internal/queue"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/service/admin"
	"github.com/kirinyoku/boxoffice/internal/service/checkout"
	"github.com/kirinyoku/boxoffice/internal/service/orders"
	"github.com/kirinyoku/boxoffice/internal/service/query"
	"github.com/kirinyoku/boxoffice/internal/service/reservation"
	"github.com/kirinyoku/boxoffice/internal/service/seating"
	"github.com/kirinyoku/boxoffice/internal/service/venue"
)

type Services struct {
	Query       *query.Service
	Seating     *seating.Service
	Checkout    *checkout.Service
	Venue       *venue.Service
	Reservation *reservation.Service
	Admin       *admin.Service
	Orders      *orders.Service
}

type Config struct {
	Query    query.Config
	Checkout checkout.Config
	Venue    venue.Config
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Store     *postgresrepo.Store
	Cache     *redisrepo.Cache
	PubSub    *redisrepo.ShowtimesPubSub
	Sessions  *redisrepo.SessionStore
	Locker    *redisrepo.Locker
	Payments  payment.Gateway
	Publisher queue.Publisher
	Logger    *slog.Logger
}

func NewServices(d Deps, cfg Config) *Services {
	q := query.New(d.Store, d.Cache, cfg.Query)
	seat := seating.New(q, d.Sessions)

	return &Services{
		Query:       q,
		Seating:     seat,
		Checkout:    checkout.New(d.Store, seat, q, d.Cache, d.PubSub, d.Payments, d.Publisher, d.Logger, cfg.Checkout),
		Venue:       venue.New(d.Store, d.Locker, d.Payments, d.Publisher, d.Logger, cfg.Venue),
		Reservation: reservation.New(d.Store, d.Cache, d.PubSub, q, d.Logger),
		Admin:       admin.New(d.Store),
		Orders:      orders.New(d.Store),
	}
}
