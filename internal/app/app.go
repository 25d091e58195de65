package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/boxoffice/internal/config"
	"github.com/kirinyoku/boxoffice/internal/payment"
	"github.com/kirinyoku/boxoffice/internal/postgres"
	"github.com/kirinyoku/boxoffice/internal/queue"
	"github.com/kirinyoku/boxoffice/internal/redis"
	postgresrepo "github.com/kirinyoku/boxoffice/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/boxoffice/internal/repository/redis"
	"github.com/kirinyoku/boxoffice/internal/service"
	"github.com/kirinyoku/boxoffice/internal/service/checkout"
	"github.com/kirinyoku/boxoffice/internal/service/venue"
	httpgin "github.com/kirinyoku/boxoffice/internal/transport/http/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	rdb        *goredis.Client
	publisher  queue.Publisher
	services   *service.Services
	pubsub     *redisrepo.ShowtimesPubSub
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	pgxPool, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN(),
		MaxConns: cfg.Postgres.MaxConns,
		Migrate:  cfg.Postgres.Migrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redis.New(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		pgxPool.Close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisrepo.NewShowtimesPubSub(rdb)
	sessions := redisrepo.NewSessionStore(rdb, cfg.Booking.SessionTTL)
	locker := redisrepo.NewLocker(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "checkout", cfg.Booking.RateLimit, cfg.Booking.RateWindow)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, cfg.Booking.IdempotencyTTL)

	// Payments: cash always, the rest only with a gateway.
	var online payment.Gateway
	if cfg.Payment.GatewayURL != "" {
		online = payment.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.Timeout)
	}

	var publisher queue.Publisher = queue.Noop{}
	if cfg.AMQP.URL != "" {
		publisher = queue.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, logger)
	}

	// Initialize services
	services := service.NewServices(service.Deps{
		Store:     store,
		Cache:     cache,
		PubSub:    pubsub,
		Sessions:  sessions,
		Locker:    locker,
		Payments:  payment.NewRouter(online),
		Publisher: publisher,
		Logger:    logger,
	}, service.Config{
		Checkout: checkout.Config{HoldTTL: cfg.Booking.HoldTTL},
		Venue:    venue.Config{LockTTL: cfg.Booking.VenueLockTTL},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, limiter, logger)

	return &App{
		cfg:       cfg,
		logger:    logger,
		pool:      pgxPool,
		rdb:       rdb,
		publisher: publisher,
		services:  services,
		pubsub:    pubsub,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	// Return expired seat leases to sale.
	g.Go(func() error {
		return a.expireHolds(gCtx)
	})

	// Drop in-process seat statuses when another instance changes a showtime.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(_ context.Context, showtimeID int64) {
			a.services.Query.Forget(showtimeID)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("showtime subscription: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (a *App) expireHolds(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.Booking.ExpiryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.services.Reservation.Expire(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("failed to expire seat leases", "error", err)
			}
		}
	}
}

func (a *App) close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("failed to close publisher", "error", err)
	}
	if err := a.rdb.Close(); err != nil {
		a.logger.Warn("failed to close redis", "error", err)
	}
	a.pool.Close()
}
