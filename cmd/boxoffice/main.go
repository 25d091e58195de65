package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/kirinyoku/boxoffice/docs"
	"github.com/kirinyoku/boxoffice/internal/app"
	"github.com/kirinyoku/boxoffice/internal/config"
	"github.com/kirinyoku/boxoffice/internal/logger"
)

// @title Box Office API
// @version 1.0
// @description Seat maps, seat selection and checkout for cinema showtimes, plus hourly venue hire.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		log.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
