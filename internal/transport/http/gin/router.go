package httpgin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/boxoffice/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the HTTP API on top of svcs. idem and limiter may be nil,
// which turns idempotent replays and rate limiting off.
func NewRouter(
	svcs *service.Services,
	idem IdempotencyStore,
	limiter Limiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggingMiddleware(logger), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	limited := RateLimit(limiter, logger)

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Showtimes and seat maps
	r.GET("/showtimes", handleListShowtimes(svcs))
	r.GET("/showtimes/:id", handleGetShowtime(svcs))
	r.GET("/showtimes/:id/seatmap", handleGetSeatMap(svcs))
	r.GET("/showtimes/:id/availability", handleGetAvailability(svcs))
	r.POST("/showtimes/:id/general-admission", limited, handleGeneralAdmission(svcs, idem))

	// Selection sessions
	r.POST("/showtimes/:id/sessions", handleOpenSession(svcs))
	r.GET("/sessions/:sid", handleGetSession(svcs))
	r.POST("/sessions/:sid/toggle", handleToggleSeat(svcs))
	r.POST("/sessions/:sid/reset", handleResetSession(svcs))
	r.POST("/sessions/:sid/showtime", handleChangeShowtime(svcs))
	r.POST("/sessions/:sid/confirm", limited, handleConfirmSession(svcs, idem))

	// Venue hire
	r.GET("/venues/:id/slots", handleVenueSlots(svcs))
	r.POST("/venues/:id/quote", handleVenueQuote(svcs))
	r.POST("/venues/:id/bookings", limited, handleBookVenue(svcs, idem))

	// Box office
	r.POST("/boxoffice/sync", handleSyncOffline(svcs, idem))
	r.GET("/bookings/:id", handleGetBooking(svcs))

	// Admin-API
	// TODO: put an auth middleware in front of /admin once operators have accounts.
	admin := r.Group("/admin")
	{
		admin.POST("/venues", handleCreateVenue(svcs))
		admin.POST("/screens", handleCreateScreen(svcs))
		admin.POST("/showtimes", handleCreateShowtime(svcs))
		admin.POST("/discounts", handleUpsertDiscount(svcs))
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
