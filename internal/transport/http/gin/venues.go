package httpgin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/service"
)

// @Summary  Free and occupied hours of a venue date
// @Param    id    path   int     true  "Venue ID"
// @Param    date  query  string  true  "YYYY-MM-DD"
// @Success  200 {object} venue.Availability
// @Failure  400 {object} ErrorResponse
// @Router   /venues/{id}/slots [get]
func handleVenueSlots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		date := c.Query("date")
		if date == "" {
			badRequest(c, "date is required")
			return
		}

		av, err := svcs.Venue.Slots(c.Request.Context(), id, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, av, "no-cache", true)
	}
}

// @Summary  Check a proposal and price it
// @Param    id   path  int  true  "Venue ID"
// @Param    req  body  VenueQuoteRequest true "proposal"
// @Success  200 {object} slots.Result
// @Failure  400 {object} ErrorResponse
// @Router   /venues/{id}/quote [post]
func handleVenueQuote(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req VenueQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		res, err := svcs.Venue.Quote(c.Request.Context(), id, req.Date, req.proposal())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Book a venue (idempotent)
// @Param    id   path  int  true  "Venue ID"
// @Param    req  body  VenueBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.BookingRecord
// @Failure  400 {object} ErrorResponse
// @Failure  402 {object} ErrorResponse "payment failed"
// @Failure  409 {object} ErrorResponse "conflict / fully booked / day busy"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /venues/{id}/bookings [post]
func handleBookVenue(svcs *service.Services, idem IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req VenueBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		scope := "venue:" + strconv.FormatInt(id, 10)
		idempotent(c, idem, scope, http.StatusCreated, func(ctx context.Context) (any, error) {
			return svcs.Venue.Book(ctx, id, req.toVenue())
		})
	}
}
