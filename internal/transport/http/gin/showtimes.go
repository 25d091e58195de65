package httpgin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/service"
)

// @Summary  List showtimes
// @Param    limit  query  int  false  "page size"
// @Param    offset query  int  false  "offset"
// @Success  200  {array}  domain.Showtime
// @Router   /showtimes [get]
func handleListShowtimes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		offset := parseIntDefault(c.Query("offset"), 0)

		list, err := svcs.Query.ListShowtimes(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, list, "public, max-age=30", true)
	}
}

// @Summary  Get showtime
// @Param    id  path  int  true  "Showtime ID"
// @Success  200  {object}  domain.Showtime
// @Failure  404  {object}  ErrorResponse
// @Router   /showtimes/{id} [get]
func handleGetShowtime(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		st, err := svcs.Query.GetShowtime(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, st, "public, max-age=60", true)
	}
}

// @Summary  Seat map with live statuses
// @Param    id  path  int  true  "Showtime ID"
// @Success  200  {object}  domain.SeatMapView
// @Failure  404  {object}  ErrorResponse
// @Router   /showtimes/{id}/seatmap [get]
func handleGetSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		view, err := svcs.Query.SeatMap(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, view, "public, max-age=5", true)
	}
}

// @Summary  Seat counters by status
// @Param    id  path  int  true  "Showtime ID"
// @Success  200  {object}  domain.ShowtimeCounts
// @Router   /showtimes/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		cnt, err := svcs.Query.CountsByStatus(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, cnt, "public, max-age=15", true)
	}
}

// @Summary  Buy general admission tickets (idempotent)
// @Param    id  path  int  true  "Showtime ID"
// @Param    req body  GeneralAdmissionRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.BookingRecord
// @Failure  400 {object} ErrorResponse
// @Failure  402 {object} ErrorResponse "payment failed"
// @Failure  409 {object} ErrorResponse "sold out / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /showtimes/{id}/general-admission [post]
func handleGeneralAdmission(svcs *service.Services, idem IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req GeneralAdmissionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		scope := "ga:" + strconv.FormatInt(id, 10)
		idempotent(c, idem, scope, http.StatusCreated, func(ctx context.Context) (any, error) {
			return svcs.Checkout.ConfirmGeneralAdmission(ctx, id, req.Quantity, req.toCheckout())
		})
	}
}
