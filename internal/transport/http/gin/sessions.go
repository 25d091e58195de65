package httpgin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/service"
)

// @Summary  Open a seat selection session
// @Param    id  path  int  true  "Showtime ID"
// @Success  201 {object} seating.View
// @Failure  404 {object} ErrorResponse
// @Router   /showtimes/{id}/sessions [post]
func handleOpenSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		view, err := svcs.Seating.Open(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// @Summary  Get session with its current quote
// @Param    sid  path  string  true  "Session ID (uuid)"
// @Success  200 {object} seating.View
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{sid} [get]
func handleGetSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := parseUUIDParam(c, "sid")
		if !ok {
			return
		}
		view, err := svcs.Seating.Get(c.Request.Context(), sid)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary  Select or deselect a seat
// @Param    sid  path  string  true  "Session ID (uuid)"
// @Param    req  body  ToggleRequest true "grid coordinate"
// @Success  200 {object} ToggleResponse
// @Failure  400 {object} ErrorResponse "out of bounds"
// @Failure  409 {object} ErrorResponse "session confirmed"
// @Router   /sessions/{sid}/toggle [post]
func handleToggleSeat(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := parseUUIDParam(c, "sid")
		if !ok {
			return
		}

		var req ToggleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		view, changed, err := svcs.Seating.Toggle(c.Request.Context(), sid, domain.Coord{Row: *req.Row, Col: *req.Col})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ToggleResponse{View: view, Changed: changed})
	}
}

// @Summary  Clear the selection
// @Param    sid  path  string  true  "Session ID (uuid)"
// @Success  200 {object} seating.View
// @Router   /sessions/{sid}/reset [post]
func handleResetSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := parseUUIDParam(c, "sid")
		if !ok {
			return
		}
		view, err := svcs.Seating.Reset(c.Request.Context(), sid)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary  Move the session to another showtime
// @Param    sid  path  string  true  "Session ID (uuid)"
// @Param    req  body  ChangeShowtimeRequest true "payload"
// @Success  200 {object} seating.View
// @Failure  404 {object} ErrorResponse
// @Router   /sessions/{sid}/showtime [post]
func handleChangeShowtime(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := parseUUIDParam(c, "sid")
		if !ok {
			return
		}

		var req ChangeShowtimeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		view, err := svcs.Seating.ChangeShowtime(c.Request.Context(), sid, req.ShowtimeID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// @Summary  Pay for the selection (idempotent)
// @Param    sid  path  string  true  "Session ID (uuid)"
// @Param    req  body  CheckoutRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.BookingRecord
// @Failure  400 {object} ErrorResponse
// @Failure  402 {object} ErrorResponse "payment failed"
// @Failure  409 {object} ErrorResponse "seats taken / idem in progress"
// @Failure  422 {object} ErrorResponse "nothing selected"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /sessions/{sid}/confirm [post]
func handleConfirmSession(svcs *service.Services, idem IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := parseUUIDParam(c, "sid")
		if !ok {
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idempotent(c, idem, "checkout:"+sid.String(), http.StatusCreated, func(ctx context.Context) (any, error) {
			return svcs.Checkout.ConfirmSeats(ctx, sid, req.toCheckout())
		})
	}
}
