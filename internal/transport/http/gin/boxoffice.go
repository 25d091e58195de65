package httpgin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/service"
	"github.com/kirinyoku/boxoffice/internal/service/checkout"
)

// @Summary  Upload offline box office sales (idempotent)
// @Param    req  body  SyncRequest true "pending sales"
// @Success  200 {object} SyncResponse
// @Failure  400 {object} ErrorResponse
// @Router   /boxoffice/sync [post]
func handleSyncOffline(svcs *service.Services, idem IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		sales := make([]checkout.OfflineSale, len(req.Sales))
		for i, s := range req.Sales {
			sales[i] = s.toCheckout()
		}

		idempotent(c, idem, "sync", http.StatusOK, func(ctx context.Context) (any, error) {
			results, err := svcs.Checkout.SyncOffline(ctx, sales)
			if err != nil {
				return nil, err
			}
			return SyncResponse{Results: results}, nil
		})
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} domain.BookingRecord
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		rec, err := svcs.Orders.GetBooking(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}
