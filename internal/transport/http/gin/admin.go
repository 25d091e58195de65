package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/service"
)

// @Summary  Create venue
// @Param    req body  CreateVenueRequest true "payload"
// @Success  201 {object} CreateVenueResponse
// @Router   /admin/venues [post]
func handleCreateVenue(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateVenueRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateVenue(c.Request.Context(), req.Name, req.FullDayPrice, req.PerHourPrice)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateVenueResponse{VenueID: id})
	}
}

// @Summary  Create screen with its seat layout
// @Param    req body  CreateScreenRequest true "payload"
// @Success  201 {object} CreateScreenResponse
// @Failure  400 {object} ErrorResponse "invalid layout"
// @Router   /admin/screens [post]
func handleCreateScreen(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateScreenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Admin.CreateScreen(c.Request.Context(), req.VenueID, req.Name, req.Layout)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateScreenResponse{ScreenID: id})
	}
}

// @Summary  Create showtime and init its seats
// @Param    req body  CreateShowtimeRequest true "payload"
// @Success  201 {object} CreateShowtimeResponse
// @Router   /admin/showtimes [post]
func handleCreateShowtime(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShowtimeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		startsAt, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "starts_at must be RFC3339")
			return
		}
		id, err := svcs.Admin.CreateShowtime(
			c.Request.Context(),
			req.ScreenID,
			req.Title,
			startsAt,
			req.GAPrice,
			req.GACapacity,
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateShowtimeResponse{ShowtimeID: id})
	}
}

// @Summary  Create or replace a discount code
// @Param    req body  UpsertDiscountRequest true "payload"
// @Success  204
// @Router   /admin/discounts [post]
func handleUpsertDiscount(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		err := svcs.Admin.UpsertDiscount(c.Request.Context(), domain.Discount{
			Code:   req.Code,
			Amount: req.Amount,
			Type:   domain.DiscountType(req.Type),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
