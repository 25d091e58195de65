package httpgin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/boxoffice/internal/booking"
	"github.com/kirinyoku/boxoffice/internal/payment"
	"github.com/kirinyoku/boxoffice/internal/seatmap"
	"github.com/kirinyoku/boxoffice/internal/service/admin"
	"github.com/kirinyoku/boxoffice/internal/service/checkout"
	"github.com/kirinyoku/boxoffice/internal/service/orders"
	"github.com/kirinyoku/boxoffice/internal/service/query"
	"github.com/kirinyoku/boxoffice/internal/service/seating"
	"github.com/kirinyoku/boxoffice/internal/service/venue"
	"github.com/kirinyoku/boxoffice/internal/slots"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	// not found
	{query.ErrShowtimeNotFound, http.StatusNotFound},
	{query.ErrScreenNotFound, http.StatusNotFound},
	{query.ErrVenueNotFound, http.StatusNotFound},
	{seating.ErrSessionNotFound, http.StatusNotFound},
	{venue.ErrVenueNotFound, http.StatusNotFound},
	{orders.ErrBookingNotFound, http.StatusNotFound},
	{admin.ErrVenueNotFound, http.StatusNotFound},
	{admin.ErrScreenNotFound, http.StatusNotFound},

	// cannot proceed
	{seating.ErrSessionClosed, http.StatusConflict},
	{checkout.ErrSeatsTaken, http.StatusConflict},
	{checkout.ErrHoldLost, http.StatusConflict},
	{checkout.ErrCapacityExceeded, http.StatusConflict},
	{booking.ErrFullyBooked, http.StatusConflict},
	{booking.ErrSlotConflict, http.StatusConflict},
	{venue.ErrDayBusy, http.StatusConflict},
	{admin.ErrVenueConflict, http.StatusConflict},
	{admin.ErrScreenConflict, http.StatusConflict},
	{booking.ErrNothingToPay, http.StatusUnprocessableEntity},

	// payment
	{payment.ErrMethodNotSupported, http.StatusBadRequest},
	{checkout.ErrPaymentFailed, http.StatusPaymentRequired},
	{venue.ErrPaymentFailed, http.StatusPaymentRequired},

	// records already stored that no longer parse; checked before the
	// input errors they wrap
	{slots.ErrStoredBooking, http.StatusInternalServerError},

	// bad input
	{seatmap.ErrOutOfBounds, http.StatusBadRequest},
	{checkout.ErrInvalidQuantity, http.StatusBadRequest},
	{checkout.ErrUnknownDiscount, http.StatusBadRequest},
	{checkout.ErrAmountMismatch, http.StatusBadRequest},
	{checkout.ErrNoGeneralAdmission, http.StatusBadRequest},
	{booking.ErrInvalidBuyer, http.StatusBadRequest},
	{booking.ErrInvalidPayment, http.StatusBadRequest},
	{booking.ErrInvalidTicket, http.StatusBadRequest},
	{booking.ErrInvalidDiscount, http.StatusBadRequest},
	{booking.ErrMissingLocalID, http.StatusBadRequest},
	{booking.ErrNoTarget, http.StatusBadRequest},
	{slots.ErrInvalidStartTime, http.StatusBadRequest},
	{slots.ErrPastMidnight, http.StatusBadRequest},
	{slots.ErrInvalidKind, http.StatusBadRequest},
	{venue.ErrInvalidDate, http.StatusBadRequest},
	{admin.ErrInvalidLayout, http.StatusBadRequest},
	{admin.ErrInvalidInput, http.StatusBadRequest},
	{admin.ErrDiscountInvalid, http.StatusBadRequest},

	// stored layouts that no longer build a grid
	{query.ErrBrokenLayout, http.StatusInternalServerError},
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			if e.status >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.JSON(e.status, ErrorResponse{Error: e.err.Error()})
			return
		}
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
