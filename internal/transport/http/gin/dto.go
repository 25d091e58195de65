package httpgin

import (
	"time"

	"github.com/kirinyoku/boxoffice/internal/domain"
	"github.com/kirinyoku/boxoffice/internal/service/checkout"
	"github.com/kirinyoku/boxoffice/internal/service/seating"
	"github.com/kirinyoku/boxoffice/internal/service/venue"
	"github.com/kirinyoku/boxoffice/internal/slots"
)

type ToggleRequest struct {
	Row *int `json:"row" binding:"required,gte=0"`
	Col *int `json:"col" binding:"required,gte=0"`
}

type ChangeShowtimeRequest struct {
	ShowtimeID int64 `json:"showtime_id" binding:"required,gt=0"`
}

type BuyerInput struct {
	UserID     *int64 `json:"user_id"`
	GuestName  string `json:"guest_name"`
	GuestPhone string `json:"guest_phone"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email"`
}

func (b BuyerInput) toDomain() domain.Buyer {
	return domain.Buyer{
		UserID:     b.UserID,
		GuestName:  b.GuestName,
		GuestPhone: b.GuestPhone,
		GuestEmail: b.GuestEmail,
	}
}

type PaymentInput struct {
	DiscountCode  string     `json:"discount_code"`
	Buyer         BuyerInput `json:"buyer"`
	PaymentMethod string     `json:"payment_method" binding:"required,oneof=card upi wallet cash"`
}

func (p PaymentInput) toCheckout() checkout.Request {
	return checkout.Request{
		DiscountCode:  p.DiscountCode,
		Buyer:         p.Buyer.toDomain(),
		PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
	}
}

type CheckoutRequest struct {
	PaymentInput
}

type GeneralAdmissionRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
	PaymentInput
}

type VenueQuoteRequest struct {
	Date      string `json:"date" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=fullDay perHour"`
	StartTime string `json:"start_time"`
	Hours     int    `json:"hours"`
}

func (r VenueQuoteRequest) proposal() slots.Proposal {
	return slots.Proposal{
		Kind:      domain.VenueBookingKind(r.Kind),
		StartTime: r.StartTime,
		Hours:     r.Hours,
	}
}

type VenueBookingRequest struct {
	VenueQuoteRequest
	PaymentInput
}

func (r VenueBookingRequest) toVenue() venue.Request {
	return venue.Request{
		Date:          r.Date,
		Proposal:      r.proposal(),
		DiscountCode:  r.DiscountCode,
		Buyer:         r.Buyer.toDomain(),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}
}

type CoordInput struct {
	Row int `json:"row" binding:"gte=0"`
	Col int `json:"col" binding:"gte=0"`
}

type OfflineSaleInput struct {
	LocalID       string       `json:"local_id" binding:"required"`
	Kind          string       `json:"kind" binding:"required,oneof=seated general"`
	ShowtimeID    int64        `json:"showtime_id" binding:"required,gt=0"`
	Seats         []CoordInput `json:"seats" binding:"omitempty,dive"`
	Quantity      int          `json:"quantity" binding:"gte=0"`
	Total         int          `json:"total" binding:"required,gt=0"`
	AmountDue     int          `json:"amount_due" binding:"gte=0"`
	DiscountCode  string       `json:"discount_code"`
	Buyer         BuyerInput   `json:"buyer"`
	PaymentMethod string       `json:"payment_method" binding:"required,oneof=card upi wallet cash"`
	PaymentRef    string       `json:"payment_ref"`
	SoldAt        *time.Time   `json:"sold_at"`
}

func (s OfflineSaleInput) toCheckout() checkout.OfflineSale {
	out := checkout.OfflineSale{
		LocalID:       s.LocalID,
		Kind:          domain.BookingKind(s.Kind),
		ShowtimeID:    s.ShowtimeID,
		Seats:         make([]domain.Coord, len(s.Seats)),
		Quantity:      s.Quantity,
		Total:         s.Total,
		AmountDue:     s.AmountDue,
		DiscountCode:  s.DiscountCode,
		Buyer:         s.Buyer.toDomain(),
		PaymentMethod: domain.PaymentMethod(s.PaymentMethod),
		PaymentRef:    s.PaymentRef,
	}
	for i, at := range s.Seats {
		out.Seats[i] = domain.Coord{Row: at.Row, Col: at.Col}
	}
	if s.SoldAt != nil {
		out.SoldAt = s.SoldAt.UTC()
	}
	return out
}

type SyncRequest struct {
	Sales []OfflineSaleInput `json:"sales" binding:"required,min=1,max=500,dive"`
}

type SyncResponse struct {
	Results []checkout.SyncResult `json:"results"`
}

type CreateVenueRequest struct {
	Name         string `json:"name" binding:"required"`
	FullDayPrice int    `json:"full_day_price" binding:"gte=0"`
	PerHourPrice int    `json:"per_hour_price" binding:"gte=0"`
}

type CreateScreenRequest struct {
	VenueID int64             `json:"venue_id" binding:"required,gt=0"`
	Name    string            `json:"name" binding:"required"`
	Layout  domain.SeatLayout `json:"layout"`
}

type CreateShowtimeRequest struct {
	ScreenID   int64  `json:"screen_id" binding:"required,gt=0"`
	Title      string `json:"title" binding:"required"`
	StartsAt   string `json:"starts_at" binding:"required"`
	GAPrice    int    `json:"ga_price" binding:"gte=0"`
	GACapacity int    `json:"ga_capacity" binding:"gte=0"`
}

type UpsertDiscountRequest struct {
	Code   string `json:"code" binding:"required"`
	Amount int    `json:"amount" binding:"gte=0"`
	Type   string `json:"type" binding:"required,oneof=flat percent"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ToggleResponse struct {
	seating.View
	Changed bool `json:"changed"`
}

type CreateVenueResponse struct {
	VenueID int64 `json:"venue_id"`
}

type CreateScreenResponse struct {
	ScreenID int64 `json:"screen_id"`
}

type CreateShowtimeResponse struct {
	ShowtimeID int64 `json:"showtime_id"`
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
