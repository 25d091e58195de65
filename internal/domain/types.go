package domain

import (
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatHeld      SeatStatus = "held"
	SeatSold      SeatStatus = "sold"
)

func (s SeatStatus) Valid() bool {
	switch s {
	case SeatAvailable, SeatHeld, SeatSold:
		return true
	}
	return false
}

// SeatCategory is a sellable class of seat on one screen. Price 0 marks a
// decorative cell that is never sold.
type SeatCategory struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Price      int    `json:"price" validate:"gte=0"`
	ColorToken string `json:"color_token,omitempty"`
}

// SeatLayout is the stored seating scheme of a screen (jsonb).
type SeatLayout struct {
	Rows          int            `json:"rows" validate:"gt=0"`
	Cols          int            `json:"cols" validate:"gt=0"`
	RowStartIndex *int           `json:"row_start_index,omitempty" validate:"omitempty,gte=0"`
	ColStartIndex *int           `json:"col_start_index,omitempty" validate:"omitempty,gte=0"`
	Cells         [][]string     `json:"cells" validate:"required"`
	Categories    []SeatCategory `json:"categories" validate:"required,dive"`
}

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Venue struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	FullDayPrice int    `json:"full_day_price"`
	PerHourPrice int    `json:"per_hour_price"`
}

type Screen struct {
	ID      int64      `json:"id"`
	VenueID int64      `json:"venue_id"`
	Name    string     `json:"name"`
	Layout  SeatLayout `json:"layout"`
}

type Showtime struct {
	ID         int64     `json:"id"`
	ScreenID   int64     `json:"screen_id"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	GAPrice    int       `json:"ga_price"`
	GACapacity int       `json:"ga_capacity"`
}

type SeatWithStatus struct {
	Coord
	Label    string     `json:"label"`
	Category string     `json:"category"`
	Price    int        `json:"price"`
	Status   SeatStatus `json:"status"`
}

type ShowtimeCounts struct {
	Available int64 `json:"available"`
	Held      int64 `json:"held"`
	Sold      int64 `json:"sold"`
	Total     int64 `json:"total"`
}

// BookedTicket is one priced line of a booking. Seated lines always carry
// quantity 1 and a label; general admission lines may carry more.
type BookedTicket struct {
	CategoryName string `json:"category_name"`
	Price        int    `json:"price"`
	Quantity     int    `json:"quantity"`
	SeatLabel    string `json:"seat_label,omitempty"`
	Seat         *Coord `json:"seat,omitempty"`
}

func (t BookedTicket) Subtotal() int {
	return t.Price * t.Quantity
}

type VenueBookingKind string

const (
	VenueFullDay VenueBookingKind = "fullDay"
	VenuePerHour VenueBookingKind = "perHour"
)

type VenueBooking struct {
	ID          uuid.UUID        `json:"id"`
	VenueID     int64            `json:"venue_id"`
	Date        string           `json:"date"`
	Kind        VenueBookingKind `json:"kind"`
	StartTime   string           `json:"start_time,omitempty"`
	HoursBooked int              `json:"hours_booked,omitempty"`
}

type BookingKind string

const (
	BookingSeated  BookingKind = "seated"
	BookingGeneral BookingKind = "general"
	BookingVenue   BookingKind = "venue"
)

type PaymentMethod string

const (
	PayCard   PaymentMethod = "card"
	PayUPI    PaymentMethod = "upi"
	PayWallet PaymentMethod = "wallet"
	PayCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCard, PayUPI, PayWallet, PayCash:
		return true
	}
	return false
}

type SyncStatus string

const (
	Synced  SyncStatus = "synced"
	Pending SyncStatus = "pending"
)

// Buyer is either a registered user or a walk-in guest.
type Buyer struct {
	UserID     *int64 `json:"user_id,omitempty"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
}

func (b Buyer) IsGuest() bool {
	return b.UserID == nil
}

type VenueRange struct {
	VenueID   int64            `json:"venue_id"`
	Date      string           `json:"date"`
	Kind      VenueBookingKind `json:"kind"`
	StartTime string           `json:"start_time,omitempty"`
	Hours     int              `json:"hours,omitempty"`
	Slots     []string         `json:"slots,omitempty"`
}

// BookingRecord is immutable once assembled; corrections are new records.
type BookingRecord struct {
	ID             uuid.UUID      `json:"id"`
	LocalID        string         `json:"local_id,omitempty"`
	Kind           BookingKind    `json:"kind"`
	ShowtimeID     *int64         `json:"showtime_id,omitempty"`
	Venue          *VenueRange    `json:"venue,omitempty"`
	Tickets        []BookedTicket `json:"tickets"`
	TotalPrice     int            `json:"total_price"`
	DiscountCode   string         `json:"discount_code,omitempty"`
	DiscountAmount int            `json:"discount_amount"`
	AmountDue      int            `json:"amount_due"`
	Buyer          Buyer          `json:"buyer"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	PaymentRef     string         `json:"payment_ref,omitempty"`
	SyncStatus     SyncStatus     `json:"sync_status"`
	CreatedAt      time.Time      `json:"created_at"`
}

type DiscountType string

const (
	DiscountFlat    DiscountType = "flat"
	DiscountPercent DiscountType = "percent"
)

type Discount struct {
	Code   string       `json:"code"`
	Amount int          `json:"amount"`
	Type   DiscountType `json:"type"`
}

// SeatSession is the stored form of an in-progress seat selection.
type SeatSession struct {
	ID         uuid.UUID `json:"id"`
	ShowtimeID int64     `json:"showtime_id"`
	Seats      []Coord   `json:"seats"`
	State      string    `json:"state"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SeatMapCell struct {
	Type     string     `json:"type"`
	Label    string     `json:"label,omitempty"`
	Category string     `json:"category,omitempty"`
	Price    int        `json:"price,omitempty"`
	Status   SeatStatus `json:"status,omitempty"`
}

// SeatMapView is a showtime's grid with each seat's current status, row by row.
type SeatMapView struct {
	ShowtimeID int64           `json:"showtime_id"`
	Rows       int             `json:"rows"`
	Cols       int             `json:"cols"`
	Cells      [][]SeatMapCell `json:"cells"`
}
