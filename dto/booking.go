package dto

import (
	"time"

	"abchotels/models"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	GuestName       string `json:"guestName" form:"guestName" binding:"required,max=100"`
	GuestEmail      string `json:"guestEmail" form:"guestEmail" binding:"required,email,max=254"`
	GuestPhone      string `json:"guestPhone" form:"guestPhone" binding:"required,max=20"`
	CheckIn         string `json:"checkIn" form:"checkIn" binding:"required"`
	CheckOut        string `json:"checkOut" form:"checkOut" binding:"required"`
	SpecialRequests string `json:"specialRequests" form:"specialRequests" binding:"max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingConfirmation is the guest-facing view of a booking; contact details stay private
type BookingConfirmation struct {
	ID              uint                 `json:"id"`
	GuestName       string               `json:"guestName"`
	RoomNumber      string               `json:"roomNumber"`
	RoomType        string               `json:"roomType"`
	City            string               `json:"city"`
	CheckIn         string               `json:"checkIn"`
	CheckOut        string               `json:"checkOut"`
	Nights          int                  `json:"nights"`
	TotalPrice      decimal.Decimal      `json:"totalPrice"`
	Status          models.BookingStatus `json:"status"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}

func NewBookingConfirmation(b *models.Booking) BookingConfirmation {
	stay := b.Stay()
	out := BookingConfirmation{
		ID:              b.ID,
		GuestName:       b.GuestName,
		CheckIn:         stay.CheckIn.Format(models.DateLayout),
		CheckOut:        stay.CheckOut.Format(models.DateLayout),
		Nights:          stay.Nights(),
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
	}
	if b.Room != nil {
		out.RoomNumber = b.Room.RoomNumber
		out.RoomType = b.Room.RoomType.Name
		out.City = b.Room.City.Name
	}
	return out
}

// AvailabilityResponse answers a date check for one room
type AvailabilityResponse struct {
	RoomID     uint             `json:"roomId"`
	CheckIn    string           `json:"checkIn"`
	CheckOut   string           `json:"checkOut"`
	Available  bool             `json:"available"`
	Nights     int              `json:"nights"`
	TotalPrice *decimal.Decimal `json:"totalPrice,omitempty"`
}

// BookingCreatedResponse is returned once a booking has been stored
type BookingCreatedResponse struct {
	Booking BookingConfirmation `json:"booking"`
	Message string              `json:"message"`
}
