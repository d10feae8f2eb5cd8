package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BlockingStatuses hold a room for their dates
var BlockingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// Valid reports whether s is one of the known statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status occupies its room
func (s BookingStatus) Blocks() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

type Booking struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	GuestName       string          `json:"guestName" gorm:"size:100;not null"`
	GuestEmail      string          `json:"guestEmail" gorm:"size:254;not null"`
	GuestPhone      string          `json:"guestPhone" gorm:"size:20;not null"`
	RoomID          uint            `json:"roomId" gorm:"index:idx_booking_room_stay;not null"`
	Room            *Room           `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	CheckIn         datatypes.Date  `json:"checkIn" gorm:"index:idx_booking_room_stay;not null"`
	CheckOut        datatypes.Date  `json:"checkOut" gorm:"index:idx_booking_room_stay;not null"`
	TotalPrice      decimal.Decimal `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Status          BookingStatus   `json:"status" gorm:"size:20;default:pending;index"`
	SpecialRequests string          `json:"specialRequests" gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Stay returns the booking's date range
func (b *Booking) Stay() DateRange {
	return NewDateRange(time.Time(b.CheckIn), time.Time(b.CheckOut))
}

// Nights derives the night count from the stored dates
func (b *Booking) Nights() int {
	return b.Stay().Nights()
}
