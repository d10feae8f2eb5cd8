package builders

import (
	"strings"

	"abchotels/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BookingBuilder assembles a pending booking step by step
type BookingBuilder struct {
	booking *models.Booking
	price   decimal.Decimal
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: models.BookingStatusPending},
	}
}

// ForRoom sets the room and takes the nightly price from its room type
func (b *BookingBuilder) ForRoom(room *models.Room) *BookingBuilder {
	b.booking.RoomID = room.ID
	b.booking.Room = room
	b.price = room.RoomType.PricePerNight
	return b
}

func (b *BookingBuilder) WithGuestInfo(guestName, guestEmail, guestPhone string) *BookingBuilder {
	b.booking.GuestName = strings.TrimSpace(guestName)
	b.booking.GuestEmail = strings.ToLower(strings.TrimSpace(guestEmail))
	b.booking.GuestPhone = strings.TrimSpace(guestPhone)
	return b
}

func (b *BookingBuilder) WithStay(stay models.DateRange) *BookingBuilder {
	b.booking.CheckIn = datatypes.Date(stay.CheckIn)
	b.booking.CheckOut = datatypes.Date(stay.CheckOut)
	return b
}

func (b *BookingBuilder) WithSpecialRequests(requests string) *BookingBuilder {
	b.booking.SpecialRequests = strings.TrimSpace(requests)
	return b
}

// Build prices the stay as nights times the nightly rate
func (b *BookingBuilder) Build() *models.Booking {
	b.booking.TotalPrice = StayPrice(b.price, b.booking.Stay())
	return b.booking
}

// StayPrice is the total for a stay at a nightly rate
func StayPrice(pricePerNight decimal.Decimal, stay models.DateRange) decimal.Decimal {
	nights := decimal.NewFromInt(int64(stay.Nights()))
	return pricePerNight.Mul(nights).Round(2)
}
