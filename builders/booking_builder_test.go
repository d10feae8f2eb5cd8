package builders

import (
	"testing"
	"time"

	"abchotels/models"

	"github.com/shopspring/decimal"
)

func TestBookingBuilder_PricesStay(t *testing.T) {
	room := &models.Room{
		ID:         1,
		RoomNumber: "R101",
		RoomType:   models.RoomType{Name: "Standard King", PricePerNight: decimal.RequireFromString("159.00")},
	}
	stay := models.NewDateRange(
		time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC),
	)

	b := NewBookingBuilder().
		ForRoom(room).
		WithGuestInfo("  Ada Lovelace ", "Ada@Example.com", "+1 555 0100").
		WithStay(stay).
		WithSpecialRequests(" late arrival ").
		Build()

	if !b.TotalPrice.Equal(decimal.RequireFromString("477.00")) {
		t.Errorf("total = %s, want 477.00", b.TotalPrice)
	}
	if b.Status != models.BookingStatusPending {
		t.Errorf("status = %s", b.Status)
	}
	if b.RoomID != 1 || b.Nights() != 3 {
		t.Errorf("room=%d nights=%d", b.RoomID, b.Nights())
	}
	if b.GuestName != "Ada Lovelace" || b.GuestEmail != "ada@example.com" || b.SpecialRequests != "late arrival" {
		t.Errorf("guest fields not normalised: %+v", b)
	}
}

func TestBookingBuilder_TotalIsExact(t *testing.T) {
	prices := []string{"0.10", "99.99", "149.00", "1234.56"}
	for _, p := range prices {
		price := decimal.RequireFromString(p)
		for nights := 1; nights <= 30; nights++ {
			in := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
			stay := models.NewDateRange(in, in.AddDate(0, 0, nights))
			b := NewBookingBuilder().
				ForRoom(&models.Room{RoomType: models.RoomType{PricePerNight: price}}).
				WithStay(stay).
				Build()
			want := price.Mul(decimal.NewFromInt(int64(nights)))
			if !b.TotalPrice.Equal(want) {
				t.Fatalf("price %s x %d nights = %s, want %s", p, nights, b.TotalPrice, want)
			}
		}
	}
}
