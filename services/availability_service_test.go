package services

import (
	"context"
	"testing"
	"time"

	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/services/logger"

	"github.com/shopspring/decimal"
)

func newTestAvailabilityService(s *memStore, cache Cache) *AvailabilityService {
	return NewAvailabilityService(memCityRepo{s}, memRoomTypeRepo{s}, memRoomRepo{s}, memBookingRepo{s}, cache, time.Minute, logger.Nop{})
}

func stay(checkIn, checkOut string) models.DateRange {
	in, _ := time.Parse(models.DateLayout, checkIn)
	out, _ := time.Parse(models.DateLayout, checkOut)
	return models.NewDateRange(in, out)
}

func TestIsRoomAvailable(t *testing.T) {
	s := hotelFixture()
	s.addBooking(1, "2030-06-01", "2030-06-05", models.BookingStatusConfirmed)
	s.addBooking(1, "2030-06-10", "2030-06-12", models.BookingStatusCancelled)
	svc := newTestAvailabilityService(s, NoopCache{})

	tests := []struct {
		name string
		stay models.DateRange
		want bool
	}{
		{"overlapping", stay("2030-06-03", "2030-06-07"), false},
		{"abutting after", stay("2030-06-05", "2030-06-06"), true},
		{"abutting before", stay("2030-05-30", "2030-06-01"), true},
		{"only cancelled overlaps", stay("2030-06-10", "2030-06-11"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				got, err := svc.IsRoomAvailable(context.Background(), 1, tt.stay)
				if err != nil {
					t.Fatalf("IsRoomAvailable: %v", err)
				}
				if got != tt.want {
					t.Fatalf("call %d: got %v, want %v", i+1, got, tt.want)
				}
			}
		})
	}
	if len(s.bookings) != 2 {
		t.Error("availability checks must not write")
	}
}

func TestStartingPriceForCity(t *testing.T) {
	s := hotelFixture()
	svc := newTestAvailabilityService(s, NoopCache{})

	price, err := svc.StartingPriceForCity(context.Background(), 1, AvailabilityQuery{})
	if err != nil {
		t.Fatalf("StartingPriceForCity: %v", err)
	}
	if price == nil || price.StringFixed(2) != "149.00" {
		t.Fatalf("Paris starting price = %v, want 149.00", price)
	}

	// London's only qualifying room is R101; L301 is out of service
	price, _ = svc.StartingPriceForCity(context.Background(), 2, AvailabilityQuery{})
	if price == nil || price.StringFixed(2) != "159.00" {
		t.Errorf("London starting price = %v, want 159.00", price)
	}

	price, _ = svc.StartingPriceForCity(context.Background(), 3, AvailabilityQuery{})
	if price != nil {
		t.Errorf("city without rooms should have no starting price, got %s", price)
	}
}

func TestAvailableRoomTypesForCity(t *testing.T) {
	s := hotelFixture()
	svc := newTestAvailabilityService(s, NoopCache{})
	ctx := context.Background()

	offers, err := svc.AvailableRoomTypesForCity(ctx, 1, AvailabilityQuery{})
	if err != nil {
		t.Fatalf("AvailableRoomTypesForCity: %v", err)
	}
	names := make([]string, len(offers))
	for i, o := range offers {
		names[i] = o.RoomType.Name
	}
	want := []string{"Classic Double", "Junior Suite", "Deluxe Suite"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	capacity := 3
	offers, _ = svc.AvailableRoomTypesForCity(ctx, 1, AvailabilityQuery{MinCapacity: &capacity})
	if len(offers) != 2 {
		t.Errorf("capacity >= 3 should leave 2 types, got %d", len(offers))
	}

	count, _ := svc.RoomCountForCity(ctx, 2, AvailabilityQuery{})
	if count != 1 {
		t.Errorf("London room count = %d, want 1", count)
	}
}

func TestAvailabilityQuery_StayFiltersBookedRooms(t *testing.T) {
	s := hotelFixture()
	s.addBooking(2, "2030-06-01", "2030-06-05", models.BookingStatusPending)
	svc := newTestAvailabilityService(s, NoopCache{})
	ctx := context.Background()

	booked := stay("2030-06-02", "2030-06-03")
	price, _ := svc.StartingPriceForCity(ctx, 1, AvailabilityQuery{Stay: &booked})
	if price == nil || price.StringFixed(2) != "199.00" {
		t.Errorf("with P201 booked, starting price = %v, want 199.00", price)
	}

	free := stay("2030-06-05", "2030-06-07")
	price, _ = svc.StartingPriceForCity(ctx, 1, AvailabilityQuery{Stay: &free})
	if price == nil || price.StringFixed(2) != "149.00" {
		t.Errorf("after checkout, starting price = %v, want 149.00", price)
	}
}

func TestSimilarRoomTypes(t *testing.T) {
	s := hotelFixture()
	svc := newTestAvailabilityService(s, NoopCache{})

	// reference 199: band [99.5, 298.5] keeps 159, 149 and drops 299, 900
	similar, err := svc.SimilarRoomTypes(context.Background(), 4)
	if err != nil {
		t.Fatalf("SimilarRoomTypes: %v", err)
	}
	if len(similar) != 2 || similar[0].ID != 1 || similar[1].ID != 2 {
		t.Errorf("got %+v", similar)
	}

	// reference 149: band [74.5, 223.5] keeps 159, 199; bound is inclusive
	s.addRoomType(6, "Budget", "74.50", 1)
	s.addRoomType(7, "Twin", "223.50", 2)
	s.addRoomType(8, "Queen", "150.00", 2)
	similar, _ = svc.SimilarRoomTypes(context.Background(), 2)
	if len(similar) != 3 {
		t.Fatalf("expected the list to be capped at 3, got %d", len(similar))
	}
	for _, rt := range similar {
		if rt.ID == 2 {
			t.Error("reference type must be excluded")
		}
	}
	if similar[0].ID != 1 || similar[1].ID != 4 || similar[2].ID != 6 {
		t.Errorf("expected id order 1,4,6, got %d,%d,%d", similar[0].ID, similar[1].ID, similar[2].ID)
	}

	if _, err := svc.SimilarRoomTypes(context.Background(), 99); !apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
		t.Errorf("expected DB_NOT_FOUND, got %v", err)
	}
}

func TestSimilarPriceBand(t *testing.T) {
	low, high := similarPriceBand(decimal.RequireFromString("159.00"))
	if low.StringFixed(2) != "79.50" || high.StringFixed(2) != "238.50" {
		t.Errorf("band = [%s, %s]", low, high)
	}
}

func TestCitySummaries_CachedUntilInvalidated(t *testing.T) {
	s := hotelFixture()
	cache := newCountingCache()
	svc := newTestAvailabilityService(s, cache)
	ctx := context.Background()

	first, err := svc.CitySummaries(ctx)
	if err != nil {
		t.Fatalf("CitySummaries: %v", err)
	}
	if len(first) != 2 || first[0].City.Name != "London" || first[1].City.Name != "Paris" {
		t.Fatalf("expected active cities by name, got %+v", first)
	}
	if first[1].RoomCount != 3 || first[1].StartingPrice.StringFixed(2) != "149.00" {
		t.Errorf("Paris summary = %+v", first[1])
	}

	s.addRoom(9, "P204", 1, 1, true)
	second, _ := svc.CitySummaries(ctx)
	if cache.hits != 1 || second[1].RoomCount != 3 {
		t.Errorf("expected cached summaries, hits=%d count=%d", cache.hits, second[1].RoomCount)
	}

	svc.InvalidateSummaries(ctx)
	third, _ := svc.CitySummaries(ctx)
	if third[1].RoomCount != 4 {
		t.Errorf("expected fresh summaries after invalidation, got count %d", third[1].RoomCount)
	}
}
