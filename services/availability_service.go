package services

import (
	"context"
	"sort"
	"time"

	"abchotels/constants"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"

	"github.com/shopspring/decimal"
)

// AvailabilityQuery is the optional part of the availability predicate
type AvailabilityQuery struct {
	MinCapacity *int
	Stay        *models.DateRange
}

// CitySummary is one row of the city listing
type CitySummary struct {
	City          models.City      `json:"city"`
	StartingPrice *decimal.Decimal `json:"startingPrice"`
	RoomCount     int              `json:"roomCount"`
}

// RoomTypeOffer is a room type bookable in some scope, with how many rooms back it
type RoomTypeOffer struct {
	RoomType       models.RoomType `json:"roomType"`
	AvailableRooms int             `json:"availableRooms"`
}

type AvailabilityService struct {
	cities    repository.CityRepository
	roomTypes repository.RoomTypeRepository
	rooms     repository.RoomRepository
	bookings  repository.BookingRepository
	cache     Cache
	cacheTTL  time.Duration
	log       logger.Logger
}

func NewAvailabilityService(
	cities repository.CityRepository,
	roomTypes repository.RoomTypeRepository,
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	cache Cache,
	cacheTTL time.Duration,
	log logger.Logger,
) *AvailabilityService {
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultCacheTTL
	}
	return &AvailabilityService{
		cities:    cities,
		roomTypes: roomTypes,
		rooms:     rooms,
		bookings:  bookings,
		cache:     cache,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// IsRoomAvailable is false iff a pending or confirmed booking on the room overlaps stay
func (s *AvailabilityService) IsRoomAvailable(ctx context.Context, roomID uint, stay models.DateRange) (bool, error) {
	overlap, err := s.bookings.HasOverlap(ctx, roomID, stay)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

// AvailableRooms lists the rooms of a type that pass the predicate
func (s *AvailabilityService) AvailableRooms(ctx context.Context, roomTypeID uint, q AvailabilityQuery) ([]models.Room, error) {
	return s.rooms.ListAvailable(ctx, repository.RoomFilter{
		RoomTypeID:  roomTypeID,
		MinCapacity: q.MinCapacity,
		Stay:        q.Stay,
	})
}

// AvailableRoomTypesForCity returns the distinct room types with a qualifying room in the city, cheapest first
func (s *AvailabilityService) AvailableRoomTypesForCity(ctx context.Context, cityID uint, q AvailabilityQuery) ([]RoomTypeOffer, error) {
	rooms, err := s.cityRooms(ctx, cityID, q)
	if err != nil {
		return nil, err
	}
	return distinctRoomTypes(rooms), nil
}

// StartingPriceForCity is the lowest nightly price among qualifying rooms, nil when there are none
func (s *AvailabilityService) StartingPriceForCity(ctx context.Context, cityID uint, q AvailabilityQuery) (*decimal.Decimal, error) {
	rooms, err := s.cityRooms(ctx, cityID, q)
	if err != nil {
		return nil, err
	}
	return startingPrice(rooms), nil
}

// RoomCountForCity counts qualifying rooms in the city
func (s *AvailabilityService) RoomCountForCity(ctx context.Context, cityID uint, q AvailabilityQuery) (int, error) {
	rooms, err := s.cityRooms(ctx, cityID, q)
	if err != nil {
		return 0, err
	}
	return len(rooms), nil
}

// CitySummaries lists active cities by name with their starting price and room count.
// The result is cached until a catalog write invalidates it.
func (s *AvailabilityService) CitySummaries(ctx context.Context) ([]CitySummary, error) {
	var cached []CitySummary
	hit, err := s.cache.Get(ctx, constants.CacheKeyCitySummaries, &cached)
	if err != nil {
		s.log.Error("read %s from cache: %v", constants.CacheKeyCitySummaries, err)
	}
	if hit {
		return cached, nil
	}

	summaries, err := s.buildCitySummaries(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, constants.CacheKeyCitySummaries, summaries, s.cacheTTL); err != nil {
		s.log.Error("write %s to cache: %v", constants.CacheKeyCitySummaries, err)
	}
	return summaries, nil
}

// InvalidateSummaries drops the cached city listing
func (s *AvailabilityService) InvalidateSummaries(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CacheKeyCitySummaries); err != nil {
		s.log.Error("invalidate %s: %v", constants.CacheKeyCitySummaries, err)
	}
}

// WarmCitySummaries rebuilds the cached city listing
func (s *AvailabilityService) WarmCitySummaries(ctx context.Context) error {
	s.InvalidateSummaries(ctx)
	_, err := s.CitySummaries(ctx)
	return err
}

// SimilarRoomTypes returns up to three other types priced within half to one and a half times the reference
func (s *AvailabilityService) SimilarRoomTypes(ctx context.Context, roomTypeID uint) ([]models.RoomType, error) {
	ref, err := s.roomTypes.FindByID(ctx, roomTypeID)
	if err != nil {
		return nil, err
	}
	low, high := similarPriceBand(ref.PricePerNight)
	return s.roomTypes.FindInPriceRange(ctx, low, high, ref.ID, constants.SimilarRoomTypesLimit)
}

func (s *AvailabilityService) buildCitySummaries(ctx context.Context) ([]CitySummary, error) {
	cities, err := s.cities.List(ctx, true)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListAvailable(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, err
	}

	byCity := make(map[uint][]models.Room)
	for _, room := range rooms {
		byCity[room.CityID] = append(byCity[room.CityID], room)
	}

	summaries := make([]CitySummary, 0, len(cities))
	for _, city := range cities {
		cityRooms := byCity[city.ID]
		summaries = append(summaries, CitySummary{
			City:          city,
			StartingPrice: startingPrice(cityRooms),
			RoomCount:     len(cityRooms),
		})
	}
	return summaries, nil
}

func (s *AvailabilityService) cityRooms(ctx context.Context, cityID uint, q AvailabilityQuery) ([]models.Room, error) {
	return s.rooms.ListAvailable(ctx, repository.RoomFilter{
		CityID:      cityID,
		MinCapacity: q.MinCapacity,
		Stay:        q.Stay,
	})
}

var (
	similarLow  = decimal.RequireFromString("0.5")
	similarHigh = decimal.RequireFromString("1.5")
)

func similarPriceBand(price decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	return price.Mul(similarLow), price.Mul(similarHigh)
}

func startingPrice(rooms []models.Room) *decimal.Decimal {
	var lowest *decimal.Decimal
	for i := range rooms {
		p := rooms[i].RoomType.PricePerNight
		if lowest == nil || p.LessThan(*lowest) {
			lowest = &p
		}
	}
	return lowest
}

func distinctRoomTypes(rooms []models.Room) []RoomTypeOffer {
	index := make(map[uint]int)
	var offers []RoomTypeOffer
	for _, room := range rooms {
		if i, ok := index[room.RoomTypeID]; ok {
			offers[i].AvailableRooms++
			continue
		}
		index[room.RoomTypeID] = len(offers)
		offers = append(offers, RoomTypeOffer{RoomType: room.RoomType, AvailableRooms: 1})
	}
	sort.SliceStable(offers, func(i, j int) bool {
		pi, pj := offers[i].RoomType.PricePerNight, offers[j].RoomType.PricePerNight
		if !pi.Equal(pj) {
			return pi.LessThan(pj)
		}
		return offers[i].RoomType.ID < offers[j].RoomType.ID
	})
	return offers
}
