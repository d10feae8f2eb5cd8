package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/notification"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// memStore is an in-memory stand-in for the database shared by the fake repositories
type memStore struct {
	mu        sync.Mutex
	cities    []models.City
	roomTypes []models.RoomType
	rooms     []models.Room
	bookings  []models.Booking
	nextID    uint

	createErr error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) addCity(id uint, name string, active bool) {
	s.cities = append(s.cities, models.City{ID: id, Name: name, IsActive: active})
}

func (s *memStore) addRoomType(id uint, name, price string, capacity int) {
	s.roomTypes = append(s.roomTypes, models.RoomType{
		ID:            id,
		Name:          name,
		PricePerNight: decimal.RequireFromString(price),
		Capacity:      capacity,
	})
}

func (s *memStore) addRoom(id uint, number string, cityID, typeID uint, inService bool) {
	s.rooms = append(s.rooms, models.Room{
		ID:          id,
		RoomNumber:  number,
		CityID:      cityID,
		RoomTypeID:  typeID,
		IsAvailable: inService,
	})
}

func (s *memStore) addBooking(roomID uint, checkIn, checkOut string, status models.BookingStatus) {
	in, _ := time.Parse(models.DateLayout, checkIn)
	out, _ := time.Parse(models.DateLayout, checkOut)
	s.bookings = append(s.bookings, models.Booking{
		ID:       s.nextID,
		RoomID:   roomID,
		CheckIn:  datatypes.Date(in),
		CheckOut: datatypes.Date(out),
		Status:   status,
	})
	s.nextID++
}

func (s *memStore) hydrate(room models.Room) models.Room {
	for _, rt := range s.roomTypes {
		if rt.ID == room.RoomTypeID {
			room.RoomType = rt
		}
	}
	for _, c := range s.cities {
		if c.ID == room.CityID {
			room.City = c
		}
	}
	return room
}

func (s *memStore) overlaps(roomID uint, stay models.DateRange) bool {
	for _, b := range s.bookings {
		if b.RoomID == roomID && b.Status.Blocks() && b.Stay().Overlaps(stay) {
			return true
		}
	}
	return false
}

type memCityRepo struct{ s *memStore }

func (r memCityRepo) List(_ context.Context, activeOnly bool) ([]models.City, error) {
	var out []models.City
	for _, c := range r.s.cities {
		if !activeOnly || c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memCityRepo) FindByID(_ context.Context, id uint) (*models.City, error) {
	for _, c := range r.s.cities {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrCityNotFound)
}

func (r memCityRepo) FindByName(_ context.Context, name string) (*models.City, error) {
	for _, c := range r.s.cities {
		if c.Name == name {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrCityNotFound)
}

func (r memCityRepo) Create(_ context.Context, city *models.City) error {
	city.ID = uint(len(r.s.cities) + 100)
	r.s.cities = append(r.s.cities, *city)
	return nil
}

func (r memCityRepo) Update(_ context.Context, city *models.City) error {
	for i := range r.s.cities {
		if r.s.cities[i].ID == city.ID {
			r.s.cities[i] = *city
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrCityNotFound)
}

func (r memCityRepo) Delete(_ context.Context, id uint) error {
	for i := range r.s.cities {
		if r.s.cities[i].ID == id {
			r.s.cities = append(r.s.cities[:i], r.s.cities[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrCityNotFound)
}

func (r memCityRepo) Upsert(ctx context.Context, city *models.City) error {
	if existing, err := r.FindByName(ctx, city.Name); err == nil {
		city.ID = existing.ID
		return r.Update(ctx, city)
	}
	return r.Create(ctx, city)
}

type memRoomTypeRepo struct{ s *memStore }

func (r memRoomTypeRepo) List(_ context.Context, f repository.RoomTypeFilter) ([]models.RoomType, error) {
	var out []models.RoomType
	for _, rt := range r.s.roomTypes {
		if f.NameContains != "" && !strings.Contains(strings.ToLower(rt.Name), strings.ToLower(f.NameContains)) {
			continue
		}
		if f.PriceMin != nil && rt.PricePerNight.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && rt.PricePerNight.GreaterThan(*f.PriceMax) {
			continue
		}
		if f.MinCapacity != nil && rt.Capacity < *f.MinCapacity {
			continue
		}
		out = append(out, rt)
	}
	return out, nil
}

func (r memRoomTypeRepo) FindByID(_ context.Context, id uint) (*models.RoomType, error) {
	for _, rt := range r.s.roomTypes {
		if rt.ID == id {
			rt := rt
			return &rt, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
}

func (r memRoomTypeRepo) FindByName(_ context.Context, name string) (*models.RoomType, error) {
	for _, rt := range r.s.roomTypes {
		if rt.Name == name {
			rt := rt
			return &rt, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
}

func (r memRoomTypeRepo) FindInPriceRange(_ context.Context, low, high decimal.Decimal, excludeID uint, limit int) ([]models.RoomType, error) {
	var out []models.RoomType
	for _, rt := range r.s.roomTypes {
		if rt.ID == excludeID || rt.PricePerNight.LessThan(low) || rt.PricePerNight.GreaterThan(high) {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memRoomTypeRepo) Create(_ context.Context, rt *models.RoomType) error {
	rt.ID = uint(len(r.s.roomTypes) + 100)
	r.s.roomTypes = append(r.s.roomTypes, *rt)
	return nil
}

func (r memRoomTypeRepo) Update(_ context.Context, rt *models.RoomType) error {
	for i := range r.s.roomTypes {
		if r.s.roomTypes[i].ID == rt.ID {
			r.s.roomTypes[i] = *rt
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
}

func (r memRoomTypeRepo) Delete(_ context.Context, id uint) error {
	for i := range r.s.roomTypes {
		if r.s.roomTypes[i].ID == id {
			r.s.roomTypes = append(r.s.roomTypes[:i], r.s.roomTypes[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
}

func (r memRoomTypeRepo) Upsert(ctx context.Context, rt *models.RoomType) error {
	if existing, err := r.FindByName(ctx, rt.Name); err == nil {
		rt.ID = existing.ID
		return r.Update(ctx, rt)
	}
	return r.Create(ctx, rt)
}

type memRoomRepo struct{ s *memStore }

func (r memRoomRepo) FindByID(_ context.Context, id uint) (*models.Room, error) {
	for _, room := range r.s.rooms {
		if room.ID == id {
			room := r.s.hydrate(room)
			return &room, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrRoomNotFound)
}

func (r memRoomRepo) FindByNumber(_ context.Context, number string) (*models.Room, error) {
	for _, room := range r.s.rooms {
		if room.RoomNumber == number {
			room := r.s.hydrate(room)
			return &room, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrRoomNotFound)
}

func (r memRoomRepo) ListAvailable(_ context.Context, f repository.RoomFilter) ([]models.Room, error) {
	var out []models.Room
	for _, room := range r.s.rooms {
		room = r.s.hydrate(room)
		switch {
		case !room.IsAvailable:
		case f.CityID != 0 && room.CityID != f.CityID:
		case f.RoomTypeID != 0 && room.RoomTypeID != f.RoomTypeID:
		case f.MinCapacity != nil && room.RoomType.Capacity < *f.MinCapacity:
		case f.Stay != nil && r.s.overlaps(room.ID, *f.Stay):
		default:
			out = append(out, room)
		}
	}
	return out, nil
}

func (r memRoomRepo) ListAll(_ context.Context) ([]models.Room, error) {
	out := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		out = append(out, r.s.hydrate(room))
	}
	return out, nil
}

func (r memRoomRepo) Create(_ context.Context, room *models.Room) error {
	room.ID = uint(len(r.s.rooms) + 100)
	r.s.rooms = append(r.s.rooms, *room)
	return nil
}

func (r memRoomRepo) Update(_ context.Context, room *models.Room) error {
	for i := range r.s.rooms {
		if r.s.rooms[i].ID == room.ID {
			r.s.rooms[i] = *room
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrRoomNotFound)
}

func (r memRoomRepo) SetAvailability(_ context.Context, id uint, available bool) error {
	for i := range r.s.rooms {
		if r.s.rooms[i].ID == id {
			r.s.rooms[i].IsAvailable = available
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrRoomNotFound)
}

func (r memRoomRepo) Delete(_ context.Context, id uint) error {
	for i := range r.s.rooms {
		if r.s.rooms[i].ID == id {
			r.s.rooms = append(r.s.rooms[:i], r.s.rooms[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrRoomNotFound)
}

func (r memRoomRepo) Upsert(ctx context.Context, room *models.Room) error {
	if existing, err := r.FindByNumber(ctx, room.RoomNumber); err == nil {
		room.ID = existing.ID
		return r.Update(ctx, room)
	}
	return r.Create(ctx, room)
}

type memBookingRepo struct{ s *memStore }

func (r memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	if r.s.createErr != nil {
		return r.s.createErr
	}
	b.ID = r.s.nextID
	r.s.nextID++
	stored := *b
	stored.Room = nil
	r.s.bookings = append(r.s.bookings, stored)
	return nil
}

func (r memBookingRepo) FindByID(_ context.Context, id uint) (*models.Booking, error) {
	for _, b := range r.s.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.ErrBookingNotFound)
}

func (r memBookingRepo) List(_ context.Context, f repository.BookingFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.s.bookings {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.RoomID != 0 && b.RoomID != f.RoomID {
			continue
		}
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (r memBookingRepo) UpdateStatus(_ context.Context, id uint, status models.BookingStatus) error {
	for i := range r.s.bookings {
		if r.s.bookings[i].ID == id {
			r.s.bookings[i].Status = status
			return nil
		}
	}
	return apperrors.NotFound(apperrors.ErrBookingNotFound)
}

func (r memBookingRepo) HasOverlap(_ context.Context, roomID uint, stay models.DateRange) (bool, error) {
	return r.s.overlaps(roomID, stay), nil
}

func (r memBookingRepo) LockRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	return memRoomRepo{r.s}.FindByID(ctx, roomID)
}

// WithinTransaction serialises callers and restores the bookings on error
func (r memBookingRepo) WithinTransaction(_ context.Context, fn func(tx repository.BookingRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := append([]models.Booking(nil), r.s.bookings...)
	if err := fn(r); err != nil {
		r.s.bookings = snapshot
		return err
	}
	return nil
}

func (r memBookingRepo) CompleteCheckedOut(_ context.Context, today time.Time) (int64, error) {
	var n int64
	for i := range r.s.bookings {
		b := &r.s.bookings[i]
		if b.Status == models.BookingStatusConfirmed && !time.Time(b.CheckOut).After(today) {
			b.Status = models.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (r memBookingRepo) CancelStalePending(_ context.Context, today time.Time) (int64, error) {
	var n int64
	for i := range r.s.bookings {
		b := &r.s.bookings[i]
		if b.Status == models.BookingStatusPending && time.Time(b.CheckIn).Before(today) {
			b.Status = models.BookingStatusCancelled
			n++
		}
	}
	return n, nil
}

// recordingNotifier keeps every published event
type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, e notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return n.err
}

// countingCache is an in-memory Cache that counts hits
type countingCache struct {
	data map[string]interface{}
	hits int
}

func newCountingCache() *countingCache {
	return &countingCache{data: map[string]interface{}{}}
}

func (c *countingCache) Get(_ context.Context, key string, target interface{}) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	if dst, ok := target.(*[]CitySummary); ok {
		*dst = v.([]CitySummary)
	}
	return true, nil
}

func (c *countingCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *countingCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// hotelFixture is the catalog used across service tests: Paris with three types and
// London with one room out of service.
func hotelFixture() *memStore {
	s := newMemStore()
	s.addCity(1, "Paris", true)
	s.addCity(2, "London", true)
	s.addCity(3, "Atlantis", false)

	s.addRoomType(1, "Standard King", "159.00", 2)
	s.addRoomType(2, "Classic Double", "149.00", 2)
	s.addRoomType(3, "Deluxe Suite", "299.00", 4)
	s.addRoomType(4, "Junior Suite", "199.00", 3)
	s.addRoomType(5, "Penthouse", "900.00", 6)

	s.addRoom(1, "R101", 2, 1, true)
	s.addRoom(2, "P201", 1, 2, true)
	s.addRoom(3, "P202", 1, 4, true)
	s.addRoom(4, "P203", 1, 3, true)
	s.addRoom(5, "L301", 2, 3, false)
	return s
}
