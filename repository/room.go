package repository

import (
	"context"

	apperrors "abchotels/errors"
	"abchotels/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomFilter is the single availability predicate behind every listing.
// A room passes when it is in service, its type fits MinCapacity and,
// when Stay is set, no pending or confirmed booking overlaps the stay.
type RoomFilter struct {
	CityID      uint
	RoomTypeID  uint
	MinCapacity *int
	Stay        *models.DateRange
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByNumber(ctx context.Context, number string) (*models.Room, error)
	ListAvailable(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	ListAll(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	SetAvailability(ctx context.Context, id uint, available bool) error
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, room *models.Room) error
}

type gormRoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &gormRoomRepository{db: db}
}

func (r *gormRoomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("RoomType").
		First(&room, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *gormRoomRepository) FindByNumber(ctx context.Context, number string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Where("room_number = ?", number).First(&room).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *gormRoomRepository) ListAvailable(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.Room{}).
		Preload("City").
		Preload("RoomType").
		Where("rooms.is_available = ?", true)

	if f.CityID != 0 {
		q = q.Where("rooms.city_id = ?", f.CityID)
	}
	if f.RoomTypeID != 0 {
		q = q.Where("rooms.room_type_id = ?", f.RoomTypeID)
	}
	if f.MinCapacity != nil {
		q = q.Where("rooms.room_type_id IN (?)",
			db.Model(&models.RoomType{}).Select("id").Where("capacity >= ?", *f.MinCapacity))
	}
	if f.Stay != nil {
		q = q.Where("NOT EXISTS (?)", overlapping(db, f.Stay).Select("1").Where("bookings.room_id = rooms.id"))
	}

	var rooms []models.Room
	if err := q.Order("rooms.room_number ASC").Find(&rooms).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return rooms, nil
}

func (r *gormRoomRepository) ListAll(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Preload("City").
		Preload("RoomType").
		Order("room_number ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return rooms, nil
}

func (r *gormRoomRepository) Create(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(room).Error, apperrors.ErrRoomNotFound)
}

func (r *gormRoomRepository) Update(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Model(room).
		Omit(clause.Associations).
		Select("room_number", "city_id", "room_type_id", "is_available", "view_type", "image").
		Updates(room).Error
	return translate(err, apperrors.ErrRoomNotFound)
}

func (r *gormRoomRepository) SetAvailability(ctx context.Context, id uint, available bool) error {
	res := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("is_available", available)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *gormRoomRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrRoomNotFound)
	}
	return nil
}

func (r *gormRoomRepository) Upsert(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"city_id", "room_type_id", "is_available", "view_type", "updated_at"}),
	}).Create(room).Error
	return translate(err, apperrors.ErrRoomNotFound)
}

// overlapping scopes a bookings query to rows that hold their room during stay
func overlapping(db *gorm.DB, stay *models.DateRange) *gorm.DB {
	return db.Model(&models.Booking{}).
		Where("bookings.status IN ?", models.BlockingStatuses).
		Where("bookings.check_in < ? AND bookings.check_out > ?", stay.CheckOut, stay.CheckIn)
}
