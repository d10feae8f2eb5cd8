package repository

import (
	"context"
	"time"

	apperrors "abchotels/errors"
	"abchotels/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows the staff booking list
type BookingFilter struct {
	Status models.BookingStatus
	RoomID uint
	CityID uint
	Offset int
	Limit  int
}

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error
	// HasOverlap reports whether a pending or confirmed booking holds the room during stay
	HasOverlap(ctx context.Context, roomID uint, stay models.DateRange) (bool, error)
	// LockRoom loads the room with a row lock held until the surrounding transaction ends
	LockRoom(ctx context.Context, roomID uint) (*models.Room, error)
	// WithinTransaction runs fn against a repository bound to one transaction
	WithinTransaction(ctx context.Context, fn func(tx BookingRepository) error) error
	CompleteCheckedOut(ctx context.Context, today time.Time) (int64, error)
	CancelStalePending(ctx context.Context, today time.Time) (int64, error)
}

type gormBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &gormBookingRepository{db: db}
}

func (r *gormBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error, apperrors.ErrBookingNotFound)
}

func (r *gormBookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.City").
		Preload("Room.RoomType").
		First(&booking, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrBookingNotFound)
	}
	return &booking, nil
}

func (r *gormBookingRepository) List(ctx context.Context, f BookingFilter) ([]models.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.RoomID != 0 {
		q = q.Where("bookings.room_id = ?", f.RoomID)
	}
	if f.CityID != 0 {
		q = q.Where("bookings.room_id IN (?)",
			r.db.WithContext(ctx).Model(&models.Room{}).Select("id").Where("city_id = ?", f.CityID))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, apperrors.ErrBookingNotFound)
	}

	var bookings []models.Booking
	err := q.Preload("Room").
		Preload("Room.City").
		Preload("Room.RoomType").
		Order("bookings.created_at DESC").
		Order("bookings.id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, translate(err, apperrors.ErrBookingNotFound)
	}
	return bookings, total, nil
}

func (r *gormBookingRepository) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrBookingNotFound)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *gormBookingRepository) HasOverlap(ctx context.Context, roomID uint, stay models.DateRange) (bool, error) {
	var count int64
	err := overlapping(r.db.WithContext(ctx), &stay).
		Where("bookings.room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, apperrors.ErrBookingNotFound)
	}
	return count > 0, nil
}

func (r *gormBookingRepository) LockRoom(ctx context.Context, roomID uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomNotFound)
	}
	return &room, nil
}

func (r *gormBookingRepository) WithinTransaction(ctx context.Context, fn func(tx BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingRepository{db: tx})
	})
}

// CompleteCheckedOut marks confirmed stays that have ended as completed
func (r *gormBookingRepository) CompleteCheckedOut(ctx context.Context, today time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ? AND check_out <= ?", models.BookingStatusConfirmed, models.DateOf(today)).
		Update("status", models.BookingStatusCompleted)
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrBookingNotFound)
	}
	return res.RowsAffected, nil
}

// CancelStalePending cancels pending bookings whose check-in has already passed
func (r *gormBookingRepository) CancelStalePending(ctx context.Context, today time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ? AND check_in < ?", models.BookingStatusPending, models.DateOf(today)).
		Update("status", models.BookingStatusCancelled)
	if res.Error != nil {
		return 0, translate(res.Error, apperrors.ErrBookingNotFound)
	}
	return res.RowsAffected, nil
}
