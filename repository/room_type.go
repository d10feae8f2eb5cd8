package repository

import (
	"context"
	"strings"

	apperrors "abchotels/errors"
	"abchotels/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomTypeFilter narrows the room type listing. Nil fields are not applied.
type RoomTypeFilter struct {
	NameContains string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	MinCapacity  *int
}

type RoomTypeRepository interface {
	List(ctx context.Context, filter RoomTypeFilter) ([]models.RoomType, error)
	FindByID(ctx context.Context, id uint) (*models.RoomType, error)
	FindByName(ctx context.Context, name string) (*models.RoomType, error)
	// FindInPriceRange returns types priced within [low, high], excluding excludeID, ordered by id
	FindInPriceRange(ctx context.Context, low, high decimal.Decimal, excludeID uint, limit int) ([]models.RoomType, error)
	Create(ctx context.Context, rt *models.RoomType) error
	Update(ctx context.Context, rt *models.RoomType) error
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, rt *models.RoomType) error
}

type gormRoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) RoomTypeRepository {
	return &gormRoomTypeRepository{db: db}
}

func (r *gormRoomTypeRepository) List(ctx context.Context, f RoomTypeFilter) ([]models.RoomType, error) {
	q := r.db.WithContext(ctx).Model(&models.RoomType{})
	if name := strings.TrimSpace(f.NameContains); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if f.PriceMin != nil {
		q = q.Where("price_per_night >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price_per_night <= ?", *f.PriceMax)
	}
	if f.MinCapacity != nil {
		q = q.Where("capacity >= ?", *f.MinCapacity)
	}

	var types []models.RoomType
	if err := q.Order("price_per_night ASC").Order("id ASC").Find(&types).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomTypeNotFound)
	}
	return types, nil
}

func (r *gormRoomTypeRepository) FindByID(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.db.WithContext(ctx).First(&rt, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomTypeNotFound)
	}
	return &rt, nil
}

func (r *gormRoomTypeRepository) FindByName(ctx context.Context, name string) (*models.RoomType, error) {
	var rt models.RoomType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&rt).Error; err != nil {
		return nil, translate(err, apperrors.ErrRoomTypeNotFound)
	}
	return &rt, nil
}

func (r *gormRoomTypeRepository) FindInPriceRange(ctx context.Context, low, high decimal.Decimal, excludeID uint, limit int) ([]models.RoomType, error) {
	var types []models.RoomType
	err := r.db.WithContext(ctx).
		Where("price_per_night BETWEEN ? AND ?", low, high).
		Where("id <> ?", excludeID).
		Order("id ASC").
		Limit(limit).
		Find(&types).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrRoomTypeNotFound)
	}
	return types, nil
}

func (r *gormRoomTypeRepository) Create(ctx context.Context, rt *models.RoomType) error {
	return translate(r.db.WithContext(ctx).Create(rt).Error, apperrors.ErrRoomTypeNotFound)
}

func (r *gormRoomTypeRepository) Update(ctx context.Context, rt *models.RoomType) error {
	err := r.db.WithContext(ctx).Model(rt).
		Select("name", "description", "price_per_night", "capacity", "image").
		Updates(rt).Error
	return translate(err, apperrors.ErrRoomTypeNotFound)
}

func (r *gormRoomTypeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.RoomType{}, id)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrRoomTypeNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrRoomTypeNotFound)
	}
	return nil
}

func (r *gormRoomTypeRepository) Upsert(ctx context.Context, rt *models.RoomType) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "price_per_night", "capacity", "updated_at"}),
	}).Create(rt).Error
	return translate(err, apperrors.ErrRoomTypeNotFound)
}
