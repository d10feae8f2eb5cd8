package repository

import (
	"context"

	apperrors "abchotels/errors"
	"abchotels/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CityRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.City, error)
	FindByID(ctx context.Context, id uint) (*models.City, error)
	FindByName(ctx context.Context, name string) (*models.City, error)
	Create(ctx context.Context, city *models.City) error
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, city *models.City) error
}

type gormCityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &gormCityRepository{db: db}
}

func (r *gormCityRepository) List(ctx context.Context, activeOnly bool) ([]models.City, error) {
	var cities []models.City
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&cities).Error; err != nil {
		return nil, translate(err, apperrors.ErrCityNotFound)
	}
	return cities, nil
}

func (r *gormCityRepository) FindByID(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, translate(err, apperrors.ErrCityNotFound)
	}
	return &city, nil
}

func (r *gormCityRepository) FindByName(ctx context.Context, name string) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&city).Error; err != nil {
		return nil, translate(err, apperrors.ErrCityNotFound)
	}
	return &city, nil
}

func (r *gormCityRepository) Create(ctx context.Context, city *models.City) error {
	return translate(r.db.WithContext(ctx).Create(city).Error, apperrors.ErrCityNotFound)
}

func (r *gormCityRepository) Update(ctx context.Context, city *models.City) error {
	err := r.db.WithContext(ctx).Model(city).Select("name", "description", "image", "is_active").Updates(city).Error
	return translate(err, apperrors.ErrCityNotFound)
}

func (r *gormCityRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.City{}, id)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrCityNotFound)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(apperrors.ErrCityNotFound)
	}
	return nil
}

// Upsert inserts the city or updates the one with the same name
func (r *gormCityRepository) Upsert(ctx context.Context, city *models.City) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "is_active", "updated_at"}),
	}).Create(city).Error
	return translate(err, apperrors.ErrCityNotFound)
}
