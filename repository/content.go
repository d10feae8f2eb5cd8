package repository

import (
	"context"

	apperrors "abchotels/errors"
	"abchotels/models"

	"gorm.io/gorm"
)

type ContentRepository interface {
	// ListFAQs returns active FAQs by display order; limit <= 0 means all
	ListFAQs(ctx context.Context, limit int) ([]models.FAQ, error)
	CreateFAQ(ctx context.Context, faq *models.FAQ) error
	CountFAQs(ctx context.Context) (int64, error)
	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
	ListContactMessages(ctx context.Context, offset, limit int) ([]models.ContactMessage, int64, error)
}

type gormContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &gormContentRepository{db: db}
}

func (r *gormContentRepository) ListFAQs(ctx context.Context, limit int) ([]models.FAQ, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var faqs []models.FAQ
	if err := q.Find(&faqs).Error; err != nil {
		return nil, translate(err, apperrors.ErrFAQNotFound)
	}
	return faqs, nil
}

func (r *gormContentRepository) CreateFAQ(ctx context.Context, faq *models.FAQ) error {
	return translate(r.db.WithContext(ctx).Create(faq).Error, apperrors.ErrFAQNotFound)
}

func (r *gormContentRepository) CountFAQs(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FAQ{}).Count(&count).Error; err != nil {
		return 0, translate(err, apperrors.ErrFAQNotFound)
	}
	return count, nil
}

func (r *gormContentRepository) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error, apperrors.ErrFAQNotFound)
}

func (r *gormContentRepository) ListContactMessages(ctx context.Context, offset, limit int) ([]models.ContactMessage, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, apperrors.ErrFAQNotFound)
	}
	var msgs []models.ContactMessage
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, translate(err, apperrors.ErrFAQNotFound)
	}
	return msgs, total, nil
}
