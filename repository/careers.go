package repository

import (
	"context"

	apperrors "abchotels/errors"
	"abchotels/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobFilter narrows the job listing. Empty fields are not applied.
type JobFilter struct {
	DepartmentID    uint
	JobType         string
	ExperienceLevel string
	IncludeInactive bool
}

type CareersRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	FindDepartmentByName(ctx context.Context, name string) (*models.Department, error)
	UpsertDepartment(ctx context.Context, dept *models.Department) error

	ListJobs(ctx context.Context, filter JobFilter) ([]models.JobListing, error)
	FindJob(ctx context.Context, id uint) (*models.JobListing, error)
	RelatedJobs(ctx context.Context, departmentID, excludeID uint, limit int) ([]models.JobListing, error)
	FindJobByTitle(ctx context.Context, departmentID uint, title string) (*models.JobListing, error)
	SaveJob(ctx context.Context, job *models.JobListing) error

	CreateApplication(ctx context.Context, app *models.JobApplication) error
	ListApplications(ctx context.Context, jobID uint, offset, limit int) ([]models.JobApplication, int64, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status string) error
}

type gormCareersRepository struct {
	db *gorm.DB
}

func NewCareersRepository(db *gorm.DB) CareersRepository {
	return &gormCareersRepository{db: db}
}

func (r *gormCareersRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&depts).Error; err != nil {
		return nil, translate(err, apperrors.ErrDepartmentNotFound)
	}
	return depts, nil
}

func (r *gormCareersRepository) FindDepartmentByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&dept).Error; err != nil {
		return nil, translate(err, apperrors.ErrDepartmentNotFound)
	}
	return &dept, nil
}

func (r *gormCareersRepository) UpsertDepartment(ctx context.Context, dept *models.Department) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(dept).Error
	return translate(err, apperrors.ErrDepartmentNotFound)
}

func (r *gormCareersRepository) ListJobs(ctx context.Context, f JobFilter) ([]models.JobListing, error) {
	q := r.db.WithContext(ctx).Preload("Department")
	if !f.IncludeInactive {
		q = q.Where("is_active = ?", true)
	}
	if f.DepartmentID != 0 {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}

	var jobs []models.JobListing
	if err := q.Order("posted_date DESC").Order("id DESC").Find(&jobs).Error; err != nil {
		return nil, translate(err, apperrors.ErrJobNotFound)
	}
	return jobs, nil
}

// FindJob returns an active job listing
func (r *gormCareersRepository) FindJob(ctx context.Context, id uint) (*models.JobListing, error) {
	var job models.JobListing
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("is_active = ?", true).
		First(&job, id).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrJobNotFound)
	}
	return &job, nil
}

func (r *gormCareersRepository) RelatedJobs(ctx context.Context, departmentID, excludeID uint, limit int) ([]models.JobListing, error) {
	var jobs []models.JobListing
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("is_active = ? AND department_id = ? AND id <> ?", true, departmentID, excludeID).
		Order("posted_date DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrJobNotFound)
	}
	return jobs, nil
}

func (r *gormCareersRepository) FindJobByTitle(ctx context.Context, departmentID uint, title string) (*models.JobListing, error) {
	var job models.JobListing
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND title = ?", departmentID, title).
		First(&job).Error
	if err != nil {
		return nil, translate(err, apperrors.ErrJobNotFound)
	}
	return &job, nil
}

// SaveJob inserts the job when it has no id and updates it otherwise
func (r *gormCareersRepository) SaveJob(ctx context.Context, job *models.JobListing) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(job).Error, apperrors.ErrJobNotFound)
}

func (r *gormCareersRepository) CreateApplication(ctx context.Context, app *models.JobApplication) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error, apperrors.ErrApplicationNotFound)
}

func (r *gormCareersRepository) ListApplications(ctx context.Context, jobID uint, offset, limit int) ([]models.JobApplication, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.JobApplication{})
	if jobID != 0 {
		q = q.Where("job_id = ?", jobID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, apperrors.ErrApplicationNotFound)
	}

	var apps []models.JobApplication
	err := q.Preload("Job").
		Order("applied_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, translate(err, apperrors.ErrApplicationNotFound)
	}
	return apps, total, nil
}

func (r *gormCareersRepository) UpdateApplicationStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error, apperrors.ErrApplicationNotFound)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.JobApplication{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return translate(err, apperrors.ErrApplicationNotFound)
		}
		if count == 0 {
			return apperrors.NotFound(apperrors.ErrApplicationNotFound)
		}
	}
	return nil
}
