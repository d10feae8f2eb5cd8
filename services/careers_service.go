package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"abchotels/constants"
	"abchotels/dto"
	apperrors "abchotels/errors"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"
	"abchotels/services/notification"
	"abchotels/utils"
	"abchotels/validator"

	"gorm.io/datatypes"
)

// ResumeFile is an uploaded resume as received from the form
type ResumeFile struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// JobDetail is a job listing with a few others from the same department
type JobDetail struct {
	Job     models.JobListing   `json:"job"`
	Related []models.JobListing `json:"relatedJobs"`
}

type CareersService struct {
	repo     repository.CareersRepository
	media    MediaStore
	notifier notification.Service
	log      logger.Logger
}

func NewCareersService(repo repository.CareersRepository, media MediaStore, notifier notification.Service, log logger.Logger) *CareersService {
	return &CareersService{repo: repo, media: media, notifier: notifier, log: log}
}

func (s *CareersService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return s.repo.ListDepartments(ctx)
}

// ListJobs lists active jobs. Filter values outside the known job types and
// experience levels are dropped rather than rejected.
func (s *CareersService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]models.JobListing, error) {
	if !isOneOf(filter.JobType, constants.JobTypes) {
		filter.JobType = ""
	}
	if !isOneOf(filter.ExperienceLevel, constants.ExperienceLevels) {
		filter.ExperienceLevel = ""
	}
	filter.IncludeInactive = false
	return s.repo.ListJobs(ctx, filter)
}

func (s *CareersService) JobDetail(ctx context.Context, id uint) (*JobDetail, error) {
	job, err := s.repo.FindJob(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.RelatedJobs(ctx, job.DepartmentID, job.ID, constants.RelatedJobsLimit)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []models.JobListing{}
	}
	return &JobDetail{Job: *job, Related: related}, nil
}

// Apply stores an application for an active job after checking the form and the resume
func (s *CareersService) Apply(ctx context.Context, jobID uint, req dto.JobApplicationRequest, resume *ResumeFile) (*models.JobApplication, error) {
	job, err := s.repo.FindJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	if resume == nil || resume.Body == nil {
		return nil, apperrors.NewValidationError("Please fill in all required fields", map[string]string{
			"resume": "This field is required",
		})
	}
	if err := validator.ValidateResume(resume.Filename, resume.Size); err != nil {
		return nil, err
	}

	start, err := time.Parse(models.DateLayout, req.AvailableStartDate)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidDateFormat, "Please enter a valid start date (YYYY-MM-DD)", err)
	}

	resumeURL, err := s.media.Upload(ctx, FolderResumes, resume.Filename, resume.Body, resume.ContentType)
	if err != nil {
		return nil, err
	}

	app := &models.JobApplication{
		JobID:              job.ID,
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:              strings.TrimSpace(req.Phone),
		CoverLetter:        req.CoverLetter,
		PortfolioURL:       req.PortfolioURL,
		LinkedInURL:        req.LinkedInURL,
		AvailableStartDate: datatypes.Date(start),
		ExpectedSalary:     req.ExpectedSalary,
		ResumeURL:          resumeURL,
		Status:             constants.ApplicationSubmitted,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if rmErr := s.media.Delete(context.WithoutCancel(ctx), resumeURL); rmErr != nil {
			s.log.Error("remove orphaned resume %s: %v", resumeURL, rmErr)
		}
		return nil, err
	}
	app.Job = job

	s.log.Info("application %d received for job %d", app.ID, job.ID)
	event := notification.NewMessageBuilder(notification.EventApplicationSubmitted).
		Message("%s %s applied for %s", app.FirstName, app.LastName, job.Title).
		Data(map[string]interface{}{"applicationId": app.ID, "jobId": job.ID}).
		Build()
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.log.Error("publish %s: %v", event.Type, err)
	}
	return app, nil
}

// ApplicationAck is the thank-you line shown after a successful application
func ApplicationAck(app *models.JobApplication) string {
	title := "this position"
	if app.Job != nil {
		title = app.Job.Title
	}
	return fmt.Sprintf("Thank you %s! Your application for %s has been submitted successfully.", app.FirstName, title)
}

func (s *CareersService) ListApplications(ctx context.Context, jobID uint, page utils.Pagination) ([]models.JobApplication, int64, error) {
	return s.repo.ListApplications(ctx, jobID, page.Offset(), page.Limit)
}

func (s *CareersService) UpdateApplicationStatus(ctx context.Context, id uint, status string) error {
	next, err := validator.ValidateApplicationStatus(status)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateApplicationStatus(ctx, id, next); err != nil {
		return err
	}
	s.log.Info("application %d set to %s", id, next)
	return nil
}

func isOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
