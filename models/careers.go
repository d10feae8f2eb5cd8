package models

import (
	"time"

	"gorm.io/datatypes"
)

type Department struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Description string       `json:"description" gorm:"type:text"`
	Jobs        []JobListing `json:"jobs,omitempty" gorm:"foreignKey:DepartmentID"`
}

type JobListing struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title" gorm:"size:200;not null"`
	DepartmentID     uint       `json:"departmentId" gorm:"index;not null"`
	Department       Department `json:"department" gorm:"foreignKey:DepartmentID"`
	JobType          string     `json:"jobType" gorm:"size:20;index"`
	ExperienceLevel  string     `json:"experienceLevel" gorm:"size:20;index"`
	Location         string     `json:"location" gorm:"size:100"`
	SalaryRange      string     `json:"salaryRange" gorm:"size:100"`
	Description      string     `json:"description" gorm:"type:text"`
	Requirements     string     `json:"requirements" gorm:"type:text"`
	Responsibilities string     `json:"responsibilities" gorm:"type:text"`
	IsActive         bool       `json:"isActive" gorm:"default:true;index"`
	PostedDate       time.Time  `json:"postedDate" gorm:"autoCreateTime"`
}

type JobApplication struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	JobID              uint           `json:"jobId" gorm:"index;not null"`
	Job                *JobListing    `json:"job,omitempty" gorm:"foreignKey:JobID"`
	FirstName          string         `json:"firstName" gorm:"size:100;not null"`
	LastName           string         `json:"lastName" gorm:"size:100;not null"`
	Email              string         `json:"email" gorm:"size:254;not null"`
	Phone              string         `json:"phone" gorm:"size:20;not null"`
	CoverLetter        string         `json:"coverLetter" gorm:"type:text"`
	PortfolioURL       string         `json:"portfolioUrl"`
	LinkedInURL        string         `json:"linkedinUrl"`
	AvailableStartDate datatypes.Date `json:"availableStartDate"`
	ExpectedSalary     string         `json:"expectedSalary" gorm:"size:100"`
	ResumeURL          string         `json:"resumeUrl"`
	Status             string         `json:"status" gorm:"size:20;default:submitted;index"`
	AppliedDate        time.Time      `json:"appliedDate" gorm:"autoCreateTime"`
}
