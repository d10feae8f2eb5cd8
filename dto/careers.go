package dto

type JobApplicationRequest struct {
	FirstName          string `form:"firstName" binding:"required,max=100"`
	LastName           string `form:"lastName" binding:"required,max=100"`
	Email              string `form:"email" binding:"required,email,max=254"`
	Phone              string `form:"phone" binding:"required,max=20"`
	CoverLetter        string `form:"coverLetter" binding:"required"`
	PortfolioURL       string `form:"portfolioUrl" binding:"omitempty,url"`
	LinkedInURL        string `form:"linkedinUrl" binding:"omitempty,url"`
	AvailableStartDate string `form:"availableStartDate" binding:"required,datetime=2006-01-02"`
	ExpectedSalary     string `form:"expectedSalary" binding:"max=100"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationResponse acknowledges a job application
type ApplicationResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}
