package controllers

import (
	"abchotels/dto"
	"abchotels/repository"
	"abchotels/response"
	"abchotels/services"
	"abchotels/utils"

	"github.com/gin-gonic/gin"
)

type CareersController struct {
	careers *services.CareersService
}

func NewCareersController(careers *services.CareersService) *CareersController {
	return &CareersController{careers: careers}
}

func (ctrl *CareersController) ListDepartments(c *gin.Context) {
	depts, err := ctrl.careers.ListDepartments(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, depts)
}

// ListJobs godoc
// @Summary  Open positions
// @Tags     careers
// @Produce  json
// @Param    department  query  int     false  "Department ID"
// @Param    job_type    query  string  false  "full_time, part_time, contract, internship"
// @Param    experience  query  string  false  "entry, mid, senior, executive"
// @Success  200  {object}  response.Response
// @Router   /careers/jobs [get]
func (ctrl *CareersController) ListJobs(c *gin.Context) {
	deptID, _ := utils.ParseID(c.Query("department"))
	jobs, err := ctrl.careers.ListJobs(c.Request.Context(), repository.JobFilter{
		DepartmentID:    deptID,
		JobType:         c.Query("job_type"),
		ExperienceLevel: c.Query("experience"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, jobs)
}

func (ctrl *CareersController) GetJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := ctrl.careers.JobDetail(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, detail)
}

// Apply godoc
// @Summary  Apply for a job
// @Tags     careers
// @Accept   multipart/form-data
// @Produce  json
// @Param    id                  path      int     true   "Job ID"
// @Param    firstName           formData  string  true   "First name"
// @Param    lastName            formData  string  true   "Last name"
// @Param    email               formData  string  true   "Email"
// @Param    phone               formData  string  true   "Phone"
// @Param    coverLetter         formData  string  true   "Cover letter"
// @Param    availableStartDate  formData  string  true   "YYYY-MM-DD"
// @Param    resume              formData  file    true   "PDF, DOC or DOCX up to 5MB"
// @Success  201  {object}  response.Response
// @Failure  400  {object}  response.Response
// @Router   /careers/jobs/{id}/apply [post]
func (ctrl *CareersController) Apply(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// fields are only mapped here; the service validates after the job lookup
	var req dto.JobApplicationRequest
	if err := mapForm(c, &req); err != nil {
		response.BadRequest(c, "Invalid form")
		return
	}

	var resume *services.ResumeFile
	if fileHeader, err := c.FormFile("resume"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			response.BadRequest(c, "Unreadable resume")
			return
		}
		defer src.Close()
		resume = &services.ResumeFile{
			Filename:    fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        src,
		}
	}

	app, err := ctrl.careers.Apply(c.Request.Context(), id, req, resume)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, dto.ApplicationResponse{ID: app.ID, Message: services.ApplicationAck(app)})
}

func (ctrl *CareersController) ListApplications(c *gin.Context) {
	page := pagination(c)
	jobID, _ := utils.ParseID(c.Query("job_id"))
	apps, total, err := ctrl.careers.ListApplications(c.Request.Context(), jobID, page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, apps, page.Page, page.Limit, int(total))
}

func (ctrl *CareersController) UpdateApplicationStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := ctrl.careers.UpdateApplicationStatus(c.Request.Context(), id, req.Status); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}
