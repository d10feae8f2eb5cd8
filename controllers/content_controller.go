package controllers

import (
	"abchotels/dto"
	"abchotels/response"
	"abchotels/services"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	content *services.ContentService
}

func NewContentController(content *services.ContentService) *ContentController {
	return &ContentController{content: content}
}

// ListFAQs godoc
// @Summary  FAQs grouped by category
// @Tags     content
// @Produce  json
// @Success  200  {object}  response.Response
// @Router   /faqs [get]
func (ctrl *ContentController) ListFAQs(c *gin.Context) {
	groups, err := ctrl.content.FAQGroups(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, groups)
}

func (ctrl *ContentController) GetContactPage(c *gin.Context) {
	faqs, err := ctrl.content.ContactPage(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"faqs": faqs})
}

// SubmitContact godoc
// @Summary  Send a message to the hotel
// @Tags     content
// @Accept   json
// @Produce  json
// @Param    body  body  dto.ContactRequest  true  "Message"
// @Success  201  {object}  response.Response
// @Failure  400  {object}  response.Response
// @Router   /contact [post]
func (ctrl *ContentController) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ctrl.content.SubmitContact(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, res)
}

func (ctrl *ContentController) ListContactMessages(c *gin.Context) {
	page := pagination(c)
	msgs, total, err := ctrl.content.ListContactMessages(c.Request.Context(), page)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, msgs, page.Page, page.Limit, int(total))
}
