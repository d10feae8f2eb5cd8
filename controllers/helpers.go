package controllers

import (
	"errors"
	"net/http"

	"abchotels/response"
	"abchotels/services"
	"abchotels/utils"
	"abchotels/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxFormMemory = 8 << 20

// bindJSON decodes the body into req and answers 400 with field details on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

func respondBindError(c *gin.Context, err error) {
	if fields := validator.FieldErrors(err); fields != nil {
		response.ValidationError(c, "Please correct the highlighted fields", fields)
		return
	}
	response.BadRequest(c, "Invalid request body")
}

// pathID reads :id, answering 404 when it is not a positive integer
func pathID(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, "Not found")
		return 0, false
	}
	return id, true
}

// availabilityQuery reads the optional listing filters; malformed values are ignored
func availabilityQuery(c *gin.Context) services.AvailabilityQuery {
	return services.AvailabilityQuery{
		MinCapacity: utils.OptionalInt(c.Query("capacity")),
		Stay:        validator.ParseOptionalStay(c.Query("check_in"), c.Query("check_out")),
	}
}

func pagination(c *gin.Context) utils.Pagination {
	return utils.ParsePagination(c.Query("page"), c.Query("limit"))
}

// mapForm copies url-encoded or multipart fields into req without running validation
func mapForm(c *gin.Context, req interface{}) error {
	if err := c.Request.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return binding.MapFormWithTag(req, c.Request.PostForm, "form")
}
