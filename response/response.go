package response

import (
	"net/http"

	apperrors "abchotels/errors"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorData is attached to failed responses that carry a machine-readable code
type ErrorData struct {
	ErrorCode apperrors.ErrorCode `json:"errorCode"`
	Fields    map[string]string   `json:"fields,omitempty"`
}

// Success returns 200 with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created returns 201 with data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

// SuccessWithPagination returns 200 with one page of data
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error returns a failure with an explicit status
func Error(c *gin.Context, status int, code apperrors.ErrorCode, message string, fields map[string]string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
		Data: ErrorData{ErrorCode: code, Fields: fields},
	})
}

// ServerError returns 500
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Something went wrong, please try again later",
	})
}

// Unauthorized returns 401
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "Authentication required", nil)
}

// Forbidden returns 403
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, apperrors.ErrCodeForbidden, "You do not have access to this resource", nil)
}

// NotFound returns 404
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	Error(c, http.StatusNotFound, apperrors.ErrCodeDBNotFound, message, nil)
}

// BadRequest returns 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeValidation, message, nil)
}

// ValidationError returns 400 with per-field messages
func ValidationError(c *gin.Context, message string, fields map[string]string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeValidation, message, fields)
}

// Conflict returns 409
func Conflict(c *gin.Context, code apperrors.ErrorCode, message string) {
	Error(c, http.StatusConflict, code, message, nil)
}

// StatusFor maps an error code to its HTTP status
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeMissingToken,
		apperrors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeDBNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRoomUnavailable, apperrors.ErrCodeDBDuplicate, apperrors.ErrCodeDBInUse:
		return http.StatusConflict
	case apperrors.ErrCodeDBError, apperrors.ErrCodeUploadFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// FromError writes err using its AppError code, or 500 for anything else
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		_ = c.Error(err)
		ServerError(c)
		return
	}

	status := StatusFor(appErr.Code)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		ServerError(c)
		return
	}
	Error(c, status, appErr.Code, appErr.Message, appErr.Fields)
}
