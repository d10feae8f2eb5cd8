package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden          ErrorCode = "FORBIDDEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"

	// Booking errors
	ErrCodeInvalidDateFormat     ErrorCode = "INVALID_DATE_FORMAT"
	ErrCodeCheckInInPast         ErrorCode = "CHECK_IN_IN_PAST"
	ErrCodeCheckOutBeforeCheckIn ErrorCode = "CHECK_OUT_BEFORE_CHECK_IN"
	ErrCodeMinimumStay           ErrorCode = "MINIMUM_STAY_VIOLATION"
	ErrCodeRoomUnavailable       ErrorCode = "ROOM_UNAVAILABLE"
	ErrCodeInvalidStatus         ErrorCode = "INVALID_STATUS"

	// Database errors
	ErrCodeDBError     ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound  ErrorCode = "DB_NOT_FOUND"
	ErrCodeDBDuplicate ErrorCode = "DB_DUPLICATE"
	ErrCodeDBInUse     ErrorCode = "DB_IN_USE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEmail  ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPhone  ErrorCode = "INVALID_PHONE"
	ErrCodeInvalidFile   ErrorCode = "INVALID_FILE"

	// Infrastructure errors
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
)

// AppError is the error type services hand back to controllers
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a VALIDATION_ERROR carrying per-field messages
func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Fields:  fields,
	}
}

// NotFound wraps one of the not-found sentinels
func NotFound(sentinel error) *AppError {
	return NewAppError(ErrCodeDBNotFound, sentinel.Error(), sentinel)
}

// Internal hides err behind a generic message
func Internal(err error) *AppError {
	return NewAppError(ErrCodeDBError, "something went wrong, please try again later", err)
}

// IsAppError reports whether err is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err's chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	// Catalog errors
	ErrCityNotFound     = errors.New("city not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotAvailable = errors.New("room is not available for the selected dates")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// Careers errors
	ErrJobNotFound         = errors.New("job listing not found")
	ErrApplicationNotFound = errors.New("job application not found")
	ErrDepartmentNotFound  = errors.New("department not found")

	// Content errors
	ErrFAQNotFound = errors.New("faq not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Storage errors
	ErrDuplicate = errors.New("record already exists")
	ErrInUse     = errors.New("record is still referenced by other records")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")
)
