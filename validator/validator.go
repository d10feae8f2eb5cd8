package validator

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"abchotels/constants"
	apperrors "abchotels/errors"
	"abchotels/models"

	playground "github.com/go-playground/validator/v10"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)

	validate = newValidate()
)

// newValidate reads the same `binding` tags gin validates request bodies with
func newValidate() *playground.Validate {
	v := playground.New()
	v.SetTagName("binding")
	return v
}

// ParseStay turns raw check-in/check-out strings into a stay, checking in order:
// date format, check-in not before today, check-out after check-in, at least one night.
func ParseStay(checkIn, checkOut string, today time.Time) (models.DateRange, error) {
	in, err := time.Parse(models.DateLayout, strings.TrimSpace(checkIn))
	if err != nil {
		return models.DateRange{}, apperrors.NewAppError(apperrors.ErrCodeInvalidDateFormat, "Please enter valid dates (YYYY-MM-DD)", err)
	}
	out, err := time.Parse(models.DateLayout, strings.TrimSpace(checkOut))
	if err != nil {
		return models.DateRange{}, apperrors.NewAppError(apperrors.ErrCodeInvalidDateFormat, "Please enter valid dates (YYYY-MM-DD)", err)
	}

	stay := models.NewDateRange(in, out)
	if stay.CheckIn.Before(models.DateOf(today)) {
		return models.DateRange{}, apperrors.NewAppError(apperrors.ErrCodeCheckInInPast, "Check-in date cannot be in the past", nil)
	}
	if !stay.CheckOut.After(stay.CheckIn) {
		return models.DateRange{}, apperrors.NewAppError(apperrors.ErrCodeCheckOutBeforeCheckIn, "Check-out date must be after check-in date", nil)
	}
	if stay.Nights() < 1 {
		return models.DateRange{}, apperrors.NewAppError(apperrors.ErrCodeMinimumStay, "Minimum stay is 1 night", nil)
	}
	return stay, nil
}

// ParseOptionalStay is the lenient variant used by listings: any problem yields nil
func ParseOptionalStay(checkIn, checkOut string) *models.DateRange {
	if checkIn == "" || checkOut == "" {
		return nil
	}
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return nil
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return nil
	}
	stay := models.NewDateRange(in, out)
	if stay.Nights() < 1 {
		return nil
	}
	return &stay
}

// ValidateBookingStatus checks a staff-supplied booking status
func ValidateBookingStatus(status string) (models.BookingStatus, error) {
	s := models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !s.Valid() {
		return "", apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, fmt.Sprintf("Unknown booking status %q", status), nil)
	}
	return s, nil
}

// ValidateApplicationStatus checks a staff-supplied job application status
func ValidateApplicationStatus(status string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(status))
	for _, known := range constants.ApplicationStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", apperrors.NewAppError(apperrors.ErrCodeInvalidStatus, fmt.Sprintf("Unknown application status %q", status), nil)
}

// ValidateResume checks the uploaded resume's extension and size
func ValidateResume(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, e := range constants.ResumeExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFile, "Please upload a PDF, DOC, or DOCX file", nil)
	}
	if size > constants.MaxResumeSize {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFile, "Resume file size must be less than 5MB", nil)
	}
	return nil
}

// ValidateEmail checks an email address
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidEmail, "Invalid email address", nil)
	}
	return nil
}

// ValidatePhone checks a phone number
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidPhone, "Invalid phone number", nil)
	}
	return nil
}

// ValidatePassword enforces the staff password policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Password must be at least 8 characters", nil)
	}
	return nil
}

// Struct validates v by its `binding` tags and converts failures into a VALIDATION_ERROR
func Struct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		if fields := FieldErrors(err); fields != nil {
			return apperrors.NewValidationError("Please correct the highlighted fields", fields)
		}
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Invalid input", err)
	}
	return nil
}

// FieldErrors flattens validator errors into field -> message.
// It returns nil when err did not come from the validator.
func FieldErrors(err error) map[string]string {
	var ves playground.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[lowerFirst(fe.Field())] = messageFor(fe)
	}
	return fields
}

func messageFor(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "min":
		return "Must be at least " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "gt", "gte":
		return "Must be greater than " + fe.Param()
	case "url":
		return "Must be a valid URL"
	case "datetime":
		return "Must be a date in YYYY-MM-DD format"
	default:
		return "Is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
