package response

import (
	"errors"
	"net/http"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/auth"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/employee"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/resignation"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/user"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/validator"
)

// Conflict codes let callers tell the two 409 situations apart without
// parsing messages.
const (
	CodeDuplicateActiveRequest = "DUPLICATE_ACTIVE_REQUEST"
	CodeStageAlreadyDecided    = "STAGE_ALREADY_DECIDED"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrApproverAccessRequired),
		errors.Is(err, user.ErrStageNotAllowedForActor):
		Forbidden(w, err.Error())

	// Resignation domain errors
	case errors.Is(err, resignation.ErrRequestNotFound):
		NotFound(w, "Resignation request not found")
	case errors.Is(err, resignation.ErrDuplicateActiveRequest):
		Conflict(w, CodeDuplicateActiveRequest, "An active resignation request already exists for this employee")
	case errors.Is(err, resignation.ErrStageAlreadyDecided):
		Conflict(w, CodeStageAlreadyDecided, "This request was already decided")

	// Employee profile errors
	case errors.Is(err, employee.ErrProfileNotFound):
		NotFound(w, "Employee profile not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
