package resignation

import (
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Identity    string `json:"identity"`
	FullName    string `json:"fullname"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Reason      string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	// Identity
	if validator.IsEmpty(r.Identity) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity",
			Message: "identity is required",
		})
	} else if !validator.IsValidEmail(r.Identity) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity",
			Message: "identity must be a valid email",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ActiveStatus is the status-view payload: the identity's pending request,
// if any, with its progress projection.
type ActiveStatus struct {
	Active   bool           `json:"active"`
	Request  *Request       `json:"request,omitempty"`
	Progress []ProgressStep `json:"progress,omitempty"`
}

type DecideRequest struct {
	RequestID string   `json:"request_id"`
	Stage     Stage    `json:"stage"`
	Decision  Decision `json:"decision"`
	Note      string   `json:"note"`

	// Set from verified claims, never from the request body
	DecidedBy string `json:"-"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	// Request ID
	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	// Stage
	if !r.Stage.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "stage",
			Message: "stage must be one of: manager, hr",
		})
	}

	// Decision
	if r.Decision != DecisionApproved && r.Decision != DecisionRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: approved, rejected",
		})
	}

	// Note is mandatory before a stage may leave pending
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
