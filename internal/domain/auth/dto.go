package auth

import (
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/validator"
)

type LoginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identity) {
		errs = append(errs, validator.ValidationError{
			Field:   "identity",
			Message: "identity is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	Role        string `json:"role"`
}
