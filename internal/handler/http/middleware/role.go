package middleware

import (
	"net/http"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/user"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func claimedRole(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireApprover admits managers, hr and admins to the review-queue routes.
// Which stage an approver may write is checked per request in the handler,
// since the stage is part of the URL.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := claimedRole(r)
		if !ok {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		if role != user.RoleManager && role != user.RoleHR && role != user.RoleAdmin {
			response.HandleError(w, user.ErrApproverAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
