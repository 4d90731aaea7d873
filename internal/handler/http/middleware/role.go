package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/handler/http/response"
)

// EmployeeOnly requires the caller to act for an employee record.
func EmployeeOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !actor.IsEmployee() {
			response.HandleError(w, auth.ErrEmployeeAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
