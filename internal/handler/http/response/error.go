package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Anything unrecognised is
// logged and reported as a generic internal error.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired),
		errors.Is(err, auth.ErrEmployeeAccessRequired),
		errors.Is(err, leave.ErrLeaveAccessDenied):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())

	// Date ranges
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrStartDateInPast),
		errors.Is(err, attendance.ErrInvalidPeriod),
		errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		InvalidDateRange(w, err.Error())

	// Balance
	case errors.Is(err, employee.ErrInsufficientBalance):
		InsufficientBalance(w, err.Error())
	case errors.Is(err, employee.ErrInvalidBalance),
		errors.Is(err, employee.ErrInvalidDays),
		errors.Is(err, attendance.ErrCheckOutWithoutIn):
		BadRequest(w, err.Error(), nil)

	// State conflicts
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrLeaveNotCancellable),
		errors.Is(err, leave.ErrLeaveAlreadyStarted),
		errors.Is(err, leave.ErrLeaveNotEditable),
		errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrDuplicateAttendance),
		errors.Is(err, employee.ErrEmployeeInactive),
		errors.Is(err, employee.ErrEmailExists):
		Conflict(w, err.Error())

	default:
		slog.Error("unexpected error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
