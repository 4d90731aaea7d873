package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the employee
	CheckIn(ctx context.Context, employeeID string) (Attendance, error)

	// CheckOut closes today's record and derives hours worked
	CheckOut(ctx context.Context, employeeID string) (Attendance, error)

	// Status reports today's check-in state; zero values when there is no record
	Status(ctx context.Context, employeeID string) (StatusResponse, error)

	// Today returns today's record or ErrAttendanceNotFound
	Today(ctx context.Context, employeeID string) (Attendance, error)

	// ByEmployee lists records in an inclusive date range, newest first
	ByEmployee(ctx context.Context, employeeID string, period Period) ([]Attendance, error)

	// Monthly lists one month of records, oldest first
	Monthly(ctx context.Context, employeeID string, year, month int) ([]Attendance, error)

	// MonthlyHours sums hours worked over one month
	MonthlyHours(ctx context.Context, employeeID string, year, month int) (MonthlyHoursResponse, error)

	// Stats aggregates presence and hours over an inclusive date range
	Stats(ctx context.Context, employeeID string, period Period) (StatsResponse, error)

	// ExportMonthly renders one month of records as an xlsx workbook
	ExportMonthly(ctx context.Context, employeeID string, year, month int) ([]byte, error)

	// List retrieves attendance records with filters (admin)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// DailyOverview counts check-ins and check-outs for one day (admin)
	DailyOverview(ctx context.Context, date time.Time) (DailyOverviewResponse, error)

	// Update corrects a record outside the check-in/check-out flow (admin)
	Update(ctx context.Context, req UpdateAttendanceRequest) (Attendance, error)

	// Delete removes a record (admin)
	Delete(ctx context.Context, id string) error
}
