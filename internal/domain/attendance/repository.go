package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create fails with ErrDuplicateAttendance if the employee already has a
	// record for newAttendance.Date.
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	// Update persists every mutable field. Moving a record onto a date the
	// employee already has fails with ErrDuplicateAttendance.
	Update(ctx context.Context, a Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error

	// ListByEmployee returns records with from <= date <= to.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time, ascending bool) ([]Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}
