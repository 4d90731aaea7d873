package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/export"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/workday"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository

	now      func() time.Time
	location *time.Location
}

type Option func(*AttendanceServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *AttendanceServiceImpl) { a.now = now }
}

// WithLocation sets the time zone whose calendar days records belong to.
func WithLocation(loc *time.Location) Option {
	return func(a *AttendanceServiceImpl) {
		if loc != nil {
			a.location = loc
		}
	}
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	opts ...Option,
) attendance.AttendanceService {
	a := &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		now:                  time.Now,
		location:             time.UTC,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AttendanceServiceImpl) today() time.Time {
	return workday.Date(a.now(), a.location)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	var result attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Serializes check-in and check-out of one employee
		emp, err := a.EmployeeRepository.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}
		if !emp.Active {
			return employee.ErrEmployeeInactive
		}

		nowUTC := a.now().UTC()
		today := workday.Date(nowUTC, a.location)

		existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		switch {
		case err == nil:
			if existing.CheckInTime != nil {
				return attendance.ErrAlreadyCheckedIn
			}
			existing.CheckInTime = &nowUTC
			existing.Recompute()
			result, err = a.AttendanceRepository.Update(ctx, existing)
			if err != nil {
				return fmt.Errorf("failed to update attendance record: %w", err)
			}
			return nil

		case errors.Is(err, attendance.ErrAttendanceNotFound):
			record := attendance.Attendance{
				EmployeeID:  employeeID,
				Date:        today,
				CheckInTime: &nowUTC,
			}
			record.Recompute()
			result, err = a.AttendanceRepository.Create(ctx, record)
			if errors.Is(err, attendance.ErrDuplicateAttendance) {
				return attendance.ErrAlreadyCheckedIn
			}
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return result, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	var result attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByIDForUpdate(ctx, employeeID); err != nil {
			return err
		}

		nowUTC := a.now().UTC()
		today := workday.Date(nowUTC, a.location)

		record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrNotCheckedIn
			}
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if record.CheckInTime == nil {
			return attendance.ErrNotCheckedIn
		}
		if record.CheckOutTime != nil {
			return attendance.ErrAlreadyCheckedOut
		}

		record.CheckOutTime = &nowUTC
		record.Recompute()

		result, err = a.AttendanceRepository.Update(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return result, nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	record, err := a.Today(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.StatusResponse{}, nil
		}
		return attendance.StatusResponse{}, err
	}

	return attendance.StatusResponse{
		IsCheckedIn:  record.IsCheckedIn(),
		CanCheckOut:  record.CanCheckOut(),
		CheckInTime:  timePtrToString(record.CheckInTime),
		CheckOutTime: timePtrToString(record.CheckOutTime),
		HoursWorked:  record.HoursWorked,
	}, nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, a.today())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return record, nil
}

// resolvePeriod fills missing bounds: the end defaults to today and the start
// to the first day of the end's month.
func (a *AttendanceServiceImpl) resolvePeriod(period attendance.Period) (attendance.Period, error) {
	if period.To.IsZero() {
		period.To = a.today()
	}
	if period.From.IsZero() {
		period.From, _ = workday.MonthRange(period.To.Year(), period.To.Month())
	}
	if period.To.Before(period.From) {
		return attendance.Period{}, attendance.ErrInvalidPeriod
	}
	return period, nil
}

// ByEmployee implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ByEmployee(ctx context.Context, employeeID string, period attendance.Period) ([]attendance.Attendance, error) {
	period, err := a.resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, period.From, period.To, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// Monthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Monthly(ctx context.Context, employeeID string, year, month int) ([]attendance.Attendance, error) {
	if !validator.IsValidMonth(year, month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "year and month must name a valid calendar month"}}
	}

	first, last := workday.MonthRange(year, time.Month(month))
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, first, last, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	return records, nil
}

// MonthlyHours implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyHours(ctx context.Context, employeeID string, year, month int) (attendance.MonthlyHoursResponse, error) {
	records, err := a.Monthly(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthlyHoursResponse{}, err
	}

	return attendance.MonthlyHoursResponse{
		EmployeeID:   employeeID,
		Year:         year,
		Month:        month,
		TotalHours:   sumHours(records).InexactFloat64(),
		DaysRecorded: len(records),
	}, nil
}

func sumHours(records []attendance.Attendance) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.HoursWorked))
	}
	return total.Round(2)
}

// Stats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Stats(ctx context.Context, employeeID string, period attendance.Period) (attendance.StatsResponse, error) {
	period, err := a.resolvePeriod(period)
	if err != nil {
		return attendance.StatsResponse{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, period.From, period.To, true)
	if err != nil {
		return attendance.StatsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	stats := attendance.StatsResponse{
		EmployeeID:  employeeID,
		StartDate:   period.From.Format(validator.DateLayout),
		EndDate:     period.To.Format(validator.DateLayout),
		WorkingDays: workday.Count(period.From, period.To),
	}
	for _, r := range records {
		if r.CheckInTime != nil {
			stats.DaysPresent++
		}
		if r.CheckInTime != nil && r.CheckOutTime != nil {
			stats.DaysWithFullCheckInOut++
		}
	}

	total := sumHours(records)
	stats.TotalHoursWorked = total.InexactFloat64()
	if stats.DaysPresent > 0 {
		stats.AverageHoursPerDay = total.Div(decimal.NewFromInt(int64(stats.DaysPresent))).Round(2).InexactFloat64()
	}

	return stats, nil
}

// ExportMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMonthly(ctx context.Context, employeeID string, year, month int) ([]byte, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := a.Monthly(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   fmt.Sprintf("Attendance %s %04d-%02d", emp.FullName, year, month),
		Headers: []string{"Date", "Check in", "Check out", "Hours worked", "Status"},
		Footer: []string{
			fmt.Sprintf("Days recorded: %d", len(records)),
			fmt.Sprintf("Total hours: %s", sumHours(records).StringFixed(2)),
		},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.Date.Format(validator.DateLayout),
			a.clockTime(r.CheckInTime),
			a.clockTime(r.CheckOutTime),
			decimal.NewFromFloat(r.HoursWorked).StringFixed(2),
			r.Status.String(),
		})
	}

	return export.XLSX(table)
}

func (a *AttendanceServiceImpl) clockTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(a.location).Format("15:04")
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, total, nil
}

// DailyOverview implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DailyOverview(ctx context.Context, date time.Time) (attendance.DailyOverviewResponse, error) {
	if date.IsZero() {
		date = a.today()
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return attendance.DailyOverviewResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	overview := attendance.DailyOverviewResponse{
		Date:         date.Format(validator.DateLayout),
		TotalRecords: len(records),
		TotalHours:   sumHours(records).InexactFloat64(),
	}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusCheckedIn:
			overview.CheckedIn++
		case attendance.StatusCheckedOut:
			overview.CheckedOut++
		}
	}

	return overview, nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	var result attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Date != nil {
			d, _ := validator.IsValidDate(*req.Date)
			record.Date = d
		}
		if req.CheckInTime != nil {
			t, _ := validator.IsValidDateTime(*req.CheckInTime)
			t = t.UTC()
			record.CheckInTime = &t
		}
		if req.CheckOutTime != nil {
			t, _ := validator.IsValidDateTime(*req.CheckOutTime)
			t = t.UTC()
			record.CheckOutTime = &t
		}

		if record.CheckOutTime != nil {
			if record.CheckInTime == nil {
				return attendance.ErrCheckOutWithoutIn
			}
			if record.CheckOutTime.Before(*record.CheckInTime) {
				return attendance.ErrCheckOutBeforeCheckIn
			}
		}
		record.Recompute()

		result, err = a.AttendanceRepository.Update(ctx, record)
		return err
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	return result, nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.AttendanceRepository.Delete(ctx, id)
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}
