package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
)

// ========================================
// QUERY DTOs
// ========================================

// Period is an inclusive range of calendar days. A zero bound is filled in by
// the service.
type Period struct {
	From time.Time
	To   time.Time
}

type PeriodQuery struct {
	StartDate string
	EndDate   string
}

func (q PeriodQuery) ToPeriod() (Period, error) {
	var errs validator.ValidationErrors
	var p Period

	if q.StartDate != "" {
		if d, ok := validator.IsValidDate(q.StartDate); ok {
			p.From = d
		} else {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if q.EndDate != "" {
		if d, ok := validator.IsValidDate(q.EndDate); ok {
			p.To = d
		} else {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	if err := errs.Err(); err != nil {
		return Period{}, err
	}
	return p, nil
}

type MonthQuery struct {
	Year  string
	Month string
}

// ToYearMonth parses the query; empty values default to the month of now.
func (q MonthQuery) ToYearMonth(now time.Time) (int, int, error) {
	var errs validator.ValidationErrors
	year, month := now.Year(), int(now.Month())

	if q.Year != "" {
		y, err := strconv.Atoi(q.Year)
		if err != nil {
			errs.Add("year", "year must be a number")
		}
		year = y
	}
	if q.Month != "" {
		m, err := strconv.Atoi(q.Month)
		if err != nil {
			errs.Add("month", "month must be a number")
		}
		month = m
	}
	if len(errs) == 0 && !validator.IsValidMonth(year, month) {
		errs.Add("month", "year and month must name a valid calendar month")
	}

	if err := errs.Err(); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *Status
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type ListAttendanceQuery struct {
	EmployeeID string
	Status     string
	StartDate  string
	EndDate    string
	Page       string
	Limit      string
}

func (q ListAttendanceQuery) ToFilter() (AttendanceFilter, error) {
	var errs validator.ValidationErrors
	filter := AttendanceFilter{Page: 1, Limit: DefaultPageLimit}

	if q.EmployeeID != "" {
		if validator.IsValidUUID(q.EmployeeID) {
			filter.EmployeeID = &q.EmployeeID
		} else {
			errs.Add("employee_id", "employee_id must be a valid UUID")
		}
	}

	switch q.Status {
	case "":
	case "1", StatusCheckedIn.String():
		s := StatusCheckedIn
		filter.Status = &s
	case "2", StatusCheckedOut.String():
		s := StatusCheckedOut
		filter.Status = &s
	default:
		errs.Add("status", "status must be one of checked_in, checked_out")
	}

	if q.StartDate != "" {
		if d, ok := validator.IsValidDate(q.StartDate); ok {
			filter.From = &d
		} else {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if q.EndDate != "" {
		if d, ok := validator.IsValidDate(q.EndDate); ok {
			filter.To = &d
		} else {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	if q.Page != "" {
		page, err := strconv.Atoi(q.Page)
		if err != nil || page < 1 {
			errs.Add("page", "page must be a positive integer")
		} else {
			filter.Page = page
		}
	}
	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil || limit < 1 || limit > MaxPageLimit {
			errs.Add("limit", "limit must be between 1 and "+strconv.Itoa(MaxPageLimit))
		} else {
			filter.Limit = limit
		}
	}

	if err := errs.Err(); err != nil {
		return AttendanceFilter{}, err
	}
	return filter, nil
}

// ========================================
// COMMAND DTOs
// ========================================

// UpdateAttendanceRequest is an administrative correction. Nil fields are
// left unchanged.
type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
	Date         *string `json:"date,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.CheckInTime == nil && r.CheckOutTime == nil && r.Date == nil {
		errs.Add("body", "at least one of check_in_time, check_out_time, date must be provided")
	}
	if r.CheckInTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckInTime); !ok {
			errs.Add("check_in_time", "check_in_time must be an RFC3339 timestamp")
		}
	}
	if r.CheckOutTime != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOutTime); !ok {
			errs.Add("check_out_time", "check_out_time must be an RFC3339 timestamp")
		}
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// ========================================
// RESPONSE DTOs
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	Date         string  `json:"date"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	HoursWorked  float64 `json:"hours_worked"`
	Status       int     `json:"status"`
	StatusName   string  `json:"status_name"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format(validator.DateLayout),
		CheckInTime:  timePtrToString(a.CheckInTime),
		CheckOutTime: timePtrToString(a.CheckOutTime),
		HoursWorked:  a.HoursWorked,
		Status:       int(a.Status),
		StatusName:   a.Status.String(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

type StatusResponse struct {
	IsCheckedIn  bool    `json:"is_checked_in"`
	CanCheckOut  bool    `json:"can_check_out"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	HoursWorked  float64 `json:"hours_worked"`
}

type MonthlyHoursResponse struct {
	EmployeeID   string  `json:"employee_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalHours   float64 `json:"total_hours"`
	DaysRecorded int     `json:"days_recorded"`
}

type StatsResponse struct {
	EmployeeID             string  `json:"employee_id"`
	StartDate              string  `json:"start_date"`
	EndDate                string  `json:"end_date"`
	WorkingDays            int     `json:"working_days"`
	DaysPresent            int     `json:"days_present"`
	DaysWithFullCheckInOut int     `json:"days_with_full_check_in_out"`
	TotalHoursWorked       float64 `json:"total_hours_worked"`
	AverageHoursPerDay     float64 `json:"average_hours_per_day"`
}

type DailyOverviewResponse struct {
	Date         string  `json:"date"`
	TotalRecords int     `json:"total_records"`
	CheckedIn    int     `json:"checked_in"`
	CheckedOut   int     `json:"checked_out"`
	TotalHours   float64 `json:"total_hours"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
