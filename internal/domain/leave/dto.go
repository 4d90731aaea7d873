package leave

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
)

// ReasonMaxLength is the default bound on LeaveRequest.Reason in characters.
const ReasonMaxLength = 500

type CreateLeaveRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LeaveType  *int   `json:"leave_type"`
	Reason     string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if r.LeaveType == nil {
		errs.Add("leave_type", "leave_type is required")
	} else if !LeaveType(*r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of 1 (sick), 2 (vacation), 3 (work from home)")
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

// UpdateLeaveRequest carries a partial edit; nil fields are left unchanged.
type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	LeaveType *int    `json:"leave_type,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.StartDate == nil && r.EndDate == nil && r.LeaveType == nil && r.Reason == nil {
		errs.Add("body", "at least one of start_date, end_date, leave_type, reason must be provided")
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if r.LeaveType != nil && !LeaveType(*r.LeaveType).IsValid() {
		errs.Add("leave_type", "leave_type must be one of 1 (sick), 2 (vacation), 3 (work from home)")
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be empty")
	}

	return errs.Err()
}

// ValidateReasonLength reports a reason longer than limit characters.
func ValidateReasonLength(reason string, limit int) error {
	if validator.ExceedsLength(reason, limit) {
		return validator.ValidationErrors{{Field: "reason", Message: "reason must not exceed " + strconv.Itoa(limit) + " characters"}}
	}
	return nil
}

type SetBalanceRequest struct {
	EmployeeID   string `json:"-"`
	LeaveBalance *int   `json:"leave_balance"`
}

func (r *SetBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if r.LeaveBalance == nil {
		errs.Add("leave_balance", "leave_balance is required")
	}

	return errs.Err()
}

type BalanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	LeaveBalance int    `json:"leave_balance"`
}

// LeaveFilter narrows list and summary queries. Nil fields do not filter.
// StartDate and EndDate select requests whose range overlaps them; Year
// selects requests starting in that year.
type LeaveFilter struct {
	Status     *LeaveStatus
	LeaveType  *LeaveType
	EmployeeID *string
	Department *string
	StartDate  *time.Time
	EndDate    *time.Time
	Year       *int

	// Pagination, ignored by summaries. Limit 0 means no limit.
	Page  int
	Limit int

	// OldestFirst orders by created_at ascending instead of descending.
	OldestFirst bool
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// ListLeaveQuery is the raw query string form of LeaveFilter.
type ListLeaveQuery struct {
	Status     string
	LeaveType  string
	EmployeeID string
	Department string
	StartDate  string
	EndDate    string
	Year       string
	Page       string
	Limit      string
}

func (q ListLeaveQuery) ToFilter() (LeaveFilter, error) {
	var errs validator.ValidationErrors
	filter := LeaveFilter{Page: 1, Limit: DefaultPageLimit}

	if q.Status != "" {
		status, ok := ParseLeaveStatus(q.Status)
		if !ok {
			errs.Add("status", "status must be one of pending, approved, rejected, cancelled")
		} else {
			filter.Status = &status
		}
	}

	if q.LeaveType != "" {
		n, err := strconv.Atoi(q.LeaveType)
		if err != nil || !LeaveType(n).IsValid() {
			errs.Add("leave_type", "leave_type must be one of 1, 2, 3")
		} else {
			lt := LeaveType(n)
			filter.LeaveType = &lt
		}
	}

	if q.EmployeeID != "" {
		if !validator.IsValidUUID(q.EmployeeID) {
			errs.Add("employee_id", "employee_id must be a valid UUID")
		} else {
			filter.EmployeeID = &q.EmployeeID
		}
	}

	if q.Department != "" {
		filter.Department = &q.Department
	}

	if q.StartDate != "" {
		if d, ok := validator.IsValidDate(q.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		} else {
			filter.StartDate = &d
		}
	}
	if q.EndDate != "" {
		if d, ok := validator.IsValidDate(q.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		} else {
			filter.EndDate = &d
		}
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		errs.Add("end_date", "end_date must be on or after start_date")
	}

	if q.Year != "" {
		year, err := strconv.Atoi(q.Year)
		if err != nil || !validator.IsValidMonth(year, 1) {
			errs.Add("year", "year must be a valid year")
		} else {
			filter.Year = &year
		}
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
		return LeaveFilter{}, err
	}
	return filter, nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	LeaveType    int     `json:"leave_type"`
	LeaveTypeKey string  `json:"leave_type_name"`
	Reason       string  `json:"reason"`
	Status       int     `json:"status"`
	StatusName   string  `json:"status_name"`
	TotalDays    int     `json:"total_days"`
	ApprovedBy   *string `json:"approved_by,omitempty"`
	ApprovedAt   *string `json:"approved_at,omitempty"`
	RejectedAt   *string `json:"rejected_at,omitempty"`
	CancelledBy  *string `json:"cancelled_by,omitempty"`
	CancelledAt  *string `json:"cancelled_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		Department:   l.Department,
		StartDate:    l.StartDate.Format(validator.DateLayout),
		EndDate:      l.EndDate.Format(validator.DateLayout),
		LeaveType:    int(l.LeaveType),
		LeaveTypeKey: l.LeaveType.String(),
		Reason:       l.Reason,
		Status:       int(l.Status),
		StatusName:   l.Status.String(),
		TotalDays:    l.TotalDays,
		ApprovedBy:   l.ApprovedBy,
		ApprovedAt:   timePtrToString(l.ApprovedAt),
		RejectedAt:   timePtrToString(l.RejectedAt),
		CancelledBy:  l.CancelledBy,
		CancelledAt:  timePtrToString(l.CancelledAt),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    l.UpdatedAt.Format(time.RFC3339),
	}
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewLeaveRequestResponse(r))
	}
	return out
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
