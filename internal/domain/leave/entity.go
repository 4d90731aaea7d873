package leave

import (
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/workday"
)

type LeaveType int

const (
	LeaveTypeSick         LeaveType = 1
	LeaveTypeVacation     LeaveType = 2
	LeaveTypeWorkFromHome LeaveType = 3
)

type leaveTypeInfo struct {
	name           string
	affectsBalance bool
}

// leaveTypes is the single registry of leave types. A type that affects the
// balance is deducted on approval and restored on cancellation.
var leaveTypes = map[LeaveType]leaveTypeInfo{
	LeaveTypeSick:         {name: "sick", affectsBalance: true},
	LeaveTypeVacation:     {name: "vacation", affectsBalance: true},
	LeaveTypeWorkFromHome: {name: "work_from_home", affectsBalance: false},
}

func (t LeaveType) IsValid() bool {
	_, ok := leaveTypes[t]
	return ok
}

func (t LeaveType) AffectsBalance() bool {
	return leaveTypes[t].affectsBalance
}

func (t LeaveType) String() string {
	if info, ok := leaveTypes[t]; ok {
		return info.name
	}
	return "unknown"
}

// LeaveTypes returns every registered leave type in ascending order.
func LeaveTypes() []LeaveType {
	types := make([]LeaveType, 0, len(leaveTypes))
	for t := range leaveTypes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

type LeaveStatus int

const (
	LeaveStatusPending   LeaveStatus = 1
	LeaveStatusApproved  LeaveStatus = 2
	LeaveStatusRejected  LeaveStatus = 3
	LeaveStatusCancelled LeaveStatus = 4
)

func (s LeaveStatus) IsValid() bool {
	return s >= LeaveStatusPending && s <= LeaveStatusCancelled
}

func (s LeaveStatus) String() string {
	switch s {
	case LeaveStatusPending:
		return "pending"
	case LeaveStatusApproved:
		return "approved"
	case LeaveStatusRejected:
		return "rejected"
	case LeaveStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseLeaveStatus accepts either the numeric wire value or the status name.
func ParseLeaveStatus(s string) (LeaveStatus, bool) {
	for st := LeaveStatusPending; st <= LeaveStatusCancelled; st++ {
		if s == st.String() || s == strconv.Itoa(int(st)) {
			return st, true
		}
	}
	return 0, false
}

type LeaveRequest struct {
	ID          string      `json:"id"`
	EmployeeID  string      `json:"employee_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	LeaveType   LeaveType   `json:"leave_type"`
	Reason      string      `json:"reason"`
	Status      LeaveStatus `json:"status"`
	TotalDays   int         `json:"total_days"`
	ApprovedBy  *string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	RejectedAt  *time.Time  `json:"rejected_at,omitempty"`
	CancelledBy *string     `json:"cancelled_by,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Populated by list queries
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
}

// RecomputeTotalDays derives TotalDays from the current date range. It must be
// called by every operation that sets StartDate or EndDate.
func (l *LeaveRequest) RecomputeTotalDays() {
	l.TotalDays = workday.Count(l.StartDate, l.EndDate)
}

// Overlaps reports whether the request's date range intersects [from, to].
// A nil bound is open.
func (l LeaveRequest) Overlaps(from, to *time.Time) bool {
	if from != nil && l.EndDate.Before(*from) {
		return false
	}
	if to != nil && l.StartDate.After(*to) {
		return false
	}
	return true
}

// TypeStatusTotal is one cell of the leave summary aggregation: the number of
// requests and the working days they cover for a leave type and status.
type TypeStatusTotal struct {
	LeaveType LeaveType
	Status    LeaveStatus
	Requests  int64
	Days      int64
}

type TypeSummary struct {
	Requested int64 `json:"requested"`
	Approved  int64 `json:"approved"`
}

// LeaveSummary totals are working days, not request counts.
type LeaveSummary struct {
	Year           int                    `json:"year,omitempty"`
	TotalRequested int64                  `json:"total_requested"`
	TotalApproved  int64                  `json:"total_approved"`
	TotalRejected  int64                  `json:"total_rejected"`
	TotalPending   int64                  `json:"total_pending"`
	TotalCancelled int64                  `json:"total_cancelled"`
	RequestCount   int64                  `json:"request_count"`
	ByType         map[string]TypeSummary `json:"by_type"`
}

// NewLeaveSummary folds per type and status totals into a summary. Every
// registered leave type appears in ByType, zeroed if it has no requests.
func NewLeaveSummary(totals []TypeStatusTotal) LeaveSummary {
	summary := LeaveSummary{ByType: make(map[string]TypeSummary, len(leaveTypes))}
	for _, t := range LeaveTypes() {
		summary.ByType[t.String()] = TypeSummary{}
	}

	for _, c := range totals {
		summary.RequestCount += c.Requests
		summary.TotalRequested += c.Days
		switch c.Status {
		case LeaveStatusApproved:
			summary.TotalApproved += c.Days
		case LeaveStatusRejected:
			summary.TotalRejected += c.Days
		case LeaveStatusPending:
			summary.TotalPending += c.Days
		case LeaveStatusCancelled:
			summary.TotalCancelled += c.Days
		}

		ts := summary.ByType[c.LeaveType.String()]
		ts.Requested += c.Days
		if c.Status == LeaveStatusApproved {
			ts.Approved += c.Days
		}
		summary.ByType[c.LeaveType.String()] = ts
	}

	return summary
}
