package leave

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/export"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/workday"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	ledger employee.BalanceLedger

	now      func() time.Time
	location *time.Location
	// cancelRevertsToPending keeps the legacy cancel behaviour: an approved
	// request goes back to pending instead of becoming cancelled.
	cancelRevertsToPending bool
	reasonMaxLength        int
}

type Option func(*LeaveServiceImpl)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *LeaveServiceImpl) { l.now = now }
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(l *LeaveServiceImpl) {
		if loc != nil {
			l.location = loc
		}
	}
}

// WithCancelRevertsToPending makes Cancel return approved requests to pending.
func WithCancelRevertsToPending(enabled bool) Option {
	return func(l *LeaveServiceImpl) { l.cancelRevertsToPending = enabled }
}

// WithReasonMaxLength overrides leave.ReasonMaxLength.
func WithReasonMaxLength(limit int) Option {
	return func(l *LeaveServiceImpl) {
		if limit > 0 {
			l.reasonMaxLength = limit
		}
	}
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	ledger employee.BalanceLedger,
	opts ...Option,
) leave.LeaveService {
	l := &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		ledger:                 ledger,
		now:                    time.Now,
		location:               time.UTC,
		reasonMaxLength:        leave.ReasonMaxLength,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *LeaveServiceImpl) today() time.Time {
	return workday.Date(l.now(), l.location)
}

// checkRange validates a request's dates and sizes it. checkStart is false
// when an edit leaves an already accepted start date untouched.
func (l *LeaveServiceImpl) checkRange(request *leave.LeaveRequest, checkStart bool) error {
	if checkStart && request.StartDate.Before(l.today()) {
		return leave.ErrStartDateInPast
	}
	if request.EndDate.Before(request.StartDate) {
		return leave.ErrInvalidDateRange
	}

	request.RecomputeTotalDays()
	return nil
}

// checkBalance verifies that a balance-bearing request fits the employee's
// remaining days. Nothing is reserved; Approve deducts.
func checkBalance(emp employee.Employee, request leave.LeaveRequest) error {
	if request.LeaveType.AffectsBalance() && emp.LeaveBalance < request.TotalDays {
		return employee.ErrInsufficientBalance
	}
	return nil
}

// Create implements leave.LeaveService.
func (l *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := leave.ValidateReasonLength(req.Reason, l.reasonMaxLength); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	request := leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		LeaveType:  leave.LeaveType(*req.LeaveType),
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
	}
	if err := l.checkRange(&request, true); err != nil {
		return leave.LeaveRequest{}, err
	}

	var created leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !emp.Active {
			return employee.ErrEmployeeInactive
		}
		if err := checkBalance(emp, request); err != nil {
			return err
		}

		created, err = l.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// transition loads the request under a row lock, lets apply change it and
// persists the result, all in one transaction.
func (l *LeaveServiceImpl) transition(ctx context.Context, id string, apply func(ctx context.Context, request *leave.LeaveRequest) error) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := apply(ctx, &request); err != nil {
			return err
		}

		updated, err = l.LeaveRequestRepository.Update(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return updated, nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string, actor auth.Actor) (leave.LeaveRequest, error) {
	if !actor.IsAdmin {
		return leave.LeaveRequest{}, auth.ErrAdminPrivilegeRequired
	}

	return l.transition(ctx, id, func(ctx context.Context, request *leave.LeaveRequest) error {
		if request.Status != leave.LeaveStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if request.LeaveType.AffectsBalance() {
			if _, err := l.ledger.Deduct(ctx, request.EmployeeID, request.TotalDays); err != nil {
				return err
			}
		}

		approvedAt := l.now().UTC()
		approvedBy := actor.UserID
		request.Status = leave.LeaveStatusApproved
		request.ApprovedBy = &approvedBy
		request.ApprovedAt = &approvedAt
		return nil
	})
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, id string, actor auth.Actor) (leave.LeaveRequest, error) {
	if !actor.IsAdmin {
		return leave.LeaveRequest{}, auth.ErrAdminPrivilegeRequired
	}

	return l.transition(ctx, id, func(_ context.Context, request *leave.LeaveRequest) error {
		if request.Status != leave.LeaveStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		rejectedAt := l.now().UTC()
		rejectedBy := actor.UserID
		request.Status = leave.LeaveStatusRejected
		request.ApprovedBy = &rejectedBy
		request.RejectedAt = &rejectedAt
		return nil
	})
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string, actor auth.Actor) (leave.LeaveRequest, error) {
	return l.transition(ctx, id, func(ctx context.Context, request *leave.LeaveRequest) error {
		if !actor.CanAccessEmployee(request.EmployeeID) {
			return leave.ErrLeaveAccessDenied
		}
		if request.Status != leave.LeaveStatusApproved {
			return leave.ErrLeaveNotCancellable
		}
		if !l.today().Before(request.StartDate) {
			return leave.ErrLeaveAlreadyStarted
		}

		if request.LeaveType.AffectsBalance() {
			if _, err := l.ledger.Restore(ctx, request.EmployeeID, request.TotalDays); err != nil {
				return err
			}
		}

		if l.cancelRevertsToPending {
			request.Status = leave.LeaveStatusPending
			request.ApprovedBy = nil
			request.ApprovedAt = nil
			return nil
		}

		cancelledAt := l.now().UTC()
		cancelledBy := actor.UserID
		request.Status = leave.LeaveStatusCancelled
		request.CancelledBy = &cancelledBy
		request.CancelledAt = &cancelledAt
		return nil
	})
}

// Update implements leave.LeaveService.
func (l *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest, actor auth.Actor) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if req.Reason != nil {
		if err := leave.ValidateReasonLength(*req.Reason, l.reasonMaxLength); err != nil {
			return leave.LeaveRequest{}, err
		}
	}

	return l.transition(ctx, req.ID, func(ctx context.Context, request *leave.LeaveRequest) error {
		if !actor.CanAccessEmployee(request.EmployeeID) {
			return leave.ErrLeaveAccessDenied
		}
		if request.Status != leave.LeaveStatusPending {
			return leave.ErrLeaveNotEditable
		}

		startChanged := false
		sizingChanged := false
		if req.StartDate != nil {
			d, _ := validator.IsValidDate(*req.StartDate)
			startChanged = !d.Equal(request.StartDate)
			sizingChanged = sizingChanged || startChanged
			request.StartDate = d
		}
		if req.EndDate != nil {
			d, _ := validator.IsValidDate(*req.EndDate)
			sizingChanged = sizingChanged || !d.Equal(request.EndDate)
			request.EndDate = d
		}
		if req.LeaveType != nil {
			lt := leave.LeaveType(*req.LeaveType)
			sizingChanged = sizingChanged || lt != request.LeaveType
			request.LeaveType = lt
		}
		if req.Reason != nil {
			request.Reason = *req.Reason
		}

		if err := l.checkRange(request, startChanged); err != nil {
			return err
		}
		// The balance was checked when the request was sized; a reason edit
		// does not resize it.
		if !sizingChanged {
			return nil
		}

		emp, err := l.EmployeeRepository.GetByID(ctx, request.EmployeeID)
		if err != nil {
			return err
		}
		return checkBalance(emp, *request)
	})
}

// GetByID implements leave.LeaveService.
func (l *LeaveServiceImpl) GetByID(ctx context.Context, id string, actor auth.Actor) (leave.LeaveRequest, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !actor.CanAccessEmployee(request.EmployeeID) {
		return leave.LeaveRequest{}, leave.ErrLeaveAccessDenied
	}
	return request, nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return requests, total, nil
}

// ListPending implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	pending := leave.LeaveStatusPending
	requests, _, err := l.LeaveRequestRepository.List(ctx, leave.LeaveFilter{
		Status:      &pending,
		OldestFirst: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return requests, nil
}

// Summary implements leave.LeaveService.
func (l *LeaveServiceImpl) Summary(ctx context.Context, filter leave.LeaveFilter) (leave.LeaveSummary, error) {
	totals, err := l.LeaveRequestRepository.Totals(ctx, filter)
	if err != nil {
		return leave.LeaveSummary{}, fmt.Errorf("failed to summarize leave requests: %w", err)
	}

	summary := leave.NewLeaveSummary(totals)
	if filter.Year != nil {
		summary.Year = *filter.Year
	}
	return summary, nil
}

// ExportSummaryPDF implements leave.LeaveService.
func (l *LeaveServiceImpl) ExportSummaryPDF(ctx context.Context, filter leave.LeaveFilter) ([]byte, error) {
	summary, err := l.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}

	title := "Leave Summary"
	if summary.Year != 0 {
		title += " " + strconv.Itoa(summary.Year)
	}

	table := export.Table{
		Title:   title,
		Headers: []string{"Leave type", "Requested days", "Approved days"},
		Footer: []string{
			fmt.Sprintf("Requests: %d", summary.RequestCount),
			fmt.Sprintf("Requested: %d days", summary.TotalRequested),
			fmt.Sprintf("Approved: %d days", summary.TotalApproved),
			fmt.Sprintf("Rejected: %d days", summary.TotalRejected),
			fmt.Sprintf("Pending: %d days", summary.TotalPending),
			fmt.Sprintf("Cancelled: %d days", summary.TotalCancelled),
			"Generated at " + l.now().In(l.location).Format(time.RFC3339),
		},
	}
	for _, t := range leave.LeaveTypes() {
		ts := summary.ByType[t.String()]
		table.Rows = append(table.Rows, []string{
			t.String(),
			strconv.FormatInt(ts.Requested, 10),
			strconv.FormatInt(ts.Approved, 10),
		})
	}

	return export.PDF(table)
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	balance, err := l.ledger.Balance(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.BalanceResponse{EmployeeID: employeeID, LeaveBalance: balance}, nil
}

// SetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) SetBalance(ctx context.Context, req leave.SetBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.ledger.SetBalance(ctx, req.EmployeeID, *req.LeaveBalance)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.BalanceResponse{EmployeeID: req.EmployeeID, LeaveBalance: balance}, nil
}
