package leave

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/repository/memory"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/service/balance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var admin = auth.Actor{UserID: "admin-user", IsAdmin: true}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type leaveFixture struct {
	svc    leave.LeaveService
	ledger *balance.Ledger
	emps   employee.EmployeeRepository
	clock  *testClock
}

// Wednesday 2024-01-03 10:00 UTC; the following Monday is 2024-01-08.
func newLeaveFixture(t *testing.T, opts ...Option) *leaveFixture {
	t.Helper()
	store := memory.NewStore()
	emps := memory.NewEmployeeRepository(store)
	ledger := balance.NewLedger(store, emps)
	clock := &testClock{t: time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)}

	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc := NewLeaveService(store, memory.NewLeaveRequestRepository(store), emps, ledger, opts...)

	return &leaveFixture{svc: svc, ledger: ledger, emps: emps, clock: clock}
}

func (f *leaveFixture) employee(t *testing.T, email string, balance int) (employee.Employee, auth.Actor) {
	t.Helper()
	dept := "engineering"
	emp, err := f.emps.Create(context.Background(), employee.Employee{
		FullName:     "Employee " + email,
		Email:        email,
		Department:   &dept,
		LeaveBalance: balance,
		Active:       true,
	})
	require.NoError(t, err)
	return emp, auth.Actor{UserID: "user-" + emp.ID, EmployeeID: emp.ID}
}

func (f *leaveFixture) balance(t *testing.T, employeeID string) int {
	t.Helper()
	b, err := f.ledger.Balance(context.Background(), employeeID)
	require.NoError(t, err)
	return b
}

func createReq(employeeID, start, end string, leaveType leave.LeaveType) leave.CreateLeaveRequest {
	lt := int(leaveType)
	return leave.CreateLeaveRequest{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  &lt,
		Reason:     "family trip",
	}
}

func (f *leaveFixture) create(t *testing.T, employeeID string, leaveType leave.LeaveType) leave.LeaveRequest {
	t.Helper()
	created, err := f.svc.Create(context.Background(), createReq(employeeID, "2024-01-08", "2024-01-12", leaveType))
	require.NoError(t, err)
	return created
}

// ===== CREATE =====

func TestLeaveService_Create_Success(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, emp.ID, created.EmployeeID)
	assert.Equal(t, 5, created.TotalDays)
	assert.Equal(t, leave.LeaveStatusPending, created.Status)
	assert.Nil(t, created.ApprovedBy)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

func TestLeaveService_Create_TotalDaysSkipsWeekend(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	// Friday to Monday
	created, err := f.svc.Create(context.Background(), createReq(emp.ID, "2024-01-05", "2024-01-08", leave.LeaveTypeSick))
	require.NoError(t, err)
	assert.Equal(t, 2, created.TotalDays)
}

func TestLeaveService_Create_StartingToday(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	created, err := f.svc.Create(context.Background(), createReq(emp.ID, "2024-01-03", "2024-01-03", leave.LeaveTypeSick))
	require.NoError(t, err)
	assert.Equal(t, 1, created.TotalDays)
}

func TestLeaveService_Create_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 3)

	_, err := f.svc.Create(ctx, createReq(emp.ID, "2024-01-08", "2024-01-12", leave.LeaveTypeVacation))
	assert.ErrorIs(t, err, employee.ErrInsufficientBalance)

	assert.Equal(t, 3, f.balance(t, emp.ID))
	requests, total, err := f.svc.List(ctx, leave.LeaveFilter{EmployeeID: &emp.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, requests)
}

func TestLeaveService_Create_WorkFromHomeIgnoresBalance(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 0)

	created := f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)
	assert.Equal(t, 5, created.TotalDays)
	assert.Equal(t, leave.LeaveStatusPending, created.Status)
}

func TestLeaveService_Create_StartInPast(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	_, err := f.svc.Create(context.Background(), createReq(emp.ID, "2024-01-02", "2024-01-04", leave.LeaveTypeSick))
	assert.ErrorIs(t, err, leave.ErrStartDateInPast)
}

func TestLeaveService_Create_EndBeforeStart(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	_, err := f.svc.Create(context.Background(), createReq(emp.ID, "2024-01-10", "2024-01-08", leave.LeaveTypeSick))
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Create_WeekendOnly(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 0)

	created, err := f.svc.Create(context.Background(), createReq(emp.ID, "2024-01-06", "2024-01-07", leave.LeaveTypeVacation))
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusPending, created.Status)
	assert.Equal(t, 0, created.TotalDays)

	approved, err := f.svc.Approve(context.Background(), created.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	assert.Equal(t, 0, f.balance(t, emp.ID))
}

func TestLeaveService_Create_MissingFields(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	_, err := f.svc.Create(context.Background(), leave.CreateLeaveRequest{EmployeeID: emp.ID, StartDate: "2024-01-08"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "end_date")
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "reason")
}

func TestLeaveService_Create_InactiveEmployee(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, err := f.emps.Create(ctx, employee.Employee{FullName: "Gone", Email: "gone@example.com", LeaveBalance: 20})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, createReq(emp.ID, "2024-01-08", "2024-01-12", leave.LeaveTypeSick))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestLeaveService_Create_UnknownEmployee(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.Create(context.Background(), createReq("missing", "2024-01-08", "2024-01-12", leave.LeaveTypeSick))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== APPROVE / REJECT =====

func TestLeaveService_Approve_DeductsBalance(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeSick)

	approved, err := f.svc.Approve(context.Background(), created.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.UserID, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.True(t, approved.ApprovedAt.Equal(f.clock.Now()))
	assert.Equal(t, 15, f.balance(t, emp.ID))
}

func TestLeaveService_Approve_WorkFromHomeKeepsBalance(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)

	approved, err := f.svc.Approve(context.Background(), created.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

func TestLeaveService_Approve_Twice(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID, admin)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	_, err = f.svc.Reject(ctx, created.ID, admin)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	assert.Equal(t, 15, f.balance(t, emp.ID))
}

func TestLeaveService_Approve_RequiresAdmin(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(context.Background(), created.ID, actor)
	assert.ErrorIs(t, err, auth.ErrAdminPrivilegeRequired)
}

func TestLeaveService_Approve_NotFound(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.Approve(context.Background(), "missing", admin)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveService_Approve_BalanceSpentMeanwhile(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 5)
	first := f.create(t, emp.ID, leave.LeaveTypeVacation)
	second := f.create(t, emp.ID, leave.LeaveTypeSick)

	_, err := f.svc.Approve(ctx, first.ID, admin)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, second.ID, admin)
	assert.ErrorIs(t, err, employee.ErrInsufficientBalance)

	unchanged, err := f.svc.GetByID(ctx, second.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusPending, unchanged.Status)
	assert.Nil(t, unchanged.ApprovedBy)
	assert.Equal(t, 0, f.balance(t, emp.ID))
}

func TestLeaveService_Approve_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	var g errgroup.Group
	errs := make([]error, 2)
	for i := range errs {
		i := i
		g.Go(func() error {
			_, errs[i] = f.svc.Approve(ctx, created.ID, admin)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var approved int
	for _, err := range errs {
		if err == nil {
			approved++
			continue
		}
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	}
	assert.Equal(t, 1, approved)
	assert.Equal(t, 15, f.balance(t, emp.ID))
}

func TestLeaveService_Reject_NoBalanceEffect(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	rejected, err := f.svc.Reject(context.Background(), created.ID, admin)
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveStatusRejected, rejected.Status)
	require.NotNil(t, rejected.ApprovedBy)
	assert.Equal(t, admin.UserID, *rejected.ApprovedBy)
	assert.NotNil(t, rejected.RejectedAt)
	assert.Nil(t, rejected.ApprovedAt)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

// ===== CANCEL =====

func TestLeaveService_Cancel_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)

	created := f.create(t, emp.ID, leave.LeaveTypeVacation)
	assert.Equal(t, 5, created.TotalDays)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, 15, f.balance(t, emp.ID))

	cancelled, err := f.svc.Cancel(ctx, created.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, actor.UserID, *cancelled.CancelledBy)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 20, f.balance(t, emp.ID))

	// Cancelled is terminal
	_, err = f.svc.Approve(ctx, created.ID, admin)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	_, err = f.svc.Cancel(ctx, created.ID, actor)
	assert.ErrorIs(t, err, leave.ErrLeaveNotCancellable)
}

func TestLeaveService_Cancel_RevertsToPending(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t, WithCancelRevertsToPending(true))
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	reverted, err := f.svc.Cancel(ctx, created.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusPending, reverted.Status)
	assert.Nil(t, reverted.ApprovedBy)
	assert.Nil(t, reverted.ApprovedAt)
	assert.Nil(t, reverted.CancelledAt)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

func TestLeaveService_Cancel_ByAdmin(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeSick)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, created.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusCancelled, cancelled.Status)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

func TestLeaveService_Cancel_WorkFromHome(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, 20, f.balance(t, emp.ID))
}

func TestLeaveService_Cancel_OtherEmployee(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	_, other := f.employee(t, "b@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, other)
	assert.ErrorIs(t, err, leave.ErrLeaveAccessDenied)
	assert.Equal(t, 15, f.balance(t, emp.ID))
}

func TestLeaveService_Cancel_Pending(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Cancel(context.Background(), created.ID, actor)
	assert.ErrorIs(t, err, leave.ErrLeaveNotCancellable)
}

func TestLeaveService_Cancel_AlreadyStarted(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	// Start day itself is too late
	f.clock.Set(time.Date(2024, 1, 8, 7, 0, 0, 0, time.UTC))
	_, err = f.svc.Cancel(ctx, created.ID, actor)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyStarted)
	assert.Equal(t, 15, f.balance(t, emp.ID))
}

func TestLeaveService_Cancel_UsesConfiguredTimezone(t *testing.T) {
	ctx := context.Background()
	jakarta := time.FixedZone("WIB", 7*60*60)
	f := newLeaveFixture(t, WithLocation(jakarta))
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Approve(ctx, created.ID, admin)
	require.NoError(t, err)

	// Still Sunday in UTC, already Monday in UTC+7
	f.clock.Set(time.Date(2024, 1, 7, 18, 0, 0, 0, time.UTC))
	_, err = f.svc.Cancel(ctx, created.ID, actor)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyStarted)
}

// ===== EDIT =====

func TestLeaveService_Update_RecomputesTotalDays(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	end := "2024-01-16"
	updated, err := f.svc.Update(context.Background(), leave.UpdateLeaveRequest{ID: created.ID, EndDate: &end}, actor)
	require.NoError(t, err)

	assert.Equal(t, 7, updated.TotalDays)
	assert.Equal(t, "2024-01-16", updated.EndDate.Format(validator.DateLayout))
	assert.Equal(t, leave.LeaveStatusPending, updated.Status)
}

func TestLeaveService_Update_ReasonOnly(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	reason := "moved trip"
	updated, err := f.svc.Update(context.Background(), leave.UpdateLeaveRequest{ID: created.ID, Reason: &reason}, actor)
	require.NoError(t, err)

	assert.Equal(t, reason, updated.Reason)
	assert.Equal(t, 5, updated.TotalDays)
}

func TestLeaveService_Update_ReasonOnlyAfterBalanceSpent(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 5)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	spent := 0
	_, err := f.svc.SetBalance(ctx, leave.SetBalanceRequest{EmployeeID: emp.ID, LeaveBalance: &spent})
	require.NoError(t, err)

	reason := "moved trip"
	updated, err := f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, Reason: &reason}, actor)
	require.NoError(t, err)
	assert.Equal(t, reason, updated.Reason)

	sameEnd := "2024-01-12"
	_, err = f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, EndDate: &sameEnd}, actor)
	require.NoError(t, err)

	longer := "2024-01-15"
	_, err = f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, EndDate: &longer}, actor)
	assert.ErrorIs(t, err, employee.ErrInsufficientBalance)
}

func TestLeaveService_Update_ExceedsBalance(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 5)
	created := f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)

	end := "2024-01-19"
	lt := int(leave.LeaveTypeVacation)
	_, err := f.svc.Update(context.Background(), leave.UpdateLeaveRequest{ID: created.ID, EndDate: &end, LeaveType: &lt}, actor)
	assert.ErrorIs(t, err, employee.ErrInsufficientBalance)

	unchanged, err := f.svc.GetByID(context.Background(), created.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveTypeWorkFromHome, unchanged.LeaveType)
	assert.Equal(t, 5, unchanged.TotalDays)
}

func TestLeaveService_Update_NotPending(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.Reject(ctx, created.ID, admin)
	require.NoError(t, err)

	reason := "too late"
	_, err = f.svc.Update(ctx, leave.UpdateLeaveRequest{ID: created.ID, Reason: &reason}, actor)
	assert.ErrorIs(t, err, leave.ErrLeaveNotEditable)
}

func TestLeaveService_Update_OtherEmployee(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	_, other := f.employee(t, "b@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	reason := "not mine"
	_, err := f.svc.Update(context.Background(), leave.UpdateLeaveRequest{ID: created.ID, Reason: &reason}, other)
	assert.ErrorIs(t, err, leave.ErrLeaveAccessDenied)
}

func TestLeaveService_Update_StartMovedIntoPast(t *testing.T) {
	f := newLeaveFixture(t)
	emp, actor := f.employee(t, "a@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	start := "2024-01-02"
	_, err := f.svc.Update(context.Background(), leave.UpdateLeaveRequest{ID: created.ID, StartDate: &start}, actor)
	assert.ErrorIs(t, err, leave.ErrStartDateInPast)
}

// ===== QUERIES =====

func TestLeaveService_GetByID_OtherEmployee(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	_, other := f.employee(t, "b@example.com", 20)
	created := f.create(t, emp.ID, leave.LeaveTypeVacation)

	_, err := f.svc.GetByID(context.Background(), created.ID, other)
	assert.ErrorIs(t, err, leave.ErrLeaveAccessDenied)

	got, err := f.svc.GetByID(context.Background(), created.ID, admin)
	require.NoError(t, err)
	require.NotNil(t, got.EmployeeName)
	assert.Equal(t, emp.FullName, *got.EmployeeName)
}

func TestLeaveService_ListPending_OldestFirst(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	first := f.create(t, emp.ID, leave.LeaveTypeSick)
	second := f.create(t, emp.ID, leave.LeaveTypeVacation)
	third := f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)
	_, err := f.svc.Approve(ctx, second.ID, admin)
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, third.ID, pending[1].ID)
}

func TestLeaveService_List_FiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	a, _ := f.employee(t, "a@example.com", 20)
	b, _ := f.employee(t, "b@example.com", 20)

	for i := 0; i < 3; i++ {
		f.create(t, a.ID, leave.LeaveTypeWorkFromHome)
	}
	f.create(t, b.ID, leave.LeaveTypeWorkFromHome)

	page, total, err := f.svc.List(ctx, leave.LeaveFilter{EmployeeID: &a.ID, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	none, total, err := f.svc.List(ctx, leave.LeaveFilter{StartDate: &from})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestLeaveService_Summary(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	approved := f.create(t, emp.ID, leave.LeaveTypeVacation)
	rejected := f.create(t, emp.ID, leave.LeaveTypeSick)
	f.create(t, emp.ID, leave.LeaveTypeWorkFromHome)

	_, err := f.svc.Approve(ctx, approved.ID, admin)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, rejected.ID, admin)
	require.NoError(t, err)

	year := 2024
	summary, err := f.svc.Summary(ctx, leave.LeaveFilter{Year: &year})
	require.NoError(t, err)

	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, int64(3), summary.RequestCount)
	assert.Equal(t, int64(15), summary.TotalRequested)
	assert.Equal(t, int64(5), summary.TotalApproved)
	assert.Equal(t, int64(5), summary.TotalRejected)
	assert.Equal(t, int64(5), summary.TotalPending)
	assert.Equal(t, leave.TypeSummary{Requested: 5, Approved: 5}, summary.ByType["vacation"])
	assert.Equal(t, leave.TypeSummary{Requested: 5}, summary.ByType["sick"])
	assert.Equal(t, leave.TypeSummary{Requested: 5}, summary.ByType["work_from_home"])
}

func TestLeaveService_ExportSummaryPDF(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)
	f.create(t, emp.ID, leave.LeaveTypeVacation)

	pdf, err := f.svc.ExportSummaryPDF(context.Background(), leave.LeaveFilter{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

// ===== BALANCE =====

func TestLeaveService_SetBalance(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	value := 12
	got, err := f.svc.SetBalance(ctx, leave.SetBalanceRequest{EmployeeID: emp.ID, LeaveBalance: &value})
	require.NoError(t, err)
	assert.Equal(t, 12, got.LeaveBalance)

	negative := -3
	_, err = f.svc.SetBalance(ctx, leave.SetBalanceRequest{EmployeeID: emp.ID, LeaveBalance: &negative})
	assert.ErrorIs(t, err, employee.ErrInvalidBalance)

	current, err := f.svc.GetBalance(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, current.LeaveBalance)
}

func TestLeaveService_Create_ReasonTooLong(t *testing.T) {
	f := newLeaveFixture(t, WithReasonMaxLength(10))
	emp, _ := f.employee(t, "a@example.com", 20)

	req := createReq(emp.ID, "2024-01-08", "2024-01-12", leave.LeaveTypeVacation)
	req.Reason = "a reason longer than ten characters"
	_, err := f.svc.Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "reason")
}

func TestLeaveService_Create_DefaultReasonLimit(t *testing.T) {
	f := newLeaveFixture(t)
	emp, _ := f.employee(t, "a@example.com", 20)

	req := createReq(emp.ID, "2024-01-08", "2024-01-12", leave.LeaveTypeVacation)
	req.Reason = strings.Repeat("x", leave.ReasonMaxLength)
	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	req.Reason += "x"
	_, err = f.svc.Create(context.Background(), req)
	assert.Error(t, err)
}
