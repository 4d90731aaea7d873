package leave

import (
	"context"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/auth"
)

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	Approve(ctx context.Context, id string, actor auth.Actor) (LeaveRequest, error)
	Reject(ctx context.Context, id string, actor auth.Actor) (LeaveRequest, error)
	Cancel(ctx context.Context, id string, actor auth.Actor) (LeaveRequest, error)
	Update(ctx context.Context, req UpdateLeaveRequest, actor auth.Actor) (LeaveRequest, error)

	GetByID(ctx context.Context, id string, actor auth.Actor) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	ListPending(ctx context.Context) ([]LeaveRequest, error)
	Summary(ctx context.Context, filter LeaveFilter) (LeaveSummary, error)
	ExportSummaryPDF(ctx context.Context, filter LeaveFilter) ([]byte, error)

	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
	SetBalance(ctx context.Context, req SetBalanceRequest) (BalanceResponse, error)
}
