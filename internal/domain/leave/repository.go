package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate reads the request and holds a write lock on it until
	// the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	// Update persists every mutable field of request.
	Update(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	Totals(ctx context.Context, filter LeaveFilter) ([]TypeStatusTotal, error)
}
