package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepository{store: store}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}
	request.ID = id.String()

	err = r.store.with(ctx, func(d *dataset) error {
		if _, ok := d.employees[request.EmployeeID]; !ok {
			return fmt.Errorf("failed to create leave request: employee %s does not exist", request.EmployeeID)
		}
		now := r.store.now()
		request.CreatedAt = now
		request.UpdatedAt = now
		request.EmployeeName = nil
		request.Department = nil
		d.leaves[request.ID] = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return r.decorate(ctx, request)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	var found leave.LeaveRequest
	err := r.store.with(ctx, func(d *dataset) error {
		lr, ok := d.leaves[id]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		found = withEmployee(d, lr)
		return nil
	})
	return found, err
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.GetByID(ctx, id)
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.store.with(ctx, func(d *dataset) error {
		existing, ok := d.leaves[request.ID]
		if !ok {
			return leave.ErrLeaveRequestNotFound
		}
		request.EmployeeID = existing.EmployeeID
		request.CreatedAt = existing.CreatedAt
		request.UpdatedAt = r.store.now()
		request.EmployeeName = nil
		request.Department = nil
		d.leaves[request.ID] = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return r.decorate(ctx, request)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var matched []leave.LeaveRequest
	err := r.store.with(ctx, func(d *dataset) error {
		matched = filterLeaves(d, filter)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if filter.OldestFirst {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		// v7 ids sort by creation time
		if filter.OldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit), total, nil
}

// Totals implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Totals(ctx context.Context, filter leave.LeaveFilter) ([]leave.TypeStatusTotal, error) {
	var matched []leave.LeaveRequest
	err := r.store.with(ctx, func(d *dataset) error {
		matched = filterLeaves(d, filter)
		return nil
	})
	if err != nil {
		return nil, err
	}

	type key struct {
		t leave.LeaveType
		s leave.LeaveStatus
	}
	cells := make(map[key]*leave.TypeStatusTotal)
	var totals []leave.TypeStatusTotal
	for _, lr := range matched {
		k := key{lr.LeaveType, lr.Status}
		c, ok := cells[k]
		if !ok {
			c = &leave.TypeStatusTotal{LeaveType: lr.LeaveType, Status: lr.Status}
			cells[k] = c
		}
		c.Requests++
		c.Days += int64(lr.TotalDays)
	}
	for _, c := range cells {
		totals = append(totals, *c)
	}

	return totals, nil
}

func (r *leaveRequestRepository) decorate(ctx context.Context, lr leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.store.with(ctx, func(d *dataset) error {
		lr = withEmployee(d, lr)
		return nil
	})
	return lr, err
}

func withEmployee(d *dataset, lr leave.LeaveRequest) leave.LeaveRequest {
	if e, ok := d.employees[lr.EmployeeID]; ok {
		name := e.FullName
		lr.EmployeeName = &name
		lr.Department = e.Department
	}
	return lr
}

func filterLeaves(d *dataset, filter leave.LeaveFilter) []leave.LeaveRequest {
	matched := []leave.LeaveRequest{}
	for _, lr := range d.leaves {
		if filter.Status != nil && lr.Status != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && lr.LeaveType != *filter.LeaveType {
			continue
		}
		if filter.EmployeeID != nil && lr.EmployeeID != *filter.EmployeeID {
			continue
		}
		if !lr.Overlaps(filter.StartDate, filter.EndDate) {
			continue
		}
		if filter.Year != nil && lr.StartDate.Year() != *filter.Year {
			continue
		}

		lr = withEmployee(d, lr)
		if filter.Department != nil && (lr.Department == nil || *lr.Department != *filter.Department) {
			continue
		}
		matched = append(matched, lr)
	}
	return matched
}
