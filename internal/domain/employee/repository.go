package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIDForUpdate reads the employee and holds a write lock on it until
	// the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	UpdateLeaveBalance(ctx context.Context, id string, balance int) error
}
