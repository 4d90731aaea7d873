package employee

import "context"

// BalanceLedger is the only writer of Employee.LeaveBalance. Each mutation
// serializes on the employee and either commits fully or leaves the balance
// as it was.
type BalanceLedger interface {
	Balance(ctx context.Context, employeeID string) (int, error)
	// Deduct fails with ErrInsufficientBalance when the balance would drop
	// below zero.
	Deduct(ctx context.Context, employeeID string, days int) (int, error)
	Restore(ctx context.Context, employeeID string, days int) (int, error)
	// SetBalance is the administrative override.
	SetBalance(ctx context.Context, employeeID string, newBalance int) (int, error)
}
