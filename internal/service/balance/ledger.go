package balance

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
)

// Ledger implements employee.BalanceLedger. Every mutation runs inside a
// transaction that locks the employee row before reading the balance, so
// concurrent read-check-write sequences on one employee serialize. When ctx
// already carries a transaction the ledger joins it and the caller decides
// whether the change commits.
type Ledger struct {
	tx database.Transactor
	employee.EmployeeRepository
	// restoreCap bounds Restore; zero means unbounded.
	restoreCap int
}

type Option func(*Ledger)

// WithRestoreCap clamps the balance produced by Restore to limit. A limit of zero
// or less leaves Restore unbounded.
func WithRestoreCap(limit int) Option {
	return func(l *Ledger) {
		if limit > 0 {
			l.restoreCap = limit
		}
	}
}

func NewLedger(tx database.Transactor, employeeRepository employee.EmployeeRepository, opts ...Option) *Ledger {
	l := &Ledger{
		tx:                 tx,
		EmployeeRepository: employeeRepository,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ employee.BalanceLedger = (*Ledger)(nil)

// Balance implements employee.BalanceLedger.
func (l *Ledger) Balance(ctx context.Context, employeeID string) (int, error) {
	emp, err := l.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return emp.LeaveBalance, nil
}

// Deduct implements employee.BalanceLedger.
func (l *Ledger) Deduct(ctx context.Context, employeeID string, days int) (int, error) {
	if days < 0 {
		return 0, employee.ErrInvalidDays
	}
	return l.mutate(ctx, employeeID, func(current int) (int, error) {
		if current-days < 0 {
			return 0, employee.ErrInsufficientBalance
		}
		return current - days, nil
	})
}

// Restore implements employee.BalanceLedger.
func (l *Ledger) Restore(ctx context.Context, employeeID string, days int) (int, error) {
	if days < 0 {
		return 0, employee.ErrInvalidDays
	}
	return l.mutate(ctx, employeeID, func(current int) (int, error) {
		next := current + days
		if l.restoreCap > 0 && next > l.restoreCap {
			next = max(l.restoreCap, current)
		}
		return next, nil
	})
}

// SetBalance implements employee.BalanceLedger.
func (l *Ledger) SetBalance(ctx context.Context, employeeID string, newBalance int) (int, error) {
	if newBalance < 0 {
		return 0, employee.ErrInvalidBalance
	}
	return l.mutate(ctx, employeeID, func(int) (int, error) {
		return newBalance, nil
	})
}

func (l *Ledger) mutate(ctx context.Context, employeeID string, next func(current int) (int, error)) (int, error) {
	var balance int
	err := l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := l.EmployeeRepository.GetByIDForUpdate(ctx, employeeID)
		if err != nil {
			return err
		}

		balance, err = next(emp.LeaveBalance)
		if err != nil {
			return err
		}

		if err := l.EmployeeRepository.UpdateLeaveBalance(ctx, employeeID, balance); err != nil {
			return fmt.Errorf("failed to persist leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}
