package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if newEmployee.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
		}
		newEmployee.ID = id.String()
	}
	if newEmployee.LeaveBalance < 0 {
		return employee.Employee{}, employee.ErrInvalidBalance
	}

	err := r.store.with(ctx, func(d *dataset) error {
		if _, exists := d.employees[newEmployee.ID]; exists {
			return fmt.Errorf("employee with id %s already exists", newEmployee.ID)
		}
		for _, e := range d.employees {
			if strings.EqualFold(e.Email, newEmployee.Email) {
				return employee.ErrEmailExists
			}
		}

		now := r.store.now()
		newEmployee.CreatedAt = now
		newEmployee.UpdatedAt = now
		d.employees[newEmployee.ID] = newEmployee
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var found employee.Employee
	err := r.store.with(ctx, func(d *dataset) error {
		e, ok := d.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		found = e
		return nil
	})
	return found, err
}

// GetByIDForUpdate implements employee.EmployeeRepository. The store lock held
// by the surrounding transaction already excludes other writers.
func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return r.GetByID(ctx, id)
}

// UpdateLeaveBalance implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateLeaveBalance(ctx context.Context, id string, balance int) error {
	if balance < 0 {
		return employee.ErrInvalidBalance
	}

	return r.store.with(ctx, func(d *dataset) error {
		e, ok := d.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e.LeaveBalance = balance
		e.UpdatedAt = r.store.now()
		d.employees[id] = e
		return nil
	})
}
