package employee

import "time"

// DefaultLeaveBalance is the allotment granted to a new employee.
const DefaultLeaveBalance = 20

type Employee struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Department   *string   `json:"department,omitempty"`
	LeaveBalance int       `json:"leave_balance"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
