package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeInactive    = errors.New("employee is inactive")
	ErrEmailExists         = errors.New("email already registered")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInvalidBalance      = errors.New("leave balance must not be negative")
	ErrInvalidDays         = errors.New("number of days must not be negative")
)
