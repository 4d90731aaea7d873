package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrLeaveNotCancellable          = errors.New("only approved leave requests can be cancelled")
	ErrLeaveAlreadyStarted          = errors.New("leave that has already started cannot be cancelled")
	ErrLeaveNotEditable             = errors.New("only pending leave requests can be edited")
	ErrLeaveAccessDenied            = errors.New("not allowed to access this leave request")

	ErrStartDateInPast  = errors.New("start date cannot be in the past")
	ErrInvalidDateRange = errors.New("end date must be on or after start date")
)
