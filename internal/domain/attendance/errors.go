package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrDuplicateAttendance   = errors.New("attendance record already exists for this employee and date")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")
	ErrCheckOutWithoutIn     = errors.New("check-out time requires a check-in time")
	ErrInvalidPeriod         = errors.New("end date must be on or after start date")
)
