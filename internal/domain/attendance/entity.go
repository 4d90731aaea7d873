package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status int

const (
	// StatusNotCheckedIn marks a record that carries no check-in time.
	StatusNotCheckedIn Status = 0
	StatusCheckedIn    Status = 1
	StatusCheckedOut   Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusNotCheckedIn:
		return "not_checked_in"
	case StatusCheckedIn:
		return "checked_in"
	case StatusCheckedOut:
		return "checked_out"
	default:
		return "unknown"
	}
}

// Attendance is the single record of an employee for one calendar day.
// Date is midnight UTC of that day.
type Attendance struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Date         time.Time  `json:"date"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	HoursWorked  float64    `json:"hours_worked"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HoursBetween returns the hours from checkIn to checkOut rounded to two
// decimals, or zero when either is missing or checkOut precedes checkIn.
func HoursBetween(checkIn, checkOut *time.Time) decimal.Decimal {
	if checkIn == nil || checkOut == nil || checkOut.Before(*checkIn) {
		return decimal.Zero
	}
	d := checkOut.Sub(*checkIn)
	return decimal.NewFromInt(int64(d)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)
}

// Recompute derives HoursWorked and Status from the check-in and check-out
// times. It must be called by every operation that changes either time.
func (a *Attendance) Recompute() {
	a.HoursWorked = HoursBetween(a.CheckInTime, a.CheckOutTime).InexactFloat64()
	switch {
	case a.CheckInTime == nil:
		a.Status = StatusNotCheckedIn
	case a.CheckOutTime != nil:
		a.Status = StatusCheckedOut
	default:
		a.Status = StatusCheckedIn
	}
}

func (a Attendance) IsCheckedIn() bool {
	return a.CheckInTime != nil
}

func (a Attendance) CanCheckOut() bool {
	return a.CheckInTime != nil && a.CheckOutTime == nil
}
