package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHalfDay Status = "Half-day"
)

// LeaveCategory is set at leave-request approval time. Payroll reads it
// directly instead of classifying free-text remarks; the remark text is
// kept for display only.
type LeaveCategory string

const (
	LeaveCategoryPaid   LeaveCategory = "Paid"
	LeaveCategorySick   LeaveCategory = "Sick"
	LeaveCategoryUnpaid LeaveCategory = "Unpaid"
)

// Attendance is one employee's record for one calendar day. Date is
// normalized to UTC midnight and unique per employee.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Status        Status
	CheckIn       *time.Time
	CheckOut      *time.Time
	WorkHours     float64
	LeaveCategory *LeaveCategory
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Day returns the record's date truncated to UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), t.UTC().Day(), 0, 0, 0, 0, time.UTC)
}
