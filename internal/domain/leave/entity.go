package leave

import (
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// LeaveRequest is a dated span of requested leave. The category is fixed
// at submission and copied onto the generated attendance records when the
// request is approved, so payroll never has to infer it from remarks.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	Category   attendance.LeaveCategory
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     RequestStatus
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// WorkingDays counts the weekdays covered by the request, inclusive of
// both endpoints.
func (r LeaveRequest) WorkingDays() int {
	days := 0
	for d := attendance.Day(r.StartDate); !d.After(attendance.Day(r.EndDate)); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
