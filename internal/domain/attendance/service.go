package attendance

import (
	"context"
	"time"
)

// AttendanceService covers self-service check-in/out and the HR-side
// record management.
type AttendanceService interface {
	// CheckIn opens today's record for the employee. A second check-in on
	// the same day is rejected.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record and computes worked hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Mark creates or corrects a record for an arbitrary day (HR/Admin only)
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// GetToday returns the employee's record for the current day.
	GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// ListForEmployee returns one calendar month of records.
	ListForEmployee(ctx context.Context, employeeID string, month, year int) ([]AttendanceResponse, error)

	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// MarkAbsentees inserts Absent records for every active employee
	// without a record on the given working day. Returns how many were
	// inserted; weekends are a no-op.
	MarkAbsentees(ctx context.Context, date time.Time) (int, error)
}
