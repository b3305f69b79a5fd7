package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	Update(ctx context.Context, record Attendance) (Attendance, error)
	// ListByEmployeeRange returns records for [start, end) ordered by date ascending.
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	// EmployeeIDsWithoutRecord returns active employees missing a record for the date.
	EmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error)
	BulkCreate(ctx context.Context, records []Attendance) (int, error)
}
