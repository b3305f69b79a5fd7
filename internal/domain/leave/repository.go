package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewerID string, note *string) error
	// HasOverlapping reports whether the employee has a pending or approved
	// request intersecting [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
}

// Transactor runs fn atomically. Approval spans three writes (balance,
// attendance records, request status) that must land together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
