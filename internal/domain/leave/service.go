package leave

import "context"

// LeaveService handles the request/review lifecycle. Approval debits the
// employee's leave balance and writes Leave attendance records for each
// working day of the span.
type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Review(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
}
