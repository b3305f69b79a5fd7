package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInsufficientBalance          = errors.New("insufficient leave balance")
	ErrInvalidDateRange             = errors.New("leave end date is before start date")
	ErrOverlappingLeave             = errors.New("leave request overlaps an existing request")
)
