package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAlreadyCheckedIn    = errors.New("already checked in for this date")
	ErrAlreadyCheckedOut   = errors.New("already checked out for this date")
	ErrNotCheckedIn        = errors.New("no open check-in for this date")
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")
	ErrRecordFinalized     = errors.New("attendance record for a past date is finalized")
	ErrInvalidStatus       = errors.New("invalid attendance status")
)
