package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrDuplicatePayrollPeriod     = errors.New("payroll record already exists for this period")
	ErrInvalidSalaryConfiguration = errors.New("salary configuration has a non-positive monthly wage")
	ErrMissingSalaryConfiguration = errors.New("employee has no salary configuration")
	ErrInvalidStatusTransition    = errors.New("payment status cannot move backward")
	ErrCannotDeletePaidRecord     = errors.New("cannot delete a paid payroll record")
	ErrPaidRecordImmutable        = errors.New("paid payroll records cannot be modified")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
)
