package payroll

import "context"

type PayrollRepository interface {
	// CreatePayrollRecord inserts a record; the unique index on
	// (employee_id, month, year) turns raced duplicates into
	// ErrDuplicatePayrollPeriod.
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	// ReplacePayrollRecord overwrites the financial fields of an existing
	// record in place, keeping its identity and creation metadata.
	ReplacePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) (PayrollRecord, error)
	DeletePayrollRecord(ctx context.Context, id string) error
	GetPeriodSummary(ctx context.Context, month, year int) (PeriodSummaryResponse, error)
}
