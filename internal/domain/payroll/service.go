package payroll

import "context"

// PayrollService exposes payslip generation and payroll record management
type PayrollService interface {
	// GeneratePayslip computes and persists the payslip for one employee
	// and period (HR/Admin only)
	GeneratePayslip(ctx context.Context, req GeneratePayslipRequest) (PayrollRecordResponse, error)

	// GenerateForAllActive runs payslip generation for every active
	// employee with a salary configuration, skipping existing periods
	GenerateForAllActive(ctx context.Context, req GenerateBulkRequest) ([]PayrollRecordResponse, error)

	// PreviewAttendanceSummary aggregates a month's attendance without
	// persisting anything
	PreviewAttendanceSummary(ctx context.Context, employeeID string, month, year int) (AttendanceSummary, error)

	GetRecord(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListRecords(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	UpdateRecord(ctx context.Context, req UpdatePayrollRecordRequest) (PayrollRecordResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (PayrollRecordResponse, error)
	DeleteRecord(ctx context.Context, id string) error
	GetPeriodSummary(ctx context.Context, month, year int) (PeriodSummaryResponse, error)
}
