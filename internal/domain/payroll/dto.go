package payroll

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	// Regenerate replaces an existing non-Paid record for the period
	// instead of rejecting with a duplicate error.
	Regenerate bool `json:"regenerate,omitempty"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateBulkRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GenerateBulkRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePayrollRecordRequest carries admin edits. Gross and net are
// recomputed from the snapshot fields; they are never patched directly.
type UpdatePayrollRecordRequest struct {
	ID         string
	Allowances *Allowances      `json:"allowances,omitempty"`
	Deductions *Deductions      `json:"deductions,omitempty"`
	Bonuses    *decimal.Decimal `json:"bonuses,omitempty"`
}

func (r *UpdatePayrollRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Bonuses != nil && r.Bonuses.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonuses", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PaymentStatus(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be Pending, Processed or Paid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRecordResponse struct {
	ID                string            `json:"id"`
	EmployeeID        string            `json:"employee_id"`
	EmployeeName      string            `json:"employee_name,omitempty"`
	EmployeeCode      string            `json:"employee_code,omitempty"`
	Month             int               `json:"month"`
	Year              int               `json:"year"`
	BasicSalary       decimal.Decimal   `json:"basic_salary"`
	Allowances        Allowances        `json:"allowances"`
	Deductions        Deductions        `json:"deductions"`
	Bonuses           decimal.Decimal   `json:"bonuses"`
	OvertimePay       decimal.Decimal   `json:"overtime_pay"`
	LopDays           int               `json:"lop_days"`
	LopDeduction      decimal.Decimal   `json:"lop_deduction"`
	AttendanceSummary AttendanceSummary `json:"attendance_summary"`
	GrossSalary       decimal.Decimal   `json:"gross_salary"`
	NetSalary         decimal.Decimal   `json:"net_salary"`
	PaymentStatus     string            `json:"payment_status"`
	PaymentDate       *string           `json:"payment_date,omitempty"`
}

type PayrollFilter struct {
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PeriodSummaryResponse struct {
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	TotalEmployees    int             `json:"total_employees"`
	TotalBasicSalary  decimal.Decimal `json:"total_basic_salary"`
	TotalAllowances   decimal.Decimal `json:"total_allowances"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	TotalLopDeduction decimal.Decimal `json:"total_lop_deduction"`
	TotalGrossSalary  decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary    decimal.Decimal `json:"total_net_salary"`
	PendingCount      int             `json:"pending_count"`
	ProcessedCount    int             `json:"processed_count"`
	PaidCount         int             `json:"paid_count"`
}
