package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentBreakdown is the itemized derivation of a monthly wage.
// HouseRentAllowance is computed against BasicSalary, everything else
// against the wage itself; EmployerPF is informational and never
// subtracted from net pay.
type ComponentBreakdown struct {
	MonthlyWage          decimal.Decimal `json:"monthly_wage"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	HouseRentAllowance   decimal.Decimal `json:"house_rent_allowance"`
	StandardAllowance    decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus     decimal.Decimal `json:"performance_bonus"`
	LeaveTravelAllowance decimal.Decimal `json:"leave_travel_allowance"`
	FixedAllowance       decimal.Decimal `json:"fixed_allowance"`
	EmployeePF           decimal.Decimal `json:"employee_pf"`
	EmployerPF           decimal.Decimal `json:"employer_pf"`
	ProfessionalTax      decimal.Decimal `json:"professional_tax"`
	IncomeTax            decimal.Decimal `json:"income_tax"`
}

// OtherAllowancesTotal sums the wage-based allowances that are not HRA.
func (b ComponentBreakdown) OtherAllowancesTotal() decimal.Decimal {
	return b.StandardAllowance.
		Add(b.PerformanceBonus).
		Add(b.LeaveTravelAllowance).
		Add(b.FixedAllowance)
}

// AttendanceSummary is the per-period aggregate snapshot embedded in a
// payroll record. TotalWorkingDays is a calendar computation; RecordedDays
// counts the attendance rows that fed the summary, so callers can spot
// incomplete months without the summary being rejected.
type AttendanceSummary struct {
	TotalWorkingDays int             `json:"total_working_days"`
	PresentDays      int             `json:"present_days"`
	HalfDays         int             `json:"half_days"`
	PaidLeaves       int             `json:"paid_leaves"`
	SickLeaves       int             `json:"sick_leaves"`
	UnpaidLeaves     int             `json:"unpaid_leaves"`
	AbsentDays       int             `json:"absent_days"`
	LateArrivals     int             `json:"late_arrivals"`
	OvertimeHours    decimal.Decimal `json:"overtime_hours"`
	RecordedDays     int             `json:"recorded_days"`
}

// Value implements driver.Valuer for database storage
func (s AttendanceSummary) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *AttendanceSummary) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan AttendanceSummary: invalid type")
	}
	return json.Unmarshal(bytes, s)
}

// LossOfPay is the unpaid-absence deduction for a period. Days counts
// absences plus unpaid leaves; half-days never contribute.
type LossOfPay struct {
	Days       int             `json:"days"`
	PerDayRate decimal.Decimal `json:"per_day_rate"`
	Deduction  decimal.Decimal `json:"deduction"`
}

type Allowances struct {
	HRA       decimal.Decimal `json:"hra"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Other     decimal.Decimal `json:"other"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.HRA.Add(a.Transport).Add(a.Medical).Add(a.Other)
}

// Value implements driver.Valuer for database storage
func (a Allowances) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Allowances) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Allowances: invalid type")
	}
	return json.Unmarshal(bytes, a)
}

type Deductions struct {
	Tax           decimal.Decimal `json:"tax"`
	ProvidentFund decimal.Decimal `json:"provident_fund"`
	Insurance     decimal.Decimal `json:"insurance"`
	Other         decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.ProvidentFund).Add(d.Insurance).Add(d.Other)
}

// Value implements driver.Valuer for database storage
func (d Deductions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for database retrieval
func (d *Deductions) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Deductions: invalid type")
	}
	return json.Unmarshal(bytes, d)
}

// PaymentStatus progresses Pending -> Processed -> Paid and never
// regresses.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusProcessed PaymentStatus = "Processed"
	PaymentStatusPaid      PaymentStatus = "Paid"
)

func (s PaymentStatus) rank() int {
	switch s {
	case PaymentStatusPending:
		return 0
	case PaymentStatusProcessed:
		return 1
	case PaymentStatusPaid:
		return 2
	}
	return -1
}

// IsValid reports whether s is a known payment status.
func (s PaymentStatus) IsValid() bool {
	return s.rank() >= 0
}

// CanTransitionTo reports whether moving from s to next is a forward
// step. Backward transitions are always rejected.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return s.IsValid() && next.IsValid() && next.rank() > s.rank()
}

// PayrollRecord is the persisted payslip for one employee and period.
// BasicSalary is a snapshot taken at generation time; later edits to the
// employee's salary configuration never rewrite existing records.
type PayrollRecord struct {
	ID                string
	EmployeeID        string
	Month             int
	Year              int
	BasicSalary       decimal.Decimal
	Allowances        Allowances
	Deductions        Deductions
	Bonuses           decimal.Decimal
	OvertimePay       decimal.Decimal
	LopDays           int
	LopDeduction      decimal.Decimal
	AttendanceSummary AttendanceSummary
	GrossSalary       decimal.Decimal
	NetSalary         decimal.Decimal
	PaymentStatus     PaymentStatus
	PaymentDate       *time.Time
	CreatedBy         *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
