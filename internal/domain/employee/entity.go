package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

type Employee struct {
	ID             string
	EmployeeCode   string
	Email          string
	PasswordHash   string
	Role           Role
	FirstName      string
	LastName       string
	PhoneNumber    *string
	Address        *Address
	DateOfBirth    *time.Time
	DateOfJoining  time.Time
	Department     *string
	Designation    *string
	ProfilePicture *string
	Salary         *SalaryConfig
	LeaveBalance   LeaveBalance
	IsActive       bool
	IsFirstLogin   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Address is stored as a JSONB column
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

// Value implements driver.Valuer for database storage
func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan Address: invalid type")
	}
	return json.Unmarshal(bytes, a)
}

// LeaveBalance tracks remaining leave days per category
type LeaveBalance struct {
	Paid   float64 `json:"paid"`
	Sick   float64 `json:"sick"`
	Unpaid float64 `json:"unpaid"`
}

func DefaultLeaveBalance() LeaveBalance {
	return LeaveBalance{Paid: 20, Sick: 10, Unpaid: 0}
}

// Value implements driver.Valuer for database storage
func (b LeaveBalance) Value() (driver.Value, error) {
	return json.Marshal(b)
}

// Scan implements sql.Scanner for database retrieval
func (b *LeaveBalance) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan LeaveBalance: invalid type")
	}
	return json.Unmarshal(bytes, b)
}

// ComponentRates are the percentage weights of each salary component.
// BasicPct applies to the monthly wage; HRAPct applies to the derived
// basic salary, not to the wage. The remaining rates apply to the wage.
type ComponentRates struct {
	BasicPct       decimal.Decimal `json:"basic_pct"`
	HRAPct         decimal.Decimal `json:"hra_pct"`
	StandardPct    decimal.Decimal `json:"standard_pct"`
	PerformancePct decimal.Decimal `json:"performance_pct"`
	LTAPct         decimal.Decimal `json:"lta_pct"`
	FixedPct       decimal.Decimal `json:"fixed_pct"`
}

func DefaultComponentRates() ComponentRates {
	return ComponentRates{
		BasicPct:       decimal.NewFromInt(50),
		HRAPct:         decimal.NewFromInt(50),
		StandardPct:    decimal.RequireFromString("16.67"),
		PerformancePct: decimal.RequireFromString("6.33"),
		LTAPct:         decimal.RequireFromString("6.33"),
		FixedPct:       decimal.RequireFromString("11.67"),
	}
}

// SalaryConfig is the per-employee monthly wage configuration.
// Stored as a JSONB column on the employees table.
type SalaryConfig struct {
	MonthlyWage        decimal.Decimal `json:"monthly_wage"`
	Components         ComponentRates  `json:"components"`
	PFEmployeePct      decimal.Decimal `json:"pf_employee_pct"`
	PFEmployerPct      decimal.Decimal `json:"pf_employer_pct"`
	ProfessionalTax    decimal.Decimal `json:"professional_tax"`
	IncomeTaxPct       decimal.Decimal `json:"income_tax_pct"`
	WorkingDaysPerWeek int             `json:"working_days_per_week"`
	BreakTimeHours     float64         `json:"break_time_hours"`
}

// DefaultSalaryConfig builds a configuration with the standard rates
// for the given wage.
func DefaultSalaryConfig(monthlyWage decimal.Decimal) SalaryConfig {
	return SalaryConfig{
		MonthlyWage:        monthlyWage,
		Components:         DefaultComponentRates(),
		PFEmployeePct:      decimal.NewFromInt(12),
		PFEmployerPct:      decimal.NewFromInt(12),
		ProfessionalTax:    decimal.NewFromInt(200),
		IncomeTaxPct:       decimal.Zero,
		WorkingDaysPerWeek: 5,
		BreakTimeHours:     1,
	}
}

// Value implements driver.Valuer for database storage
func (c SalaryConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *SalaryConfig) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan SalaryConfig: invalid type")
	}
	return json.Unmarshal(bytes, c)
}
