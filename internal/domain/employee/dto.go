package employee

import (
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode  string   `json:"employee_code"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Role          string   `json:"role,omitempty"`
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	PhoneNumber   *string  `json:"phone_number,omitempty"`
	Address       *Address `json:"address,omitempty"`
	DateOfBirth   *string  `json:"date_of_birth,omitempty"`
	DateOfJoining *string  `json:"date_of_joining,omitempty"`
	Department    *string  `json:"department,omitempty"`
	Designation   *string  `json:"designation,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match EMP-0000 format"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 6 characters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{string(RoleEmployee), string(RoleHR), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be Employee, HR or Admin"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.DateOfJoining != nil {
		if _, ok := validator.IsValidDate(*r.DateOfJoining); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_joining", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	PhoneNumber *string  `json:"phone_number,omitempty"`
	Address     *Address `json:"address,omitempty"`
	DateOfBirth *string  `json:"date_of_birth,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	Role        *string  `json:"role,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleEmployee), string(RoleHR), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be Employee, HR or Admin"})
	}
	if r.DateOfBirth != nil {
		if _, ok := validator.IsValidDate(*r.DateOfBirth); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSalaryRequest replaces an employee's salary configuration. Only
// the wage is mandatory; omitted percentages fall back to the defaults.
type UpdateSalaryRequest struct {
	EmployeeID         string           `json:"-"`
	MonthlyWage        decimal.Decimal  `json:"monthly_wage"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	BreakTimeHours     *float64         `json:"break_time_hours,omitempty"`
	Components         *ComponentRates  `json:"components,omitempty"`
	PFEmployeePct      *decimal.Decimal `json:"pf_employee_pct,omitempty"`
	PFEmployerPct      *decimal.Decimal `json:"pf_employer_pct,omitempty"`
	ProfessionalTax    *decimal.Decimal `json:"professional_tax,omitempty"`
	IncomeTaxPct       *decimal.Decimal `json:"income_tax_pct,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.MonthlyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_wage", Message: "must be positive"})
	}
	if r.WorkingDaysPerWeek != nil && (*r.WorkingDaysPerWeek < 1 || *r.WorkingDaysPerWeek > 7) {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_week", Message: "must be between 1 and 7"})
	}
	if r.PFEmployeePct != nil && r.PFEmployeePct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pf_employee_pct", Message: "must be non-negative"})
	}
	if r.PFEmployerPct != nil && r.PFEmployerPct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "pf_employer_pct", Message: "must be non-negative"})
	}
	if r.ProfessionalTax != nil && r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professional_tax", Message: "must be non-negative"})
	}
	if r.IncomeTaxPct != nil && r.IncomeTaxPct.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "income_tax_pct", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string        `json:"id"`
	EmployeeCode   string        `json:"employee_code"`
	Email          string        `json:"email"`
	Role           string        `json:"role"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	PhoneNumber    *string       `json:"phone_number,omitempty"`
	Address        *Address      `json:"address,omitempty"`
	DateOfBirth    *string       `json:"date_of_birth,omitempty"`
	DateOfJoining  string        `json:"date_of_joining"`
	Department     *string       `json:"department,omitempty"`
	Designation    *string       `json:"designation,omitempty"`
	ProfilePicture *string       `json:"profile_picture,omitempty"`
	Salary         *SalaryConfig `json:"salary,omitempty"`
	LeaveBalance   LeaveBalance  `json:"leave_balance"`
	IsActive       bool          `json:"is_active"`
}

type EmployeeFilter struct {
	Department *string `json:"department,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	Search     *string `json:"search,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
