package employee

import "context"

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID (self, or HR/Admin)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee (HR/Admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates an existing employee (self for profile fields, HR/Admin for the rest)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateSalary replaces the employee's salary configuration (HR/Admin only)
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (EmployeeResponse, error)

	// ListEmployees lists employees with filters (HR/Admin only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// DeleteEmployee soft deletes an employee (Admin only)
	DeleteEmployee(ctx context.Context, id string) error
}
