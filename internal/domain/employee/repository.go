package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByCodeOrEmail(ctx context.Context, employeeCode, email string) (bool, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) error
	UpdateSalaryConfig(ctx context.Context, id string, config SalaryConfig) error
	UpdatePassword(ctx context.Context, id string, passwordHash string, isFirstLogin bool) error
	UpdateLeaveBalance(ctx context.Context, id string, balance LeaveBalance) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	GetActive(ctx context.Context) ([]Employee, error)
	SoftDelete(ctx context.Context, id string) error
}
