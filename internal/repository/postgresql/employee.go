package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, email, password_hash, role, first_name, last_name,
	phone_number, address, date_of_birth, date_of_joining, department,
	designation, profile_picture, salary, leave_balance, is_active,
	is_first_login, created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var addressRaw, salaryRaw []byte

	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.Email, &e.PasswordHash, &e.Role,
		&e.FirstName, &e.LastName, &e.PhoneNumber, &addressRaw,
		&e.DateOfBirth, &e.DateOfJoining, &e.Department, &e.Designation,
		&e.ProfilePicture, &salaryRaw, &e.LeaveBalance, &e.IsActive,
		&e.IsFirstLogin, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if addressRaw != nil {
		var address employee.Address
		if err := json.Unmarshal(addressRaw, &address); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to decode address: %w", err)
		}
		e.Address = &address
	}
	if salaryRaw != nil {
		var salary employee.SalaryConfig
		if err := json.Unmarshal(salaryRaw, &salary); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to decode salary config: %w", err)
		}
		e.Salary = &salary
	}
	return e, nil
}

func (r *employeeRepository) getBy(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s = $1 AND deleted_at IS NULL
	`, employeeColumns, column)

	e, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return r.getBy(ctx, "id", id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	return r.getBy(ctx, "email", email)
}

func (r *employeeRepository) GetByEmployeeCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	return r.getBy(ctx, "employee_code", employeeCode)
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (
			employee_code, email, password_hash, role, first_name, last_name,
			phone_number, address, date_of_birth, date_of_joining, department,
			designation, leave_balance, is_active, is_first_login
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s
	`, employeeColumns)

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.Email, newEmployee.PasswordHash,
		newEmployee.Role, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.PhoneNumber, newEmployee.Address, newEmployee.DateOfBirth,
		newEmployee.DateOfJoining, newEmployee.Department, newEmployee.Designation,
		newEmployee.LeaveBalance, newEmployee.IsActive, newEmployee.IsFirstLogin,
	))
	if err != nil {
		if strings.Contains(err.Error(), "employees_employee_code_key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "employees_email_key") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

func (r *employeeRepository) ExistsByCodeOrEmail(ctx context.Context, employeeCode, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE (employee_code = $1 OR email = $2) AND deleted_at IS NULL
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeCode, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return exists, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argPos := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.FirstName != nil {
		addClause("first_name", *req.FirstName)
	}
	if req.LastName != nil {
		addClause("last_name", *req.LastName)
	}
	if req.PhoneNumber != nil {
		addClause("phone_number", *req.PhoneNumber)
	}
	if req.Address != nil {
		addClause("address", *req.Address)
	}
	if req.DateOfBirth != nil {
		addClause("date_of_birth", *req.DateOfBirth)
	}
	if req.Department != nil {
		addClause("department", *req.Department)
	}
	if req.Designation != nil {
		addClause("designation", *req.Designation)
	}
	if req.Role != nil {
		addClause("role", *req.Role)
	}
	if req.IsActive != nil {
		addClause("is_active", *req.IsActive)
	}

	query := fmt.Sprintf(`
		UPDATE employees SET %s
		WHERE id = $%d AND deleted_at IS NULL
	`, strings.Join(setClauses, ", "), argPos)
	args = append(args, id)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) UpdateSalaryConfig(ctx context.Context, id string, config employee.SalaryConfig) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET salary = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, config, id)
	if err != nil {
		return fmt.Errorf("failed to update salary config: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) UpdatePassword(ctx context.Context, id string, passwordHash string, isFirstLogin bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET password_hash = $1, is_first_login = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, passwordHash, isFirstLogin, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) UpdateLeaveBalance(ctx context.Context, id string, balance employee.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET leave_balance = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, balance, id)
	if err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argPos := 1

	if filter.Department != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("department = $%d", argPos))
		args = append(args, *filter.Department)
		argPos++
	}
	if filter.Role != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("role = $%d", argPos))
		args = append(args, *filter.Role)
		argPos++
	}
	if filter.IsActive != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.IsActive)
		argPos++
	}
	if filter.Search != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR employee_code ILIKE $%d OR email ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE %s
		ORDER BY employee_code
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY employee_code
	`, employeeColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
