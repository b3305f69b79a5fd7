package employee

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range r.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = uuid.NewString()
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) ExistsByCodeOrEmail(_ context.Context, code, email string) (bool, error) {
	for _, emp := range r.employees {
		if emp.EmployeeCode == code || emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Department != nil {
		emp.Department = req.Department
	}
	if req.Role != nil {
		emp.Role = employee.Role(*req.Role)
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) UpdateSalaryConfig(_ context.Context, id string, config employee.SalaryConfig) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.Salary = &config
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id, passwordHash string, isFirstLogin bool) error {
	emp := r.employees[id]
	emp.PasswordHash = passwordHash
	emp.IsFirstLogin = isFirstLogin
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) UpdateLeaveBalance(_ context.Context, id string, balance employee.LeaveBalance) error {
	emp := r.employees[id]
	emp.LeaveBalance = balance
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var matched []employee.Employee
	for _, emp := range r.employees {
		if filter.Department != nil && (emp.Department == nil || *emp.Department != *filter.Department) {
			continue
		}
		if filter.IsActive != nil && emp.IsActive != *filter.IsActive {
			continue
		}
		matched = append(matched, emp)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range r.employees {
		if emp.IsActive {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ context.Context, id string) error {
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = false
	r.employees[id] = emp
	return nil
}

func newTestService() (employee.EmployeeService, *fakeEmployeeRepo) {
	repo := newFakeEmployeeRepo()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func validCreateRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeCode: "EMP-0042",
		Email:        "meera@example.com",
		Password:     "secret123",
		FirstName:    "Meera",
		LastName:     "Iyer",
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		service, repo := newTestService()

		resp, err := service.CreateEmployee(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, "Employee", resp.Role)
		assert.True(t, resp.IsActive)
		assert.Equal(t, 20.0, resp.LeaveBalance.Paid)
		assert.Equal(t, 10.0, resp.LeaveBalance.Sick)
		assert.Nil(t, resp.Salary)

		stored := repo.employees[resp.ID]
		assert.True(t, stored.IsFirstLogin)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
	})

	t.Run("duplicate code rejected", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.CreateEmployee(ctx, validCreateRequest())
		require.NoError(t, err)

		_, err = service.CreateEmployee(ctx, validCreateRequest())
		assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	})

	t.Run("invalid code format rejected", func(t *testing.T) {
		service, _ := newTestService()
		req := validCreateRequest()
		req.EmployeeCode = "E42"

		_, err := service.CreateEmployee(ctx, req)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "employee_code")
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	created, err := service.CreateEmployee(ctx, validCreateRequest())
	require.NoError(t, err)

	dept := "Engineering"
	role := "HR"
	resp, err := service.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:         created.ID,
		Department: &dept,
		Role:       &role,
	})

	require.NoError(t, err)
	assert.Equal(t, "Engineering", *resp.Department)
	assert.Equal(t, "HR", resp.Role)

	_, err = service.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateSalary(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults from wage", func(t *testing.T) {
		service, repo := newTestService()
		created, err := service.CreateEmployee(ctx, validCreateRequest())
		require.NoError(t, err)

		resp, err := service.UpdateSalary(ctx, employee.UpdateSalaryRequest{
			EmployeeID:  created.ID,
			MonthlyWage: decimal.NewFromInt(60000),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.Salary)
		assert.True(t, resp.Salary.MonthlyWage.Equal(decimal.NewFromInt(60000)))
		assert.True(t, resp.Salary.Components.BasicPct.Equal(decimal.NewFromInt(50)))
		assert.True(t, resp.Salary.PFEmployeePct.Equal(decimal.NewFromInt(12)))
		assert.True(t, resp.Salary.ProfessionalTax.Equal(decimal.NewFromInt(200)))
		assert.True(t, resp.Salary.IncomeTaxPct.IsZero())

		stored := repo.employees[created.ID]
		require.NotNil(t, stored.Salary)
	})

	t.Run("overrides win over defaults", func(t *testing.T) {
		service, _ := newTestService()
		created, err := service.CreateEmployee(ctx, validCreateRequest())
		require.NoError(t, err)

		incomeTax := decimal.NewFromInt(10)
		sixDays := 6
		resp, err := service.UpdateSalary(ctx, employee.UpdateSalaryRequest{
			EmployeeID:         created.ID,
			MonthlyWage:        decimal.NewFromInt(45000),
			IncomeTaxPct:       &incomeTax,
			WorkingDaysPerWeek: &sixDays,
		})

		require.NoError(t, err)
		assert.True(t, resp.Salary.IncomeTaxPct.Equal(incomeTax))
		assert.Equal(t, 6, resp.Salary.WorkingDaysPerWeek)
	})

	t.Run("non-positive wage rejected", func(t *testing.T) {
		service, _ := newTestService()

		_, err := service.UpdateSalary(ctx, employee.UpdateSalaryRequest{
			EmployeeID:  "anything",
			MonthlyWage: decimal.Zero,
		})

		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestDeleteEmployee(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService()

	created, err := service.CreateEmployee(ctx, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteEmployee(ctx, created.ID))
	assert.False(t, repo.employees[created.ID].IsActive)

	assert.ErrorIs(t, service.DeleteEmployee(ctx, "missing"), employee.ErrEmployeeNotFound)
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	for _, code := range []string{"EMP-0001", "EMP-0002", "EMP-0003"} {
		req := validCreateRequest()
		req.EmployeeCode = code
		req.Email = code + "@example.com"
		_, err := service.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}

	resp, err := service.ListEmployees(ctx, employee.EmployeeFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}
