package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewService(employeeRepo employee.EmployeeRepository, logger *slog.Logger) employee.EmployeeService {
	return &service{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

func (s *service) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *service) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByCodeOrEmail(ctx, req.EmployeeCode, req.Email)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	role := employee.RoleEmployee
	if req.Role != "" {
		role = employee.Role(req.Role)
	}

	newEmployee := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Department:   req.Department,
		Designation:  req.Designation,
		LeaveBalance: employee.DefaultLeaveBalance(),
		IsActive:     true,
		IsFirstLogin: true,
	}
	if req.DateOfBirth != nil {
		dob, _ := validator.IsValidDate(*req.DateOfBirth)
		newEmployee.DateOfBirth = &dob
	}
	if req.DateOfJoining != nil {
		doj, _ := validator.IsValidDate(*req.DateOfJoining)
		newEmployee.DateOfJoining = doj
	} else {
		newEmployee.DateOfJoining = time.Now().UTC()
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		slog.String("employee_id", created.ID),
		slog.String("employee_code", created.EmployeeCode),
		slog.String("role", string(created.Role)),
	)
	return toResponse(created), nil
}

func (s *service) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.ID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, req.ID)
}

func (s *service) UpdateSalary(ctx context.Context, req employee.UpdateSalaryRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	config := employee.DefaultSalaryConfig(req.MonthlyWage)
	if req.Components != nil {
		config.Components = *req.Components
	}
	if req.PFEmployeePct != nil {
		config.PFEmployeePct = *req.PFEmployeePct
	}
	if req.PFEmployerPct != nil {
		config.PFEmployerPct = *req.PFEmployerPct
	}
	if req.ProfessionalTax != nil {
		config.ProfessionalTax = *req.ProfessionalTax
	}
	if req.IncomeTaxPct != nil {
		config.IncomeTaxPct = *req.IncomeTaxPct
	}
	if req.WorkingDaysPerWeek != nil {
		config.WorkingDaysPerWeek = *req.WorkingDaysPerWeek
	}
	if req.BreakTimeHours != nil {
		config.BreakTimeHours = *req.BreakTimeHours
	}

	if err := s.employeeRepo.UpdateSalaryConfig(ctx, req.EmployeeID, config); err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("salary configuration updated",
		slog.String("employee_id", req.EmployeeID),
	)
	return s.GetEmployee(ctx, req.EmployeeID)
}

func (s *service) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return employee.ListEmployeeResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *service) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deactivated", slog.String("employee_id", id))
	return nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		Email:          emp.Email,
		Role:           string(emp.Role),
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		PhoneNumber:    emp.PhoneNumber,
		Address:        emp.Address,
		DateOfJoining:  emp.DateOfJoining.Format("2006-01-02"),
		Department:     emp.Department,
		Designation:    emp.Designation,
		ProfilePicture: emp.ProfilePicture,
		Salary:         emp.Salary,
		LeaveBalance:   emp.LeaveBalance,
		IsActive:       emp.IsActive,
	}
	if emp.DateOfBirth != nil {
		dob := emp.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}
