package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
)

type service struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	policy         config.PayrollConfig
	logger         *slog.Logger
	now            func() time.Time
}

// NewService wires the payroll service. The clock is injectable so
// generation runs are reproducible in tests.
func NewService(
	payrollRepo payroll.PayrollRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy config.PayrollConfig,
	logger *slog.Logger,
	now func() time.Time,
) payroll.PayrollService {
	if now == nil {
		now = time.Now
	}
	return &service{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		logger:         logger,
		now:            now,
	}
}

// summarizeOptions merges the company policy with the employee's own
// working-week configuration.
func (s *service) summarizeOptions(salary *employee.SalaryConfig) SummarizeOptions {
	opts := DefaultSummarizeOptions()
	opts.StandardDayHours = s.policy.StandardDayHours
	opts.WorkingDaysPerWeek = s.policy.WorkingDaysPerWeek

	if grace, err := time.Parse("15:04", s.policy.LateGraceTime); err == nil {
		opts.LateGrace = time.Duration(grace.Hour())*time.Hour + time.Duration(grace.Minute())*time.Minute
	}
	if salary != nil && salary.WorkingDaysPerWeek >= 1 && salary.WorkingDaysPerWeek <= 7 {
		opts.WorkingDaysPerWeek = salary.WorkingDaysPerWeek
	}
	return opts
}

func (s *service) GeneratePayslip(ctx context.Context, req payroll.GeneratePayslipRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if emp.Salary == nil {
		return payroll.PayrollRecordResponse{}, payroll.ErrMissingSalaryConfiguration
	}
	if !emp.Salary.MonthlyWage.IsPositive() {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidSalaryConfiguration
	}

	existing, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year)
	hasExisting := err == nil
	if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.PayrollRecordResponse{}, err
	}
	if hasExisting {
		if !req.Regenerate {
			return payroll.PayrollRecordResponse{}, payroll.ErrDuplicatePayrollPeriod
		}
		if existing.PaymentStatus == payroll.PaymentStatusPaid {
			return payroll.PayrollRecordResponse{}, payroll.ErrPaidRecordImmutable
		}
	}

	record, err := s.compute(ctx, emp, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var saved payroll.PayrollRecord
	if hasExisting {
		record.ID = existing.ID
		// A regenerated record keeps the status it already earned.
		record.PaymentStatus = existing.PaymentStatus
		record.PaymentDate = existing.PaymentDate
		saved, err = s.payrollRepo.ReplacePayrollRecord(ctx, record)
	} else {
		saved, err = s.payrollRepo.CreatePayrollRecord(ctx, record)
	}
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	s.logger.Info("payslip generated",
		slog.String("employee_id", saved.EmployeeID),
		slog.Int("month", saved.Month),
		slog.Int("year", saved.Year),
		slog.Bool("regenerated", hasExisting),
	)
	return toResponse(saved), nil
}

// compute runs the calculation chain for one employee and period and
// returns an unsaved record.
func (s *service) compute(ctx context.Context, emp employee.Employee, month, year int) (payroll.PayrollRecord, error) {
	start, end := PeriodBounds(month, year)

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, emp.ID, start, end)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("listing attendance: %w", err)
	}

	summary := SummarizeAttendance(records, start, end, s.summarizeOptions(emp.Salary))
	lop := ComputeLossOfPay(summary, DeriveSalaryComponents(*emp.Salary).BasicSalary)

	record := BuildPayroll(*emp.Salary, summary, lop, BuildOptions{})
	record.EmployeeID = emp.ID
	record.Month = month
	record.Year = year
	record.PaymentStatus = DefaultPaymentStatus(month, year, s.now())
	return record, nil
}

func (s *service) GenerateForAllActive(ctx context.Context, req payroll.GenerateBulkRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(employees))
	for _, emp := range employees {
		if emp.Salary == nil || !emp.Salary.MonthlyWage.IsPositive() {
			s.logger.Warn("skipping employee without usable salary configuration",
				slog.String("employee_id", emp.ID))
			continue
		}

		if _, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(ctx, emp.ID, req.Month, req.Year); err == nil {
			continue
		} else if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return nil, err
		}

		record, err := s.compute(ctx, emp, req.Month, req.Year)
		if err != nil {
			return nil, err
		}

		saved, err := s.payrollRepo.CreatePayrollRecord(ctx, record)
		if err != nil {
			// Another generation run may have raced us on this period.
			if errors.Is(err, payroll.ErrDuplicatePayrollPeriod) {
				continue
			}
			return nil, err
		}
		responses = append(responses, toResponse(saved))
	}

	s.logger.Info("bulk payslip generation finished",
		slog.Int("month", req.Month),
		slog.Int("year", req.Year),
		slog.Int("generated", len(responses)),
	)
	return responses, nil
}

func (s *service) PreviewAttendanceSummary(ctx context.Context, employeeID string, month, year int) (payroll.AttendanceSummary, error) {
	if month < 1 || month > 12 || year < 2020 {
		return payroll.AttendanceSummary{}, payroll.ErrInvalidPeriod
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return payroll.AttendanceSummary{}, err
	}

	start, end := PeriodBounds(month, year)
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return payroll.AttendanceSummary{}, err
	}

	return SummarizeAttendance(records, start, end, s.summarizeOptions(emp.Salary)), nil
}

func (s *service) GetRecord(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toResponse(record), nil
}

func (s *service) ListRecords(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return payroll.ListPayrollRecordResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *service) UpdateRecord(ctx context.Context, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if record.PaymentStatus == payroll.PaymentStatusPaid {
		return payroll.PayrollRecordResponse{}, payroll.ErrPaidRecordImmutable
	}

	if req.Allowances != nil {
		record.Allowances = *req.Allowances
	}
	if req.Deductions != nil {
		record.Deductions = *req.Deductions
	}
	if req.Bonuses != nil {
		record.Bonuses = *req.Bonuses
	}

	// Totals are always derived, never patched.
	record.GrossSalary = record.BasicSalary.
		Add(record.Allowances.Total()).
		Add(record.Bonuses).
		Add(record.OvertimePay)
	record.NetSalary = record.GrossSalary.
		Sub(record.Deductions.Total()).
		Sub(record.LopDeduction)

	saved, err := s.payrollRepo.ReplacePayrollRecord(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toResponse(saved), nil
}

func (s *service) UpdateStatus(ctx context.Context, req payroll.UpdateStatusRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, req.ID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	next := payroll.PaymentStatus(req.Status)
	if !record.PaymentStatus.CanTransitionTo(next) {
		return payroll.PayrollRecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	saved, err := s.payrollRepo.UpdatePaymentStatus(ctx, req.ID, next)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toResponse(saved), nil
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return err
	}
	if record.PaymentStatus == payroll.PaymentStatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}
	return s.payrollRepo.DeletePayrollRecord(ctx, id)
}

func (s *service) GetPeriodSummary(ctx context.Context, month, year int) (payroll.PeriodSummaryResponse, error) {
	if month < 1 || month > 12 || year < 2020 {
		return payroll.PeriodSummaryResponse{}, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.GetPeriodSummary(ctx, month, year)
}

func toResponse(record payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		Month:             record.Month,
		Year:              record.Year,
		BasicSalary:       record.BasicSalary,
		Allowances:        record.Allowances,
		Deductions:        record.Deductions,
		Bonuses:           record.Bonuses,
		OvertimePay:       record.OvertimePay,
		LopDays:           record.LopDays,
		LopDeduction:      record.LopDeduction,
		AttendanceSummary: record.AttendanceSummary,
		GrossSalary:       record.GrossSalary,
		NetSalary:         record.NetSalary,
		PaymentStatus:     string(record.PaymentStatus),
	}
	if record.EmployeeName != nil {
		resp.EmployeeName = *record.EmployeeName
	}
	if record.EmployeeCode != nil {
		resp.EmployeeCode = *record.EmployeeCode
	}
	if record.PaymentDate != nil {
		formatted := record.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &formatted
	}
	return resp
}
