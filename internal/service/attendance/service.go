package attendance

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

// halfDayThreshold is the minimum worked hours for a full Present day.
const halfDayThreshold = 4.0

type service struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	payrollRepo    payroll.PayrollRepository
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	logger *slog.Logger,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		payrollRepo:    payrollRepo,
		logger:         logger,
		now:            now,
	}
}

func (s *service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	now := s.now().UTC()
	today := attendance.Day(now)

	if _, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today); err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	} else if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       today,
		Status:     attendance.StatusPresent,
		CheckIn:    &now,
		Remarks:    req.Remarks,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("employee checked in",
		slog.String("employee_id", req.EmployeeID),
		slog.Time("check_in", now),
	)
	return toResponse(record), nil
}

func (s *service) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now().UTC()
	today := attendance.Day(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, err
	}
	if record.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &now
	record.WorkHours = workedHours(*record.CheckIn, now, emp.Salary)
	if record.WorkHours < halfDayThreshold {
		record.Status = attendance.StatusHalfDay
	}

	updated, err := s.attendanceRepo.Update(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	s.logger.Info("employee checked out",
		slog.String("employee_id", req.EmployeeID),
		slog.Float64("work_hours", updated.WorkHours),
	)
	return toResponse(updated), nil
}

// workedHours is the check-in to check-out span minus the configured
// break, floored at zero and rounded to 2 decimals. The break is only
// subtracted when the span is long enough to have plausibly included it.
func workedHours(checkIn, checkOut time.Time, salary *employee.SalaryConfig) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	if salary != nil && salary.BreakTimeHours > 0 && hours > halfDayThreshold {
		hours -= salary.BreakTimeHours
	}
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*100) / 100
}

func (s *service) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	day := attendance.Day(date)

	// A day whose payslip has already been paid out is closed for edits.
	if existing, err := s.payrollRepo.GetPayrollRecordByEmployeePeriod(
		ctx, req.EmployeeID, int(day.Month()), day.Year(),
	); err == nil {
		if existing.PaymentStatus == payroll.PaymentStatusPaid {
			return attendance.AttendanceResponse{}, attendance.ErrRecordFinalized
		}
	} else if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       day,
		Status:     attendance.Status(req.Status),
		Remarks:    req.Remarks,
	}
	if req.LeaveCategory != nil {
		category := attendance.LeaveCategory(*req.LeaveCategory)
		record.LeaveCategory = &category
	}
	if req.CheckIn != nil {
		checkIn, _ := validator.IsValidDateTime(*req.CheckIn)
		record.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := validator.IsValidDateTime(*req.CheckOut)
		record.CheckOut = &checkOut
	}
	if record.CheckIn != nil && record.CheckOut != nil {
		record.WorkHours = workedHours(*record.CheckIn, *record.CheckOut, nil)
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, day)
	if err == nil {
		record.ID = existing.ID
		updated, err := s.attendanceRepo.Update(ctx, record)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		return toResponse(updated), nil
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(created), nil
}

func (s *service) GetToday(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, attendance.Day(s.now()))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(record), nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID string, month, year int) ([]attendance.AttendanceResponse, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return responses, nil
}

func (s *service) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}
	return attendance.ListAttendanceResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *service) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	day := attendance.Day(date)
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, nil
	}

	ids, err := s.attendanceRepo.EmployeeIDsWithoutRecord(ctx, day)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	records := make([]attendance.Attendance, 0, len(ids))
	for _, id := range ids {
		records = append(records, attendance.Attendance{
			EmployeeID: id,
			Date:       day,
			Status:     attendance.StatusAbsent,
		})
	}

	inserted, err := s.attendanceRepo.BulkCreate(ctx, records)
	if err != nil {
		return 0, err
	}

	s.logger.Info("marked absentees",
		slog.Time("date", day),
		slog.Int("count", inserted),
	)
	return inserted, nil
}

func toResponse(record attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:           record.ID,
		EmployeeID:   record.EmployeeID,
		EmployeeName: record.EmployeeName,
		EmployeeCode: record.EmployeeCode,
		Date:         record.Date.Format("2006-01-02"),
		Status:       string(record.Status),
		WorkHours:    record.WorkHours,
		Remarks:      record.Remarks,
	}
	if record.CheckIn != nil {
		formatted := record.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &formatted
	}
	if record.CheckOut != nil {
		formatted := record.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &formatted
	}
	if record.LeaveCategory != nil {
		category := string(*record.LeaveCategory)
		resp.LeaveCategory = &category
	}
	return resp
}
