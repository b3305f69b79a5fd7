package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/validator"
)

type service struct {
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	tx             leave.Transactor
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	tx leave.Transactor,
	logger *slog.Logger,
	now func() time.Time,
) leave.LeaveService {
	if now == nil {
		now = time.Now
	}
	return &service{
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		tx:             tx,
		logger:         logger,
		now:            now,
	}
}

func (s *service) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	overlapping, err := s.leaveRepo.HasOverlapping(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	request := leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		Category:   attendance.LeaveCategory(req.Category),
		StartDate:  attendance.Day(start),
		EndDate:    attendance.Day(end),
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	}

	if err := checkBalance(emp.LeaveBalance, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := s.leaveRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request submitted",
		slog.String("employee_id", req.EmployeeID),
		slog.String("category", req.Category),
		slog.Int("working_days", created.WorkingDays()),
	)
	return toResponse(created), nil
}

// checkBalance rejects paid and sick requests that exceed the remaining
// balance. Unpaid leave has no quota.
func checkBalance(balance employee.LeaveBalance, request leave.LeaveRequest) error {
	days := float64(request.WorkingDays())
	switch request.Category {
	case attendance.LeaveCategoryPaid:
		if days > balance.Paid {
			return leave.ErrInsufficientBalance
		}
	case attendance.LeaveCategorySick:
		if days > balance.Sick {
			return leave.ErrInsufficientBalance
		}
	}
	return nil
}

func (s *service) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if !req.Approve {
		if err := s.leaveRepo.UpdateStatus(ctx, req.ID, leave.RequestStatusRejected, req.ReviewerID, req.Note); err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		return s.GetByID(ctx, req.ID)
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// Balance is re-checked at approval; other requests may have drained
	// it since submission.
	if err := checkBalance(emp.LeaveBalance, request); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	// The balance debit, the attendance records and the status flip land
	// in one transaction.
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.applyApproval(txCtx, emp, request); err != nil {
			return err
		}
		return s.leaveRepo.UpdateStatus(txCtx, req.ID, leave.RequestStatusApproved, req.ReviewerID, req.Note)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	s.logger.Info("leave request approved",
		slog.String("request_id", req.ID),
		slog.String("employee_id", request.EmployeeID),
		slog.String("reviewer_id", req.ReviewerID),
	)
	return s.GetByID(ctx, req.ID)
}

// applyApproval debits the balance and writes a Leave attendance record,
// carrying the request's category, for each working day of the span.
func (s *service) applyApproval(ctx context.Context, emp employee.Employee, request leave.LeaveRequest) error {
	days := float64(request.WorkingDays())
	balance := emp.LeaveBalance
	switch request.Category {
	case attendance.LeaveCategoryPaid:
		balance.Paid -= days
	case attendance.LeaveCategorySick:
		balance.Sick -= days
	case attendance.LeaveCategoryUnpaid:
		balance.Unpaid += days
	}
	if err := s.employeeRepo.UpdateLeaveBalance(ctx, emp.ID, balance); err != nil {
		return err
	}

	category := request.Category
	var records []attendance.Attendance
	for d := request.StartDate; !d.After(request.EndDate); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		records = append(records, attendance.Attendance{
			EmployeeID:    emp.ID,
			Date:          attendance.Day(d),
			Status:        attendance.StatusLeave,
			LeaveCategory: &category,
			Remarks:       &request.Reason,
		})
	}
	if len(records) == 0 {
		return nil
	}

	// Days that already have a record keep it; the insert skips them.
	_, err := s.attendanceRepo.BulkCreate(ctx, records)
	return err
}

func (s *service) GetByID(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return toResponse(request), nil
}

func (s *service) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toResponse(request))
	}
	return leave.ListLeaveResponse{
		Data:       responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func toResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:           request.ID,
		EmployeeID:   request.EmployeeID,
		EmployeeName: request.EmployeeName,
		EmployeeCode: request.EmployeeCode,
		Category:     string(request.Category),
		StartDate:    request.StartDate.Format("2006-01-02"),
		EndDate:      request.EndDate.Format("2006-01-02"),
		WorkingDays:  request.WorkingDays(),
		Reason:       request.Reason,
		Status:       string(request.Status),
		ReviewedBy:   request.ReviewedBy,
		ReviewNote:   request.ReviewNote,
	}
	if request.ReviewedAt != nil {
		formatted := request.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &formatted
	}
	return resp
}
