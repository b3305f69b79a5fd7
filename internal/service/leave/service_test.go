package leave

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func (r *fakeLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.NewString()
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (r *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, id string, status leave.RequestStatus, reviewerID string, note *string) error {
	request, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	now := time.Now().UTC()
	request.Status = status
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now
	request.ReviewNote = note
	r.requests[id] = request
	return nil
}

func (r *fakeLeaveRepo) HasOverlapping(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status == leave.RequestStatusRejected {
			continue
		}
		if !start.After(request.EndDate) && !end.Before(request.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func dayKey(employeeID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", employeeID, attendance.Day(date).Format("2006-01-02"))
}

func (r *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	record.ID = uuid.NewString()
	r.records[dayKey(record.EmployeeID, record.Date)] = record
	return record, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	record, ok := r.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.records[dayKey(record.EmployeeID, record.Date)] = record
	return record, nil
}

func (r *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, _ string, _, _ time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (r *fakeAttendanceRepo) EmployeeIDsWithoutRecord(_ context.Context, _ time.Time) ([]string, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) BulkCreate(_ context.Context, records []attendance.Attendance) (int, error) {
	inserted := 0
	for _, record := range records {
		key := dayKey(record.EmployeeID, record.Date)
		if _, exists := r.records[key]; exists {
			continue
		}
		record.ID = uuid.NewString()
		r.records[key] = record
		inserted++
	}
	return inserted, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByEmployeeCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) ExistsByCodeOrEmail(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ string, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (r *fakeEmployeeRepo) UpdateSalaryConfig(_ context.Context, _ string, _ employee.SalaryConfig) error {
	return nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, _, _ string, _ bool) error {
	return nil
}

func (r *fakeEmployeeRepo) UpdateLeaveBalance(_ context.Context, id string, balance employee.LeaveBalance) error {
	emp := r.employees[id]
	emp.LeaveBalance = balance
	r.employees[id] = emp
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ context.Context, _ string) error {
	return nil
}

type testEnv struct {
	service        leave.LeaveService
	leaveRepo      *fakeLeaveRepo
	attendanceRepo *fakeAttendanceRepo
	employeeRepo   *fakeEmployeeRepo
}

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		leaveRepo:      &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)},
		attendanceRepo: &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)},
		employeeRepo:   &fakeEmployeeRepo{employees: make(map[string]employee.Employee)},
	}
	env.service = NewService(
		env.leaveRepo,
		env.attendanceRepo,
		env.employeeRepo,
		passthroughTx{},
		slog.New(slog.DiscardHandler),
		func() time.Time { return time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC) },
	)
	return env
}

func (e *testEnv) addEmployee() employee.Employee {
	emp := employee.Employee{
		ID:           uuid.NewString(),
		IsActive:     true,
		LeaveBalance: employee.DefaultLeaveBalance(),
	}
	e.employeeRepo.employees[emp.ID] = emp
	return emp
}

func TestCreateLeaveRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("pending request with working day count", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()

		// Mon 2025-06-09 through Fri 2025-06-13.
		resp, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategoryPaid),
			StartDate:  "2025-06-09",
			EndDate:    "2025-06-13",
			Reason:     "family trip",
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.RequestStatusPending), resp.Status)
		assert.Equal(t, 5, resp.WorkingDays)
	})

	t.Run("span crossing a weekend only counts weekdays", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()

		// Fri 2025-06-06 through Mon 2025-06-09.
		resp, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategorySick),
			StartDate:  "2025-06-06",
			EndDate:    "2025-06-09",
			Reason:     "flu",
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.WorkingDays)
	})

	t.Run("overlapping request is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()

		_, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategoryPaid),
			StartDate:  "2025-06-09",
			EndDate:    "2025-06-13",
			Reason:     "family trip",
		})
		require.NoError(t, err)

		_, err = env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategoryUnpaid),
			StartDate:  "2025-06-12",
			EndDate:    "2025-06-16",
			Reason:     "moving house",
		})
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("insufficient balance is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		emp.LeaveBalance.Sick = 1
		env.employeeRepo.employees[emp.ID] = emp

		_, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategorySick),
			StartDate:  "2025-06-09",
			EndDate:    "2025-06-11",
			Reason:     "flu",
		})
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
	})

	t.Run("unpaid leave has no quota", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		emp.LeaveBalance = employee.LeaveBalance{}
		env.employeeRepo.employees[emp.ID] = emp

		_, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   string(attendance.LeaveCategoryUnpaid),
			StartDate:  "2025-06-09",
			EndDate:    "2025-06-20",
			Reason:     "sabbatical",
		})
		assert.NoError(t, err)
	})
}

func TestReviewLeaveRequest(t *testing.T) {
	ctx := context.Background()
	reviewer := uuid.NewString()

	submit := func(t *testing.T, env *testEnv, emp employee.Employee, category string) leave.LeaveRequestResponse {
		t.Helper()
		resp, err := env.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: emp.ID,
			Category:   category,
			StartDate:  "2025-06-09",
			EndDate:    "2025-06-13",
			Reason:     "family trip",
		})
		require.NoError(t, err)
		return resp
	}

	t.Run("approval writes leave attendance and debits balance", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		request := submit(t, env, emp, string(attendance.LeaveCategoryPaid))

		resp, err := env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: true,
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.RequestStatusApproved), resp.Status)
		require.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, reviewer, *resp.ReviewedBy)

		assert.Len(t, env.attendanceRepo.records, 5)
		for _, record := range env.attendanceRepo.records {
			assert.Equal(t, attendance.StatusLeave, record.Status)
			require.NotNil(t, record.LeaveCategory)
			assert.Equal(t, attendance.LeaveCategoryPaid, *record.LeaveCategory)
		}

		assert.Equal(t, 15.0, env.employeeRepo.employees[emp.ID].LeaveBalance.Paid)
	})

	t.Run("approval keeps existing attendance for overlapping days", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		request := submit(t, env, emp, string(attendance.LeaveCategoryPaid))

		day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
		_, err := env.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			Date:       day,
			Status:     attendance.StatusPresent,
		})
		require.NoError(t, err)

		_, err = env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: true,
		})
		require.NoError(t, err)

		kept, err := env.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
		require.NoError(t, err)
		assert.Equal(t, attendance.StatusPresent, kept.Status)
	})

	t.Run("rejection leaves attendance and balance untouched", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		request := submit(t, env, emp, string(attendance.LeaveCategoryPaid))

		note := "blackout week"
		resp, err := env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: false, Note: &note,
		})

		require.NoError(t, err)
		assert.Equal(t, string(leave.RequestStatusRejected), resp.Status)
		assert.Empty(t, env.attendanceRepo.records)
		assert.Equal(t, 20.0, env.employeeRepo.employees[emp.ID].LeaveBalance.Paid)
	})

	t.Run("already processed request is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		request := submit(t, env, emp, string(attendance.LeaveCategoryPaid))

		_, err := env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: true,
		})
		require.NoError(t, err)

		_, err = env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: false,
		})
		assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
	})

	t.Run("unpaid approval tracks taken days", func(t *testing.T) {
		env := newTestEnv(t)
		emp := env.addEmployee()
		request := submit(t, env, emp, string(attendance.LeaveCategoryUnpaid))

		_, err := env.service.Review(ctx, leave.ReviewLeaveRequest{
			ID: request.ID, ReviewerID: reviewer, Approve: true,
		})

		require.NoError(t, err)
		assert.Equal(t, 5.0, env.employeeRepo.employees[emp.ID].LeaveBalance.Unpaid)
	})
}
