package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	missing map[string][]string
}

func dayKey(employeeID string, date time.Time) string {
	return fmt.Sprintf("%s:%s", employeeID, attendance.Day(date).Format("2006-01-02"))
}

func (r *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	key := dayKey(record.EmployeeID, record.Date)
	if _, exists := r.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateAttendance
	}
	record.ID = uuid.NewString()
	r.records[key] = record
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

func (r *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		if record.EmployeeID != employeeID {
			continue
		}
		day := attendance.Day(record.Date)
		if day.Before(start) || !day.Before(end) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, record := range r.records {
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) EmployeeIDsWithoutRecord(_ context.Context, date time.Time) ([]string, error) {
	return r.missing[attendance.Day(date).Format("2006-01-02")], nil
}

func (r *fakeAttendanceRepo) BulkCreate(_ context.Context, records []attendance.Attendance) (int, error) {
	inserted := 0
	for _, record := range records {
		if _, err := r.Create(context.Background(), record); err == nil {
			inserted++
		}
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

func (r *fakeEmployeeRepo) UpdateLeaveBalance(_ context.Context, _ string, _ employee.LeaveBalance) error {
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

type fakePayrollRepo struct {
	paidPeriods map[string]bool
}

func (r *fakePayrollRepo) CreatePayrollRecord(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	return record, nil
}

func (r *fakePayrollRepo) GetPayrollRecordByID(_ context.Context, _ string) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *fakePayrollRepo) GetPayrollRecordByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	if r.paidPeriods[fmt.Sprintf("%s:%d:%d", employeeID, month, year)] {
		return payroll.PayrollRecord{PaymentStatus: payroll.PaymentStatusPaid}, nil
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *fakePayrollRepo) ListPayrollRecords(_ context.Context, _ payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	return nil, 0, nil
}

func (r *fakePayrollRepo) ReplacePayrollRecord(_ context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	return record, nil
}

func (r *fakePayrollRepo) UpdatePaymentStatus(_ context.Context, _ string, _ payroll.PaymentStatus) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (r *fakePayrollRepo) DeletePayrollRecord(_ context.Context, _ string) error {
	return nil
}

func (r *fakePayrollRepo) GetPeriodSummary(_ context.Context, month, year int) (payroll.PeriodSummaryResponse, error) {
	return payroll.PeriodSummaryResponse{Month: month, Year: year}, nil
}

type testEnv struct {
	service        attendance.AttendanceService
	attendanceRepo *fakeAttendanceRepo
	employeeRepo   *fakeEmployeeRepo
	payrollRepo    *fakePayrollRepo
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	env := &testEnv{
		attendanceRepo: &fakeAttendanceRepo{
			records: make(map[string]attendance.Attendance),
			missing: make(map[string][]string),
		},
		employeeRepo: &fakeEmployeeRepo{employees: make(map[string]employee.Employee)},
		payrollRepo:  &fakePayrollRepo{paidPeriods: make(map[string]bool)},
	}
	env.service = NewService(
		env.attendanceRepo,
		env.employeeRepo,
		env.payrollRepo,
		slog.New(slog.DiscardHandler),
		func() time.Time { return now },
	)
	return env
}

func (e *testEnv) addEmployee(breakHours float64) employee.Employee {
	salary := employee.DefaultSalaryConfig(decimal.NewFromInt(50000))
	salary.BreakTimeHours = breakHours
	emp := employee.Employee{
		ID:       uuid.NewString(),
		IsActive: true,
		Salary:   &salary,
	}
	e.employeeRepo.employees[emp.ID] = emp
	return emp
}

// Monday 2025-06-02, 09:05 UTC.
var workdayMorning = time.Date(2025, time.June, 2, 9, 5, 0, 0, time.UTC)

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a present record for today", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		resp, err := env.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})

		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
		assert.Equal(t, "2025-06-02", resp.Date)
		require.NotNil(t, resp.CheckIn)
	})

	t.Run("second check-in on the same day is rejected", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		require.NoError(t, err)

		_, err = env.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	})

	t.Run("inactive employee cannot check in", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)
		emp.IsActive = false
		env.employeeRepo.employees[emp.ID] = emp

		_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	})
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()

	checkInAt := func(t *testing.T, env *testEnv, emp employee.Employee) {
		t.Helper()
		_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{EmployeeID: emp.ID})
		require.NoError(t, err)
	}

	t.Run("computes work hours minus break", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)
		checkInAt(t, env, emp)

		// 09:05 to 18:05 is 9h, minus a 1h break.
		evening := workdayMorning.Add(9 * time.Hour)
		env.service = NewService(env.attendanceRepo, env.employeeRepo, env.payrollRepo,
			slog.New(slog.DiscardHandler), func() time.Time { return evening })

		resp, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})

		require.NoError(t, err)
		assert.Equal(t, 8.0, resp.WorkHours)
		assert.Equal(t, string(attendance.StatusPresent), resp.Status)
		require.NotNil(t, resp.CheckOut)
	})

	t.Run("short day becomes half-day", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(0)
		checkInAt(t, env, emp)

		noon := workdayMorning.Add(3 * time.Hour)
		env.service = NewService(env.attendanceRepo, env.employeeRepo, env.payrollRepo,
			slog.New(slog.DiscardHandler), func() time.Time { return noon })

		resp, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})

		require.NoError(t, err)
		assert.Equal(t, 3.0, resp.WorkHours)
		assert.Equal(t, string(attendance.StatusHalfDay), resp.Status)
	})

	t.Run("check-out without check-in is rejected", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		_, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	})

	t.Run("double check-out is rejected", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)
		checkInAt(t, env, emp)

		_, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
		require.NoError(t, err)

		_, err = env.service.CheckOut(ctx, attendance.CheckOutRequest{EmployeeID: emp.ID})
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
	})
}

func TestMark(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an absence", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		resp, err := env.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2025-06-03",
			Status:     string(attendance.StatusAbsent),
		})

		require.NoError(t, err)
		assert.Equal(t, string(attendance.StatusAbsent), resp.Status)
	})

	t.Run("upserts an existing day", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		first, err := env.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2025-06-03",
			Status:     string(attendance.StatusAbsent),
		})
		require.NoError(t, err)

		category := string(attendance.LeaveCategoryPaid)
		second, err := env.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID:    emp.ID,
			Date:          "2025-06-03",
			Status:        string(attendance.StatusLeave),
			LeaveCategory: &category,
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, string(attendance.StatusLeave), second.Status)
		require.NotNil(t, second.LeaveCategory)
		assert.Equal(t, category, *second.LeaveCategory)
	})

	t.Run("leave without a category fails validation", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)

		_, err := env.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2025-06-03",
			Status:     string(attendance.StatusLeave),
		})
		assert.Error(t, err)
	})

	t.Run("paid period is closed for edits", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		emp := env.addEmployee(1)
		env.payrollRepo.paidPeriods[fmt.Sprintf("%s:%d:%d", emp.ID, 6, 2025)] = true

		_, err := env.service.Mark(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: emp.ID,
			Date:       "2025-06-03",
			Status:     string(attendance.StatusAbsent),
		})
		assert.ErrorIs(t, err, attendance.ErrRecordFinalized)
	})
}

func TestMarkAbsentees(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts absent records on a working day", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		env.attendanceRepo.missing["2025-06-02"] = []string{uuid.NewString(), uuid.NewString()}

		count, err := env.service.MarkAbsentees(ctx, workdayMorning)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Len(t, env.attendanceRepo.records, 2)
	})

	t.Run("weekend is a no-op", func(t *testing.T) {
		env := newTestEnv(t, workdayMorning)
		saturday := time.Date(2025, time.June, 7, 23, 0, 0, 0, time.UTC)
		env.attendanceRepo.missing["2025-06-07"] = []string{uuid.NewString()}

		count, err := env.service.MarkAbsentees(ctx, saturday)

		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, env.attendanceRepo.records)
	})
}
