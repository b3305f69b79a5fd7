package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.status, a.check_in, a.check_out,
	a.work_hours, a.leave_category, a.remarks, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
		&a.WorkHours, &a.LeaveCategory, &a.Remarks, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO attendances (employee_id, date, status, check_in, check_out, work_hours, leave_category, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, strings.ReplaceAll(attendanceColumns, "a.", ""))

	created, err := scanAttendance(q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.Status, record.CheckIn,
		record.CheckOut, record.WorkHours, record.LeaveCategory, record.Remarks,
	))
	if err != nil {
		if strings.Contains(err.Error(), "attendances_employee_id_date_key") {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date = $2
	`, attendanceColumns)

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, attendance.Day(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

func (r *attendanceRepository) Update(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE attendances SET
			status = $1, check_in = $2, check_out = $3, work_hours = $4,
			leave_category = $5, remarks = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING %s
	`, strings.ReplaceAll(attendanceColumns, "a.", ""))

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		record.Status, record.CheckIn, record.CheckOut, record.WorkHours,
		record.LeaveCategory, record.Remarks, record.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.employee_id = $1 AND a.date >= $2 AND a.date < $3
		ORDER BY a.date
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendances a WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.first_name || ' ' || e.last_name, e.employee_code
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
			&a.WorkHours, &a.LeaveCategory, &a.Remarks, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName, &a.EmployeeCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}
	return records, total, rows.Err()
}

func (r *attendanceRepository) EmployeeIDsWithoutRecord(ctx context.Context, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.is_active = TRUE AND e.deleted_at IS NULL
		  AND NOT EXISTS (
			SELECT 1 FROM attendances a
			WHERE a.employee_id = e.id AND a.date = $1
		  )
	`

	rows, err := q.Query(ctx, query, attendance.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to find employees without attendance: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.Attendance) (int, error) {
	q := GetQuerier(ctx, r.db)

	inserted := 0
	for _, record := range records {
		tag, err := q.Exec(ctx, `
			INSERT INTO attendances (employee_id, date, status, leave_category, remarks)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (employee_id, date) DO NOTHING
		`, record.EmployeeID, record.Date, record.Status, record.LeaveCategory, record.Remarks)
		if err != nil {
			return inserted, fmt.Errorf("failed to bulk create attendance: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
