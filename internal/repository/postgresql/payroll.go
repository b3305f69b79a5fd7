package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.basic_salary, p.allowances,
	p.deductions, p.bonuses, p.overtime_pay, p.lop_days, p.lop_deduction,
	p.attendance_summary, p.gross_salary, p.net_salary, p.payment_status,
	p.payment_date, p.created_by, p.created_at, p.updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var p payroll.PayrollRecord
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances,
		&p.Deductions, &p.Bonuses, &p.OvertimePay, &p.LopDays, &p.LopDeduction,
		&p.AttendanceSummary, &p.GrossSalary, &p.NetSalary, &p.PaymentStatus,
		&p.PaymentDate, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO payroll_records (
			employee_id, month, year, basic_salary, allowances, deductions,
			bonuses, overtime_pay, lop_days, lop_deduction, attendance_summary,
			gross_salary, net_salary, payment_status, payment_date, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING %s
	`, strings.ReplaceAll(payrollColumns, "p.", ""))

	created, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.BasicSalary,
		record.Allowances, record.Deductions, record.Bonuses, record.OvertimePay,
		record.LopDays, record.LopDeduction, record.AttendanceSummary,
		record.GrossSalary, record.NetSalary, record.PaymentStatus,
		record.PaymentDate, record.CreatedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "payroll_records_employee_period_key") {
			return payroll.PayrollRecord{}, payroll.ErrDuplicatePayrollPeriod
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.first_name || ' ' || e.last_name, e.employee_code
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`, payrollColumns)

	var record payroll.PayrollRecord
	err := q.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.Month, &record.Year,
		&record.BasicSalary, &record.Allowances, &record.Deductions,
		&record.Bonuses, &record.OvertimePay, &record.LopDays, &record.LopDeduction,
		&record.AttendanceSummary, &record.GrossSalary, &record.NetSalary,
		&record.PaymentStatus, &record.PaymentDate, &record.CreatedBy,
		&record.CreatedAt, &record.UpdatedAt,
		&record.EmployeeName, &record.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) GetPayrollRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records p
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3
	`, payrollColumns)

	record, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Month != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.month = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Year != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.year = $%d", argPos))
		args = append(args, *filter.Year)
		argPos++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.payment_status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM payroll_records p WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.first_name || ' ' || e.last_name, e.employee_code
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.year DESC, p.month DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, payrollColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var record payroll.PayrollRecord
		err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.Month, &record.Year,
			&record.BasicSalary, &record.Allowances, &record.Deductions,
			&record.Bonuses, &record.OvertimePay, &record.LopDays, &record.LopDeduction,
			&record.AttendanceSummary, &record.GrossSalary, &record.NetSalary,
			&record.PaymentStatus, &record.PaymentDate, &record.CreatedBy,
			&record.CreatedAt, &record.UpdatedAt,
			&record.EmployeeName, &record.EmployeeCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}
	return records, total, rows.Err()
}

func (r *payrollRepository) ReplacePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payroll_records SET
			basic_salary = $1, allowances = $2, deductions = $3, bonuses = $4,
			overtime_pay = $5, lop_days = $6, lop_deduction = $7,
			attendance_summary = $8, gross_salary = $9, net_salary = $10,
			payment_status = $11, payment_date = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING %s
	`, strings.ReplaceAll(payrollColumns, "p.", ""))

	updated, err := scanPayrollRecord(q.QueryRow(ctx, query,
		record.BasicSalary, record.Allowances, record.Deductions, record.Bonuses,
		record.OvertimePay, record.LopDays, record.LopDeduction,
		record.AttendanceSummary, record.GrossSalary, record.NetSalary,
		record.PaymentStatus, record.PaymentDate, record.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to replace payroll record: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) UpdatePaymentStatus(ctx context.Context, id string, status payroll.PaymentStatus) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	// payment_date is set exactly once, when the record reaches Paid.
	query := fmt.Sprintf(`
		UPDATE payroll_records SET
			payment_status = $1,
			payment_date = CASE WHEN $1 = 'Paid' AND payment_date IS NULL THEN NOW() ELSE payment_date END,
			updated_at = NOW()
		WHERE id = $2
		RETURNING %s
	`, strings.ReplaceAll(payrollColumns, "p.", ""))

	updated, err := scanPayrollRecord(q.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payment status: %w", err)
	}
	return updated, nil
}

func (r *payrollRepository) DeletePayrollRecord(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM payroll_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}
	return nil
}

func (r *payrollRepository) GetPeriodSummary(ctx context.Context, month, year int) (payroll.PeriodSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(basic_salary), 0),
			COALESCE(SUM((allowances->>'hra')::numeric + (allowances->>'transport')::numeric
				+ (allowances->>'medical')::numeric + (allowances->>'other')::numeric), 0),
			COALESCE(SUM((deductions->>'tax')::numeric + (deductions->>'provident_fund')::numeric
				+ (deductions->>'insurance')::numeric + (deductions->>'other')::numeric), 0),
			COALESCE(SUM(lop_deduction), 0),
			COALESCE(SUM(gross_salary), 0),
			COALESCE(SUM(net_salary), 0),
			COUNT(*) FILTER (WHERE payment_status = 'Pending'),
			COUNT(*) FILTER (WHERE payment_status = 'Processed'),
			COUNT(*) FILTER (WHERE payment_status = 'Paid')
		FROM payroll_records
		WHERE month = $1 AND year = $2
	`

	summary := payroll.PeriodSummaryResponse{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees, &summary.TotalBasicSalary, &summary.TotalAllowances,
		&summary.TotalDeductions, &summary.TotalLopDeduction, &summary.TotalGrossSalary,
		&summary.TotalNetSalary, &summary.PendingCount, &summary.ProcessedCount,
		&summary.PaidCount,
	)
	if err != nil {
		return payroll.PeriodSummaryResponse{}, fmt.Errorf("failed to get period summary: %w", err)
	}
	return summary, nil
}
