package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, category, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, category, start_date, end_date, reason, status,
			reviewed_by, reviewed_at, review_note, created_at, updated_at
	`

	var created leave.LeaveRequest
	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Category, request.StartDate,
		request.EndDate, request.Reason, request.Status,
	).Scan(
		&created.ID, &created.EmployeeID, &created.Category, &created.StartDate,
		&created.EndDate, &created.Reason, &created.Status, &created.ReviewedBy,
		&created.ReviewedAt, &created.ReviewNote, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.category, l.start_date, l.end_date, l.reason,
			l.status, l.reviewed_by, l.reviewed_at, l.review_note, l.created_at, l.updated_at,
			e.first_name || ' ' || e.last_name, e.employee_code
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.id = $1
	`

	var request leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.Category, &request.StartDate,
		&request.EndDate, &request.Reason, &request.Status, &request.ReviewedBy,
		&request.ReviewedAt, &request.ReviewNote, &request.CreatedAt, &request.UpdatedAt,
		&request.EmployeeName, &request.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return request, nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("l.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("l.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.Category != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("l.category = $%d", argPos))
		args = append(args, *filter.Category)
		argPos++
	}

	where := strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leave_requests l WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.category, l.start_date, l.end_date, l.reason,
			l.status, l.reviewed_by, l.reviewed_at, l.review_note, l.created_at, l.updated_at,
			e.first_name || ' ' || e.last_name, e.employee_code
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var request leave.LeaveRequest
		err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.Category, &request.StartDate,
			&request.EndDate, &request.Reason, &request.Status, &request.ReviewedBy,
			&request.ReviewedAt, &request.ReviewNote, &request.CreatedAt, &request.UpdatedAt,
			&request.EmployeeName, &request.EmployeeCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, total, rows.Err()
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, reviewerID string, note *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			status = $1, reviewed_by = $2, reviewed_at = NOW(), review_note = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, status, reviewerID, note, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('Pending', 'Approved')
			  AND start_date <= $3 AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	return exists, nil
}
