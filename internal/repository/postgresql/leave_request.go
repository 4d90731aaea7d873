package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-leave-attendance/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-attendance/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.leave_type, lr.reason,
	lr.status, lr.total_days, lr.approved_by, lr.approved_at, lr.rejected_at,
	lr.cancelled_by, lr.cancelled_at, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row, extra ...any) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	dest := []any{
		&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate, &lr.LeaveType, &lr.Reason,
		&lr.Status, &lr.TotalDays, &lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectedAt,
		&lr.CancelledBy, &lr.CancelledAt, &lr.CreatedAt, &lr.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}
	request.ID = id.String()

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, end_date, leave_type, reason, status, total_days,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.StartDate, request.EndDate,
		request.LeaveType, request.Reason, request.Status, request.TotalDays,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, id, "")
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return r.get(ctx, id, " FOR UPDATE OF lr")
}

func (r *leaveRequestRepositoryImpl) get(ctx context.Context, id, lock string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, e.department
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1` + lock

	var employeeName string
	var department *string
	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id), &employeeName, &department)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request %s: %w", id, err)
	}

	req.EmployeeName = &employeeName
	req.Department = department

	return req, nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET start_date = $1, end_date = $2, leave_type = $3, reason = $4,
			status = $5, total_days = $6,
			approved_by = $7, approved_at = $8, rejected_at = $9,
			cancelled_by = $10, cancelled_at = $11,
			updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		request.StartDate, request.EndDate, request.LeaveType, request.Reason,
		request.Status, request.TotalDays,
		request.ApprovedBy, request.ApprovedAt, request.RejectedAt,
		request.CancelledBy, request.CancelledAt,
		request.ID,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request %s: %w", request.ID, err)
	}

	return request, nil
}

// buildLeaveWhere renders filter as a WHERE clause over leave_requests lr
// joined with employees e.
func buildLeaveWhere(filter leave.LeaveFilter) (string, []any) {
	where := "WHERE 1=1"
	args := []any{}
	argIdx := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.LeaveType != nil {
		where += fmt.Sprintf(" AND lr.leave_type = $%d", argIdx)
		args = append(args, *filter.LeaveType)
		argIdx++
	}

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Department != nil {
		where += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	// Overlap with [StartDate, EndDate]
	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND lr.end_date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND lr.start_date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Year != nil {
		where += fmt.Sprintf(" AND EXTRACT(YEAR FROM lr.start_date) = $%d", argIdx)
		args = append(args, *filter.Year)
	}

	return where, args
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildLeaveWhere(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	order := "DESC"
	if filter.OldestFirst {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name, e.department
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		%s
		ORDER BY lr.created_at %s, lr.id %s
	`, leaveRequestColumns, where, order, order)

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, (page-1)*filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		var employeeName string
		var department *string
		lr, err := scanLeaveRequest(rows, &employeeName, &department)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.EmployeeName = &employeeName
		lr.Department = department
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, total, nil
}

// Totals implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Totals(ctx context.Context, filter leave.LeaveFilter) ([]leave.TypeStatusTotal, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildLeaveWhere(filter)
	query := `
		SELECT lr.leave_type, lr.status, COUNT(*), COALESCE(SUM(lr.total_days), 0)
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		` + where + `
		GROUP BY lr.leave_type, lr.status
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leave requests: %w", err)
	}
	defer rows.Close()

	var totals []leave.TypeStatusTotal
	for rows.Next() {
		var t leave.TypeStatusTotal
		if err := rows.Scan(&t.LeaveType, &t.Status, &t.Requests, &t.Days); err != nil {
			return nil, fmt.Errorf("failed to scan leave totals: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave totals: %w", err)
	}

	return totals, nil
}
