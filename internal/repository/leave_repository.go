package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// LeaveRepository persists inclusive leave-date ranges.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveDate) error
	Delete(ctx context.Context, id string) error
	ListByStaff(ctx context.Context, staffID string) ([]domain.LeaveDate, error)
	ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.LeaveDate, error)
	DeleteEndedBefore(ctx context.Context, today time.Time) (int64, error)
}

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository instantiates the repository.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveDate) error {
	const query = `
        INSERT INTO leave_dates (staff_id, start_date, end_date)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		leave.StaffID,
		domain.DateOnly(leave.StartDate),
		domain.DateOnly(leave.EndDate),
	).Scan(&leave.ID, &leave.CreatedAt)
}

func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leave_dates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leaveRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.LeaveDate, error) {
	const query = `
        SELECT id, staff_id, start_date, end_date, created_at
        FROM leave_dates WHERE staff_id=$1
        ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func (r *leaveRepository) ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.LeaveDate, error) {
	result := make(map[string][]domain.LeaveDate, len(staffIDs))
	if len(staffIDs) == 0 {
		return result, nil
	}

	const query = `
        SELECT id, staff_id, start_date, end_date, created_at
        FROM leave_dates WHERE staff_id = ANY($1)
        ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, staffIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaves, err := scanLeaves(rows)
	if err != nil {
		return nil, err
	}
	for _, leave := range leaves {
		result[leave.StaffID] = append(result[leave.StaffID], leave)
	}
	return result, nil
}

// DeleteEndedBefore removes all ranges whose end date precedes today.
// Comparison is by calendar date, so a leave ending today survives.
func (r *leaveRepository) DeleteEndedBefore(ctx context.Context, today time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leave_dates WHERE end_date < $1`, domain.DateOnly(today))
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanLeaves(rows pgx.Rows) ([]domain.LeaveDate, error) {
	var result []domain.LeaveDate
	for rows.Next() {
		var leave domain.LeaveDate
		if err := rows.Scan(
			&leave.ID,
			&leave.StaffID,
			&leave.StartDate,
			&leave.EndDate,
			&leave.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, leave)
	}
	return result, rows.Err()
}
