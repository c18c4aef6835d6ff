package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// ScheduleRepository persists weekly recurring class blocks.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	Delete(ctx context.Context, id string) error
	ListByStaff(ctx context.Context, staffID string) ([]domain.Schedule, error)
	ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.Schedule, error)
}

type scheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository instantiates the repository.
func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepository{pool: pool}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        INSERT INTO schedules (staff_id, day_of_week, start_time, end_time, subject)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		schedule.StaffID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Subject,
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	const query = `
        UPDATE schedules
        SET day_of_week=$1, start_time=$2, end_time=$3, subject=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Subject,
		schedule.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *scheduleRepository) ListByStaff(ctx context.Context, staffID string) ([]domain.Schedule, error) {
	const query = `
        SELECT id, staff_id, day_of_week, start_time, end_time, subject, created_at, updated_at
        FROM schedules WHERE staff_id=$1
        ORDER BY day_of_week, start_time`

	rows, err := r.pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSchedules(rows)
}

func (r *scheduleRepository) ListByStaffIDs(ctx context.Context, staffIDs []string) (map[string][]domain.Schedule, error) {
	result := make(map[string][]domain.Schedule, len(staffIDs))
	if len(staffIDs) == 0 {
		return result, nil
	}

	const query = `
        SELECT id, staff_id, day_of_week, start_time, end_time, subject, created_at, updated_at
        FROM schedules WHERE staff_id = ANY($1)
        ORDER BY day_of_week, start_time`

	rows, err := r.pool.Query(ctx, query, staffIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules, err := scanSchedules(rows)
	if err != nil {
		return nil, err
	}
	for _, sched := range schedules {
		result[sched.StaffID] = append(result[sched.StaffID], sched)
	}
	return result, nil
}

func scanSchedules(rows pgx.Rows) ([]domain.Schedule, error) {
	var result []domain.Schedule
	for rows.Next() {
		var sched domain.Schedule
		if err := rows.Scan(
			&sched.ID,
			&sched.StaffID,
			&sched.DayOfWeek,
			&sched.StartTime,
			&sched.EndTime,
			&sched.Subject,
			&sched.CreatedAt,
			&sched.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sched)
	}
	return result, rows.Err()
}
