package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// EventFilter captures event listing parameters.
type EventFilter struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	Cancelled *bool
	Limit     int
	Offset    int
}

// EventRepository encapsulates event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context, filter EventFilter) ([]domain.Event, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates the repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (name, location, event_date, start_time, end_time, cancelled_flag, ccs_only_flag, ignore_conflicts_flag)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.Name,
		event.Location,
		domain.DateOnly(event.Date),
		event.StartTime,
		event.EndTime,
		event.Cancelled,
		event.CCSOnly,
		event.IgnoreConflicts,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events
        SET name=$1, location=$2, event_date=$3, start_time=$4, end_time=$5,
            cancelled_flag=$6, ccs_only_flag=$7, ignore_conflicts_flag=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		event.Name,
		event.Location,
		domain.DateOnly(event.Date),
		event.StartTime,
		event.EndTime,
		event.Cancelled,
		event.CCSOnly,
		event.IgnoreConflicts,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the event; assignments cascade at the schema level.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, name, location, event_date, start_time, end_time,
               cancelled_flag, ccs_only_flag, ignore_conflicts_flag, created_at, updated_at
        FROM events WHERE id=$1`

	var event domain.Event
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.Location,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.Cancelled,
		&event.CCSOnly,
		&event.IgnoreConflicts,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	query := `
        SELECT id, name, location, event_date, start_time, end_time,
               cancelled_flag, ccs_only_flag, ignore_conflicts_flag, created_at, updated_at
        FROM events`
	args := []any{}
	clauses := []string{}

	if filter.DateFrom != nil {
		args = append(args, domain.DateOnly(*filter.DateFrom))
		clauses = append(clauses, fmt.Sprintf("event_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, domain.DateOnly(*filter.DateTo))
		clauses = append(clauses, fmt.Sprintf("event_date <= $%d", len(args)))
	}
	if filter.Cancelled != nil {
		args = append(args, *filter.Cancelled)
		clauses = append(clauses, fmt.Sprintf("cancelled_flag=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY event_date, start_time"
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.Location,
			&event.Date,
			&event.StartTime,
			&event.EndTime,
			&event.Cancelled,
			&event.CCSOnly,
			&event.IgnoreConflicts,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
