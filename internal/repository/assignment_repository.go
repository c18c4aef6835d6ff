package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// ErrVersionConflict signals that a conditional update lost the race: the
// row changed since it was read. Callers re-read and observe the winner's
// state instead of writing a second time.
var ErrVersionConflict = errors.New("assignment version conflict")

// PendingAssignment is a sweep candidate joined with the display fields the
// sweeper needs for its event check and the removal email.
type PendingAssignment struct {
	Assignment domain.StaffAssignment
	Event      domain.Event
	StaffName  string
	StaffEmail string
}

// AssignmentRepository encapsulates staff assignment persistence. Identity
// is the (eventID, staffID) pair.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.StaffAssignment) error
	Get(ctx context.Context, eventID, staffID string) (*domain.StaffAssignment, error)
	GetByToken(ctx context.Context, token string) (*domain.StaffAssignment, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.StaffAssignment, error)
	Delete(ctx context.Context, eventID, staffID string) error
	UpdateConfirmation(ctx context.Context, assignment *domain.StaffAssignment) error
	UpdateInvitationTimestamps(ctx context.Context, assignment *domain.StaffAssignment) error
	ListPendingInvitedBefore(ctx context.Context, cutoff time.Time) ([]PendingAssignment, error)
}

type assignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository instantiates the repository.
func NewAssignmentRepository(pool *pgxpool.Pool) AssignmentRepository {
	return &assignmentRepository{pool: pool}
}

const assignmentColumns = `
        event_id, staff_id, role, confirmation_status, confirmation_token,
        token_expires_at, confirmed_at, declined_at, last_invitation_sent_at,
        manual_invitation_sent_at, version, created_at, updated_at`

func (r *assignmentRepository) Create(ctx context.Context, assignment *domain.StaffAssignment) error {
	const query = `
        INSERT INTO staff_assignments (event_id, staff_id, role, confirmation_status)
        VALUES ($1,$2,$3,$4)
        RETURNING version, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		assignment.EventID,
		assignment.StaffID,
		assignment.Role,
		assignment.ConfirmationStatus,
	).Scan(&assignment.Version, &assignment.CreatedAt, &assignment.UpdatedAt)
}

func (r *assignmentRepository) Get(ctx context.Context, eventID, staffID string) (*domain.StaffAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
        FROM staff_assignments WHERE event_id=$1 AND staff_id=$2`
	return r.fetchSingle(ctx, query, eventID, staffID)
}

func (r *assignmentRepository) GetByToken(ctx context.Context, token string) (*domain.StaffAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
        FROM staff_assignments WHERE confirmation_token=$1`
	return r.fetchSingle(ctx, query, token)
}

func (r *assignmentRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.StaffAssignment, error) {
	var a domain.StaffAssignment
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.EventID,
		&a.StaffID,
		&a.Role,
		&a.ConfirmationStatus,
		&a.ConfirmationToken,
		&a.TokenExpiresAt,
		&a.ConfirmedAt,
		&a.DeclinedAt,
		&a.LastInvitationSentAt,
		&a.ManualInvitationSentAt,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.StaffAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
        FROM staff_assignments WHERE event_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffAssignment
	for rows.Next() {
		var a domain.StaffAssignment
		if err := rows.Scan(
			&a.EventID,
			&a.StaffID,
			&a.Role,
			&a.ConfirmationStatus,
			&a.ConfirmationToken,
			&a.TokenExpiresAt,
			&a.ConfirmedAt,
			&a.DeclinedAt,
			&a.LastInvitationSentAt,
			&a.ManualInvitationSentAt,
			&a.Version,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *assignmentRepository) Delete(ctx context.Context, eventID, staffID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM staff_assignments WHERE event_id=$1 AND staff_id=$2`,
		eventID, staffID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateConfirmation writes the confirmation sub-fields guarded by the
// version read with the row. Zero rows affected means another writer got
// there first and the caller must re-read.
func (r *assignmentRepository) UpdateConfirmation(ctx context.Context, assignment *domain.StaffAssignment) error {
	const query = `
        UPDATE staff_assignments
        SET confirmation_status=$1, confirmation_token=$2, token_expires_at=$3,
            confirmed_at=$4, declined_at=$5, version=version+1, updated_at=NOW()
        WHERE event_id=$6 AND staff_id=$7 AND version=$8
        RETURNING version`

	err := r.pool.QueryRow(ctx, query,
		assignment.ConfirmationStatus,
		assignment.ConfirmationToken,
		assignment.TokenExpiresAt,
		assignment.ConfirmedAt,
		assignment.DeclinedAt,
		assignment.EventID,
		assignment.StaffID,
		assignment.Version,
	).Scan(&assignment.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrVersionConflict
	}
	return err
}

func (r *assignmentRepository) UpdateInvitationTimestamps(ctx context.Context, assignment *domain.StaffAssignment) error {
	const query = `
        UPDATE staff_assignments
        SET last_invitation_sent_at=$1, manual_invitation_sent_at=$2, updated_at=NOW()
        WHERE event_id=$3 AND staff_id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		assignment.LastInvitationSentAt,
		assignment.ManualInvitationSentAt,
		assignment.EventID,
		assignment.StaffID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListPendingInvitedBefore selects still-pending assignments whose last
// invitation went out before cutoff, joined with their event and staff
// contact fields for the sweeper.
func (r *assignmentRepository) ListPendingInvitedBefore(ctx context.Context, cutoff time.Time) ([]PendingAssignment, error) {
	const query = `
        SELECT a.event_id, a.staff_id, a.role, a.confirmation_status, a.confirmation_token,
               a.token_expires_at, a.confirmed_at, a.declined_at, a.last_invitation_sent_at,
               a.manual_invitation_sent_at, a.version, a.created_at, a.updated_at,
               e.id, e.name, e.location, e.event_date, e.start_time, e.end_time,
               e.cancelled_flag, e.ccs_only_flag, e.ignore_conflicts_flag, e.created_at, e.updated_at,
               s.name, s.email
        FROM staff_assignments a
        JOIN events e ON e.id = a.event_id
        JOIN staff_members s ON s.id = a.staff_id
        WHERE a.confirmation_status=$1
          AND a.last_invitation_sent_at IS NOT NULL
          AND a.last_invitation_sent_at < $2
        ORDER BY a.last_invitation_sent_at`

	rows, err := r.pool.Query(ctx, query, domain.ConfirmationPending, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PendingAssignment
	for rows.Next() {
		var p PendingAssignment
		if err := rows.Scan(
			&p.Assignment.EventID,
			&p.Assignment.StaffID,
			&p.Assignment.Role,
			&p.Assignment.ConfirmationStatus,
			&p.Assignment.ConfirmationToken,
			&p.Assignment.TokenExpiresAt,
			&p.Assignment.ConfirmedAt,
			&p.Assignment.DeclinedAt,
			&p.Assignment.LastInvitationSentAt,
			&p.Assignment.ManualInvitationSentAt,
			&p.Assignment.Version,
			&p.Assignment.CreatedAt,
			&p.Assignment.UpdatedAt,
			&p.Event.ID,
			&p.Event.Name,
			&p.Event.Location,
			&p.Event.Date,
			&p.Event.StartTime,
			&p.Event.EndTime,
			&p.Event.Cancelled,
			&p.Event.CCSOnly,
			&p.Event.IgnoreConflicts,
			&p.Event.CreatedAt,
			&p.Event.UpdatedAt,
			&p.StaffName,
			&p.StaffEmail,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
