package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchline/pitchline-api/internal/domain"
)

var _ EventRepository = (*PostgresEventRepo)(nil)

// PostgresEventRepo implements EventRepository.
type PostgresEventRepo struct {
	db *pgxpool.Pool
}

func NewPostgresEventRepo(db *pgxpool.Pool) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

const eventColumns = `id, tenant_id, trial_id, kind, title, location, starts_at, ends_at, notes, created_at, updated_at`

const insertEventSQL = `INSERT INTO calendar_events (id, tenant_id, trial_id, kind, title, location, starts_at, ends_at, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + eventColumns

func (r *PostgresEventRepo) Create(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error) {
	row := r.db.QueryRow(ctx, insertEventSQL,
		event.ID,
		event.TenantID,
		nullable(event.TrialID),
		event.Kind,
		event.Title,
		event.Location,
		event.StartsAt,
		event.EndsAt,
		event.Notes,
	)
	created, err := scanEvent(row)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (r *PostgresEventRepo) Get(ctx context.Context, tenantID, id string) (domain.CalendarEvent, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	event, err := scanEvent(row)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("get event: %w", notFound(err))
	}
	return event, nil
}

func (r *PostgresEventRepo) GetByTrialID(ctx context.Context, tenantID, trialID string) (domain.CalendarEvent, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE tenant_id = $1 AND trial_id = $2`, tenantID, trialID)
	event, err := scanEvent(row)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("get event by trial: %w", notFound(err))
	}
	return event, nil
}

func (r *PostgresEventRepo) List(ctx context.Context, tenantID string, filter domain.EventFilter) ([]domain.CalendarEvent, error) {
	sql := `SELECT ` + eventColumns + ` FROM calendar_events WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Kind != "" {
		args = append(args, filter.Kind)
		sql += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		sql += ` AND starts_at >= $` + strconv.Itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		sql += ` AND starts_at < $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY starts_at`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.CalendarEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

const updateEventSQL = `UPDATE calendar_events
SET kind = $3, title = $4, location = $5, starts_at = $6, ends_at = $7, notes = $8, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + eventColumns

func (r *PostgresEventRepo) Update(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error) {
	row := r.db.QueryRow(ctx, updateEventSQL,
		event.TenantID,
		event.ID,
		event.Kind,
		event.Title,
		event.Location,
		event.StartsAt,
		event.EndsAt,
		event.Notes,
	)
	updated, err := scanEvent(row)
	if err != nil {
		return domain.CalendarEvent{}, fmt.Errorf("update event: %w", notFound(err))
	}
	return updated, nil
}

func (r *PostgresEventRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_events WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete event: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresEventRepo) DeleteByTrialID(ctx context.Context, tenantID, trialID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM calendar_events WHERE tenant_id = $1 AND trial_id = $2`, tenantID, trialID); err != nil {
		return fmt.Errorf("delete event by trial: %w", err)
	}
	return nil
}

func scanEvent(row pgx.Row) (domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var trialID *string
	err := row.Scan(
		&e.ID,
		&e.TenantID,
		&trialID,
		&e.Kind,
		&e.Title,
		&e.Location,
		&e.StartsAt,
		&e.EndsAt,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if trialID != nil {
		e.TrialID = *trialID
	}
	return e, err
}
