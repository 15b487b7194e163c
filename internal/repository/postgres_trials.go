package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchline/pitchline-api/internal/domain"
)

var _ TrialRepository = (*PostgresTrialRepo)(nil)

// PostgresTrialRepo implements TrialRepository.
type PostgresTrialRepo struct {
	db *pgxpool.Pool
}

func NewPostgresTrialRepo(db *pgxpool.Pool) *PostgresTrialRepo {
	return &PostgresTrialRepo{db: db}
}

const trialColumns = `id, tenant_id, player_id, request_id, status, scheduled_at, location, rating, notes, created_at, updated_at`

const insertTrialSQL = `INSERT INTO trials (id, tenant_id, player_id, request_id, status, scheduled_at, location, rating, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + trialColumns

func (r *PostgresTrialRepo) Create(ctx context.Context, trial domain.Trial) (domain.Trial, error) {
	row := r.db.QueryRow(ctx, insertTrialSQL,
		trial.ID,
		trial.TenantID,
		trial.PlayerID,
		nullable(trial.RequestID),
		trial.Status,
		trial.ScheduledAt,
		trial.Location,
		trial.Rating,
		trial.Notes,
	)
	created, err := scanTrial(row)
	if err != nil {
		return domain.Trial{}, fmt.Errorf("create trial: %w", err)
	}
	return created, nil
}

func (r *PostgresTrialRepo) Get(ctx context.Context, tenantID, id string) (domain.Trial, error) {
	row := r.db.QueryRow(ctx, `SELECT `+trialColumns+` FROM trials WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	trial, err := scanTrial(row)
	if err != nil {
		return domain.Trial{}, fmt.Errorf("get trial: %w", notFound(err))
	}
	return trial, nil
}

func (r *PostgresTrialRepo) List(ctx context.Context, tenantID string, filter domain.TrialFilter) ([]domain.Trial, error) {
	sql := `SELECT ` + trialColumns + ` FROM trials WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.PlayerID != "" {
		args = append(args, filter.PlayerID)
		sql += ` AND player_id = $` + strconv.Itoa(len(args))
	}
	sql += ` ORDER BY scheduled_at`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()

	var trials []domain.Trial
	for rows.Next() {
		trial, err := scanTrial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		trials = append(trials, trial)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	return trials, nil
}

const updateTrialSQL = `UPDATE trials
SET player_id = $3, request_id = $4, status = $5, scheduled_at = $6, location = $7, rating = $8, notes = $9, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + trialColumns

func (r *PostgresTrialRepo) Update(ctx context.Context, trial domain.Trial) (domain.Trial, error) {
	row := r.db.QueryRow(ctx, updateTrialSQL,
		trial.TenantID,
		trial.ID,
		trial.PlayerID,
		nullable(trial.RequestID),
		trial.Status,
		trial.ScheduledAt,
		trial.Location,
		trial.Rating,
		trial.Notes,
	)
	updated, err := scanTrial(row)
	if err != nil {
		return domain.Trial{}, fmt.Errorf("update trial: %w", notFound(err))
	}
	return updated, nil
}

func (r *PostgresTrialRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trials WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete trial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete trial: %w", domain.ErrNotFound)
	}
	return nil
}

func scanTrial(row pgx.Row) (domain.Trial, error) {
	var t domain.Trial
	var requestID *string
	err := row.Scan(
		&t.ID,
		&t.TenantID,
		&t.PlayerID,
		&requestID,
		&t.Status,
		&t.ScheduledAt,
		&t.Location,
		&t.Rating,
		&t.Notes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if requestID != nil {
		t.RequestID = *requestID
	}
	return t, err
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
