package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchline/pitchline-api/internal/domain"
)

var _ RequestRepository = (*PostgresRequestRepo)(nil)

// PostgresRequestRepo implements RequestRepository.
type PostgresRequestRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRequestRepo(db *pgxpool.Pool) *PostgresRequestRepo {
	return &PostgresRequestRepo{db: db}
}

const requestColumns = `id, tenant_id, title, club, position, status, min_age, max_age, budget, notes, created_at, updated_at`

const insertRequestSQL = `INSERT INTO scouting_requests (id, tenant_id, title, club, position, status, min_age, max_age, budget, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + requestColumns

func (r *PostgresRequestRepo) Create(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error) {
	row := r.db.QueryRow(ctx, insertRequestSQL,
		req.ID,
		req.TenantID,
		req.Title,
		req.Club,
		req.Position,
		req.Status,
		req.MinAge,
		req.MaxAge,
		req.Budget,
		req.Notes,
	)
	created, err := scanRequest(row)
	if err != nil {
		return domain.ScoutingRequest{}, fmt.Errorf("create scouting request: %w", err)
	}
	return created, nil
}

func (r *PostgresRequestRepo) Get(ctx context.Context, tenantID, id string) (domain.ScoutingRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM scouting_requests WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	req, err := scanRequest(row)
	if err != nil {
		return domain.ScoutingRequest{}, fmt.Errorf("get scouting request: %w", notFound(err))
	}
	return req, nil
}

func (r *PostgresRequestRepo) List(ctx context.Context, tenantID string, filter domain.RequestFilter) ([]domain.ScoutingRequest, error) {
	sql := `SELECT ` + requestColumns + ` FROM scouting_requests WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		sql += ` AND position = $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := strconv.Itoa(len(args))
		sql += ` AND (lower(title) LIKE $` + n + ` OR lower(club) LIKE $` + n + `)`
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list scouting requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ScoutingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scouting request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scouting requests: %w", err)
	}
	return requests, nil
}

const updateRequestSQL = `UPDATE scouting_requests
SET title = $3, club = $4, position = $5, status = $6, min_age = $7, max_age = $8, budget = $9, notes = $10, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + requestColumns

func (r *PostgresRequestRepo) Update(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error) {
	row := r.db.QueryRow(ctx, updateRequestSQL,
		req.TenantID,
		req.ID,
		req.Title,
		req.Club,
		req.Position,
		req.Status,
		req.MinAge,
		req.MaxAge,
		req.Budget,
		req.Notes,
	)
	updated, err := scanRequest(row)
	if err != nil {
		return domain.ScoutingRequest{}, fmt.Errorf("update scouting request: %w", notFound(err))
	}
	return updated, nil
}

func (r *PostgresRequestRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM scouting_requests WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete scouting request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete scouting request: %w", domain.ErrNotFound)
	}
	return nil
}

func scanRequest(row pgx.Row) (domain.ScoutingRequest, error) {
	var s domain.ScoutingRequest
	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Title,
		&s.Club,
		&s.Position,
		&s.Status,
		&s.MinAge,
		&s.MaxAge,
		&s.Budget,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
