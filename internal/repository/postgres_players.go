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

var _ PlayerRepository = (*PostgresPlayerRepo)(nil)

// PostgresPlayerRepo implements PlayerRepository.
type PostgresPlayerRepo struct {
	db *pgxpool.Pool
}

func NewPostgresPlayerRepo(db *pgxpool.Pool) *PostgresPlayerRepo {
	return &PostgresPlayerRepo{db: db}
}

const playerColumns = `id, tenant_id, first_name, last_name, position, club, nationality, birth_date, rating, notes, created_at, updated_at`

const insertPlayerSQL = `INSERT INTO players (id, tenant_id, first_name, last_name, position, club, nationality, birth_date, rating, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + playerColumns

func (r *PostgresPlayerRepo) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	row := r.db.QueryRow(ctx, insertPlayerSQL,
		player.ID,
		player.TenantID,
		player.FirstName,
		player.LastName,
		player.Position,
		player.Club,
		player.Nationality,
		player.BirthDate,
		player.Rating,
		player.Notes,
	)
	created, err := scanPlayer(row)
	if err != nil {
		return domain.Player{}, fmt.Errorf("create player: %w", err)
	}
	return created, nil
}

func (r *PostgresPlayerRepo) Get(ctx context.Context, tenantID, id string) (domain.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	player, err := scanPlayer(row)
	if err != nil {
		return domain.Player{}, fmt.Errorf("get player: %w", notFound(err))
	}
	return player, nil
}

func (r *PostgresPlayerRepo) List(ctx context.Context, tenantID string, filter domain.PlayerFilter) ([]domain.Player, error) {
	sql := `SELECT ` + playerColumns + ` FROM players WHERE tenant_id = $1`
	args := []any{tenantID}

	if filter.Position != "" {
		args = append(args, filter.Position)
		sql += ` AND position = $` + strconv.Itoa(len(args))
	}
	if filter.Club != "" {
		args = append(args, filter.Club)
		sql += ` AND club = $` + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := strconv.Itoa(len(args))
		sql += ` AND (lower(first_name) LIKE $` + n + ` OR lower(last_name) LIKE $` + n + `)`
	}
	sql += ` ORDER BY last_name, first_name`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

const updatePlayerSQL = `UPDATE players
SET first_name = $3, last_name = $4, position = $5, club = $6, nationality = $7, birth_date = $8, rating = $9, notes = $10, updated_at = now()
WHERE tenant_id = $1 AND id = $2
RETURNING ` + playerColumns

func (r *PostgresPlayerRepo) Update(ctx context.Context, player domain.Player) (domain.Player, error) {
	row := r.db.QueryRow(ctx, updatePlayerSQL,
		player.TenantID,
		player.ID,
		player.FirstName,
		player.LastName,
		player.Position,
		player.Club,
		player.Nationality,
		player.BirthDate,
		player.Rating,
		player.Notes,
	)
	updated, err := scanPlayer(row)
	if err != nil {
		return domain.Player{}, fmt.Errorf("update player: %w", notFound(err))
	}
	return updated, nil
}

func (r *PostgresPlayerRepo) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM players WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete player: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPlayer(row pgx.Row) (domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.FirstName,
		&p.LastName,
		&p.Position,
		&p.Club,
		&p.Nationality,
		&p.BirthDate,
		&p.Rating,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
