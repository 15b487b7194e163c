package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pitchline/pitchline-api/internal/domain"
)

// Compile-time interface assertions.
var (
	_ TenantRepository     = (*PostgresTenantRepo)(nil)
	_ MembershipRepository = (*PostgresMembershipRepo)(nil)
	_ StatsRepository      = (*PostgresStatsRepo)(nil)
)

// notFound translates the driver's no-rows sentinel so callers only
// ever see domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// PostgresTenantRepo implements TenantRepository over pgx.
type PostgresTenantRepo struct {
	db *pgxpool.Pool
}

func NewPostgresTenantRepo(db *pgxpool.Pool) *PostgresTenantRepo {
	return &PostgresTenantRepo{db: db}
}

const selectTenantSQL = `SELECT id, slug, name, created_at, updated_at FROM tenants `

func (r *PostgresTenantRepo) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return r.scanTenant(r.db.QueryRow(ctx, selectTenantSQL+`WHERE id = $1`, id), "get tenant")
}

func (r *PostgresTenantRepo) GetBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	return r.scanTenant(r.db.QueryRow(ctx, selectTenantSQL+`WHERE slug = $1`, slug), "get tenant by slug")
}

func (r *PostgresTenantRepo) scanTenant(row pgx.Row, op string) (domain.Tenant, error) {
	var t domain.Tenant
	if err := row.Scan(&t.ID, &t.Slug, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return domain.Tenant{}, fmt.Errorf("%s: %w", op, notFound(err))
	}
	return t, nil
}

// PostgresMembershipRepo implements MembershipRepository.
type PostgresMembershipRepo struct {
	db *pgxpool.Pool
}

func NewPostgresMembershipRepo(db *pgxpool.Pool) *PostgresMembershipRepo {
	return &PostgresMembershipRepo{db: db}
}

const selectMembershipSQL = `SELECT principal_id, tenant_id, role, created_at FROM memberships `

func (r *PostgresMembershipRepo) Get(ctx context.Context, principalID, tenantID string) (domain.Membership, error) {
	row := r.db.QueryRow(ctx, selectMembershipSQL+`WHERE principal_id = $1 AND tenant_id = $2`, principalID, tenantID)
	var m domain.Membership
	if err := row.Scan(&m.PrincipalID, &m.TenantID, &m.Role, &m.CreatedAt); err != nil {
		return domain.Membership{}, fmt.Errorf("get membership: %w", notFound(err))
	}
	return m, nil
}

func (r *PostgresMembershipRepo) ListByPrincipal(ctx context.Context, principalID string) ([]domain.Membership, error) {
	rows, err := r.db.Query(ctx, selectMembershipSQL+`WHERE principal_id = $1 ORDER BY created_at`, principalID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.PrincipalID, &m.TenantID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}

// PostgresStatsRepo implements StatsRepository.
type PostgresStatsRepo struct {
	db *pgxpool.Pool
}

func NewPostgresStatsRepo(db *pgxpool.Pool) *PostgresStatsRepo {
	return &PostgresStatsRepo{db: db}
}

const dashboardStatsSQL = `SELECT
	(SELECT count(*) FROM players WHERE tenant_id = $1),
	(SELECT count(*) FROM scouting_requests WHERE tenant_id = $1 AND status = 'OPEN'),
	(SELECT count(*) FROM trials WHERE tenant_id = $1 AND status = 'SCHEDULED' AND scheduled_at >= now()),
	(SELECT count(*) FROM calendar_events WHERE tenant_id = $1 AND starts_at >= now() AND starts_at < now() + interval '7 days')`

func (r *PostgresStatsRepo) Dashboard(ctx context.Context, tenantID string) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	row := r.db.QueryRow(ctx, dashboardStatsSQL, tenantID)
	if err := row.Scan(&s.Players, &s.OpenRequests, &s.UpcomingTrials, &s.EventsThisWeek); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return s, nil
}
