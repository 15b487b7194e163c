package repository

import (
	"context"

	"github.com/pitchline/pitchline-api/internal/domain"
)

// TenantRepository reads tenant rows. Tenant lifecycle is managed by
// the control plane; this service only looks tenants up.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (domain.Tenant, error)
}

// MembershipRepository reads membership rows.
type MembershipRepository interface {
	Get(ctx context.Context, principalID, tenantID string) (domain.Membership, error)
	ListByPrincipal(ctx context.Context, principalID string) ([]domain.Membership, error)
}

// PlayerRepository persists players.
type PlayerRepository interface {
	Create(ctx context.Context, player domain.Player) (domain.Player, error)
	Get(ctx context.Context, tenantID, id string) (domain.Player, error)
	List(ctx context.Context, tenantID string, filter domain.PlayerFilter) ([]domain.Player, error)
	Update(ctx context.Context, player domain.Player) (domain.Player, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// RequestRepository persists scouting requests.
type RequestRepository interface {
	Create(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error)
	Get(ctx context.Context, tenantID, id string) (domain.ScoutingRequest, error)
	List(ctx context.Context, tenantID string, filter domain.RequestFilter) ([]domain.ScoutingRequest, error)
	Update(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// TrialRepository persists trials.
type TrialRepository interface {
	Create(ctx context.Context, trial domain.Trial) (domain.Trial, error)
	Get(ctx context.Context, tenantID, id string) (domain.Trial, error)
	List(ctx context.Context, tenantID string, filter domain.TrialFilter) ([]domain.Trial, error)
	Update(ctx context.Context, trial domain.Trial) (domain.Trial, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// EventRepository persists calendar events.
type EventRepository interface {
	Create(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error)
	Get(ctx context.Context, tenantID, id string) (domain.CalendarEvent, error)
	GetByTrialID(ctx context.Context, tenantID, trialID string) (domain.CalendarEvent, error)
	List(ctx context.Context, tenantID string, filter domain.EventFilter) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error)
	Delete(ctx context.Context, tenantID, id string) error
	DeleteByTrialID(ctx context.Context, tenantID, trialID string) error
}

// StatsRepository computes dashboard aggregates in the store.
type StatsRepository interface {
	Dashboard(ctx context.Context, tenantID string) (domain.DashboardStats, error)
}
