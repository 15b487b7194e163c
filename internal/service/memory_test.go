package service_test

import (
	"context"
	"sync"

	"github.com/pitchline/pitchline-api/internal/domain"
)

// In-memory repositories backing the service tests.

type memPlayerRepo struct {
	mu      sync.Mutex
	players map[string]domain.Player
}

func newMemPlayerRepo(players ...domain.Player) *memPlayerRepo {
	repo := &memPlayerRepo{players: make(map[string]domain.Player)}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (r *memPlayerRepo) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.ID] = player
	return player, nil
}

func (r *memPlayerRepo) Get(ctx context.Context, tenantID, id string) (domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok || player.TenantID != tenantID {
		return domain.Player{}, domain.ErrNotFound
	}
	return player, nil
}

func (r *memPlayerRepo) List(ctx context.Context, tenantID string, filter domain.PlayerFilter) ([]domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Player
	for _, player := range r.players {
		if player.TenantID == tenantID {
			out = append(out, player)
		}
	}
	return out, nil
}

func (r *memPlayerRepo) Update(ctx context.Context, player domain.Player) (domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.players[player.ID]
	if !ok || existing.TenantID != player.TenantID {
		return domain.Player{}, domain.ErrNotFound
	}
	r.players[player.ID] = player
	return player, nil
}

func (r *memPlayerRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.players[id]
	if !ok || player.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.players, id)
	return nil
}

type memTrialRepo struct {
	mu     sync.Mutex
	trials map[string]domain.Trial
}

func newMemTrialRepo() *memTrialRepo {
	return &memTrialRepo{trials: make(map[string]domain.Trial)}
}

func (r *memTrialRepo) Create(ctx context.Context, trial domain.Trial) (domain.Trial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trials[trial.ID] = trial
	return trial, nil
}

func (r *memTrialRepo) Get(ctx context.Context, tenantID, id string) (domain.Trial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trial, ok := r.trials[id]
	if !ok || trial.TenantID != tenantID {
		return domain.Trial{}, domain.ErrNotFound
	}
	return trial, nil
}

func (r *memTrialRepo) List(ctx context.Context, tenantID string, filter domain.TrialFilter) ([]domain.Trial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Trial
	for _, trial := range r.trials {
		if trial.TenantID != tenantID {
			continue
		}
		if filter.Status != "" && trial.Status != filter.Status {
			continue
		}
		if filter.PlayerID != "" && trial.PlayerID != filter.PlayerID {
			continue
		}
		out = append(out, trial)
	}
	return out, nil
}

func (r *memTrialRepo) Update(ctx context.Context, trial domain.Trial) (domain.Trial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.trials[trial.ID]
	if !ok || existing.TenantID != trial.TenantID {
		return domain.Trial{}, domain.ErrNotFound
	}
	r.trials[trial.ID] = trial
	return trial, nil
}

func (r *memTrialRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	trial, ok := r.trials[id]
	if !ok || trial.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.trials, id)
	return nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events map[string]domain.CalendarEvent
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]domain.CalendarEvent)}
}

func (r *memEventRepo) Create(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event
	return event, nil
}

func (r *memEventRepo) Get(ctx context.Context, tenantID, id string) (domain.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok || event.TenantID != tenantID {
		return domain.CalendarEvent{}, domain.ErrNotFound
	}
	return event, nil
}

func (r *memEventRepo) GetByTrialID(ctx context.Context, tenantID, trialID string) (domain.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.TenantID == tenantID && event.TrialID == trialID {
			return event, nil
		}
	}
	return domain.CalendarEvent{}, domain.ErrNotFound
}

func (r *memEventRepo) List(ctx context.Context, tenantID string, filter domain.EventFilter) ([]domain.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.CalendarEvent
	for _, event := range r.events {
		if event.TenantID != tenantID {
			continue
		}
		if filter.Kind != "" && event.Kind != filter.Kind {
			continue
		}
		if !filter.From.IsZero() && event.StartsAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && event.StartsAt.After(filter.To) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func (r *memEventRepo) Update(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.events[event.ID]
	if !ok || existing.TenantID != event.TenantID {
		return domain.CalendarEvent{}, domain.ErrNotFound
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *memEventRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok || event.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memEventRepo) DeleteByTrialID(ctx context.Context, tenantID, trialID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, event := range r.events {
		if event.TenantID == tenantID && event.TrialID == trialID {
			delete(r.events, id)
		}
	}
	return nil
}

func (r *memEventRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
