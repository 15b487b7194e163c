package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/service"
)

type memRequestRepo struct {
	mu   sync.Mutex
	reqs map[string]domain.ScoutingRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{reqs: make(map[string]domain.ScoutingRequest)}
}

func (r *memRequestRepo) Create(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs[req.ID] = req
	return req, nil
}

func (r *memRequestRepo) Get(ctx context.Context, tenantID, id string) (domain.ScoutingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok || req.TenantID != tenantID {
		return domain.ScoutingRequest{}, domain.ErrNotFound
	}
	return req, nil
}

func (r *memRequestRepo) List(ctx context.Context, tenantID string, filter domain.RequestFilter) ([]domain.ScoutingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ScoutingRequest
	for _, req := range r.reqs {
		if req.TenantID != tenantID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *memRequestRepo) Update(ctx context.Context, req domain.ScoutingRequest) (domain.ScoutingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.reqs[req.ID]
	if !ok || existing.TenantID != req.TenantID {
		return domain.ScoutingRequest{}, domain.ErrNotFound
	}
	r.reqs[req.ID] = req
	return req, nil
}

func (r *memRequestRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok || req.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.reqs, id)
	return nil
}

func newScoutingFixture(t *testing.T) *service.ScoutingService {
	t.Helper()
	requests := cache.New(30 * time.Second)
	stats := cache.New(5 * time.Minute)
	invalidator := cache.NewInvalidator(requests, stats, zap.NewNop())
	return service.NewScoutingService(newMemRequestRepo(), requests, invalidator, zap.NewNop())
}

func TestCreateRequestDefaultsToOpen(t *testing.T) {
	svc := newScoutingFixture(t)

	created, err := svc.Create(context.Background(), testTenant, service.RequestInput{
		Title:    "Left back, under 23",
		Position: "LB",
		MaxAge:   23,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RequestStatusOpen, created.Status)
}

func TestCreateRequestValidation(t *testing.T) {
	svc := newScoutingFixture(t)

	_, err := svc.Create(context.Background(), testTenant, service.RequestInput{Title: "  "})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(context.Background(), testTenant, service.RequestInput{
		Title:  "Striker",
		Status: "ARCHIVED",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(context.Background(), testTenant, service.RequestInput{
		Title:  "Striker",
		MinAge: 25,
		MaxAge: 20,
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestUpdateRequestMovesStatus(t *testing.T) {
	svc := newScoutingFixture(t)

	created, err := svc.Create(context.Background(), testTenant, service.RequestInput{Title: "Striker"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), testTenant, created.ID, service.RequestInput{
		Title:  "Striker",
		Status: domain.RequestStatusInProcess,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RequestStatusInProcess, updated.Status)

	listed, err := svc.List(context.Background(), testTenant, domain.RequestFilter{Status: domain.RequestStatusInProcess})
	require.NoError(t, err)
	require.Len(t, listed, 1)
}
