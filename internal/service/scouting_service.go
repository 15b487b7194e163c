package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/repository"
)

// ScoutingService manages scouting requests.
type ScoutingService struct {
	scoutingRequests repository.RequestRepository
	requests         *cache.Cache
	invalidator      *cache.Invalidator
	logger           *zap.Logger
}

func NewScoutingService(scoutingRequests repository.RequestRepository, requests *cache.Cache, invalidator *cache.Invalidator, logger *zap.Logger) *ScoutingService {
	return &ScoutingService{scoutingRequests: scoutingRequests, requests: requests, invalidator: invalidator, logger: logger}
}

// RequestInput carries the writable scouting request fields.
type RequestInput struct {
	Title    string `json:"title" binding:"required"`
	Club     string `json:"club"`
	Position string `json:"position"`
	Status   string `json:"status"`
	MinAge   int    `json:"minAge"`
	MaxAge   int    `json:"maxAge"`
	Budget   int64  `json:"budget"`
	Notes    string `json:"notes"`
}

func validRequestStatus(status string) bool {
	switch status {
	case domain.RequestStatusOpen, domain.RequestStatusInProcess,
		domain.RequestStatusCompleted, domain.RequestStatusCancelled:
		return true
	}
	return false
}

func (s *ScoutingService) List(ctx context.Context, tenantID string, filter domain.RequestFilter) ([]domain.ScoutingRequest, error) {
	ctx, span := startSpan(ctx, "ScoutingService.List")
	defer span.End()

	key := cache.Key("requests", tenantID, requestFilterMap(filter))
	if cached, ok := s.requests.Get(key); ok {
		if reqs, ok := cached.([]domain.ScoutingRequest); ok {
			return reqs, nil
		}
	}

	reqs, err := s.scoutingRequests.List(ctx, tenantID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.requests.Set(key, reqs)
	return reqs, nil
}

func (s *ScoutingService) Get(ctx context.Context, tenantID, id string) (domain.ScoutingRequest, error) {
	ctx, span := startSpan(ctx, "ScoutingService.Get")
	defer span.End()
	return s.scoutingRequests.Get(ctx, tenantID, id)
}

func (s *ScoutingService) Create(ctx context.Context, tenantID string, input RequestInput) (domain.ScoutingRequest, error) {
	ctx, span := startSpan(ctx, "ScoutingService.Create")
	defer span.End()

	if strings.TrimSpace(input.Title) == "" {
		return domain.ScoutingRequest{}, invalidf("title is required")
	}
	status := input.Status
	if status == "" {
		status = domain.RequestStatusOpen
	}
	if !validRequestStatus(status) {
		return domain.ScoutingRequest{}, invalidf("unknown status %q", status)
	}
	if input.MinAge != 0 && input.MaxAge != 0 && input.MinAge > input.MaxAge {
		return domain.ScoutingRequest{}, invalidf("minAge exceeds maxAge")
	}

	req := domain.ScoutingRequest{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Title:    strings.TrimSpace(input.Title),
		Club:     input.Club,
		Position: input.Position,
		Status:   status,
		MinAge:   input.MinAge,
		MaxAge:   input.MaxAge,
		Budget:   input.Budget,
		Notes:    input.Notes,
	}

	created, err := s.scoutingRequests.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		return domain.ScoutingRequest{}, fmt.Errorf("create scouting request: %w", err)
	}

	s.invalidator.OnMutation("requests", tenantID)
	s.logger.Info("scouting request created", zap.String("tenant_id", tenantID), zap.String("request_id", created.ID))
	return created, nil
}

func (s *ScoutingService) Update(ctx context.Context, tenantID, id string, input RequestInput) (domain.ScoutingRequest, error) {
	ctx, span := startSpan(ctx, "ScoutingService.Update")
	defer span.End()

	existing, err := s.scoutingRequests.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		return domain.ScoutingRequest{}, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return domain.ScoutingRequest{}, invalidf("title is required")
	}
	if input.Status != "" && !validRequestStatus(input.Status) {
		return domain.ScoutingRequest{}, invalidf("unknown status %q", input.Status)
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Club = input.Club
	existing.Position = input.Position
	if input.Status != "" {
		existing.Status = input.Status
	}
	existing.MinAge = input.MinAge
	existing.MaxAge = input.MaxAge
	existing.Budget = input.Budget
	existing.Notes = input.Notes

	updated, err := s.scoutingRequests.Update(ctx, existing)
	if err != nil {
		span.RecordError(err)
		return domain.ScoutingRequest{}, err
	}

	s.invalidator.OnMutation("requests", tenantID)
	return updated, nil
}

func (s *ScoutingService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := startSpan(ctx, "ScoutingService.Delete")
	defer span.End()

	if err := s.scoutingRequests.Delete(ctx, tenantID, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidator.OnMutation("requests", tenantID)
	return nil
}

func requestFilterMap(filter domain.RequestFilter) map[string]string {
	m := make(map[string]string)
	if filter.Status != "" {
		m["status"] = filter.Status
	}
	if filter.Position != "" {
		m["position"] = filter.Position
	}
	if filter.Search != "" {
		m["search"] = filter.Search
	}
	return m
}
