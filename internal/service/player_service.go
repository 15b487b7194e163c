package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/repository"
)

// PlayerService manages a tenant's player roster.
type PlayerService struct {
	players     repository.PlayerRepository
	requests    *cache.Cache
	invalidator *cache.Invalidator
	logger      *zap.Logger
}

func NewPlayerService(players repository.PlayerRepository, requests *cache.Cache, invalidator *cache.Invalidator, logger *zap.Logger) *PlayerService {
	return &PlayerService{players: players, requests: requests, invalidator: invalidator, logger: logger}
}

// CreatePlayerInput carries the writable player fields.
type CreatePlayerInput struct {
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	Position    string     `json:"position"`
	Club        string     `json:"club"`
	Nationality string     `json:"nationality"`
	BirthDate   *time.Time `json:"birthDate"`
	Rating      int        `json:"rating"`
	Notes       string     `json:"notes"`
}

// List returns the tenant's players matching filter, served from the
// request cache when a fresh entry exists.
func (s *PlayerService) List(ctx context.Context, tenantID string, filter domain.PlayerFilter) ([]domain.Player, error) {
	ctx, span := startSpan(ctx, "PlayerService.List")
	defer span.End()

	key := cache.Key("players", tenantID, playerFilterMap(filter))
	if cached, ok := s.requests.Get(key); ok {
		if players, ok := cached.([]domain.Player); ok {
			return players, nil
		}
	}

	players, err := s.players.List(ctx, tenantID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.requests.Set(key, players)
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, tenantID, id string) (domain.Player, error) {
	ctx, span := startSpan(ctx, "PlayerService.Get")
	defer span.End()
	return s.players.Get(ctx, tenantID, id)
}

func (s *PlayerService) Create(ctx context.Context, tenantID string, input CreatePlayerInput) (domain.Player, error) {
	ctx, span := startSpan(ctx, "PlayerService.Create")
	defer span.End()

	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return domain.Player{}, invalidf("player name is required")
	}
	if input.Rating < 0 || input.Rating > 10 {
		return domain.Player{}, invalidf("rating must be between 0 and 10")
	}

	player := domain.Player{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Position:    input.Position,
		Club:        input.Club,
		Nationality: input.Nationality,
		BirthDate:   input.BirthDate,
		Rating:      input.Rating,
		Notes:       input.Notes,
	}

	created, err := s.players.Create(ctx, player)
	if err != nil {
		span.RecordError(err)
		return domain.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.invalidator.OnMutation("players", tenantID)
	s.logger.Info("player created", zap.String("tenant_id", tenantID), zap.String("player_id", created.ID))
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, tenantID, id string, input CreatePlayerInput) (domain.Player, error) {
	ctx, span := startSpan(ctx, "PlayerService.Update")
	defer span.End()

	existing, err := s.players.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		return domain.Player{}, err
	}

	existing.FirstName = strings.TrimSpace(input.FirstName)
	existing.LastName = strings.TrimSpace(input.LastName)
	existing.Position = input.Position
	existing.Club = input.Club
	existing.Nationality = input.Nationality
	existing.BirthDate = input.BirthDate
	existing.Rating = input.Rating
	existing.Notes = input.Notes

	if existing.FirstName == "" || existing.LastName == "" {
		return domain.Player{}, invalidf("player name is required")
	}

	updated, err := s.players.Update(ctx, existing)
	if err != nil {
		span.RecordError(err)
		return domain.Player{}, err
	}

	s.invalidator.OnMutation("players", tenantID)
	return updated, nil
}

func (s *PlayerService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := startSpan(ctx, "PlayerService.Delete")
	defer span.End()

	if err := s.players.Delete(ctx, tenantID, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidator.OnMutation("players", tenantID)
	s.logger.Info("player deleted", zap.String("tenant_id", tenantID), zap.String("player_id", id))
	return nil
}

func playerFilterMap(filter domain.PlayerFilter) map[string]string {
	m := make(map[string]string)
	if filter.Position != "" {
		m["position"] = filter.Position
	}
	if filter.Club != "" {
		m["club"] = filter.Club
	}
	if filter.Search != "" {
		m["search"] = filter.Search
	}
	return m
}
