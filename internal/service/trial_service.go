package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/repository"
)

// trialEventDuration is the calendar block reserved for a trial.
const trialEventDuration = 2 * time.Hour

// TrialService manages trials and keeps the calendar in step with
// them: a scheduled trial has exactly one calendar event, rescheduling
// moves it, and cancellation or deletion removes it.
type TrialService struct {
	trials      repository.TrialRepository
	events      repository.EventRepository
	players     repository.PlayerRepository
	requests    *cache.Cache
	invalidator *cache.Invalidator
	logger      *zap.Logger
}

func NewTrialService(
	trials repository.TrialRepository,
	events repository.EventRepository,
	players repository.PlayerRepository,
	requests *cache.Cache,
	invalidator *cache.Invalidator,
	logger *zap.Logger,
) *TrialService {
	return &TrialService{
		trials:      trials,
		events:      events,
		players:     players,
		requests:    requests,
		invalidator: invalidator,
		logger:      logger,
	}
}

// ScheduleTrialInput carries the fields for scheduling a trial.
type ScheduleTrialInput struct {
	PlayerID    string    `json:"playerId" binding:"required"`
	RequestID   string    `json:"requestId"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

// UpdateTrialInput carries the mutable trial fields.
type UpdateTrialInput struct {
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

func (s *TrialService) List(ctx context.Context, tenantID string, filter domain.TrialFilter) ([]domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.List")
	defer span.End()

	key := cache.Key("trials", tenantID, trialFilterMap(filter))
	if cached, ok := s.requests.Get(key); ok {
		if trials, ok := cached.([]domain.Trial); ok {
			return trials, nil
		}
	}

	trials, err := s.trials.List(ctx, tenantID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.requests.Set(key, trials)
	return trials, nil
}

func (s *TrialService) Get(ctx context.Context, tenantID, id string) (domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.Get")
	defer span.End()
	return s.trials.Get(ctx, tenantID, id)
}

// Schedule creates a trial and its calendar event.
func (s *TrialService) Schedule(ctx context.Context, tenantID string, input ScheduleTrialInput) (domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.Schedule")
	defer span.End()

	if input.ScheduledAt.IsZero() {
		return domain.Trial{}, invalidf("scheduledAt is required")
	}

	player, err := s.players.Get(ctx, tenantID, input.PlayerID)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trial{}, invalidf("player %q does not exist", input.PlayerID)
		}
		return domain.Trial{}, err
	}

	trial := domain.Trial{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		PlayerID:    player.ID,
		RequestID:   input.RequestID,
		Status:      domain.TrialStatusScheduled,
		ScheduledAt: input.ScheduledAt,
		Location:    input.Location,
		Notes:       input.Notes,
	}

	created, err := s.trials.Create(ctx, trial)
	if err != nil {
		span.RecordError(err)
		return domain.Trial{}, fmt.Errorf("create trial: %w", err)
	}

	event := domain.CalendarEvent{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		TrialID:  created.ID,
		Kind:     domain.EventKindTrial,
		Title:    fmt.Sprintf("Trial: %s %s", player.FirstName, player.LastName),
		Location: created.Location,
		StartsAt: created.ScheduledAt,
		EndsAt:   created.ScheduledAt.Add(trialEventDuration),
	}
	if _, err := s.events.Create(ctx, event); err != nil {
		span.RecordError(err)
		// The trial row is already committed. Undo it so no scheduled
		// trial exists without its event, and drop lists cached against
		// either state.
		if derr := s.trials.Delete(ctx, tenantID, created.ID); derr != nil {
			s.logger.Error("remove trial after event write failure",
				zap.String("tenant_id", tenantID),
				zap.String("trial_id", created.ID),
				zap.Error(derr),
			)
		}
		s.invalidator.OnMutation("trials", tenantID)
		return domain.Trial{}, fmt.Errorf("create trial event: %w", err)
	}

	s.invalidator.OnMutation("trials", tenantID)
	s.invalidator.OnMutation("events", tenantID)
	s.logger.Info("trial scheduled",
		zap.String("tenant_id", tenantID),
		zap.String("trial_id", created.ID),
		zap.String("player_id", player.ID),
	)
	return created, nil
}

// Update reschedules a trial and moves its calendar event. Only
// scheduled trials can be updated.
func (s *TrialService) Update(ctx context.Context, tenantID, id string, input UpdateTrialInput) (domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.Update")
	defer span.End()

	trial, err := s.trials.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		return domain.Trial{}, err
	}
	if trial.Status != domain.TrialStatusScheduled {
		return domain.Trial{}, invalidf("trial %q is not scheduled", id)
	}
	if input.ScheduledAt.IsZero() {
		return domain.Trial{}, invalidf("scheduledAt is required")
	}

	trial.ScheduledAt = input.ScheduledAt
	trial.Location = input.Location
	trial.Notes = input.Notes

	updated, err := s.trials.Update(ctx, trial)
	if err != nil {
		span.RecordError(err)
		return domain.Trial{}, err
	}

	if err := s.syncEvent(ctx, updated); err != nil {
		span.RecordError(err)
		// The reschedule itself is committed.
		s.invalidator.OnMutation("trials", tenantID)
		return domain.Trial{}, err
	}

	s.invalidator.OnMutation("trials", tenantID)
	s.invalidator.OnMutation("events", tenantID)
	return updated, nil
}

// Complete records the outcome of a trial and removes its calendar
// event.
func (s *TrialService) Complete(ctx context.Context, tenantID, id string, rating int, notes string) (domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.Complete")
	defer span.End()

	if rating < 0 || rating > 10 {
		return domain.Trial{}, invalidf("rating must be between 0 and 10")
	}
	return s.closeTrial(ctx, tenantID, id, domain.TrialStatusCompleted, rating, notes)
}

// Cancel marks a trial cancelled and removes its calendar event.
func (s *TrialService) Cancel(ctx context.Context, tenantID, id string) (domain.Trial, error) {
	ctx, span := startSpan(ctx, "TrialService.Cancel")
	defer span.End()
	return s.closeTrial(ctx, tenantID, id, domain.TrialStatusCancelled, 0, "")
}

// Delete removes a trial and any calendar event still mirroring it.
func (s *TrialService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := startSpan(ctx, "TrialService.Delete")
	defer span.End()

	if err := s.events.DeleteByTrialID(ctx, tenantID, id); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.trials.Delete(ctx, tenantID, id); err != nil {
		span.RecordError(err)
		// The event cleanup is committed even when the trial row is not.
		s.invalidator.OnMutation("events", tenantID)
		return err
	}

	s.invalidator.OnMutation("trials", tenantID)
	s.invalidator.OnMutation("events", tenantID)
	return nil
}

func (s *TrialService) closeTrial(ctx context.Context, tenantID, id, status string, rating int, notes string) (domain.Trial, error) {
	trial, err := s.trials.Get(ctx, tenantID, id)
	if err != nil {
		return domain.Trial{}, err
	}
	if trial.Status != domain.TrialStatusScheduled {
		return domain.Trial{}, invalidf("trial %q is not scheduled", id)
	}

	trial.Status = status
	if status == domain.TrialStatusCompleted {
		// 0 is a valid rating; only the cancel path leaves it untouched.
		trial.Rating = rating
	}
	if notes != "" {
		trial.Notes = notes
	}

	updated, err := s.trials.Update(ctx, trial)
	if err != nil {
		return domain.Trial{}, err
	}

	if err := s.events.DeleteByTrialID(ctx, tenantID, id); err != nil {
		// The status change is committed regardless of the cleanup.
		s.invalidator.OnMutation("trials", tenantID)
		return domain.Trial{}, err
	}

	s.invalidator.OnMutation("trials", tenantID)
	s.invalidator.OnMutation("events", tenantID)
	s.logger.Info("trial closed",
		zap.String("tenant_id", tenantID),
		zap.String("trial_id", id),
		zap.String("status", status),
	)
	return updated, nil
}

// syncEvent moves the trial's calendar event to the trial's current
// time and place, recreating it if it has gone missing.
func (s *TrialService) syncEvent(ctx context.Context, trial domain.Trial) error {
	event, err := s.events.GetByTrialID(ctx, trial.TenantID, trial.ID)
	if errors.Is(err, domain.ErrNotFound) {
		player, perr := s.players.Get(ctx, trial.TenantID, trial.PlayerID)
		if perr != nil {
			return perr
		}
		event = domain.CalendarEvent{
			ID:       uuid.NewString(),
			TenantID: trial.TenantID,
			TrialID:  trial.ID,
			Kind:     domain.EventKindTrial,
			Title:    fmt.Sprintf("Trial: %s %s", player.FirstName, player.LastName),
		}
		event.Location = trial.Location
		event.StartsAt = trial.ScheduledAt
		event.EndsAt = trial.ScheduledAt.Add(trialEventDuration)
		_, err = s.events.Create(ctx, event)
		return err
	}
	if err != nil {
		return err
	}

	event.Location = trial.Location
	event.StartsAt = trial.ScheduledAt
	event.EndsAt = trial.ScheduledAt.Add(trialEventDuration)
	_, err = s.events.Update(ctx, event)
	return err
}

func trialFilterMap(filter domain.TrialFilter) map[string]string {
	m := make(map[string]string)
	if filter.Status != "" {
		m["status"] = filter.Status
	}
	if filter.PlayerID != "" {
		m["playerId"] = filter.PlayerID
	}
	return m
}
