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

// EventService manages free-standing calendar entries. Events mirroring
// a trial belong to the trial workflow and cannot be edited here.
type EventService struct {
	events      repository.EventRepository
	requests    *cache.Cache
	invalidator *cache.Invalidator
	logger      *zap.Logger
}

func NewEventService(events repository.EventRepository, requests *cache.Cache, invalidator *cache.Invalidator, logger *zap.Logger) *EventService {
	return &EventService{events: events, requests: requests, invalidator: invalidator, logger: logger}
}

// EventInput carries the writable calendar event fields.
type EventInput struct {
	Kind     string    `json:"kind"`
	Title    string    `json:"title" binding:"required"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"startsAt" binding:"required"`
	EndsAt   time.Time `json:"endsAt" binding:"required"`
	Notes    string    `json:"notes"`
}

func validEventKind(kind string) bool {
	switch kind {
	case domain.EventKindMatch, domain.EventKindMeeting, domain.EventKindOther:
		return true
	}
	return false
}

func (s *EventService) List(ctx context.Context, tenantID string, filter domain.EventFilter) ([]domain.CalendarEvent, error) {
	ctx, span := startSpan(ctx, "EventService.List")
	defer span.End()

	key := cache.Key("events", tenantID, eventFilterMap(filter))
	if cached, ok := s.requests.Get(key); ok {
		if events, ok := cached.([]domain.CalendarEvent); ok {
			return events, nil
		}
	}

	events, err := s.events.List(ctx, tenantID, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.requests.Set(key, events)
	return events, nil
}

func (s *EventService) Get(ctx context.Context, tenantID, id string) (domain.CalendarEvent, error) {
	ctx, span := startSpan(ctx, "EventService.Get")
	defer span.End()
	return s.events.Get(ctx, tenantID, id)
}

func (s *EventService) Create(ctx context.Context, tenantID string, input EventInput) (domain.CalendarEvent, error) {
	ctx, span := startSpan(ctx, "EventService.Create")
	defer span.End()

	if err := validateEventInput(&input); err != nil {
		return domain.CalendarEvent{}, err
	}

	event := domain.CalendarEvent{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Kind:     input.Kind,
		Title:    strings.TrimSpace(input.Title),
		Location: input.Location,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
		Notes:    input.Notes,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		span.RecordError(err)
		return domain.CalendarEvent{}, fmt.Errorf("create event: %w", err)
	}

	s.invalidator.OnMutation("events", tenantID)
	return created, nil
}

func (s *EventService) Update(ctx context.Context, tenantID, id string, input EventInput) (domain.CalendarEvent, error) {
	ctx, span := startSpan(ctx, "EventService.Update")
	defer span.End()

	existing, err := s.events.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		return domain.CalendarEvent{}, err
	}
	if existing.TrialID != "" {
		return domain.CalendarEvent{}, invalidf("trial events are managed through the trial")
	}
	if err := validateEventInput(&input); err != nil {
		return domain.CalendarEvent{}, err
	}

	existing.Kind = input.Kind
	existing.Title = strings.TrimSpace(input.Title)
	existing.Location = input.Location
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.Notes = input.Notes

	updated, err := s.events.Update(ctx, existing)
	if err != nil {
		span.RecordError(err)
		return domain.CalendarEvent{}, err
	}

	s.invalidator.OnMutation("events", tenantID)
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := startSpan(ctx, "EventService.Delete")
	defer span.End()

	existing, err := s.events.Get(ctx, tenantID, id)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if existing.TrialID != "" {
		return invalidf("trial events are managed through the trial")
	}

	if err := s.events.Delete(ctx, tenantID, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.invalidator.OnMutation("events", tenantID)
	return nil
}

// ExportCalendar renders the tenant's events in the filter window as an
// iCalendar document.
func (s *EventService) ExportCalendar(ctx context.Context, tenantID string, filter domain.EventFilter) ([]byte, error) {
	ctx, span := startSpan(ctx, "EventService.ExportCalendar")
	defer span.End()

	events, err := s.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return renderICS(events), nil
}

func validateEventInput(input *EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return invalidf("title is required")
	}
	if input.Kind == "" {
		input.Kind = domain.EventKindOther
	}
	if !validEventKind(input.Kind) {
		return invalidf("unknown event kind %q", input.Kind)
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return invalidf("startsAt and endsAt are required")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return invalidf("endsAt must be after startsAt")
	}
	return nil
}

func eventFilterMap(filter domain.EventFilter) map[string]string {
	m := make(map[string]string)
	if filter.Kind != "" {
		m["kind"] = filter.Kind
	}
	if !filter.From.IsZero() {
		m["from"] = filter.From.UTC().Format(time.RFC3339)
	}
	if !filter.To.IsZero() {
		m["to"] = filter.To.UTC().Format(time.RFC3339)
	}
	return m
}
