package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/service"
)

const testTenant = "T1"

func newTrialFixture(t *testing.T) (*service.TrialService, *memTrialRepo, *memEventRepo, *cache.Cache) {
	t.Helper()
	players := newMemPlayerRepo(domain.Player{
		ID:        "PL1",
		TenantID:  testTenant,
		FirstName: "Erik",
		LastName:  "Lund",
		Position:  "ST",
	})
	trials := newMemTrialRepo()
	events := newMemEventRepo()
	requests := cache.New(30 * time.Second)
	stats := cache.New(5 * time.Minute)
	invalidator := cache.NewInvalidator(requests, stats, zap.NewNop())
	svc := service.NewTrialService(trials, events, players, requests, invalidator, zap.NewNop())
	return svc, trials, events, requests
}

func scheduleTrial(t *testing.T, svc *service.TrialService) domain.Trial {
	t.Helper()
	trial, err := svc.Schedule(context.Background(), testTenant, service.ScheduleTrialInput{
		PlayerID:    "PL1",
		ScheduledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Location:    "Training Ground A",
	})
	require.NoError(t, err)
	return trial
}

func TestScheduleCreatesCalendarEvent(t *testing.T) {
	svc, _, events, _ := newTrialFixture(t)

	trial := scheduleTrial(t, svc)
	require.Equal(t, domain.TrialStatusScheduled, trial.Status)

	event, err := events.GetByTrialID(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, domain.EventKindTrial, event.Kind)
	require.Equal(t, "Trial: Erik Lund", event.Title)
	require.Equal(t, trial.ScheduledAt, event.StartsAt)
	require.Equal(t, trial.ScheduledAt.Add(2*time.Hour), event.EndsAt)
	require.Equal(t, "Training Ground A", event.Location)
}

func TestScheduleRejectsUnknownPlayer(t *testing.T) {
	svc, _, events, _ := newTrialFixture(t)

	_, err := svc.Schedule(context.Background(), testTenant, service.ScheduleTrialInput{
		PlayerID:    "ghost",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
	require.Equal(t, 0, events.len())
}

func TestUpdateMovesCalendarEvent(t *testing.T) {
	svc, _, events, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	moved := time.Date(2026, 3, 20, 14, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), testTenant, trial.ID, service.UpdateTrialInput{
		ScheduledAt: moved,
		Location:    "Stadium Pitch",
	})
	require.NoError(t, err)
	require.Equal(t, moved, updated.ScheduledAt)

	event, err := events.GetByTrialID(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, moved, event.StartsAt)
	require.Equal(t, moved.Add(2*time.Hour), event.EndsAt)
	require.Equal(t, "Stadium Pitch", event.Location)
	require.Equal(t, 1, events.len())
}

func TestUpdateRecreatesMissingEvent(t *testing.T) {
	svc, _, events, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	require.NoError(t, events.DeleteByTrialID(context.Background(), testTenant, trial.ID))

	moved := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Update(context.Background(), testTenant, trial.ID, service.UpdateTrialInput{ScheduledAt: moved})
	require.NoError(t, err)

	event, err := events.GetByTrialID(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, "Trial: Erik Lund", event.Title)
	require.Equal(t, moved, event.StartsAt)
}

func TestCompleteRemovesEventAndRecordsRating(t *testing.T) {
	svc, trials, events, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	completed, err := svc.Complete(context.Background(), testTenant, trial.ID, 8, "strong first touch")
	require.NoError(t, err)
	require.Equal(t, domain.TrialStatusCompleted, completed.Status)
	require.Equal(t, 8, completed.Rating)
	require.Equal(t, "strong first touch", completed.Notes)
	require.Equal(t, 0, events.len())

	stored, err := trials.Get(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TrialStatusCompleted, stored.Status)
}

func TestCompleteRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	_, err := svc.Complete(context.Background(), testTenant, trial.ID, 11, "")
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCancelRemovesEvent(t *testing.T) {
	svc, _, events, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	cancelled, err := svc.Cancel(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TrialStatusCancelled, cancelled.Status)
	require.Equal(t, 0, events.len())
}

func TestClosedTrialCannotBeUpdated(t *testing.T) {
	svc, _, _, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	_, err := svc.Cancel(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), testTenant, trial.ID, service.UpdateTrialInput{
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Complete(context.Background(), testTenant, trial.ID, 5, "")
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestDeleteRemovesTrialAndEvent(t *testing.T) {
	svc, trials, events, _ := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	require.NoError(t, svc.Delete(context.Background(), testTenant, trial.ID))
	require.Equal(t, 0, events.len())

	_, err := trials.Get(context.Background(), testTenant, trial.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScheduleInvalidatesCachedLists(t *testing.T) {
	svc, _, _, requests := newTrialFixture(t)

	trialsKey := cache.Key("trials", testTenant, nil)
	eventsKey := cache.Key("events", testTenant, nil)
	requests.Set(trialsKey, []domain.Trial{})
	requests.Set(eventsKey, []domain.CalendarEvent{})

	scheduleTrial(t, svc)

	_, ok := requests.Get(trialsKey)
	require.False(t, ok)
	_, ok = requests.Get(eventsKey)
	require.False(t, ok)
}

// flakyEventRepo injects failures into single event operations.
type flakyEventRepo struct {
	*memEventRepo
	createErr        error
	deleteByTrialErr error
}

func (r *flakyEventRepo) Create(ctx context.Context, event domain.CalendarEvent) (domain.CalendarEvent, error) {
	if r.createErr != nil {
		return domain.CalendarEvent{}, r.createErr
	}
	return r.memEventRepo.Create(ctx, event)
}

func (r *flakyEventRepo) DeleteByTrialID(ctx context.Context, tenantID, trialID string) error {
	if r.deleteByTrialErr != nil {
		return r.deleteByTrialErr
	}
	return r.memEventRepo.DeleteByTrialID(ctx, tenantID, trialID)
}

func newFlakyTrialFixture(t *testing.T) (*service.TrialService, *memTrialRepo, *flakyEventRepo, *cache.Cache) {
	t.Helper()
	players := newMemPlayerRepo(domain.Player{
		ID:        "PL1",
		TenantID:  testTenant,
		FirstName: "Erik",
		LastName:  "Lund",
	})
	trials := newMemTrialRepo()
	events := &flakyEventRepo{memEventRepo: newMemEventRepo()}
	requests := cache.New(30 * time.Second)
	stats := cache.New(5 * time.Minute)
	invalidator := cache.NewInvalidator(requests, stats, zap.NewNop())
	svc := service.NewTrialService(trials, events, players, requests, invalidator, zap.NewNop())
	return svc, trials, events, requests
}

func TestScheduleEventWriteFailureRollsBackTrial(t *testing.T) {
	svc, trials, events, requests := newFlakyTrialFixture(t)
	events.createErr = errors.New("event write failed")

	trialsKey := cache.Key("trials", testTenant, nil)
	requests.Set(trialsKey, []domain.Trial{})

	_, err := svc.Schedule(context.Background(), testTenant, service.ScheduleTrialInput{
		PlayerID:    "PL1",
		ScheduledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	// No scheduled trial without its event, and no list cached against
	// the pre-write state.
	listed, err := trials.List(context.Background(), testTenant, domain.TrialFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)

	_, ok := requests.Get(trialsKey)
	require.False(t, ok)
}

func TestCompleteEventCleanupFailureStillInvalidates(t *testing.T) {
	svc, trials, events, requests := newFlakyTrialFixture(t)

	trial, err := svc.Schedule(context.Background(), testTenant, service.ScheduleTrialInput{
		PlayerID:    "PL1",
		ScheduledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	events.deleteByTrialErr = errors.New("event delete failed")
	trialsKey := cache.Key("trials", testTenant, nil)
	requests.Set(trialsKey, []domain.Trial{})

	_, err = svc.Complete(context.Background(), testTenant, trial.ID, 7, "")
	require.Error(t, err)

	// The status change committed before the cleanup failed, so cached
	// lists must not keep serving the scheduled state.
	stored, err := trials.Get(context.Background(), testTenant, trial.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TrialStatusCompleted, stored.Status)

	_, ok := requests.Get(trialsKey)
	require.False(t, ok)
}

func TestDeleteTrialRowFailureInvalidatesEvents(t *testing.T) {
	svc, trials, events, requests := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	// Make the trial delete fail after the event cleanup has committed.
	require.NoError(t, trials.Delete(context.Background(), testTenant, trial.ID))
	eventsKey := cache.Key("events", testTenant, nil)
	requests.Set(eventsKey, []domain.CalendarEvent{})

	err := svc.Delete(context.Background(), testTenant, trial.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Equal(t, 0, events.len())

	_, ok := requests.Get(eventsKey)
	require.False(t, ok)
}

func TestCompleteRecordsZeroRating(t *testing.T) {
	svc, trials, _, _ := newTrialFixture(t)

	seeded, err := trials.Create(context.Background(), domain.Trial{
		ID:          "TR1",
		TenantID:    testTenant,
		PlayerID:    "PL1",
		Status:      domain.TrialStatusScheduled,
		Rating:      5,
		ScheduledAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), testTenant, seeded.ID, 0, "did not impress")
	require.NoError(t, err)
	require.Equal(t, domain.TrialStatusCompleted, completed.Status)
	require.Equal(t, 0, completed.Rating)
	require.Equal(t, "did not impress", completed.Notes)
}

func TestListCachesResults(t *testing.T) {
	svc, trials, _, requests := newTrialFixture(t)
	trial := scheduleTrial(t, svc)

	listed, err := svc.List(context.Background(), testTenant, domain.TrialFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Mutate the store behind the cache; the stale list keeps serving
	// until invalidated.
	require.NoError(t, trials.Delete(context.Background(), testTenant, trial.ID))

	listed, err = svc.List(context.Background(), testTenant, domain.TrialFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	requests.InvalidatePattern("trials-" + testTenant)

	listed, err = svc.List(context.Background(), testTenant, domain.TrialFilter{})
	require.NoError(t, err)
	require.Empty(t, listed)
}
