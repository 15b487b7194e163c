package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/service"
)

func newPlayerFixture(t *testing.T) (*service.PlayerService, *memPlayerRepo, *cache.Cache) {
	t.Helper()
	players := newMemPlayerRepo()
	requests := cache.New(30 * time.Second)
	stats := cache.New(5 * time.Minute)
	invalidator := cache.NewInvalidator(requests, stats, zap.NewNop())
	svc := service.NewPlayerService(players, requests, invalidator, zap.NewNop())
	return svc, players, requests
}

func TestCreatePlayerTrimsName(t *testing.T) {
	svc, _, _ := newPlayerFixture(t)

	created, err := svc.Create(context.Background(), testTenant, service.CreatePlayerInput{
		FirstName: "  Erik ",
		LastName:  " Lund  ",
		Position:  "ST",
		Rating:    7,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Erik", created.FirstName)
	require.Equal(t, "Lund", created.LastName)
	require.Equal(t, testTenant, created.TenantID)
}

func TestCreatePlayerValidation(t *testing.T) {
	svc, _, _ := newPlayerFixture(t)

	_, err := svc.Create(context.Background(), testTenant, service.CreatePlayerInput{
		FirstName: "   ",
		LastName:  "Lund",
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = svc.Create(context.Background(), testTenant, service.CreatePlayerInput{
		FirstName: "Erik",
		LastName:  "Lund",
		Rating:    11,
	})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestUpdateMissingPlayer(t *testing.T) {
	svc, _, _ := newPlayerFixture(t)

	_, err := svc.Update(context.Background(), testTenant, "ghost", service.CreatePlayerInput{
		FirstName: "Erik",
		LastName:  "Lund",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreatePlayerDropsCachedFilteredLists(t *testing.T) {
	svc, _, requests := newPlayerFixture(t)

	plain := cache.Key("players", testTenant, nil)
	filtered := cache.Key("players", testTenant, map[string]string{"position": "ST"})
	otherTenant := cache.Key("players", "T2", nil)
	requests.Set(plain, []domain.Player{})
	requests.Set(filtered, []domain.Player{})
	requests.Set(otherTenant, []domain.Player{})

	_, err := svc.Create(context.Background(), testTenant, service.CreatePlayerInput{
		FirstName: "Erik",
		LastName:  "Lund",
	})
	require.NoError(t, err)

	_, ok := requests.Get(plain)
	require.False(t, ok)
	_, ok = requests.Get(filtered)
	require.False(t, ok)
	_, ok = requests.Get(otherTenant)
	require.True(t, ok)
}

func TestDeleteMissingPlayer(t *testing.T) {
	svc, _, _ := newPlayerFixture(t)
	require.ErrorIs(t, svc.Delete(context.Background(), testTenant, "ghost"), domain.ErrNotFound)
}
