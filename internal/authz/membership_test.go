package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitchline/pitchline-api/internal/authz"
	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
)

func TestHasAccessByMembershipExistence(t *testing.T) {
	store := newMockMembershipStore(domain.Membership{PrincipalID: "P1", TenantID: "T1", Role: "SCOUT"})
	validator := authz.NewValidator(store, cache.New(30*time.Second))

	has, err := validator.HasAccess(context.Background(), "P1", "T1")
	require.NoError(t, err)
	require.True(t, has)

	has, err = validator.HasAccess(context.Background(), "P1", "T2")
	require.NoError(t, err)
	require.False(t, has)
}

func TestHasAccessCachesNegativeResults(t *testing.T) {
	store := newMockMembershipStore()
	validator := authz.NewValidator(store, cache.New(30*time.Second))

	for range 3 {
		has, err := validator.HasAccess(context.Background(), "P1", "T1")
		require.NoError(t, err)
		require.False(t, has)
	}
	require.Equal(t, 1, store.getCalls)
}

func TestHasAccessCachesPositiveResults(t *testing.T) {
	store := newMockMembershipStore(domain.Membership{PrincipalID: "P1", TenantID: "T1"})
	validator := authz.NewValidator(store, cache.New(30*time.Second))

	for range 3 {
		has, err := validator.HasAccess(context.Background(), "P1", "T1")
		require.NoError(t, err)
		require.True(t, has)
	}
	require.Equal(t, 1, store.getCalls)
}

type mockMembershipStore struct {
	memberships []domain.Membership
	getCalls    int
	listCalls   int
}

func newMockMembershipStore(memberships ...domain.Membership) *mockMembershipStore {
	return &mockMembershipStore{memberships: memberships}
}

func (m *mockMembershipStore) Get(ctx context.Context, principalID, tenantID string) (domain.Membership, error) {
	m.getCalls++
	for _, membership := range m.memberships {
		if membership.PrincipalID == principalID && membership.TenantID == tenantID {
			return membership, nil
		}
	}
	return domain.Membership{}, domain.ErrNotFound
}

func (m *mockMembershipStore) ListByPrincipal(ctx context.Context, principalID string) ([]domain.Membership, error) {
	m.listCalls++
	var out []domain.Membership
	for _, membership := range m.memberships {
		if membership.PrincipalID == principalID {
			out = append(out, membership)
		}
	}
	return out, nil
}
