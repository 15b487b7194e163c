package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
)

// MembershipStore exposes the membership lookups the gate needs.
// Absence of a row is domain.ErrNotFound, never an invented error.
type MembershipStore interface {
	Get(ctx context.Context, principalID, tenantID string) (domain.Membership, error)
	ListByPrincipal(ctx context.Context, principalID string) ([]domain.Membership, error)
}

const membershipKeyPrefix = "tenant-membership-"

// Validator answers whether a principal may act within a tenant.
// Access is membership-row existence; the role value is irrelevant
// here. Both positive and negative answers are cached; a cached false
// is a reusable result, distinct from a miss.
type Validator struct {
	store MembershipStore
	cache *cache.Cache
}

// NewValidator creates a validator over store, memoizing through c.
func NewValidator(store MembershipStore, c *cache.Cache) *Validator {
	return &Validator{store: store, cache: c}
}

// HasAccess reports whether principalID holds a membership in tenantID.
// tenantID must already be canonical; this method never accepts a slug.
func (v *Validator) HasAccess(ctx context.Context, principalID, tenantID string) (bool, error) {
	key := membershipKeyPrefix + principalID + "-" + tenantID
	if cached, ok := v.cache.Get(key); ok {
		if has, ok := cached.(bool); ok {
			return has, nil
		}
	}

	_, err := v.store.Get(ctx, principalID, tenantID)
	switch {
	case err == nil:
		v.cache.Set(key, true)
		return true, nil
	case errors.Is(err, domain.ErrNotFound):
		v.cache.Set(key, false)
		return false, nil
	default:
		return false, newError(ClassInternal, fmt.Sprintf("check membership for principal %q", principalID), err)
	}
}
