package authz

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
)

// TenantStore is the point lookup the resolver needs from the tenant
// table. Absence is signaled with domain.ErrNotFound.
type TenantStore interface {
	GetBySlug(ctx context.Context, slug string) (domain.Tenant, error)
}

// Tenant tokens that already have the shape of a canonical ID pass
// through without a store lookup: hyphenated UUIDs and cuid-style
// 25-character identifiers.
var (
	uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	cuidPattern = regexp.MustCompile(`^c[a-z0-9]{24}$`)
)

const resolveKeyPrefix = "tenant-resolve-"

// Resolver maps a caller-supplied tenant token, either a canonical ID
// or a human slug, to the canonical tenant ID.
//
// Slug resolutions are cached for the cache's TTL, so a tenant deleted
// mid-window stays resolvable until its entry expires. That staleness
// is bounded and accepted; see DESIGN.md.
type Resolver struct {
	store TenantStore
	cache *cache.Cache
}

// NewResolver creates a resolver over store, memoizing through c.
func NewResolver(store TenantStore, c *cache.Cache) *Resolver {
	return &Resolver{store: store, cache: c}
}

// Resolve returns the canonical tenant ID for token. Structural IDs are
// returned unchanged; anything else is treated as a slug and looked up
// by exact match. The only failure is NotFound.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, error) {
	if IsCanonicalID(token) {
		return token, nil
	}

	key := resolveKeyPrefix + token
	if cached, ok := r.cache.Get(key); ok {
		if id, ok := cached.(string); ok {
			return id, nil
		}
	}

	tenant, err := r.store.GetBySlug(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", newError(ClassNotFound, "tenant not found", err)
		}
		return "", newError(ClassInternal, fmt.Sprintf("resolve tenant %q", token), err)
	}

	r.cache.Set(key, tenant.ID)
	return tenant.ID, nil
}

// IsCanonicalID reports whether token matches one of the structural
// canonical ID shapes.
func IsCanonicalID(token string) bool {
	return uuidPattern.MatchString(token) || cuidPattern.MatchString(token)
}
