package cache

import (
	"go.uber.org/zap"
)

// StatsKeyEndpoint names the dashboard aggregate entry in the stats
// cache; its per-tenant key is Key(StatsKeyEndpoint, tenantID, nil).
const StatsKeyEndpoint = "dashboard-stats"

// Invalidator drops cached reads made stale by a business write. It is
// called after the write has committed, never before: invalidating
// first would let a concurrent read repopulate the cache with the
// pre-write value.
//
// Invalidation is fire-and-forget with respect to the mutation. It
// cannot fail the write; outcomes are logged and nothing more.
type Invalidator struct {
	requests *Cache
	stats    *Cache
	logger   *zap.Logger
}

// NewInvalidator wires the two cache instances.
func NewInvalidator(requests, stats *Cache, logger *zap.Logger) *Invalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Invalidator{requests: requests, stats: stats, logger: logger}
}

// OnMutation removes cached reads for one resource kind of one tenant
// ("<kind>-<tenantID>" by convention) and the tenant's dashboard
// aggregate, which every resource kind feeds.
func (i *Invalidator) OnMutation(resourceKind, tenantID string) {
	removed := i.requests.InvalidatePattern(resourceKind + "-" + tenantID)
	i.stats.Invalidate(Key(StatsKeyEndpoint, tenantID, nil))

	i.logger.Debug("cache invalidated after mutation",
		zap.String("resource", resourceKind),
		zap.String("tenant_id", tenantID),
		zap.Int("removed", removed),
	)
}
