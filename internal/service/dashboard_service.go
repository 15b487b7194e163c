package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/pitchline/pitchline-api/internal/cache"
	"github.com/pitchline/pitchline-api/internal/domain"
	"github.com/pitchline/pitchline-api/internal/repository"
)

// DashboardService serves tenant headline aggregates. Results live in
// the stats cache, which runs a longer TTL than ordinary reads and is
// dropped by the invalidator on any business write for the tenant.
type DashboardService struct {
	repo   repository.StatsRepository
	stats  *cache.Cache
	logger *zap.Logger
}

func NewDashboardService(repo repository.StatsRepository, stats *cache.Cache, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, stats: stats, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context, tenantID string) (domain.DashboardStats, error) {
	ctx, span := startSpan(ctx, "DashboardService.Stats")
	defer span.End()

	key := cache.Key(cache.StatsKeyEndpoint, tenantID, nil)
	if cached, ok := s.stats.Get(key); ok {
		if stats, ok := cached.(domain.DashboardStats); ok {
			return stats, nil
		}
	}

	stats, err := s.repo.Dashboard(ctx, tenantID)
	if err != nil {
		span.RecordError(err)
		return domain.DashboardStats{}, err
	}

	s.stats.Set(key, stats)
	return stats, nil
}
