package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/reporting"
	"github.com/posalpro/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// DashboardService serves the tenant dashboard read model. Stats are
// expensive to aggregate, so each tenant's payload is cached for a
// short TTL; the cache is best-effort and every failure falls through
// to the database.
type DashboardService struct {
	dashboardRepo reporting.DashboardRepository
	statsCache    cache.StatsCache
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	dashboardRepo reporting.DashboardRepository,
	statsCache cache.StatsCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		statsCache:    statsCache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// Stats returns the aggregated dashboard numbers for a tenant
func (s *DashboardService) Stats(ctx context.Context, tenantID uuid.UUID) (*reporting.DashboardStats, error) {
	key := tenantID.String()

	if payload, ok, err := s.statsCache.Get(ctx, key); err != nil {
		s.logger.Warn("dashboard cache read failed",
			zap.String("tenant_id", key),
			zap.Error(err),
		)
	} else if ok {
		var stats reporting.DashboardStats
		if err := json.Unmarshal(payload, &stats); err == nil {
			return &stats, nil
		}
		// A corrupt entry is dropped and rebuilt below
		if err := s.statsCache.Delete(ctx, key); err != nil {
			s.logger.Warn("dashboard cache delete failed",
				zap.String("tenant_id", key),
				zap.Error(err),
			)
		}
	}

	stats, err := s.dashboardRepo.Stats(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.statsCache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed",
				zap.String("tenant_id", key),
				zap.Error(err),
			)
		}
	}
	return stats, nil
}

// RecentActivity returns the newest change-log entries for a tenant
func (s *DashboardService) RecentActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]reporting.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.dashboardRepo.RecentActivity(ctx, tenantID, limit)
}

// InvalidateStats drops a tenant's cached dashboard payload
func (s *DashboardService) InvalidateStats(ctx context.Context, tenantID uuid.UUID) {
	if err := s.statsCache.Delete(ctx, tenantID.String()); err != nil {
		s.logger.Warn("dashboard cache invalidation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}
