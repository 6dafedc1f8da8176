package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/reporting"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository implements DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// statusValueRow is the scan target for the per-status aggregate query
type statusValueRow struct {
	Status string
	Count  int64
	Value  decimal.Decimal
}

// Stats computes pipeline statistics for a tenant. Pipeline value sums
// open proposals (submitted through sent); won value sums accepted ones.
// Win rate is accepted over decided (accepted plus declined).
func (r *GormDashboardRepository) Stats(ctx context.Context, tenantID uuid.UUID) (*reporting.DashboardStats, error) {
	var rows []statusValueRow
	if err := r.db.WithContext(ctx).
		Model(&proposal.Proposal{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_value), 0) AS value").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &reporting.DashboardStats{
		ByStatus:      make(map[string]int64),
		PipelineValue: decimal.Zero,
		WonValue:      decimal.Zero,
		GeneratedAt:   time.Now(),
	}

	var accepted, declined int64
	for _, row := range rows {
		stats.TotalProposals += row.Count
		stats.ByStatus[row.Status] = row.Count

		switch proposal.Status(row.Status) {
		case proposal.StatusInReview, proposal.StatusApproved, proposal.StatusSent:
			stats.PipelineValue = stats.PipelineValue.Add(row.Value)
		case proposal.StatusAccepted:
			stats.WonValue = stats.WonValue.Add(row.Value)
			accepted = row.Count
		case proposal.StatusDeclined:
			declined = row.Count
		}
	}
	if decided := accepted + declined; decided > 0 {
		stats.WinRate = float64(accepted) / float64(decided)
	}

	if err := r.db.WithContext(ctx).
		Model(&partner.Customer{}).
		Where("tenant_id = ? AND status = ?", tenantID, partner.CustomerStatusActive).
		Count(&stats.ActiveCustomers).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// RecentActivity returns the newest change log entries for a tenant
func (r *GormDashboardRepository) RecentActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]reporting.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var logs []audit.ChangeLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	entries := make([]reporting.ActivityEntry, len(logs))
	for i, log := range logs {
		entries[i] = reporting.ActivityEntry{
			EventType:     log.EventType,
			AggregateType: log.AggregateType,
			AggregateID:   log.AggregateID,
			OccurredAt:    log.OccurredAt,
		}
	}
	return entries, nil
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ reporting.DashboardRepository = (*GormDashboardRepository)(nil)
