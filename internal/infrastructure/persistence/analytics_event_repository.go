package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormEventRepository implements analytics EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// SaveBatch appends a batch of events
func (r *GormEventRepository) SaveBatch(ctx context.Context, events []*analytics.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&events).Error
}

// FindRecent returns the newest events for a tenant
func (r *GormEventRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]analytics.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []analytics.Event
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// CountByName counts events by name within a time window
func (r *GormEventRepository) CountByName(ctx context.Context, tenantID uuid.UUID, name string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&analytics.Event{}).
		Where("tenant_id = ? AND name = ? AND occurred_at >= ?", tenantID, name, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormEventRepository implements EventRepository
var _ analytics.EventRepository = (*GormEventRepository)(nil)
