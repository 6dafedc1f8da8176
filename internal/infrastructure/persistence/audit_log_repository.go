package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/audit"
	"gorm.io/gorm"
)

// GormAccessLogRepository implements AccessLogRepository using GORM
type GormAccessLogRepository struct {
	db *gorm.DB
}

// NewGormAccessLogRepository creates a new GormAccessLogRepository
func NewGormAccessLogRepository(db *gorm.DB) *GormAccessLogRepository {
	return &GormAccessLogRepository{db: db}
}

// Save appends one access log row
func (r *GormAccessLogRepository) Save(ctx context.Context, log *audit.AccessLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindRecent returns the newest access logs for a tenant
func (r *GormAccessLogRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]audit.AccessLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []audit.AccessLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("checked_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CountDenied counts denied checks for a tenant since a point in time
func (r *GormAccessLogRepository) CountDenied(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&audit.AccessLog{}).
		Where("tenant_id = ? AND success = ? AND checked_at >= ?", tenantID, false, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAccessLogRepository implements AccessLogRepository
var _ audit.AccessLogRepository = (*GormAccessLogRepository)(nil)

// GormChangeLogRepository implements ChangeLogRepository using GORM
type GormChangeLogRepository struct {
	db *gorm.DB
}

// NewGormChangeLogRepository creates a new GormChangeLogRepository
func NewGormChangeLogRepository(db *gorm.DB) *GormChangeLogRepository {
	return &GormChangeLogRepository{db: db}
}

// SaveBatch appends change log rows
func (r *GormChangeLogRepository) SaveBatch(ctx context.Context, logs []*audit.ChangeLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

// FindByAggregate returns the history of one aggregate, newest first
func (r *GormChangeLogRepository) FindByAggregate(ctx context.Context, tenantID, aggregateID uuid.UUID, limit int) ([]audit.ChangeLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []audit.ChangeLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND aggregate_id = ?", tenantID, aggregateID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindRecent returns the newest change logs for a tenant
func (r *GormChangeLogRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]audit.ChangeLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []audit.ChangeLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Ensure GormChangeLogRepository implements ChangeLogRepository
var _ audit.ChangeLogRepository = (*GormChangeLogRepository)(nil)
