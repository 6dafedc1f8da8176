package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// AccessLog records one permission decision: who tried what, against
// which resource, and whether it was granted. One row per check.
type AccessLog struct {
	shared.BaseEntity
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Resource  string     `gorm:"type:varchar(100);not null;index"`
	Action    string     `gorm:"type:varchar(20);not null"`
	Scope     string     `gorm:"type:varchar(10);not null"`
	Success   bool       `gorm:"not null"`
	Error     string     `gorm:"type:text"`
	CheckedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AccessLog) TableName() string {
	return "access_logs"
}

// NewAccessLog creates an access log row
func NewAccessLog(tenantID uuid.UUID, userID *uuid.UUID, resource, action, scope string, success bool, errMsg string) *AccessLog {
	return &AccessLog{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		Resource:   resource,
		Action:     action,
		Scope:      scope,
		Success:    success,
		Error:      errMsg,
		CheckedAt:  time.Now(),
	}
}

// ChangeLog records a domain event emitted by an aggregate: what
// happened, to which aggregate, and the event payload. The application
// layer writes one row per collected domain event when an aggregate is
// saved.
type ChangeLog struct {
	shared.BaseEntity
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID        *uuid.UUID `gorm:"type:uuid;index"`
	EventType     string     `gorm:"type:varchar(100);not null;index"`
	AggregateType string     `gorm:"type:varchar(100);not null;index"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload       string     `gorm:"type:jsonb;not null;default:'{}'"`
	OccurredAt    time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ChangeLog) TableName() string {
	return "change_logs"
}

// AccessLogRepository defines the interface for access log persistence
type AccessLogRepository interface {
	// Save appends one access log row
	Save(ctx context.Context, log *AccessLog) error

	// FindRecent returns the newest access logs for a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]AccessLog, error)

	// CountDenied counts denied checks for a tenant since a point in time
	CountDenied(ctx context.Context, tenantID uuid.UUID, since time.Time) (int64, error)
}

// ChangeLogRepository defines the interface for change log persistence
type ChangeLogRepository interface {
	// SaveBatch appends change log rows
	SaveBatch(ctx context.Context, logs []*ChangeLog) error

	// FindByAggregate returns the history of one aggregate, newest first
	FindByAggregate(ctx context.Context, tenantID, aggregateID uuid.UUID, limit int) ([]ChangeLog, error)

	// FindRecent returns the newest change logs for a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]ChangeLog, error)
}
