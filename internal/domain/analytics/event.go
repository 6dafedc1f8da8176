package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// Priority orders events for downstream processing
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Event is one tracked usage event. Events are append-only facts;
// nothing in the system ever updates or depends on them transactionally.
type Event struct {
	shared.BaseEntity
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"type:varchar(100);not null;index"`
	Properties string     `gorm:"type:jsonb;not null;default:'{}'"`
	Priority   Priority   `gorm:"type:varchar(10);not null;default:'low'"`
	OccurredAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "analytics_events"
}

// NewEvent creates a tracked event
func NewEvent(tenantID uuid.UUID, userID *uuid.UUID, name string, properties map[string]any, priority Priority, occurredAt time.Time) (*Event, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event name cannot exceed 100 characters")
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	case "":
		priority = PriorityLow
	default:
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Priority must be low, medium, or high")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	encoded := "{}"
	if len(properties) > 0 {
		raw, err := json.Marshal(properties)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PROPERTIES", "Event properties must be JSON-encodable")
		}
		encoded = string(raw)
	}

	return &Event{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		Name:       name,
		Properties: encoded,
		Priority:   priority,
		OccurredAt: occurredAt,
	}, nil
}

// EventRepository defines the interface for analytics event persistence
type EventRepository interface {
	// SaveBatch appends a batch of events
	SaveBatch(ctx context.Context, events []*Event) error

	// FindRecent returns the newest events for a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]Event, error)

	// CountByName counts events by name within a time window
	CountByName(ctx context.Context, tenantID uuid.UUID, name string, since time.Time) (int64, error)
}
