// Package activity records domain events raised by aggregates into the
// change log audit trail. Services call the recorder after a successful
// save; recording failures are logged and never fail the operation.
package activity

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder writes aggregate domain events to the change log
type Recorder struct {
	changeLogs audit.ChangeLogRepository
	logger     *zap.Logger
}

// NewRecorder creates a new Recorder
func NewRecorder(changeLogs audit.ChangeLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		changeLogs: changeLogs,
		logger:     logger,
	}
}

// Record drains the aggregate's pending events into change log rows.
// The aggregate's event list is cleared whether or not the write
// succeeds so events are never recorded twice.
func (r *Recorder) Record(ctx context.Context, userID *uuid.UUID, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	aggregate.ClearDomainEvents()
	if len(events) == 0 {
		return
	}

	logs := make([]*audit.ChangeLog, 0, len(events))
	for _, event := range events {
		payload := "{}"
		if raw, err := json.Marshal(event); err == nil {
			payload = string(raw)
		}

		logs = append(logs, &audit.ChangeLog{
			BaseEntity:    shared.NewBaseEntity(),
			TenantID:      event.TenantID(),
			UserID:        userID,
			EventType:     event.EventType(),
			AggregateType: event.AggregateType(),
			AggregateID:   event.AggregateID(),
			Payload:       payload,
			OccurredAt:    event.OccurredAt(),
		})
	}

	if err := r.changeLogs.SaveBatch(ctx, logs); err != nil {
		r.logger.Warn("failed to record change log entries",
			zap.Int("count", len(logs)),
			zap.Error(err),
		)
	}
}
