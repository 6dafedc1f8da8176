package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/analytics"
)

// IngestService accepts batches of usage events and appends them to the
// event store. Ingest is all-or-nothing per batch: a malformed event
// rejects the whole request so clients learn about it immediately.
type IngestService struct {
	eventRepo analytics.EventRepository
}

// NewIngestService creates a new IngestService
func NewIngestService(eventRepo analytics.EventRepository) *IngestService {
	return &IngestService{eventRepo: eventRepo}
}

// TrackBatch validates and stores a batch of events
func (s *IngestService) TrackBatch(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, req TrackBatchRequest) (*TrackBatchResponse, error) {
	events := make([]*analytics.Event, 0, len(req.Events))
	for _, e := range req.Events {
		occurredAt := time.Time{}
		if e.OccurredAt != nil {
			occurredAt = *e.OccurredAt
		}
		event, err := analytics.NewEvent(tenantID, userID, e.Name, e.Properties, analytics.Priority(e.Priority), occurredAt)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := s.eventRepo.SaveBatch(ctx, events); err != nil {
		return nil, err
	}
	return &TrackBatchResponse{Accepted: len(events)}, nil
}

// Recent returns the newest events for a tenant
func (s *IngestService) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]EventResponse, error) {
	events, err := s.eventRepo.FindRecent(ctx, tenantID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = EventResponse{
			ID:         e.ID,
			Name:       e.Name,
			UserID:     e.UserID,
			Properties: e.Properties,
			Priority:   string(e.Priority),
			OccurredAt: e.OccurredAt,
		}
	}
	return responses, nil
}
