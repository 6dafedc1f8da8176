package analytics

import (
	"time"

	"github.com/google/uuid"
)

// TrackEventRequest represents one event in an ingest batch
type TrackEventRequest struct {
	Name       string         `json:"name" binding:"required,min=1,max=100"`
	Properties map[string]any `json:"properties"`
	Priority   string         `json:"priority" binding:"omitempty,oneof=low medium high"`
	OccurredAt *time.Time     `json:"occurred_at"`
}

// TrackBatchRequest represents a batch of events to ingest
type TrackBatchRequest struct {
	Events []TrackEventRequest `json:"events" binding:"required,min=1,max=100,dive"`
}

// TrackBatchResponse reports how many events were accepted
type TrackBatchResponse struct {
	Accepted int `json:"accepted"`
}

// EventResponse represents a stored event in API responses
type EventResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Properties string     `json:"properties"`
	Priority   string     `json:"priority"`
	OccurredAt time.Time  `json:"occurred_at"`
}
