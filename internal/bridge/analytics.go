package bridge

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventPriority orders analytics events for downstream processing
type EventPriority string

const (
	PriorityLow    EventPriority = "low"
	PriorityMedium EventPriority = "medium"
	PriorityHigh   EventPriority = "high"
)

// AnalyticsSink receives named events with metadata. Implementations are
// fire-and-forget: they are never awaited and must not let a failure reach
// the caller.
type AnalyticsSink interface {
	Track(event string, properties map[string]any, priority EventPriority)
}

// NopAnalyticsSink discards all events
type NopAnalyticsSink struct{}

// Track discards the event
func (NopAnalyticsSink) Track(string, map[string]any, EventPriority) {}

// trackedEvent is the wire shape posted to the analytics ingestion endpoint
type trackedEvent struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	Priority   EventPriority  `json:"priority"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// BatchingAnalyticsSink buffers events and posts them to the API in
// batches, flushing when the buffer fills or the flush interval elapses.
type BatchingAnalyticsSink struct {
	client    Client
	logger    *zap.Logger
	batchSize int
	interval  time.Duration

	mu     sync.Mutex
	buffer []trackedEvent

	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

// BatchingAnalyticsSinkOption is a functional option for sink configuration
type BatchingAnalyticsSinkOption func(*BatchingAnalyticsSink)

// WithBatchSize sets the buffer size that triggers an immediate flush
func WithBatchSize(n int) BatchingAnalyticsSinkOption {
	return func(s *BatchingAnalyticsSink) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithFlushInterval sets the periodic flush interval
func WithFlushInterval(d time.Duration) BatchingAnalyticsSinkOption {
	return func(s *BatchingAnalyticsSink) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithAnalyticsLogger sets the logger used for flush failures
func WithAnalyticsLogger(logger *zap.Logger) BatchingAnalyticsSinkOption {
	return func(s *BatchingAnalyticsSink) {
		s.logger = logger
	}
}

// NewBatchingAnalyticsSink creates a sink posting batches to the API
func NewBatchingAnalyticsSink(client Client, opts ...BatchingAnalyticsSinkOption) *BatchingAnalyticsSink {
	s := &BatchingAnalyticsSink{
		client:    client,
		logger:    zap.NewNop(),
		batchSize: 20,
		interval:  10 * time.Second,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.flushLoop()
	return s
}

// Track buffers an event; a full buffer triggers an asynchronous flush
func (s *BatchingAnalyticsSink) Track(event string, properties map[string]any, priority EventPriority) {
	if priority == "" {
		priority = PriorityLow
	}
	s.mu.Lock()
	s.buffer = append(s.buffer, trackedEvent{
		Name:       event,
		Properties: properties,
		Priority:   priority,
		OccurredAt: time.Now(),
	})
	full := len(s.buffer) >= s.batchSize
	s.mu.Unlock()

	if full {
		go s.flush()
	}
}

// Close flushes any buffered events and stops the flush loop
func (s *BatchingAnalyticsSink) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.done
		s.flush()
	})
}

func (s *BatchingAnalyticsSink) flushLoop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.flush()
		}
	}
}

func (s *BatchingAnalyticsSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload := map[string]any{"events": batch}
	if err := s.client.Post(ctx, "/analytics/events", payload, nil); err != nil {
		// Dropped on failure: analytics is best-effort and must never
		// block or fail a caller.
		s.logger.Warn("analytics flush failed",
			zap.Int("events", len(batch)),
			zap.Error(err))
	}
}

var _ AnalyticsSink = (*NopAnalyticsSink)(nil)
var _ AnalyticsSink = (*BatchingAnalyticsSink)(nil)
