package bridge

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Bridge holds the shared machinery for one resource: the transport
// client, the request cache, the coalescing group, the permission gate,
// and the audit/analytics sinks. Per-resource bridges embed one Bridge
// and expose typed operations on top of Read and Mutate.
type Bridge struct {
	resource    string
	client      Client
	cache       *RequestCache
	group       singleflight.Group
	permissions PermissionChecker
	audit       AuditSink
	analytics   AnalyticsSink
	logger      *zap.Logger
}

// Option is a functional option for Bridge configuration
type Option func(*Bridge)

// WithCacheTTL sets the request cache TTL
func WithCacheTTL(ttl time.Duration) Option {
	return func(b *Bridge) {
		b.cache = NewRequestCache(ttl)
	}
}

// WithPermissions sets the permission gate; without one all calls are allowed
func WithPermissions(checker PermissionChecker) Option {
	return func(b *Bridge) {
		b.permissions = checker
	}
}

// WithAuditSink sets the audit sink for permission decisions
func WithAuditSink(sink AuditSink) Option {
	return func(b *Bridge) {
		b.audit = sink
	}
}

// WithAnalytics sets the analytics sink
func WithAnalytics(sink AnalyticsSink) Option {
	return func(b *Bridge) {
		b.analytics = sink
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a bridge for the named resource
func New(resource string, client Client, opts ...Option) *Bridge {
	b := &Bridge{
		resource:  resource,
		client:    client,
		cache:     NewRequestCache(DefaultCacheTTL),
		audit:     NewLoggingAuditSink(nil),
		analytics: NopAnalyticsSink{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resource returns the resource name this bridge fronts
func (b *Bridge) Resource() string {
	return b.resource
}

// Client returns the underlying transport client
func (b *Bridge) Client() Client {
	return b.client
}

// Cache returns the request cache, mainly for tests and invalidation hooks
func (b *Bridge) Cache() *RequestCache {
	return b.cache
}

// track emits an analytics event without ever letting the sink break the caller
func (b *Bridge) track(event string, properties map[string]any, priority EventPriority) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("analytics sink panicked", zap.Any("panic", r))
		}
	}()
	b.analytics.Track(event, properties, priority)
}

// checkPermission runs the gate and writes exactly one audit record
func (b *Bridge) checkPermission(action Action, scope Scope) bool {
	granted := true
	if b.permissions != nil {
		granted = b.permissions.Allowed(b.resource, action, scope)
	}
	record := AuditRecord{
		Resource:  b.resource,
		Action:    action,
		Scope:     scope,
		Success:   granted,
		Timestamp: time.Now(),
	}
	if !granted {
		record.Error = "insufficient permissions"
	}
	b.audit.LogAccess(record)
	return granted
}

func denied[T any](operation string, action Action, scope Scope) Result[T] {
	return Fail[T](&BridgeError{
		Code:      CodePermissionDenied,
		Message:   fmt.Sprintf("%s requires %s access with %s scope", operation, action, scope),
		Operation: operation,
		Timestamp: time.Now(),
		Retryable: false,
	})
}

// Read runs a cached, coalesced read operation.
//
// Flow: cache check, then coalesce with any identical in-flight call, then
// permission gate, then fetch, then cache fill. Concurrent callers with the
// same key share one underlying fetch and observe the same result; the
// coalescing registration is released before results are delivered, so a
// call issued right after settlement always triggers a fresh fetch.
func Read[T any](ctx context.Context, b *Bridge, key Key, scope Scope, fetch func(ctx context.Context) (T, error)) Result[T] {
	operation := key.Operation()

	if cached, ok := b.cache.Get(key); ok {
		if value, ok := cached.(T); ok {
			b.track("bridge_cache_hit", map[string]any{"operation": operation}, PriorityLow)
			return Ok(value)
		}
		// Type changed under the same key; treat as a miss.
		b.cache.Invalidate(key.String())
	}

	shared, _, _ := b.group.Do(key.String(), func() (result any, err error) {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("bridge fetch panicked",
					zap.String("operation", operation),
					zap.Any("panic", r))
				result = Fail[T](&BridgeError{
					Code:      CodeUnknown,
					Message:   fmt.Sprintf("internal failure in %s", operation),
					Operation: operation,
					Timestamp: time.Now(),
				})
				err = nil
			}
		}()

		if !b.checkPermission(ActionRead, scope) {
			return denied[T](operation, ActionRead, scope), nil
		}

		value, fetchErr := fetch(ctx)
		if fetchErr != nil {
			b.track("bridge_fetch_error", map[string]any{
				"operation": operation,
				"error":     fetchErr.Error(),
			}, PriorityHigh)
			return Fail[T](newBridgeError(operation, fetchErr)), nil
		}

		// A mutation-triggered Invalidate that lands while this fetch was
		// in flight is overwritten here: the fetched value may be stale
		// for up to one TTL. Known trade-off, kept from the original
		// behavior of this layer.
		b.cache.Set(key, value)
		b.track("bridge_fetch", map[string]any{"operation": operation}, PriorityLow)
		return Ok(value), nil
	})

	return shared.(Result[T])
}

// Mutate runs a write operation. Writes are never cached or coalesced;
// after a successful write the given key prefixes are invalidated so no
// subsequent read serves a pre-mutation value.
func Mutate[T any](ctx context.Context, b *Bridge, operation string, action Action, scope Scope, invalidate []string, mutate func(ctx context.Context) (T, error)) Result[T] {
	if !b.checkPermission(action, scope) {
		return denied[T](operation, action, scope)
	}

	value, err := mutate(ctx)
	if err != nil {
		b.track("bridge_mutation_error", map[string]any{
			"operation": operation,
			"error":     err.Error(),
		}, PriorityHigh)
		return Fail[T](newBridgeError(operation, err))
	}

	if len(invalidate) == 0 {
		b.cache.Invalidate("")
	}
	for _, prefix := range invalidate {
		b.cache.Invalidate(prefix)
	}

	b.track("bridge_mutation", map[string]any{
		"operation": operation,
		"action":    string(action),
	}, PriorityMedium)
	return Ok(value)
}
