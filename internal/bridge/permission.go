package bridge

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Scope is the breadth of records an action touches: the caller's own
// records, their team's, or every record in the tenant.
type Scope string

const (
	ScopeOwn  Scope = "OWN"
	ScopeTeam Scope = "TEAM"
	ScopeAll  Scope = "ALL"
)

// Action is the operation class checked against held permissions
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var scopeRank = map[Scope]int{
	ScopeOwn:  1,
	ScopeTeam: 2,
	ScopeAll:  3,
}

// AuditRecord captures one permission decision. Every check, granted or
// denied, produces exactly one record.
type AuditRecord struct {
	Resource  string    `json:"resource"`
	Action    Action    `json:"action"`
	Scope     Scope     `json:"scope"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// AuditSink receives permission decisions, fire-and-forget
type AuditSink interface {
	LogAccess(record AuditRecord)
}

// PermissionChecker answers whether the caller may perform an action
type PermissionChecker interface {
	Allowed(resource string, action Action, scope Scope) bool
}

// PermissionSet is the set of permission strings the caller holds, as
// issued in its JWT claims. Each entry is "resource:action:scope";
// "*" wildcards any segment, and a held scope satisfies any narrower
// requested scope (ALL covers TEAM covers OWN).
type PermissionSet struct {
	held []string
}

// NewPermissionSet builds a checker from held permission strings
func NewPermissionSet(held []string) *PermissionSet {
	return &PermissionSet{held: held}
}

// Allowed reports whether any held permission satisfies resource+action+scope
func (p *PermissionSet) Allowed(resource string, action Action, scope Scope) bool {
	for _, perm := range p.held {
		if permissionSatisfies(perm, resource, action, scope) {
			return true
		}
	}
	return false
}

func permissionSatisfies(held, resource string, action Action, scope Scope) bool {
	parts := strings.Split(held, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return false
	}
	if parts[0] != "*" && parts[0] != resource {
		return false
	}
	if parts[1] != "*" && parts[1] != string(action) {
		return false
	}

	heldScope := ScopeAll
	if len(parts) == 3 && parts[2] != "*" {
		heldScope = Scope(strings.ToUpper(parts[2]))
	}
	heldRank, ok := scopeRank[heldScope]
	if !ok {
		return false
	}
	wantRank, ok := scopeRank[scope]
	if !ok {
		return false
	}
	return heldRank >= wantRank
}

// LoggingAuditSink writes audit records through zap
type LoggingAuditSink struct {
	logger *zap.Logger
}

// NewLoggingAuditSink creates an audit sink backed by the given logger
func NewLoggingAuditSink(logger *zap.Logger) *LoggingAuditSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingAuditSink{logger: logger}
}

// LogAccess records one permission decision
func (s *LoggingAuditSink) LogAccess(record AuditRecord) {
	s.logger.Info("access check",
		zap.String("resource", record.Resource),
		zap.String("action", string(record.Action)),
		zap.String("scope", string(record.Scope)),
		zap.Bool("success", record.Success),
		zap.Time("timestamp", record.Timestamp),
		zap.String("error", record.Error),
	)
}

var _ AuditSink = (*LoggingAuditSink)(nil)
var _ PermissionChecker = (*PermissionSet)(nil)
