package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/bridge"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionGate checks the caller's JWT permissions against the
// resource a route serves and writes one access log row per decision,
// granted or denied. Log writes are best-effort; a failed write never
// blocks the request.
type PermissionGate struct {
	accessLogs audit.AccessLogRepository
	logger     *zap.Logger
}

// NewPermissionGate creates a new PermissionGate
func NewPermissionGate(accessLogs audit.AccessLogRepository, logger *zap.Logger) *PermissionGate {
	return &PermissionGate{
		accessLogs: accessLogs,
		logger:     logger,
	}
}

// Require returns middleware enforcing resource+action at the given scope
func (g *PermissionGate) Require(resource string, action bridge.Action, scope bridge.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		allowed := bridge.NewPermissionSet(claims.Permissions).Allowed(resource, action, scope)

		errMsg := ""
		if !allowed {
			errMsg = "permission denied"
		}
		g.record(c, claims.TenantID, claims.UserID, resource, action, scope, allowed, errMsg)

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
			return
		}

		c.Next()
	}
}

// RequireResource returns middleware deriving the action from the HTTP
// method: GET reads, POST creates, PUT/PATCH updates, DELETE deletes
func (g *PermissionGate) RequireResource(resource string, scope bridge.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		g.Require(resource, methodToAction(c.Request.Method), scope)(c)
	}
}

func methodToAction(method string) bridge.Action {
	switch method {
	case http.MethodGet:
		return bridge.ActionRead
	case http.MethodPost:
		return bridge.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return bridge.ActionUpdate
	case http.MethodDelete:
		return bridge.ActionDelete
	default:
		return bridge.ActionRead
	}
}

func (g *PermissionGate) record(c *gin.Context, tenantID, userID, resource string, action bridge.Action, scope bridge.Scope, success bool, errMsg string) {
	if g.accessLogs == nil {
		return
	}

	tenant, err := uuid.Parse(tenantID)
	if err != nil {
		return
	}
	var user *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		user = &parsed
	}

	row := audit.NewAccessLog(tenant, user, resource, string(action), string(scope), success, errMsg)
	if err := g.accessLogs.Save(c.Request.Context(), row); err != nil && g.logger != nil {
		g.logger.Warn("failed to write access log",
			zap.String("resource", resource),
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
