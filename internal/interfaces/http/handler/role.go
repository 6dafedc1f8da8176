package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/posalpro/backend/internal/application/identity"
)

// RoleHandler handles role management endpoints
type RoleHandler struct {
	BaseHandler
	roleService *identityapp.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService *identityapp.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// Create handles POST /roles
func (h *RoleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req identityapp.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.roleService.Create(c.Request.Context(), tenantID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /roles/:id
func (h *RoleHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	resp, err := h.roleService.GetByID(c.Request.Context(), tenantID, roleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /roles
func (h *RoleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	roles, err := h.roleService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roles)
}

// Update handles PUT /roles/:id
func (h *RoleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	var req identityapp.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.roleService.Update(c.Request.Context(), tenantID, roleID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GrantPermission handles POST /roles/:id/permissions
func (h *RoleHandler) GrantPermission(c *gin.Context) {
	h.permissionChange(c, h.roleService.GrantPermission)
}

// RevokePermission handles DELETE /roles/:id/permissions
func (h *RoleHandler) RevokePermission(c *gin.Context) {
	h.permissionChange(c, h.roleService.RevokePermission)
}

// Delete handles DELETE /roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), tenantID, roleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *RoleHandler) permissionChange(c *gin.Context, change func(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID, identityapp.PermissionRequest) (*identityapp.RoleResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}
	roleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid role ID")
		return
	}

	var req identityapp.PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := change(c.Request.Context(), tenantID, roleID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
