package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/identity"
	"github.com/posalpro/backend/internal/domain/shared"
)

// RoleService handles role management and permission grants
type RoleService struct {
	roleRepo identity.RoleRepository
	recorder *activity.Recorder
}

// NewRoleService creates a new RoleService
func NewRoleService(roleRepo identity.RoleRepository, recorder *activity.Recorder) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		recorder: recorder,
	}
}

// Create creates a new role, optionally with an initial permission set
func (s *RoleService) Create(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req CreateRoleRequest) (*RoleResponse, error) {
	existing, err := s.roleRepo.FindByName(ctx, tenantID, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_NAME", "A role with this name already exists")
	}

	role, err := identity.NewRole(tenantID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if actorID != nil {
		role.SetCreatedBy(*actorID)
	}
	for _, p := range req.Permissions {
		if err := role.GrantPermission(identity.Permission(p)); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, role)

	response := ToRoleResponse(role)
	return &response, nil
}

// GetByID retrieves a role by ID within a tenant
func (s *RoleService) GetByID(ctx context.Context, tenantID, roleID uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !role.IsOwnedBy(tenantID) {
		return nil, shared.ErrNotFound
	}

	response := ToRoleResponse(role)
	return &response, nil
}

// List retrieves all roles for a tenant
func (s *RoleService) List(ctx context.Context, tenantID uuid.UUID) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAllForTenant(ctx, tenantID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	return ToRoleResponses(roles), nil
}

// Update updates a role's name or description
func (s *RoleService) Update(ctx context.Context, tenantID, roleID uuid.UUID, actorID *uuid.UUID, req UpdateRoleRequest) (*RoleResponse, error) {
	return s.mutate(ctx, tenantID, roleID, actorID, func(role *identity.Role) error {
		name := role.Name
		description := role.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		return role.Update(name, description)
	})
}

// GrantPermission adds a permission to a role
func (s *RoleService) GrantPermission(ctx context.Context, tenantID, roleID uuid.UUID, actorID *uuid.UUID, req PermissionRequest) (*RoleResponse, error) {
	return s.mutate(ctx, tenantID, roleID, actorID, func(role *identity.Role) error {
		return role.GrantPermission(identity.Permission(req.Permission))
	})
}

// RevokePermission removes a permission from a role
func (s *RoleService) RevokePermission(ctx context.Context, tenantID, roleID uuid.UUID, actorID *uuid.UUID, req PermissionRequest) (*RoleResponse, error) {
	return s.mutate(ctx, tenantID, roleID, actorID, func(role *identity.Role) error {
		return role.RevokePermission(identity.Permission(req.Permission))
	})
}

// Delete deletes a role. System roles cannot be removed.
func (s *RoleService) Delete(ctx context.Context, tenantID, roleID uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if !role.IsOwnedBy(tenantID) {
		return shared.ErrNotFound
	}
	if role.System {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}
	return s.roleRepo.DeleteForTenant(ctx, tenantID, roleID)
}

func (s *RoleService) mutate(ctx context.Context, tenantID, roleID uuid.UUID, actorID *uuid.UUID, change func(*identity.Role) error) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !role.IsOwnedBy(tenantID) {
		return nil, shared.ErrNotFound
	}
	if err := change(role); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, role)

	response := ToRoleResponse(role)
	return &response, nil
}
