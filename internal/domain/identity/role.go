package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// Permission is a functional permission string in the form
// "resource:action:scope", e.g. "proposals:read:TEAM". A missing scope
// segment means ALL; "*" wildcards any segment.
type Permission string

// Role groups permissions for assignment to users.
// It is the aggregate root for authorization configuration.
type Role struct {
	shared.TenantAggregateRoot
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_role_tenant_name,priority:2"`
	Description string       `gorm:"type:text"`
	Permissions []Permission `gorm:"serializer:json;type:jsonb"`
	System      bool         `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role
func NewRole(tenantID uuid.UUID, name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	role := &Role{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Description:         description,
		Permissions:         make([]Permission, 0),
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// GrantPermission adds a permission to the role
func (r *Role) GrantPermission(permission Permission) error {
	if err := validatePermission(permission); err != nil {
		return err
	}
	for _, existing := range r.Permissions {
		if existing == permission {
			return shared.NewDomainError("PERMISSION_EXISTS", "Role already has this permission")
		}
	}

	r.Permissions = append(r.Permissions, permission)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))

	return nil
}

// RevokePermission removes a permission from the role
func (r *Role) RevokePermission(permission Permission) error {
	for i, existing := range r.Permissions {
		if existing == permission {
			r.Permissions = append(r.Permissions[:i], r.Permissions[i+1:]...)
			r.UpdatedAt = time.Now()
			r.IncrementVersion()
			r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
			return nil
		}
	}
	return shared.NewDomainError("PERMISSION_NOT_FOUND", "Role does not have this permission")
}

// Update updates the role's name and description
func (r *Role) Update(name, description string) error {
	if r.System {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be renamed")
	}
	if err := validateRoleName(name); err != nil {
		return err
	}

	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// PermissionStrings returns the role's permissions as plain strings,
// the form carried in JWT claims
func (r *Role) PermissionStrings() []string {
	out := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		out[i] = string(p)
	}
	return out
}

func validateRoleName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}

func validatePermission(permission Permission) error {
	parts := strings.Split(string(permission), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return shared.NewDomainError("INVALID_PERMISSION", "Permission must be 'resource:action' or 'resource:action:scope'")
	}
	for _, part := range parts {
		if part == "" {
			return shared.NewDomainError("INVALID_PERMISSION", "Permission segments cannot be empty")
		}
	}
	if len(parts) == 3 {
		switch strings.ToUpper(parts[2]) {
		case "OWN", "TEAM", "ALL", "*":
		default:
			return shared.NewDomainError("INVALID_PERMISSION", "Permission scope must be OWN, TEAM, ALL, or *")
		}
	}
	return nil
}
