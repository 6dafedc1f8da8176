package identity

import (
	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeUser = "User"
	AggregateTypeRole = "Role"
)

// Event type constants
const (
	EventTypeUserCreated            = "UserCreated"
	EventTypeUserLocked             = "UserLocked"
	EventTypeRoleCreated            = "RoleCreated"
	EventTypeRolePermissionsChanged = "RolePermissionsChanged"
)

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, user.TenantID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// UserLockedEvent is published when repeated failures lock an account
type UserLockedEvent struct {
	shared.BaseDomainEvent
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	FailedAttempts int       `json:"failed_attempts"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(user *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, AggregateTypeUser, user.ID, user.TenantID),
		UserID:          user.ID,
		Email:           user.Email,
		FailedAttempts:  user.FailedAttempts,
	}
}

// RoleCreatedEvent is published when a new role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Name   string    `json:"name"`
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, AggregateTypeRole, role.ID, role.TenantID),
		RoleID:          role.ID,
		Name:            role.Name,
	}
}

// RolePermissionsChangedEvent is published when a role's grants change
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	RoleID      uuid.UUID `json:"role_id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(role *Role) *RolePermissionsChangedEvent {
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, AggregateTypeRole, role.ID, role.TenantID),
		RoleID:          role.ID,
		Name:            role.Name,
		Permissions:     role.PermissionStrings(),
	}
}
