package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForTenant finds a user by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a tenant
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)

	// FindAllForTenant finds all users for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)

	// Save creates or updates a user, role assignments included
	Save(ctx context.Context, user *User) error

	// DeleteForTenant deletes a user within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// ExistsByEmail checks if a user with the given email exists in the tenant
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
}

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByIDs finds multiple roles by their IDs within a tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Role, error)

	// FindByName finds a role by name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Role, error)

	// FindAllForTenant finds all roles for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Role, error)

	// Save creates or updates a role
	Save(ctx context.Context, role *Role) error

	// DeleteForTenant deletes a role within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
