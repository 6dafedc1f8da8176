package proposal

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// ProposalRepository defines the interface for proposal persistence
type ProposalRepository interface {
	// FindByID finds a proposal by its ID, line items included
	FindByID(ctx context.Context, id uuid.UUID) (*Proposal, error)

	// FindByIDForTenant finds a proposal by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Proposal, error)

	// FindAllForTenant finds all proposals for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Proposal, error)

	// FindByStatus finds proposals by workflow status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status, filter shared.Filter) ([]Proposal, error)

	// FindByCustomer finds proposals for one customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Proposal, error)

	// Save creates or updates a proposal and its line items
	Save(ctx context.Context, proposal *Proposal) error

	// SaveWithLock saves a proposal with optimistic locking (version check)
	SaveWithLock(ctx context.Context, proposal *Proposal) error

	// DeleteForTenant deletes a proposal within a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts proposals for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// CountByStatus counts proposals in one status for a tenant
	CountByStatus(ctx context.Context, tenantID uuid.UUID, status Status) (int64, error)

	// CountByCustomer counts proposals referencing a customer
	CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error)
}
