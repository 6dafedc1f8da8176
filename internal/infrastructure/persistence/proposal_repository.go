package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProposalRepository implements ProposalRepository using GORM
type GormProposalRepository struct {
	db *gorm.DB
}

// NewGormProposalRepository creates a new GormProposalRepository
func NewGormProposalRepository(db *gorm.DB) *GormProposalRepository {
	return &GormProposalRepository{db: db}
}

// FindByID finds a proposal by its ID, line items included
func (r *GormProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	var p proposal.Proposal
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByIDForTenant finds a proposal by ID within a tenant
func (r *GormProposalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*proposal.Proposal, error) {
	var p proposal.Proposal
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAllForTenant finds all proposals for a tenant
func (r *GormProposalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]proposal.Proposal, error) {
	var proposals []proposal.Proposal
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&proposal.Proposal{}).
			Preload("LineItems").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// FindByStatus finds proposals by workflow status for a tenant
func (r *GormProposalRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status proposal.Status, filter shared.Filter) ([]proposal.Proposal, error) {
	var proposals []proposal.Proposal
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&proposal.Proposal{}).
			Preload("LineItems").
			Where("tenant_id = ? AND status = ?", tenantID, status),
		filter,
	)

	if err := query.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// FindByCustomer finds proposals for one customer
func (r *GormProposalRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]proposal.Proposal, error) {
	var proposals []proposal.Proposal
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&proposal.Proposal{}).
			Preload("LineItems").
			Where("tenant_id = ? AND customer_id = ?", tenantID, customerID),
		filter,
	)

	if err := query.Find(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

// Save creates or updates a proposal and its line items. Removed line
// items are deleted by replacing the association inside a transaction.
func (r *GormProposalRepository) Save(ctx context.Context, p *proposal.Proposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("proposal_id = ?", p.ID).Delete(&proposal.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Save(p).Error
	})
}

// SaveWithLock saves a proposal with optimistic locking (version check)
func (r *GormProposalRepository) SaveWithLock(ctx context.Context, p *proposal.Proposal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&proposal.Proposal{}).
			Where("id = ? AND version = ?", p.ID, p.Version-1).
			Omit("LineItems").
			Updates(p)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The proposal record has been modified by another transaction")
		}

		if err := tx.Where("proposal_id = ?", p.ID).Delete(&proposal.LineItem{}).Error; err != nil {
			return err
		}
		if len(p.LineItems) == 0 {
			return nil
		}
		items := make([]*proposal.LineItem, len(p.LineItems))
		for i := range p.LineItems {
			items[i] = &p.LineItems[i]
		}
		return tx.Create(items).Error
	})
}

// DeleteForTenant deletes a proposal within a tenant
func (r *GormProposalRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&proposal.Proposal{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts proposals for a tenant
func (r *GormProposalRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&proposal.Proposal{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts proposals in one status for a tenant
func (r *GormProposalRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status proposal.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&proposal.Proposal{}).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCustomer counts proposals referencing a customer
func (r *GormProposalRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&proposal.Proposal{}).
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProposalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, ProposalSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProposalRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "currency":
			query = query.Where("currency = ?", value)
		}
	}

	return query
}

// Ensure GormProposalRepository implements ProposalRepository
var _ proposal.ProposalRepository = (*GormProposalRepository)(nil)
