package proposal

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProposalService handles the proposal lifecycle: drafting, line items,
// wizard progress, and the approval workflow. Every mutation appends a
// version snapshot so the history can be browsed and diffed.
type ProposalService struct {
	proposalRepo proposal.ProposalRepository
	versionRepo  proposal.VersionRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
	recorder     *activity.Recorder
	logger       *zap.Logger
}

// NewProposalService creates a new ProposalService
func NewProposalService(
	proposalRepo proposal.ProposalRepository,
	versionRepo proposal.VersionRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	recorder *activity.Recorder,
	logger *zap.Logger,
) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		versionRepo:  versionRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		recorder:     recorder,
		logger:       logger,
	}
}

// Create creates a new proposal draft for a customer
func (s *ProposalService) Create(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, req CreateProposalRequest) (*ProposalResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot create a proposal for an inactive customer")
	}

	p, err := proposal.NewProposal(tenantID, req.CustomerID, req.Title)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		p.SetCreatedBy(*userID)
	}
	if req.Description != "" {
		if err := p.Update(req.Title, req.Description); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := p.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}

	if err := s.proposalRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeCreate, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// GetByID retrieves a proposal by ID
func (s *ProposalService) GetByID(ctx context.Context, tenantID, proposalID uuid.UUID) (*ProposalResponse, error) {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	response := ToProposalResponse(p)
	return &response, nil
}

// List retrieves a list of proposals with filtering and pagination
func (s *ProposalService) List(ctx context.Context, tenantID uuid.UUID, filter ProposalListFilter) (*shared.Paginated[ProposalResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CustomerID != "" {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}

	proposals, err := s.proposalRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.proposalRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProposalResponses(proposals), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a proposal draft's basic info, due date, or wizard step
func (s *ProposalService) Update(ctx context.Context, tenantID, proposalID uuid.UUID, userID *uuid.UUID, req UpdateProposalRequest) (*ProposalResponse, error) {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Description != nil {
		title := p.Title
		description := p.Description
		if req.Title != nil {
			title = *req.Title
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := p.Update(title, description); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := p.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.WizardStep != nil {
		if err := p.AdvanceWizard(*req.WizardStep); err != nil {
			return nil, err
		}
	}

	if err := s.proposalRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeUpdate, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// AddLineItem adds a product row, copying SKU, name, and price from the
// catalog at the time of adding
func (s *ProposalService) AddLineItem(ctx context.Context, tenantID, proposalID uuid.UUID, userID *uuid.UUID, req AddLineItemRequest) (*ProposalResponse, error) {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot add an inactive product to a proposal")
	}

	if err := p.AddLineItem(product.ID, product.SKU, product.Name, req.Quantity, product.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeUpdate, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// UpdateLineItem changes the quantity of an existing row
func (s *ProposalService) UpdateLineItem(ctx context.Context, tenantID, proposalID, productID uuid.UUID, userID *uuid.UUID, req UpdateLineItemRequest) (*ProposalResponse, error) {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateLineItem(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeUpdate, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// RemoveLineItem removes a product row
func (s *ProposalService) RemoveLineItem(ctx context.Context, tenantID, proposalID, productID uuid.UUID, userID *uuid.UUID) (*ProposalResponse, error) {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveLineItem(productID); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeUpdate, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// Transition moves the proposal through its workflow
func (s *ProposalService) Transition(ctx context.Context, tenantID, proposalID uuid.UUID, userID *uuid.UUID, req TransitionRequest) (*ProposalResponse, error) {
	target := proposal.Status(req.Status)
	if !proposal.ValidStatus(target) {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown proposal status")
	}

	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return nil, err
	}

	if err := p.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.proposalRepo.SaveWithLock(ctx, p); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, p)
	s.snapshot(ctx, p, proposal.ChangeTypeStatusChange, userID)

	response := ToProposalResponse(p)
	return &response, nil
}

// Delete deletes a proposal draft. Only drafts can be removed.
func (s *ProposalService) Delete(ctx context.Context, tenantID, proposalID uuid.UUID) error {
	p, err := s.proposalRepo.FindByIDForTenant(ctx, tenantID, proposalID)
	if err != nil {
		return err
	}
	if p.Status != proposal.StatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft proposals can be deleted")
	}
	return s.proposalRepo.DeleteForTenant(ctx, tenantID, proposalID)
}

// snapshot appends a version for the proposal's current state. Failures
// are logged and never fail the operation that triggered them.
func (s *ProposalService) snapshot(ctx context.Context, p *proposal.Proposal, changeType proposal.ChangeType, userID *uuid.UUID) {
	changedBy := uuid.Nil
	if userID != nil {
		changedBy = *userID
	}

	number, err := s.versionRepo.NextNumber(ctx, p.TenantID, p.ID)
	if err != nil {
		s.logger.Warn("failed to allocate version number",
			zap.String("proposal_id", p.ID.String()),
			zap.Error(err),
		)
		return
	}
	version, err := proposal.NewVersion(p, number, changeType, changedBy)
	if err != nil {
		s.logger.Warn("failed to build version snapshot",
			zap.String("proposal_id", p.ID.String()),
			zap.Error(err),
		)
		return
	}
	if err := s.versionRepo.Save(ctx, version); err != nil {
		s.logger.Warn("failed to save version snapshot",
			zap.String("proposal_id", p.ID.String()),
			zap.Int("number", number),
			zap.Error(err),
		)
	}
}
