package proposal

import (
	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProposal = "Proposal"

// Event type constants
const (
	EventTypeProposalCreated          = "ProposalCreated"
	EventTypeProposalUpdated          = "ProposalUpdated"
	EventTypeProposalLineItemsChanged = "ProposalLineItemsChanged"
	EventTypeProposalStatusChanged    = "ProposalStatusChanged"
	EventTypeProposalDeleted          = "ProposalDeleted"
)

// ProposalCreatedEvent is published when a new proposal draft is created
type ProposalCreatedEvent struct {
	shared.BaseDomainEvent
	ProposalID uuid.UUID `json:"proposal_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Title      string    `json:"title"`
}

// NewProposalCreatedEvent creates a new ProposalCreatedEvent
func NewProposalCreatedEvent(p *Proposal) *ProposalCreatedEvent {
	return &ProposalCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProposalCreated, AggregateTypeProposal, p.ID, p.TenantID),
		ProposalID:      p.ID,
		CustomerID:      p.CustomerID,
		Title:           p.Title,
	}
}

// ProposalUpdatedEvent is published when a proposal's basic info changes
type ProposalUpdatedEvent struct {
	shared.BaseDomainEvent
	ProposalID uuid.UUID `json:"proposal_id"`
	Title      string    `json:"title"`
}

// NewProposalUpdatedEvent creates a new ProposalUpdatedEvent
func NewProposalUpdatedEvent(p *Proposal) *ProposalUpdatedEvent {
	return &ProposalUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProposalUpdated, AggregateTypeProposal, p.ID, p.TenantID),
		ProposalID:      p.ID,
		Title:           p.Title,
	}
}

// ProposalLineItemsChangedEvent is published when line items change
type ProposalLineItemsChangedEvent struct {
	shared.BaseDomainEvent
	ProposalID uuid.UUID       `json:"proposal_id"`
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// NewProposalLineItemsChangedEvent creates a new ProposalLineItemsChangedEvent
func NewProposalLineItemsChangedEvent(p *Proposal) *ProposalLineItemsChangedEvent {
	return &ProposalLineItemsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProposalLineItemsChanged, AggregateTypeProposal, p.ID, p.TenantID),
		ProposalID:      p.ID,
		ItemCount:       len(p.LineItems),
		TotalValue:      p.TotalValue,
	}
}

// ProposalStatusChangedEvent is published on every workflow transition
type ProposalStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProposalID uuid.UUID `json:"proposal_id"`
	Title      string    `json:"title"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
}

// NewProposalStatusChangedEvent creates a new ProposalStatusChangedEvent
func NewProposalStatusChangedEvent(p *Proposal, oldStatus, newStatus Status) *ProposalStatusChangedEvent {
	return &ProposalStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProposalStatusChanged, AggregateTypeProposal, p.ID, p.TenantID),
		ProposalID:      p.ID,
		Title:           p.Title,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// ProposalDeletedEvent is published when a proposal is deleted
type ProposalDeletedEvent struct {
	shared.BaseDomainEvent
	ProposalID uuid.UUID `json:"proposal_id"`
	Title      string    `json:"title"`
}

// NewProposalDeletedEvent creates a new ProposalDeletedEvent
func NewProposalDeletedEvent(p *Proposal) *ProposalDeletedEvent {
	return &ProposalDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProposalDeleted, AggregateTypeProposal, p.ID, p.TenantID),
		ProposalID:      p.ID,
		Title:           p.Title,
	}
}
