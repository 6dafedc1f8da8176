package proposal

import (
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents where a proposal sits in its approval workflow
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusInReview Status = "IN_REVIEW"
	StatusApproved Status = "APPROVED"
	StatusSent     Status = "SENT"
	StatusAccepted Status = "ACCEPTED"
	StatusDeclined Status = "DECLINED"
)

// Wizard step boundaries. Steps walk basic info, team, content,
// products, sections, and review in order.
const (
	WizardStepBasicInfo = 1
	WizardStepTeam      = 2
	WizardStepContent   = 3
	WizardStepProducts  = 4
	WizardStepSections  = 5
	WizardStepReview    = 6
)

// allowedTransitions encodes the workflow. A proposal returned from
// review goes back to draft for rework; accepted and declined are
// terminal.
var allowedTransitions = map[Status][]Status{
	StatusDraft:    {StatusInReview},
	StatusInReview: {StatusApproved, StatusDraft},
	StatusApproved: {StatusSent},
	StatusSent:     {StatusAccepted, StatusDeclined},
	StatusAccepted: {},
	StatusDeclined: {},
}

// Proposal is the aggregate root of the proposal context. Line items
// are owned by the aggregate and only change through its methods.
type Proposal struct {
	shared.TenantAggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	WizardStep  int             `gorm:"not null;default:1"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	DueDate     *time.Time      `gorm:"index"`
	SubmittedAt *time.Time
	DecidedAt   *time.Time
	LineItems   []LineItem `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Proposal) TableName() string {
	return "proposals"
}

// NewProposal creates a new proposal draft for a customer
func NewProposal(tenantID, customerID uuid.UUID, title string) (*Proposal, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Proposal must reference a customer")
	}

	proposal := &Proposal{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		CustomerID:          customerID,
		Status:              StatusDraft,
		WizardStep:          WizardStepBasicInfo,
		TotalValue:          decimal.Zero,
		Currency:            "USD",
	}

	proposal.AddDomainEvent(NewProposalCreatedEvent(proposal))

	return proposal, nil
}

// Update updates the proposal's basic information. Only drafts can change.
func (p *Proposal) Update(title, description string) error {
	if err := p.requireDraft(); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	p.Title = title
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProposalUpdatedEvent(p))

	return nil
}

// SetDueDate sets or clears the proposal's due date
func (p *Proposal) SetDueDate(due *time.Time) error {
	if err := p.requireDraft(); err != nil {
		return err
	}
	if due != nil && due.Before(time.Now()) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be in the past")
	}

	p.DueDate = due
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AdvanceWizard marks the given step complete and moves to the next one.
// Steps must be completed in order; revisiting an earlier step is allowed
// and rewinds progress to it.
func (p *Proposal) AdvanceWizard(step int) error {
	if err := p.requireDraft(); err != nil {
		return err
	}
	if step < WizardStepBasicInfo || step > WizardStepReview {
		return shared.NewDomainError("INVALID_WIZARD_STEP", "Wizard step out of range")
	}
	if step > p.WizardStep {
		return shared.NewDomainError("INVALID_WIZARD_STEP", "Wizard steps must be completed in order")
	}

	if step < WizardStepReview {
		p.WizardStep = step + 1
	} else {
		p.WizardStep = WizardStepReview
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddLineItem adds a product line to a draft proposal. The price is
// copied from the catalog at add time and never tracks later changes.
func (p *Proposal) AddLineItem(productID uuid.UUID, sku, name string, quantity int, unitPrice decimal.Decimal) error {
	if err := p.requireDraft(); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Line item must reference a product")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	for _, item := range p.LineItems {
		if item.ProductID == productID {
			return shared.NewDomainError("DUPLICATE_LINE_ITEM", "Product is already on this proposal")
		}
	}

	p.LineItems = append(p.LineItems, NewLineItem(p.ID, productID, sku, name, quantity, unitPrice))
	p.recalculateTotal()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProposalLineItemsChangedEvent(p))

	return nil
}

// UpdateLineItem changes the quantity of an existing line item
func (p *Proposal) UpdateLineItem(productID uuid.UUID, quantity int) error {
	if err := p.requireDraft(); err != nil {
		return err
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range p.LineItems {
		if p.LineItems[i].ProductID == productID {
			p.LineItems[i].SetQuantity(quantity)
			p.recalculateTotal()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			p.AddDomainEvent(NewProposalLineItemsChangedEvent(p))
			return nil
		}
	}
	return shared.NewDomainError("LINE_ITEM_NOT_FOUND", "Product is not on this proposal")
}

// RemoveLineItem removes a product line from a draft proposal
func (p *Proposal) RemoveLineItem(productID uuid.UUID) error {
	if err := p.requireDraft(); err != nil {
		return err
	}

	for i := range p.LineItems {
		if p.LineItems[i].ProductID == productID {
			p.LineItems = append(p.LineItems[:i], p.LineItems[i+1:]...)
			p.recalculateTotal()
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			p.AddDomainEvent(NewProposalLineItemsChangedEvent(p))
			return nil
		}
	}
	return shared.NewDomainError("LINE_ITEM_NOT_FOUND", "Product is not on this proposal")
}

// SubmitForReview moves a complete draft into review
func (p *Proposal) SubmitForReview() error {
	if len(p.LineItems) == 0 {
		return shared.NewDomainError("EMPTY_PROPOSAL", "Proposal needs at least one line item before review")
	}
	if err := p.transition(StatusInReview); err != nil {
		return err
	}
	now := time.Now()
	p.SubmittedAt = &now
	return nil
}

// Approve accepts a reviewed proposal
func (p *Proposal) Approve() error {
	return p.transition(StatusApproved)
}

// ReturnToDraft sends a proposal in review back for rework
func (p *Proposal) ReturnToDraft() error {
	if p.Status != StatusInReview {
		return shared.NewDomainError("INVALID_TRANSITION", "Only proposals in review can return to draft")
	}
	return p.transition(StatusDraft)
}

// Send marks an approved proposal as delivered to the customer
func (p *Proposal) Send() error {
	return p.transition(StatusSent)
}

// Accept records the customer's acceptance
func (p *Proposal) Accept() error {
	if err := p.transition(StatusAccepted); err != nil {
		return err
	}
	now := time.Now()
	p.DecidedAt = &now
	return nil
}

// Decline records the customer's rejection
func (p *Proposal) Decline() error {
	if err := p.transition(StatusDeclined); err != nil {
		return err
	}
	now := time.Now()
	p.DecidedAt = &now
	return nil
}

// TransitionTo moves the proposal to the target status if the workflow
// allows it, applying the status-specific side effects.
func (p *Proposal) TransitionTo(target Status) error {
	switch target {
	case StatusInReview:
		return p.SubmitForReview()
	case StatusApproved:
		return p.Approve()
	case StatusDraft:
		return p.ReturnToDraft()
	case StatusSent:
		return p.Send()
	case StatusAccepted:
		return p.Accept()
	case StatusDeclined:
		return p.Decline()
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown proposal status")
	}
}

// IsTerminal reports whether the proposal reached a final state
func (p *Proposal) IsTerminal() bool {
	return p.Status == StatusAccepted || p.Status == StatusDeclined
}

// IsEditable reports whether content changes are allowed
func (p *Proposal) IsEditable() bool {
	return p.Status == StatusDraft
}

func (p *Proposal) transition(target Status) error {
	for _, allowed := range allowedTransitions[p.Status] {
		if allowed == target {
			oldStatus := p.Status
			p.Status = target
			p.UpdatedAt = time.Now()
			p.IncrementVersion()
			p.AddDomainEvent(NewProposalStatusChangedEvent(p, oldStatus, target))
			return nil
		}
	}
	return shared.NewDomainError("INVALID_TRANSITION",
		"Cannot move proposal from "+string(p.Status)+" to "+string(target))
}

func (p *Proposal) requireDraft() error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("NOT_EDITABLE", "Only draft proposals can be modified")
	}
	return nil
}

func (p *Proposal) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.LineItems {
		total = total.Add(item.LineTotal())
	}
	p.TotalValue = total
}

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Proposal title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Proposal title cannot exceed 200 characters")
	}
	return nil
}

// ValidStatus reports whether s is a known workflow status
func ValidStatus(s Status) bool {
	_, ok := allowedTransitions[s]
	return ok
}
