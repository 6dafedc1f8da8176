package proposal

import (
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/shopspring/decimal"
)

// CreateProposalRequest represents a request to create a new proposal
type CreateProposalRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	CustomerID  uuid.UUID  `json:"customer_id" binding:"required"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateProposalRequest represents a request to update a proposal draft
type UpdateProposalRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	WizardStep  *int       `json:"wizard_step" binding:"omitempty,min=1,max=6"`
}

// AddLineItemRequest represents a request to add a product row
type AddLineItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateLineItemRequest represents a request to change a row's quantity
type UpdateLineItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// TransitionRequest represents a request to move a proposal through its workflow
type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT IN_REVIEW APPROVED SENT ACCEPTED DECLINED"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ProposalResponse represents a proposal in API responses
type ProposalResponse struct {
	ID          uuid.UUID          `json:"id"`
	TenantID    uuid.UUID          `json:"tenant_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	Status      string             `json:"status"`
	WizardStep  int                `json:"wizard_step"`
	TotalValue  decimal.Decimal    `json:"total_value"`
	Currency    string             `json:"currency"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
	DecidedAt   *time.Time         `json:"decided_at,omitempty"`
	LineItems   []LineItemResponse `json:"line_items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// ProposalListFilter represents filter options for proposal list
type ProposalListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT IN_REVIEW APPROVED SENT ACCEPTED DECLINED"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VersionResponse represents one proposal version snapshot
type VersionResponse struct {
	ProposalID uuid.UUID               `json:"proposal_id"`
	Number     int                     `json:"number"`
	ChangeType string                  `json:"change_type"`
	ChangedBy  uuid.UUID               `json:"changed_by"`
	Title      string                  `json:"title"`
	Status     string                  `json:"status"`
	TotalValue decimal.Decimal         `json:"total_value"`
	Items      []proposal.SnapshotItem `json:"items"`
	CreatedAt  time.Time               `json:"created_at"`
}

// ToProposalResponse converts a domain proposal to a response DTO
func ToProposalResponse(p *proposal.Proposal) ProposalResponse {
	items := make([]LineItemResponse, len(p.LineItems))
	for i, li := range p.LineItems {
		items[i] = LineItemResponse{
			ProductID: li.ProductID,
			SKU:       li.SKU,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
			LineTotal: li.LineTotal(),
		}
	}
	return ProposalResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Title:       p.Title,
		Description: p.Description,
		CustomerID:  p.CustomerID,
		Status:      string(p.Status),
		WizardStep:  p.WizardStep,
		TotalValue:  p.TotalValue,
		Currency:    p.Currency,
		DueDate:     p.DueDate,
		SubmittedAt: p.SubmittedAt,
		DecidedAt:   p.DecidedAt,
		LineItems:   items,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProposalResponses converts a slice of domain proposals
func ToProposalResponses(proposals []proposal.Proposal) []ProposalResponse {
	responses := make([]ProposalResponse, len(proposals))
	for i := range proposals {
		responses[i] = ToProposalResponse(&proposals[i])
	}
	return responses
}

// ToVersionResponse converts a domain version to a response DTO
func ToVersionResponse(v *proposal.Version) (VersionResponse, error) {
	items, err := v.Items()
	if err != nil {
		return VersionResponse{}, err
	}
	return VersionResponse{
		ProposalID: v.ProposalID,
		Number:     v.Number,
		ChangeType: string(v.ChangeType),
		ChangedBy:  v.ChangedBy,
		Title:      v.Title,
		Status:     string(v.Status),
		TotalValue: v.TotalValue,
		Items:      items,
		CreatedAt:  v.CreatedAt,
	}, nil
}
