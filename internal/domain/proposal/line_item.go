package proposal

import (
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is one product row on a proposal. SKU, name, and price are
// copied from the catalog when the row is added so later catalog edits
// never rewrite an agreed proposal.
type LineItem struct {
	shared.BaseEntity
	ProposalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU        string          `gorm:"type:varchar(50);not null"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "proposal_line_items"
}

// NewLineItem creates a line item for a proposal
func NewLineItem(proposalID, productID uuid.UUID, sku, name string, quantity int, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		BaseEntity: shared.NewBaseEntity(),
		ProposalID: proposalID,
		ProductID:  productID,
		SKU:        sku,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	}
}

// SetQuantity changes the ordered quantity
func (l *LineItem) SetQuantity(quantity int) {
	l.Quantity = quantity
	l.UpdatedAt = time.Now()
}

// LineTotal returns quantity times unit price
func (l *LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
