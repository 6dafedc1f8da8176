package proposal

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChangeType classifies what produced a version snapshot
type ChangeType string

const (
	ChangeTypeCreate       ChangeType = "create"
	ChangeTypeUpdate       ChangeType = "update"
	ChangeTypeStatusChange ChangeType = "status_change"
)

// SnapshotItem is one line item as frozen into a version snapshot
type SnapshotItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Version is an immutable snapshot of a proposal at one point in its
// history. Versions are append-only: they are written when the proposal
// is saved and never updated afterwards.
type Version struct {
	shared.BaseEntity
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProposalID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_version_proposal_number,priority:1"`
	Number     int             `gorm:"not null;uniqueIndex:idx_version_proposal_number,priority:2"`
	ChangeType ChangeType      `gorm:"type:varchar(20);not null"`
	ChangedBy  uuid.UUID       `gorm:"type:uuid;not null"`
	Title      string          `gorm:"type:varchar(200);not null"`
	Status     Status          `gorm:"type:varchar(20);not null"`
	TotalValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Snapshot   string          `gorm:"type:jsonb;not null"`
}

// TableName returns the table name for GORM
func (Version) TableName() string {
	return "proposal_versions"
}

// NewVersion freezes the proposal's current state into a snapshot
func NewVersion(p *Proposal, number int, changeType ChangeType, changedBy uuid.UUID) (*Version, error) {
	items := make([]SnapshotItem, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		items = append(items, SnapshotItem{
			ProductID: li.ProductID,
			SKU:       li.SKU,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, shared.NewDomainError("SNAPSHOT_FAILED", "Could not encode proposal snapshot")
	}

	return &Version{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   p.TenantID,
		ProposalID: p.ID,
		Number:     number,
		ChangeType: changeType,
		ChangedBy:  changedBy,
		Title:      p.Title,
		Status:     p.Status,
		TotalValue: p.TotalValue,
		Snapshot:   string(encoded),
	}, nil
}

// Items decodes the frozen line items
func (v *Version) Items() ([]SnapshotItem, error) {
	var items []SnapshotItem
	if err := json.Unmarshal([]byte(v.Snapshot), &items); err != nil {
		return nil, shared.NewDomainError("SNAPSHOT_CORRUPT", "Could not decode proposal snapshot")
	}
	return items, nil
}

// VersionRepository defines the interface for version persistence.
// Versions are append-only; there is no update or delete.
type VersionRepository interface {
	// FindByProposal returns all versions of a proposal, oldest first
	FindByProposal(ctx context.Context, tenantID, proposalID uuid.UUID) ([]Version, error)

	// FindByNumber returns one specific version of a proposal
	FindByNumber(ctx context.Context, tenantID, proposalID uuid.UUID, number int) (*Version, error)

	// NextNumber returns the next free version number for a proposal
	NextNumber(ctx context.Context, tenantID, proposalID uuid.UUID) (int, error)

	// Save appends a version
	Save(ctx context.Context, version *Version) error
}
