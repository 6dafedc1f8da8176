package proposal

import (
	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemChange describes how one product line changed between two versions
type ItemChange struct {
	ProductID    uuid.UUID        `json:"product_id"`
	SKU          string           `json:"sku"`
	FromQuantity int              `json:"from_quantity"`
	ToQuantity   int              `json:"to_quantity"`
	FromPrice    *decimal.Decimal `json:"from_price,omitempty"`
	ToPrice      *decimal.Decimal `json:"to_price,omitempty"`
}

// Diff is the line-item comparison between two versions of a proposal.
// Added and Removed carry the affected product IDs; Updated carries the
// quantity and price deltas for products present in both versions.
type Diff struct {
	ProposalID  uuid.UUID    `json:"proposal_id"`
	FromVersion int          `json:"from_version"`
	ToVersion   int          `json:"to_version"`
	Added       []uuid.UUID  `json:"added"`
	Removed     []uuid.UUID  `json:"removed"`
	Updated     []ItemChange `json:"updated"`
}

// ComputeDiff compares the line items of two versions of the same
// proposal. Both versions must belong to the same proposal and the
// comparison runs from the older toward the newer snapshot.
func ComputeDiff(from, to *Version) (*Diff, error) {
	if from.ProposalID != to.ProposalID {
		return nil, shared.NewDomainError("VERSION_MISMATCH", "Versions belong to different proposals")
	}
	if from.Number == to.Number {
		return nil, shared.NewDomainError("VERSION_MISMATCH", "Cannot diff a version against itself")
	}
	if from.Number > to.Number {
		from, to = to, from
	}

	fromItems, err := from.Items()
	if err != nil {
		return nil, err
	}
	toItems, err := to.Items()
	if err != nil {
		return nil, err
	}

	fromByProduct := make(map[uuid.UUID]SnapshotItem, len(fromItems))
	for _, item := range fromItems {
		fromByProduct[item.ProductID] = item
	}

	diff := &Diff{
		ProposalID:  from.ProposalID,
		FromVersion: from.Number,
		ToVersion:   to.Number,
		Added:       []uuid.UUID{},
		Removed:     []uuid.UUID{},
		Updated:     []ItemChange{},
	}

	for _, item := range toItems {
		old, existed := fromByProduct[item.ProductID]
		if !existed {
			diff.Added = append(diff.Added, item.ProductID)
			continue
		}
		delete(fromByProduct, item.ProductID)

		if old.Quantity == item.Quantity && old.UnitPrice.Equal(item.UnitPrice) {
			continue
		}
		change := ItemChange{
			ProductID:    item.ProductID,
			SKU:          item.SKU,
			FromQuantity: old.Quantity,
			ToQuantity:   item.Quantity,
		}
		if !old.UnitPrice.Equal(item.UnitPrice) {
			fromPrice := old.UnitPrice
			toPrice := item.UnitPrice
			change.FromPrice = &fromPrice
			change.ToPrice = &toPrice
		}
		diff.Updated = append(diff.Updated, change)
	}

	for _, item := range fromItems {
		if _, stillRemoved := fromByProduct[item.ProductID]; stillRemoved {
			diff.Removed = append(diff.Removed, item.ProductID)
		}
	}

	return diff, nil
}
