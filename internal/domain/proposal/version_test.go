package proposal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotAt(t *testing.T, p *Proposal, number int) *Version {
	t.Helper()
	v, err := NewVersion(p, number, ChangeTypeUpdate, uuid.New())
	require.NoError(t, err)
	return v
}

func TestNewVersion(t *testing.T) {
	p := newDraft(t)
	productID := addItem(t, p, 2, 100)

	v, err := NewVersion(p, 1, ChangeTypeCreate, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, p.ID, v.ProposalID)
	assert.Equal(t, 1, v.Number)
	assert.Equal(t, ChangeTypeCreate, v.ChangeType)
	assert.Equal(t, p.Title, v.Title)
	assert.True(t, v.TotalValue.Equal(decimal.NewFromInt(200)))

	items, err := v.Items()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestVersionItemsCorruptSnapshot(t *testing.T) {
	v := &Version{Snapshot: "not json"}
	_, err := v.Items()
	assert.Error(t, err)
}

func TestComputeDiff(t *testing.T) {
	t.Run("detects added, removed, and updated items", func(t *testing.T) {
		p := newDraft(t)
		kept := addItem(t, p, 2, 100)
		removed := addItem(t, p, 1, 50)
		v1 := snapshotAt(t, p, 1)

		require.NoError(t, p.RemoveLineItem(removed))
		require.NoError(t, p.UpdateLineItem(kept, 5))
		added := addItem(t, p, 3, 25)
		v2 := snapshotAt(t, p, 2)

		diff, err := ComputeDiff(v1, v2)
		require.NoError(t, err)
		assert.Equal(t, 1, diff.FromVersion)
		assert.Equal(t, 2, diff.ToVersion)
		assert.Equal(t, []uuid.UUID{added}, diff.Added)
		assert.Equal(t, []uuid.UUID{removed}, diff.Removed)
		require.Len(t, diff.Updated, 1)
		assert.Equal(t, kept, diff.Updated[0].ProductID)
		assert.Equal(t, 2, diff.Updated[0].FromQuantity)
		assert.Equal(t, 5, diff.Updated[0].ToQuantity)
		assert.Nil(t, diff.Updated[0].FromPrice)
	})

	t.Run("price change carries both prices", func(t *testing.T) {
		p := newDraft(t)
		productID := addItem(t, p, 1, 100)
		v1 := snapshotAt(t, p, 1)

		require.NoError(t, p.RemoveLineItem(productID))
		require.NoError(t, p.AddLineItem(productID, "SKU", "Item", 1, decimal.NewFromInt(120)))
		v2 := snapshotAt(t, p, 2)

		diff, err := ComputeDiff(v1, v2)
		require.NoError(t, err)
		require.Len(t, diff.Updated, 1)
		require.NotNil(t, diff.Updated[0].FromPrice)
		require.NotNil(t, diff.Updated[0].ToPrice)
		assert.True(t, diff.Updated[0].FromPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, diff.Updated[0].ToPrice.Equal(decimal.NewFromInt(120)))
	})

	t.Run("identical snapshots produce an empty diff", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)
		v1 := snapshotAt(t, p, 1)
		v2 := snapshotAt(t, p, 2)

		diff, err := ComputeDiff(v1, v2)
		require.NoError(t, err)
		assert.Empty(t, diff.Added)
		assert.Empty(t, diff.Removed)
		assert.Empty(t, diff.Updated)
	})

	t.Run("reversed arguments are normalized", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)
		v1 := snapshotAt(t, p, 1)
		addItem(t, p, 2, 10)
		v2 := snapshotAt(t, p, 2)

		diff, err := ComputeDiff(v2, v1)
		require.NoError(t, err)
		assert.Equal(t, 1, diff.FromVersion)
		assert.Equal(t, 2, diff.ToVersion)
		assert.Len(t, diff.Added, 1)
	})

	t.Run("rejects versions of different proposals", func(t *testing.T) {
		p1 := newDraft(t)
		p2 := newDraft(t)
		v1 := snapshotAt(t, p1, 1)
		v2 := snapshotAt(t, p2, 2)

		_, err := ComputeDiff(v1, v2)
		assert.Error(t, err)
	})

	t.Run("rejects diffing a version against itself", func(t *testing.T) {
		p := newDraft(t)
		v1 := snapshotAt(t, p, 1)

		_, err := ComputeDiff(v1, v1)
		assert.Error(t, err)
	})
}
