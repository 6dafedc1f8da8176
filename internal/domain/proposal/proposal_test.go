package proposal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft(t *testing.T) *Proposal {
	t.Helper()
	p, err := NewProposal(uuid.New(), uuid.New(), "Q3 Renewal")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func addItem(t *testing.T, p *Proposal, qty int, price int64) uuid.UUID {
	t.Helper()
	productID := uuid.New()
	require.NoError(t, p.AddLineItem(productID, "SKU-"+productID.String()[:8], "Item", qty, decimal.NewFromInt(price)))
	return productID
}

func TestNewProposal(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()

	t.Run("creates draft successfully", func(t *testing.T) {
		p, err := NewProposal(tenantID, customerID, "Q3 Renewal")

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, p.Status)
		assert.Equal(t, WizardStepBasicInfo, p.WizardStep)
		assert.Equal(t, customerID, p.CustomerID)
		assert.True(t, p.TotalValue.IsZero())
		assert.Len(t, p.GetDomainEvents(), 1)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		p, err := NewProposal(tenantID, customerID, "")

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("fails without customer", func(t *testing.T) {
		p, err := NewProposal(tenantID, uuid.Nil, "Q3 Renewal")

		assert.Error(t, err)
		assert.Nil(t, p)
	})
}

func TestProposalLineItems(t *testing.T) {
	t.Run("adding items recalculates the total", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 2, 100)
		addItem(t, p, 1, 50)

		assert.Len(t, p.LineItems, 2)
		assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(250)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		p := newDraft(t)
		productID := addItem(t, p, 1, 100)

		err := p.AddLineItem(productID, "SKU-X", "Item", 1, decimal.NewFromInt(100))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already on this proposal")
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newDraft(t)
		err := p.AddLineItem(uuid.New(), "SKU-X", "Item", 0, decimal.NewFromInt(100))
		assert.Error(t, err)
	})

	t.Run("updates quantity and total", func(t *testing.T) {
		p := newDraft(t)
		productID := addItem(t, p, 2, 100)

		require.NoError(t, p.UpdateLineItem(productID, 5))
		assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(500)))
	})

	t.Run("update of missing product fails", func(t *testing.T) {
		p := newDraft(t)
		err := p.UpdateLineItem(uuid.New(), 5)
		assert.Error(t, err)
	})

	t.Run("removes item and recalculates", func(t *testing.T) {
		p := newDraft(t)
		productID := addItem(t, p, 2, 100)
		addItem(t, p, 1, 50)

		require.NoError(t, p.RemoveLineItem(productID))
		assert.Len(t, p.LineItems, 1)
		assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(50)))
	})
}

func TestProposalWorkflow(t *testing.T) {
	t.Run("full happy path to accepted", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)

		require.NoError(t, p.SubmitForReview())
		assert.Equal(t, StatusInReview, p.Status)
		assert.NotNil(t, p.SubmittedAt)

		require.NoError(t, p.Approve())
		require.NoError(t, p.Send())
		require.NoError(t, p.Accept())
		assert.Equal(t, StatusAccepted, p.Status)
		assert.NotNil(t, p.DecidedAt)
		assert.True(t, p.IsTerminal())
	})

	t.Run("empty draft cannot enter review", func(t *testing.T) {
		p := newDraft(t)
		err := p.SubmitForReview()
		assert.Error(t, err)
		assert.Equal(t, StatusDraft, p.Status)
	})

	t.Run("review can return to draft", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)
		require.NoError(t, p.SubmitForReview())

		require.NoError(t, p.ReturnToDraft())
		assert.Equal(t, StatusDraft, p.Status)
		assert.True(t, p.IsEditable())
	})

	t.Run("skipping states fails", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)

		assert.Error(t, p.Send())
		assert.Error(t, p.Accept())
		assert.Error(t, p.Approve())
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)
		require.NoError(t, p.SubmitForReview())
		require.NoError(t, p.Approve())
		require.NoError(t, p.Send())
		require.NoError(t, p.Decline())

		assert.Error(t, p.Accept())
		assert.Error(t, p.ReturnToDraft())
	})

	t.Run("non-draft proposals are frozen", func(t *testing.T) {
		p := newDraft(t)
		productID := addItem(t, p, 1, 100)
		require.NoError(t, p.SubmitForReview())

		assert.Error(t, p.Update("New Title", ""))
		assert.Error(t, p.AddLineItem(uuid.New(), "SKU-Y", "Item", 1, decimal.NewFromInt(10)))
		assert.Error(t, p.RemoveLineItem(productID))
	})

	t.Run("every transition raises a status event", func(t *testing.T) {
		p := newDraft(t)
		addItem(t, p, 1, 100)
		p.ClearDomainEvents()

		require.NoError(t, p.SubmitForReview())
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		statusEvent, ok := events[0].(*ProposalStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, StatusDraft, statusEvent.OldStatus)
		assert.Equal(t, StatusInReview, statusEvent.NewStatus)
	})
}

func TestProposalTransitionTo(t *testing.T) {
	p := newDraft(t)
	addItem(t, p, 1, 100)

	require.NoError(t, p.TransitionTo(StatusInReview))
	require.NoError(t, p.TransitionTo(StatusApproved))
	require.NoError(t, p.TransitionTo(StatusSent))
	require.NoError(t, p.TransitionTo(StatusAccepted))

	assert.Error(t, p.TransitionTo(Status("ARCHIVED")))
}

func TestProposalWizard(t *testing.T) {
	t.Run("steps advance in order", func(t *testing.T) {
		p := newDraft(t)

		require.NoError(t, p.AdvanceWizard(WizardStepBasicInfo))
		assert.Equal(t, WizardStepTeam, p.WizardStep)

		require.NoError(t, p.AdvanceWizard(WizardStepTeam))
		require.NoError(t, p.AdvanceWizard(WizardStepContent))
		require.NoError(t, p.AdvanceWizard(WizardStepProducts))
		require.NoError(t, p.AdvanceWizard(WizardStepSections))
		assert.Equal(t, WizardStepReview, p.WizardStep)

		// Completing review keeps the wizard on the last step.
		require.NoError(t, p.AdvanceWizard(WizardStepReview))
		assert.Equal(t, WizardStepReview, p.WizardStep)
	})

	t.Run("cannot complete a step ahead of progress", func(t *testing.T) {
		p := newDraft(t)
		err := p.AdvanceWizard(WizardStepProducts)
		assert.Error(t, err)
	})

	t.Run("revisiting an earlier step rewinds progress", func(t *testing.T) {
		p := newDraft(t)
		require.NoError(t, p.AdvanceWizard(WizardStepBasicInfo))
		require.NoError(t, p.AdvanceWizard(WizardStepTeam))
		assert.Equal(t, WizardStepContent, p.WizardStep)

		require.NoError(t, p.AdvanceWizard(WizardStepBasicInfo))
		assert.Equal(t, WizardStepTeam, p.WizardStep)
	})

	t.Run("rejects out of range steps", func(t *testing.T) {
		p := newDraft(t)
		assert.Error(t, p.AdvanceWizard(0))
		assert.Error(t, p.AdvanceWizard(7))
	})
}

func TestProposalSetDueDate(t *testing.T) {
	p := newDraft(t)

	t.Run("accepts a future date", func(t *testing.T) {
		due := time.Now().Add(72 * time.Hour)
		require.NoError(t, p.SetDueDate(&due))
		assert.NotNil(t, p.DueDate)
	})

	t.Run("rejects a past date", func(t *testing.T) {
		due := time.Now().Add(-time.Hour)
		assert.Error(t, p.SetDueDate(&due))
	})

	t.Run("clears the date", func(t *testing.T) {
		require.NoError(t, p.SetDueDate(nil))
		assert.Nil(t, p.DueDate)
	})
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusDraft))
	assert.True(t, ValidStatus(StatusDeclined))
	assert.False(t, ValidStatus(Status("ARCHIVED")))
}
