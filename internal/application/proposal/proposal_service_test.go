package proposal

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProposalRepository is a mock implementation of ProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]proposal.Proposal, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status proposal.Status, filter shared.Filter) ([]proposal.Proposal, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]proposal.Proposal, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	return args.Get(0).([]proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) Save(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) SaveWithLock(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProposalRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProposalRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID, status proposal.Status) (int64, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProposalRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockVersionRepository is a mock implementation of VersionRepository
type MockVersionRepository struct {
	mock.Mock
}

func (m *MockVersionRepository) FindByProposal(ctx context.Context, tenantID, proposalID uuid.UUID) ([]proposal.Version, error) {
	args := m.Called(ctx, tenantID, proposalID)
	return args.Get(0).([]proposal.Version), args.Error(1)
}

func (m *MockVersionRepository) FindByNumber(ctx context.Context, tenantID, proposalID uuid.UUID, number int) (*proposal.Version, error) {
	args := m.Called(ctx, tenantID, proposalID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Version), args.Error(1)
}

func (m *MockVersionRepository) NextNumber(ctx context.Context, tenantID, proposalID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID, proposalID)
	return args.Int(0), args.Error(1)
}

func (m *MockVersionRepository) Save(ctx context.Context, version *proposal.Version) error {
	args := m.Called(ctx, version)
	return args.Error(0)
}

// MockCustomerFinder mocks the customer lookup the proposal service needs
type MockCustomerFinder struct {
	mock.Mock
	partner.CustomerRepository
}

func (m *MockCustomerFinder) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

// MockProductFinder mocks the product lookup the proposal service needs
type MockProductFinder struct {
	mock.Mock
	catalog.ProductRepository
}

func (m *MockProductFinder) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

type nopChangeLogRepo struct{}

func (nopChangeLogRepo) SaveBatch(context.Context, []*audit.ChangeLog) error { return nil }
func (nopChangeLogRepo) FindByAggregate(context.Context, uuid.UUID, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}
func (nopChangeLogRepo) FindRecent(context.Context, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}

type serviceMocks struct {
	proposals *MockProposalRepository
	versions  *MockVersionRepository
	customers *MockCustomerFinder
	products  *MockProductFinder
}

func newTestService() (*ProposalService, *serviceMocks) {
	mocks := &serviceMocks{
		proposals: new(MockProposalRepository),
		versions:  new(MockVersionRepository),
		customers: new(MockCustomerFinder),
		products:  new(MockProductFinder),
	}
	recorder := activity.NewRecorder(nopChangeLogRepo{}, zap.NewNop())
	service := NewProposalService(mocks.proposals, mocks.versions, mocks.customers, mocks.products, recorder, zap.NewNop())
	return service, mocks
}

func activeCustomer(t *testing.T, tenantID uuid.UUID) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer(tenantID, "Acme Corp", "sales@acme.com")
	require.NoError(t, err)
	return customer
}

func TestProposalServiceCreate(t *testing.T) {
	t.Run("creates draft and writes first version", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()
		customer := activeCustomer(t, tenantID)

		mocks.customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		mocks.proposals.On("Save", mock.Anything, mock.AnythingOfType("*proposal.Proposal")).Return(nil)
		mocks.versions.On("NextNumber", mock.Anything, tenantID, mock.Anything).Return(1, nil)
		mocks.versions.On("Save", mock.Anything, mock.MatchedBy(func(v *proposal.Version) bool {
			return v.Number == 1 && v.ChangeType == proposal.ChangeTypeCreate
		})).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, nil, CreateProposalRequest{
			Title:      "Q3 Renewal",
			CustomerID: customer.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.Equal(t, 1, resp.WizardStep)
		mocks.versions.AssertExpectations(t)
	})

	t.Run("refuses inactive customer", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()
		customer := activeCustomer(t, tenantID)
		require.NoError(t, customer.Deactivate())

		mocks.customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)

		resp, err := service.Create(context.Background(), tenantID, nil, CreateProposalRequest{
			Title:      "Q3 Renewal",
			CustomerID: customer.ID,
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		mocks.proposals.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProposalServiceAddLineItem(t *testing.T) {
	t.Run("copies catalog price onto the row", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		draft, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)
		product, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", decimal.NewFromInt(100))
		require.NoError(t, err)

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		mocks.products.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)
		mocks.proposals.On("SaveWithLock", mock.Anything, draft).Return(nil)
		mocks.versions.On("NextNumber", mock.Anything, tenantID, draft.ID).Return(2, nil)
		mocks.versions.On("Save", mock.Anything, mock.AnythingOfType("*proposal.Version")).Return(nil)

		resp, err := service.AddLineItem(context.Background(), tenantID, draft.ID, nil, AddLineItemRequest{
			ProductID: product.ID,
			Quantity:  3,
		})

		require.NoError(t, err)
		require.Len(t, resp.LineItems, 1)
		assert.Equal(t, "WIDGET-1", resp.LineItems[0].SKU)
		assert.True(t, resp.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(300)))
	})

	t.Run("refuses inactive product", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		draft, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)
		product, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", decimal.NewFromInt(100))
		require.NoError(t, err)
		require.NoError(t, product.Deactivate())

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		mocks.products.On("FindByIDForTenant", mock.Anything, tenantID, product.ID).Return(product, nil)

		_, err = service.AddLineItem(context.Background(), tenantID, draft.ID, nil, AddLineItemRequest{
			ProductID: product.ID,
			Quantity:  1,
		})

		assert.Error(t, err)
		mocks.proposals.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestProposalServiceTransition(t *testing.T) {
	t.Run("submits draft with items for review", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		draft, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)
		require.NoError(t, draft.AddLineItem(uuid.New(), "WIDGET-1", "Widget", 1, decimal.NewFromInt(100)))

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		mocks.proposals.On("SaveWithLock", mock.Anything, draft).Return(nil)
		mocks.versions.On("NextNumber", mock.Anything, tenantID, draft.ID).Return(3, nil)
		mocks.versions.On("Save", mock.Anything, mock.MatchedBy(func(v *proposal.Version) bool {
			return v.ChangeType == proposal.ChangeTypeStatusChange
		})).Return(nil)

		resp, err := service.Transition(context.Background(), tenantID, draft.ID, nil, TransitionRequest{Status: "IN_REVIEW"})

		require.NoError(t, err)
		assert.Equal(t, "IN_REVIEW", resp.Status)
		assert.NotNil(t, resp.SubmittedAt)
	})

	t.Run("rejects illegal jump", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		draft, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)

		_, err = service.Transition(context.Background(), tenantID, draft.ID, nil, TransitionRequest{Status: "ACCEPTED"})

		assert.Error(t, err)
		mocks.proposals.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestProposalServiceDelete(t *testing.T) {
	t.Run("deletes draft", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		draft, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, draft.ID).Return(draft, nil)
		mocks.proposals.On("DeleteForTenant", mock.Anything, tenantID, draft.ID).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), tenantID, draft.ID))
	})

	t.Run("refuses to delete submitted proposal", func(t *testing.T) {
		service, mocks := newTestService()
		tenantID := uuid.New()

		p, err := proposal.NewProposal(tenantID, uuid.New(), "Q3 Renewal")
		require.NoError(t, err)
		require.NoError(t, p.AddLineItem(uuid.New(), "WIDGET-1", "Widget", 1, decimal.NewFromInt(100)))
		require.NoError(t, p.SubmitForReview())

		mocks.proposals.On("FindByIDForTenant", mock.Anything, tenantID, p.ID).Return(p, nil)

		err = service.Delete(context.Background(), tenantID, p.ID)

		assert.Error(t, err)
		mocks.proposals.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProposalServiceSnapshotFailureDoesNotFailOperation(t *testing.T) {
	service, mocks := newTestService()
	tenantID := uuid.New()
	customer := activeCustomer(t, tenantID)

	mocks.customers.On("FindByIDForTenant", mock.Anything, tenantID, customer.ID).Return(customer, nil)
	mocks.proposals.On("Save", mock.Anything, mock.AnythingOfType("*proposal.Proposal")).Return(nil)
	mocks.versions.On("NextNumber", mock.Anything, tenantID, mock.Anything).Return(0, assert.AnError)

	resp, err := service.Create(context.Background(), tenantID, nil, CreateProposalRequest{
		Title:      "Q3 Renewal",
		CustomerID: customer.ID,
	})

	require.NoError(t, err)
	assert.NotNil(t, resp)
	mocks.versions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
