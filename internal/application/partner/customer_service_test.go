package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByTier(ctx context.Context, tenantID uuid.UUID, tier partner.CustomerTier, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, tier, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status partner.CustomerStatus, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

// MockProposalCounter mocks the proposal repository methods the
// customer service depends on
type MockProposalCounter struct {
	mock.Mock
	proposal.ProposalRepository
}

func (m *MockProposalCounter) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type nopChangeLogRepo struct{}

func (nopChangeLogRepo) SaveBatch(context.Context, []*audit.ChangeLog) error { return nil }
func (nopChangeLogRepo) FindByAggregate(context.Context, uuid.UUID, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}
func (nopChangeLogRepo) FindRecent(context.Context, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}

func newTestService(customerRepo *MockCustomerRepository, proposalRepo *MockProposalCounter) *CustomerService {
	recorder := activity.NewRecorder(nopChangeLogRepo{}, zap.NewNop())
	return NewCustomerService(customerRepo, proposalRepo, recorder)
}

func TestCustomerServiceCreate(t *testing.T) {
	t.Run("creates customer with optional fields", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		service := newTestService(customerRepo, new(MockProposalCounter))
		tenantID := uuid.New()
		userID := uuid.New()

		customerRepo.On("ExistsByEmail", mock.Anything, tenantID, "sales@acme.com").Return(false, nil)
		customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, &userID, CreateCustomerRequest{
			Name:     "Acme Corp",
			Email:    "sales@acme.com",
			Industry: "Manufacturing",
			Tier:     "PREMIUM",
			Notes:    "Key account",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", resp.Name)
		assert.Equal(t, "sales@acme.com", resp.Email)
		assert.Equal(t, "PREMIUM", resp.Tier)
		assert.Equal(t, "active", resp.Status)
		customerRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		service := newTestService(customerRepo, new(MockProposalCounter))
		tenantID := uuid.New()

		customerRepo.On("ExistsByEmail", mock.Anything, tenantID, "sales@acme.com").Return(true, nil)

		resp, err := service.Create(context.Background(), tenantID, nil, CreateCustomerRequest{
			Name:  "Acme Corp",
			Email: "sales@acme.com",
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	t.Run("partial update keeps unspecified fields", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		service := newTestService(customerRepo, new(MockProposalCounter))
		tenantID := uuid.New()

		existing, err := partner.NewCustomer(tenantID, "Acme Corp", "sales@acme.com")
		require.NoError(t, err)

		customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)
		customerRepo.On("SaveWithLock", mock.Anything, existing).Return(nil)

		name := "Acme Corporation"
		resp, err := service.Update(context.Background(), tenantID, existing.ID, nil, UpdateCustomerRequest{
			Name: &name,
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Corporation", resp.Name)
		assert.Equal(t, "sales@acme.com", resp.Email)
		customerRepo.AssertExpectations(t)
	})

	t.Run("checks duplicate on email change", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		service := newTestService(customerRepo, new(MockProposalCounter))
		tenantID := uuid.New()

		existing, err := partner.NewCustomer(tenantID, "Acme Corp", "sales@acme.com")
		require.NoError(t, err)

		customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)
		customerRepo.On("ExistsByEmail", mock.Anything, tenantID, "other@acme.com").Return(true, nil)

		email := "other@acme.com"
		_, err = service.Update(context.Background(), tenantID, existing.ID, nil, UpdateCustomerRequest{
			Email: &email,
		})

		assert.Error(t, err)
		customerRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	t.Run("deletes unused customer", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		proposalRepo := new(MockProposalCounter)
		service := newTestService(customerRepo, proposalRepo)
		tenantID := uuid.New()
		customerID := uuid.New()

		proposalRepo.On("CountByCustomer", mock.Anything, tenantID, customerID).Return(int64(0), nil)
		customerRepo.On("DeleteForTenant", mock.Anything, tenantID, customerID).Return(nil)

		err := service.Delete(context.Background(), tenantID, customerID)

		assert.NoError(t, err)
		customerRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete customer with proposals", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		proposalRepo := new(MockProposalCounter)
		service := newTestService(customerRepo, proposalRepo)
		tenantID := uuid.New()
		customerID := uuid.New()

		proposalRepo.On("CountByCustomer", mock.Anything, tenantID, customerID).Return(int64(3), nil)

		err := service.Delete(context.Background(), tenantID, customerID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be deleted")
		customerRepo.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceStatusChanges(t *testing.T) {
	customerRepo := new(MockCustomerRepository)
	service := newTestService(customerRepo, new(MockProposalCounter))
	tenantID := uuid.New()

	existing, err := partner.NewCustomer(tenantID, "Acme Corp", "sales@acme.com")
	require.NoError(t, err)

	customerRepo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)
	customerRepo.On("SaveWithLock", mock.Anything, existing).Return(nil)

	resp, err := service.Deactivate(context.Background(), tenantID, existing.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)

	resp, err = service.Activate(context.Background(), tenantID, existing.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
}
