package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

type nopChangeLogRepo struct{}

func (nopChangeLogRepo) SaveBatch(context.Context, []*audit.ChangeLog) error { return nil }
func (nopChangeLogRepo) FindByAggregate(context.Context, uuid.UUID, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}
func (nopChangeLogRepo) FindRecent(context.Context, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}

func newTestService(repo *MockProductRepository) *ProductService {
	return NewProductService(repo, activity.NewRecorder(nopChangeLogRepo{}, zap.NewNop()))
}

func TestProductServiceCreate(t *testing.T) {
	t.Run("creates product with currency", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newTestService(repo)
		tenantID := uuid.New()

		repo.On("ExistsBySKU", mock.Anything, tenantID, "WIDGET-1").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := service.Create(context.Background(), tenantID, nil, CreateProductRequest{
			SKU:       "WIDGET-1",
			Name:      "Widget",
			Category:  "Hardware",
			UnitPrice: decimal.NewFromInt(100),
			Currency:  "EUR",
		})

		require.NoError(t, err)
		assert.Equal(t, "WIDGET-1", resp.SKU)
		assert.Equal(t, "EUR", resp.Currency)
		assert.True(t, resp.Active)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newTestService(repo)
		tenantID := uuid.New()

		repo.On("ExistsBySKU", mock.Anything, tenantID, "WIDGET-1").Return(true, nil)

		resp, err := service.Create(context.Background(), tenantID, nil, CreateProductRequest{
			SKU:       "WIDGET-1",
			Name:      "Widget",
			UnitPrice: decimal.NewFromInt(100),
		})

		assert.Nil(t, resp)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("changes price without touching name", func(t *testing.T) {
		repo := new(MockProductRepository)
		service := newTestService(repo)
		tenantID := uuid.New()

		existing, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", decimal.NewFromInt(100))
		require.NoError(t, err)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)
		repo.On("SaveWithLock", mock.Anything, existing).Return(nil)

		price := decimal.NewFromInt(120)
		resp, err := service.Update(context.Background(), tenantID, existing.ID, nil, UpdateProductRequest{
			UnitPrice: &price,
		})

		require.NoError(t, err)
		assert.Equal(t, "Widget", resp.Name)
		assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(120)))
		repo.AssertExpectations(t)
	})
}

func TestProductServiceDeactivate(t *testing.T) {
	repo := new(MockProductRepository)
	service := newTestService(repo)
	tenantID := uuid.New()

	existing, err := catalog.NewProduct(tenantID, "WIDGET-1", "Widget", decimal.NewFromInt(100))
	require.NoError(t, err)

	repo.On("FindByIDForTenant", mock.Anything, tenantID, existing.ID).Return(existing, nil)
	repo.On("SaveWithLock", mock.Anything, existing).Return(nil)

	resp, err := service.Deactivate(context.Background(), tenantID, existing.ID, nil)
	require.NoError(t, err)
	assert.False(t, resp.Active)
}
