package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/reporting"
	"github.com/posalpro/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockDashboardRepository is a mock implementation of DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Stats(ctx context.Context, tenantID uuid.UUID) (*reporting.DashboardStats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.DashboardStats), args.Error(1)
}

func (m *MockDashboardRepository) RecentActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]reporting.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]reporting.ActivityEntry), args.Error(1)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, assert.AnError
}
func (failingCache) Set(context.Context, string, []byte, time.Duration) error { return assert.AnError }
func (failingCache) Delete(context.Context, string) error                     { return assert.AnError }
func (failingCache) Close() error                                             { return nil }

func sampleStats() *reporting.DashboardStats {
	return &reporting.DashboardStats{
		TotalProposals:  12,
		ByStatus:        map[string]int64{"DRAFT": 5, "ACCEPTED": 4, "DECLINED": 3},
		ActiveCustomers: 7,
		ActiveProducts:  20,
		PipelineValue:   decimal.NewFromInt(50000),
		WonValue:        decimal.NewFromInt(24000),
		WinRate:         0.57,
		GeneratedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestDashboardServiceStats(t *testing.T) {
	t.Run("second read is served from cache", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, cache.NewInMemoryStatsCache(), time.Minute, zap.NewNop())
		tenantID := uuid.New()

		repo.On("Stats", mock.Anything, tenantID).Return(sampleStats(), nil).Once()

		first, err := service.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		second, err := service.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		assert.Equal(t, first.TotalProposals, second.TotalProposals)
		assert.True(t, first.PipelineValue.Equal(second.PipelineValue))
		repo.AssertNumberOfCalls(t, "Stats", 1)
	})

	t.Run("cache failures fall through to the database", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, failingCache{}, time.Minute, zap.NewNop())
		tenantID := uuid.New()

		repo.On("Stats", mock.Anything, tenantID).Return(sampleStats(), nil)

		stats, err := service.Stats(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), stats.TotalProposals)
	})

	t.Run("invalidation forces a recompute", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, cache.NewInMemoryStatsCache(), time.Minute, zap.NewNop())
		tenantID := uuid.New()

		repo.On("Stats", mock.Anything, tenantID).Return(sampleStats(), nil)

		_, err := service.Stats(context.Background(), tenantID)
		require.NoError(t, err)

		service.InvalidateStats(context.Background(), tenantID)

		_, err = service.Stats(context.Background(), tenantID)
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Stats", 2)
	})
}

func TestDashboardServiceRecentActivity(t *testing.T) {
	repo := new(MockDashboardRepository)
	service := NewDashboardService(repo, cache.NewInMemoryStatsCache(), time.Minute, zap.NewNop())
	tenantID := uuid.New()

	entries := []reporting.ActivityEntry{
		{EventType: "proposal.created", AggregateType: "Proposal", AggregateID: uuid.New(), OccurredAt: time.Now()},
	}
	repo.On("RecentActivity", mock.Anything, tenantID, 20).Return(entries, nil)

	// Out-of-range limits fall back to the default page size
	got, err := service.RecentActivity(context.Background(), tenantID, -3)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
