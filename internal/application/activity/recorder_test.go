package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/audit"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChangeLogRepo struct {
	saved []*audit.ChangeLog
	err   error
}

func (f *fakeChangeLogRepo) SaveBatch(_ context.Context, logs []*audit.ChangeLog) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, logs...)
	return nil
}

func (f *fakeChangeLogRepo) FindByAggregate(context.Context, uuid.UUID, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}

func (f *fakeChangeLogRepo) FindRecent(context.Context, uuid.UUID, int) ([]audit.ChangeLog, error) {
	return nil, nil
}

func TestRecorderWritesEventRows(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	tenantID := uuid.New()
	userID := uuid.New()
	customer, err := partner.NewCustomer(tenantID, "Acme Corp", "sales@acme.com")
	require.NoError(t, err)
	require.NoError(t, customer.SetTier(partner.CustomerTierPremium))

	recorder.Record(context.Background(), &userID, customer)

	require.Len(t, repo.saved, 2)
	first := repo.saved[0]
	assert.Equal(t, tenantID, first.TenantID)
	assert.Equal(t, &userID, first.UserID)
	assert.Equal(t, customer.ID, first.AggregateID)
	assert.NotEmpty(t, first.EventType)
	assert.NotEqual(t, "{}", first.Payload)
	assert.WithinDuration(t, time.Now(), first.OccurredAt, time.Minute)
}

func TestRecorderClearsEvents(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	customer, err := partner.NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")
	require.NoError(t, err)

	recorder.Record(context.Background(), nil, customer)
	assert.Empty(t, customer.GetDomainEvents())

	// A second call finds nothing new to record
	recorder.Record(context.Background(), nil, customer)
	assert.Len(t, repo.saved, 1)
}

func TestRecorderSwallowsRepositoryErrors(t *testing.T) {
	repo := &fakeChangeLogRepo{err: errors.New("db down")}
	recorder := NewRecorder(repo, zap.NewNop())

	customer, err := partner.NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), nil, customer)
	})
	assert.Empty(t, customer.GetDomainEvents())
}

func TestRecorderNoEventsNoWrite(t *testing.T) {
	repo := &fakeChangeLogRepo{}
	recorder := NewRecorder(repo, zap.NewNop())

	customer, err := partner.NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")
	require.NoError(t, err)
	customer.ClearDomainEvents()

	recorder.Record(context.Background(), nil, customer)
	assert.Empty(t, repo.saved)
}
