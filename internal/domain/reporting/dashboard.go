// Package reporting holds read models computed across aggregates for
// the dashboard. Nothing here is an aggregate root; the types are
// query results only.
package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats aggregates proposal pipeline health for one tenant
type DashboardStats struct {
	TotalProposals  int64            `json:"total_proposals"`
	ByStatus        map[string]int64 `json:"by_status"`
	ActiveCustomers int64            `json:"active_customers"`
	ActiveProducts  int64            `json:"active_products"`
	PipelineValue   decimal.Decimal  `json:"pipeline_value"`
	WonValue        decimal.Decimal  `json:"won_value"`
	WinRate         float64          `json:"win_rate"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// ActivityEntry is one recent change shown on the dashboard feed
type ActivityEntry struct {
	EventType     string    `json:"event_type"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// DashboardRepository computes dashboard aggregates from current data
type DashboardRepository interface {
	// Stats computes pipeline statistics for a tenant
	Stats(ctx context.Context, tenantID uuid.UUID) (*DashboardStats, error)

	// RecentActivity returns the newest change log entries for a tenant
	RecentActivity(ctx context.Context, tenantID uuid.UUID, limit int) ([]ActivityEntry, error)
}
