package bridge

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate snapshot shown on the dashboard
type DashboardStats struct {
	TotalProposals    int64           `json:"total_proposals"`
	ActiveProposals   int64           `json:"active_proposals"`
	AcceptedProposals int64           `json:"accepted_proposals"`
	TotalCustomers    int64           `json:"total_customers"`
	PipelineValue     decimal.Decimal `json:"pipeline_value"`
	WonValue          decimal.Decimal `json:"won_value"`
	WinRate           float64         `json:"win_rate"`
	GeneratedAt       string          `json:"generated_at"`
}

// ActivityEntry is one recent change shown in the dashboard feed
type ActivityEntry struct {
	ProposalID string `json:"proposal_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	ChangedBy  string `json:"changed_by"`
	OccurredAt string `json:"occurred_at"`
}

// DashboardBridge fronts the dashboard read models. Dashboard data is
// read-only through this layer; the stats key has no parameters so all
// concurrent dashboard loads coalesce into one fetch.
type DashboardBridge struct {
	*Bridge
}

// NewDashboardBridge creates the dashboard bridge
func NewDashboardBridge(client Client, opts ...Option) *DashboardBridge {
	return &DashboardBridge{Bridge: New("dashboard", client, opts...)}
}

// Stats fetches the aggregate dashboard snapshot
func (d *DashboardBridge) Stats(ctx context.Context) Result[DashboardStats] {
	key := NewKey("dashboard.stats")
	return Read(ctx, d.Bridge, key, ScopeTeam, func(ctx context.Context) (DashboardStats, error) {
		var stats DashboardStats
		err := d.Client().Get(ctx, "/dashboard/stats", nil, &stats)
		return stats, err
	})
}

// RecentActivity fetches the latest proposal changes
func (d *DashboardBridge) RecentActivity(ctx context.Context, limit int) Result[[]ActivityEntry] {
	key := NewKey("dashboard.activity", "limit", strconv.Itoa(limit))
	return Read(ctx, d.Bridge, key, ScopeTeam, func(ctx context.Context) ([]ActivityEntry, error) {
		values := url.Values{}
		if limit > 0 {
			values.Set("limit", strconv.Itoa(limit))
		}
		var entries []ActivityEntry
		err := d.Client().Get(ctx, "/dashboard/activity", values, &entries)
		return entries, err
	})
}
