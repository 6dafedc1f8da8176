package bridge

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Proposal is the client-side view of a proposal
type Proposal struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	WizardStep int             `json:"wizard_step"`
	TotalValue decimal.Decimal `json:"total_value"`
	Currency   string          `json:"currency"`
	DueDate    string          `json:"due_date,omitempty"`
	Version    int             `json:"version"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// ProposalList is a page of proposals with its total count
type ProposalList struct {
	Items []Proposal `json:"items"`
	Total int64      `json:"total"`
}

// ListProposalsQuery filters and paginates proposal listings
type ListProposalsQuery struct {
	Status   string
	Customer string
	Search   string
	Page     int
	PageSize int
}

// CreateProposalInput is the payload for creating a proposal draft
type CreateProposalInput struct {
	Title      string `json:"title"`
	CustomerID string `json:"customer_id"`
	Currency   string `json:"currency,omitempty"`
	DueDate    string `json:"due_date,omitempty"`
}

// UpdateProposalInput is the payload for updating a proposal
type UpdateProposalInput struct {
	Title   *string `json:"title,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
}

// ProposalVersion is a summary of one immutable proposal snapshot
type ProposalVersion struct {
	Number     int    `json:"number"`
	ChangeType string `json:"change_type"`
	ChangedBy  string `json:"changed_by"`
	CreatedAt  string `json:"created_at"`
}

// LineItemChange describes one changed line item between two versions
type LineItemChange struct {
	ProductID    string           `json:"product_id"`
	FromQuantity int              `json:"from_quantity,omitempty"`
	ToQuantity   int              `json:"to_quantity,omitempty"`
	FromPrice    *decimal.Decimal `json:"from_price,omitempty"`
	ToPrice      *decimal.Decimal `json:"to_price,omitempty"`
}

// VersionDiff is the comparison of product line items between two versions
type VersionDiff struct {
	FromVersion int              `json:"from_version"`
	ToVersion   int              `json:"to_version"`
	Added       []string         `json:"added"`
	Removed     []string         `json:"removed"`
	Updated     []LineItemChange `json:"updated"`
}

// ProposalBridge fronts the proposal resource
type ProposalBridge struct {
	*Bridge
}

// NewProposalBridge creates the proposal bridge
func NewProposalBridge(client Client, opts ...Option) *ProposalBridge {
	return &ProposalBridge{Bridge: New("proposals", client, opts...)}
}

// List fetches a page of proposals. Identical concurrent calls are
// coalesced into a single request.
func (p *ProposalBridge) List(ctx context.Context, query ListProposalsQuery) Result[ProposalList] {
	key := NewKey("proposals.list",
		"status", query.Status,
		"customer", query.Customer,
		"search", query.Search,
		"page", strconv.Itoa(query.Page),
		"page_size", strconv.Itoa(query.PageSize),
	)
	return Read(ctx, p.Bridge, key, ScopeTeam, func(ctx context.Context) (ProposalList, error) {
		values := url.Values{}
		if query.Status != "" {
			values.Set("status", query.Status)
		}
		if query.Customer != "" {
			values.Set("customer_id", query.Customer)
		}
		if query.Search != "" {
			values.Set("search", query.Search)
		}
		if query.Page > 0 {
			values.Set("page", strconv.Itoa(query.Page))
		}
		if query.PageSize > 0 {
			values.Set("page_size", strconv.Itoa(query.PageSize))
		}
		var items []Proposal
		meta, err := p.Client().GetList(ctx, "/proposals", values, &items)
		if err != nil {
			return ProposalList{}, err
		}
		return ProposalList{Items: items, Total: meta.Total}, nil
	})
}

// Get fetches one proposal by ID
func (p *ProposalBridge) Get(ctx context.Context, id string) Result[Proposal] {
	key := NewKey("proposals.get", "id", id)
	return Read(ctx, p.Bridge, key, ScopeOwn, func(ctx context.Context) (Proposal, error) {
		var proposal Proposal
		err := p.Client().Get(ctx, "/proposals/"+id, nil, &proposal)
		return proposal, err
	})
}

// Create creates a proposal draft and invalidates cached listings
func (p *ProposalBridge) Create(ctx context.Context, input CreateProposalInput) Result[Proposal] {
	return Mutate(ctx, p.Bridge, "proposals.create", ActionCreate, ScopeOwn,
		[]string{"proposals."},
		func(ctx context.Context) (Proposal, error) {
			var proposal Proposal
			err := p.Client().Post(ctx, "/proposals", input, &proposal)
			return proposal, err
		})
}

// Update patches a proposal and invalidates every cached view of it
func (p *ProposalBridge) Update(ctx context.Context, id string, input UpdateProposalInput) Result[Proposal] {
	return Mutate(ctx, p.Bridge, "proposals.update", ActionUpdate, ScopeOwn,
		[]string{"proposals."},
		func(ctx context.Context) (Proposal, error) {
			var proposal Proposal
			err := p.Client().Patch(ctx, "/proposals/"+id, input, &proposal)
			return proposal, err
		})
}

// Transition moves a proposal through its workflow (submit, approve, send, ...)
func (p *ProposalBridge) Transition(ctx context.Context, id, status string) Result[Proposal] {
	return Mutate(ctx, p.Bridge, "proposals.transition", ActionUpdate, ScopeTeam,
		[]string{"proposals."},
		func(ctx context.Context) (Proposal, error) {
			var proposal Proposal
			err := p.Client().Post(ctx, "/proposals/"+id+"/transition", map[string]string{"status": status}, &proposal)
			return proposal, err
		})
}

// Delete removes a proposal and invalidates cached listings and details
func (p *ProposalBridge) Delete(ctx context.Context, id string) Result[bool] {
	return Mutate(ctx, p.Bridge, "proposals.delete", ActionDelete, ScopeOwn,
		[]string{"proposals."},
		func(ctx context.Context) (bool, error) {
			if err := p.Client().Delete(ctx, "/proposals/"+id); err != nil {
				return false, err
			}
			return true, nil
		})
}

// Versions lists the immutable snapshots recorded for a proposal
func (p *ProposalBridge) Versions(ctx context.Context, id string) Result[[]ProposalVersion] {
	key := NewKey("proposals.versions", "id", id)
	return Read(ctx, p.Bridge, key, ScopeTeam, func(ctx context.Context) ([]ProposalVersion, error) {
		var versions []ProposalVersion
		err := p.Client().Get(ctx, "/proposals/"+id+"/versions", nil, &versions)
		return versions, err
	})
}

// Diff compares the product line items between two versions of a proposal
func (p *ProposalBridge) Diff(ctx context.Context, id string, from, to int) Result[VersionDiff] {
	key := NewKey("proposals.diff",
		"id", id,
		"from", strconv.Itoa(from),
		"to", strconv.Itoa(to),
	)
	return Read(ctx, p.Bridge, key, ScopeTeam, func(ctx context.Context) (VersionDiff, error) {
		values := url.Values{}
		values.Set("from", strconv.Itoa(from))
		values.Set("to", strconv.Itoa(to))
		var diff VersionDiff
		err := p.Client().Get(ctx, "/proposals/"+id+"/diff", values, &diff)
		return diff, err
	})
}
