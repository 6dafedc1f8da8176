package bridge

import (
	"context"
	"net/url"
	"strconv"
)

// Customer is the client-side view of a customer
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Industry  string `json:"industry,omitempty"`
	Tier      string `json:"tier"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CustomerList is a page of customers with its total count
type CustomerList struct {
	Items []Customer `json:"items"`
	Total int64      `json:"total"`
}

// ListCustomersQuery filters and paginates customer listings
type ListCustomersQuery struct {
	Tier     string
	Status   string
	Search   string
	Page     int
	PageSize int
}

// CustomerInput is the payload for creating or updating a customer
type CustomerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry,omitempty"`
	Tier     string `json:"tier,omitempty"`
}

// CustomerBridge fronts the customer resource
type CustomerBridge struct {
	*Bridge
}

// NewCustomerBridge creates the customer bridge
func NewCustomerBridge(client Client, opts ...Option) *CustomerBridge {
	return &CustomerBridge{Bridge: New("customers", client, opts...)}
}

// List fetches a page of customers
func (c *CustomerBridge) List(ctx context.Context, query ListCustomersQuery) Result[CustomerList] {
	key := NewKey("customers.list",
		"tier", query.Tier,
		"status", query.Status,
		"search", query.Search,
		"page", strconv.Itoa(query.Page),
		"page_size", strconv.Itoa(query.PageSize),
	)
	return Read(ctx, c.Bridge, key, ScopeTeam, func(ctx context.Context) (CustomerList, error) {
		values := url.Values{}
		if query.Tier != "" {
			values.Set("tier", query.Tier)
		}
		if query.Status != "" {
			values.Set("status", query.Status)
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
		var items []Customer
		meta, err := c.Client().GetList(ctx, "/customers", values, &items)
		if err != nil {
			return CustomerList{}, err
		}
		return CustomerList{Items: items, Total: meta.Total}, nil
	})
}

// Get fetches one customer by ID
func (c *CustomerBridge) Get(ctx context.Context, id string) Result[Customer] {
	key := NewKey("customers.get", "id", id)
	return Read(ctx, c.Bridge, key, ScopeTeam, func(ctx context.Context) (Customer, error) {
		var customer Customer
		err := c.Client().Get(ctx, "/customers/"+id, nil, &customer)
		return customer, err
	})
}

// Create creates a customer and invalidates cached listings
func (c *CustomerBridge) Create(ctx context.Context, input CustomerInput) Result[Customer] {
	return Mutate(ctx, c.Bridge, "customers.create", ActionCreate, ScopeTeam,
		[]string{"customers."},
		func(ctx context.Context) (Customer, error) {
			var customer Customer
			err := c.Client().Post(ctx, "/customers", input, &customer)
			return customer, err
		})
}

// Update patches a customer and invalidates every cached view of it
func (c *CustomerBridge) Update(ctx context.Context, id string, input CustomerInput) Result[Customer] {
	return Mutate(ctx, c.Bridge, "customers.update", ActionUpdate, ScopeTeam,
		[]string{"customers."},
		func(ctx context.Context) (Customer, error) {
			var customer Customer
			err := c.Client().Patch(ctx, "/customers/"+id, input, &customer)
			return customer, err
		})
}

// Delete removes a customer and invalidates cached listings and details
func (c *CustomerBridge) Delete(ctx context.Context, id string) Result[bool] {
	return Mutate(ctx, c.Bridge, "customers.delete", ActionDelete, ScopeAll,
		[]string{"customers."},
		func(ctx context.Context) (bool, error) {
			if err := c.Client().Delete(ctx, "/customers/"+id); err != nil {
				return false, err
			}
			return true, nil
		})
}
