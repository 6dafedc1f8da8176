package bridge

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Product is the client-side view of a catalog product
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	Active    bool            `json:"active"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// ProductList is a page of products with its total count
type ProductList struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
}

// ListProductsQuery filters and paginates product listings
type ListProductsQuery struct {
	Category string
	Search   string
	Active   *bool
	Page     int
	PageSize int
}

// ProductInput is the payload for creating or updating a product
type ProductInput struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency,omitempty"`
}

// ProductBridge fronts the product catalog resource
type ProductBridge struct {
	*Bridge
}

// NewProductBridge creates the product bridge
func NewProductBridge(client Client, opts ...Option) *ProductBridge {
	return &ProductBridge{Bridge: New("products", client, opts...)}
}

// List fetches a page of products
func (p *ProductBridge) List(ctx context.Context, query ListProductsQuery) Result[ProductList] {
	active := ""
	if query.Active != nil {
		active = strconv.FormatBool(*query.Active)
	}
	key := NewKey("products.list",
		"category", query.Category,
		"search", query.Search,
		"active", active,
		"page", strconv.Itoa(query.Page),
		"page_size", strconv.Itoa(query.PageSize),
	)
	return Read(ctx, p.Bridge, key, ScopeTeam, func(ctx context.Context) (ProductList, error) {
		values := url.Values{}
		if query.Category != "" {
			values.Set("category", query.Category)
		}
		if query.Search != "" {
			values.Set("search", query.Search)
		}
		if query.Active != nil {
			values.Set("active", active)
		}
		if query.Page > 0 {
			values.Set("page", strconv.Itoa(query.Page))
		}
		if query.PageSize > 0 {
			values.Set("page_size", strconv.Itoa(query.PageSize))
		}
		var items []Product
		meta, err := p.Client().GetList(ctx, "/products", values, &items)
		if err != nil {
			return ProductList{}, err
		}
		return ProductList{Items: items, Total: meta.Total}, nil
	})
}

// Get fetches one product by ID
func (p *ProductBridge) Get(ctx context.Context, id string) Result[Product] {
	key := NewKey("products.get", "id", id)
	return Read(ctx, p.Bridge, key, ScopeTeam, func(ctx context.Context) (Product, error) {
		var product Product
		err := p.Client().Get(ctx, "/products/"+id, nil, &product)
		return product, err
	})
}

// Create creates a product and invalidates cached listings
func (p *ProductBridge) Create(ctx context.Context, input ProductInput) Result[Product] {
	return Mutate(ctx, p.Bridge, "products.create", ActionCreate, ScopeAll,
		[]string{"products."},
		func(ctx context.Context) (Product, error) {
			var product Product
			err := p.Client().Post(ctx, "/products", input, &product)
			return product, err
		})
}

// Update patches a product and invalidates every cached view of it
func (p *ProductBridge) Update(ctx context.Context, id string, input ProductInput) Result[Product] {
	return Mutate(ctx, p.Bridge, "products.update", ActionUpdate, ScopeAll,
		[]string{"products."},
		func(ctx context.Context) (Product, error) {
			var product Product
			err := p.Client().Patch(ctx, "/products/"+id, input, &product)
			return product, err
		})
}

// Delete removes a product and invalidates cached listings and details
func (p *ProductBridge) Delete(ctx context.Context, id string) Result[bool] {
	return Mutate(ctx, p.Bridge, "products.delete", ActionDelete, ScopeAll,
		[]string{"products."},
		func(ctx context.Context) (bool, error) {
			if err := p.Client().Delete(ctx, "/products/"+id); err != nil {
				return false, err
			}
			return true, nil
		})
}
