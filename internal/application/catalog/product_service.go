package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/catalog"
	"github.com/posalpro/backend/internal/domain/shared"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	recorder    *activity.Recorder
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, recorder *activity.Recorder) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		recorder:    recorder,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		product.SetCreatedBy(*userID)
	}

	if req.Description != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}
	if req.Currency != "" {
		if err := product.SetPrice(req.UnitPrice, req.Currency); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, userID *uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil || req.Category != nil {
		name := product.Name
		description := product.Description
		category := product.Category
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Category != nil {
			category = *req.Category
		}
		if err := product.Update(name, description, category); err != nil {
			return nil, err
		}
	}

	if req.UnitPrice != nil || req.Currency != nil {
		price := product.UnitPrice
		currency := product.Currency
		if req.UnitPrice != nil {
			price = *req.UnitPrice
		}
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := product.SetPrice(price, currency); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Activate makes a product orderable again
func (s *ProductService) Activate(ctx context.Context, tenantID, productID uuid.UUID, userID *uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, tenantID, productID, userID, func(p *catalog.Product) error {
		return p.Activate()
	})
}

// Deactivate retires a product from the catalog
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID, userID *uuid.UUID) (*ProductResponse, error) {
	return s.changeStatus(ctx, tenantID, productID, userID, func(p *catalog.Product) error {
		return p.Deactivate()
	})
}

func (s *ProductService) changeStatus(ctx context.Context, tenantID, productID uuid.UUID, userID *uuid.UUID, change func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if err := change(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, product)

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}
