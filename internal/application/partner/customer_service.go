package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/partner"
	"github.com/posalpro/backend/internal/domain/proposal"
	"github.com/posalpro/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	proposalRepo proposal.ProposalRepository
	recorder     *activity.Recorder
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, proposalRepo proposal.ProposalRepository, recorder *activity.Recorder) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		proposalRepo: proposalRepo,
		recorder:     recorder,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, userID *uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
	}

	customer, err := partner.NewCustomer(tenantID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		customer.SetCreatedBy(*userID)
	}

	if req.Industry != "" {
		if err := customer.Update(req.Name, req.Email, req.Industry); err != nil {
			return nil, err
		}
	}
	if req.Tier != "" {
		if err := customer.SetTier(partner.CustomerTier(req.Tier)); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.Phone != "" || req.Website != "" {
		if err := customer.SetContact(req.ContactName, req.Phone, req.Website); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		if err := customer.SetAddress(req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Tier != "" {
		domainFilter.Filters["tier"] = filter.Tier
	}
	if filter.Industry != "" {
		domainFilter.Filters["industry"] = filter.Industry
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update updates a customer
func (s *CustomerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, userID *uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Email != nil || req.Industry != nil {
		name := customer.Name
		email := customer.Email
		industry := customer.Industry
		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			if *req.Email != customer.Email {
				exists, err := s.customerRepo.ExistsByEmail(ctx, tenantID, *req.Email)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this email already exists")
				}
			}
			email = *req.Email
		}
		if req.Industry != nil {
			industry = *req.Industry
		}
		if err := customer.Update(name, email, industry); err != nil {
			return nil, err
		}
	}

	if req.Tier != nil {
		if err := customer.SetTier(partner.CustomerTier(*req.Tier)); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.Phone != nil || req.Website != nil {
		contactName := customer.ContactName
		phone := customer.Phone
		website := customer.Website
		if req.ContactName != nil {
			contactName = *req.ContactName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Website != nil {
			website = *req.Website
		}
		if err := customer.SetContact(contactName, phone, website); err != nil {
			return nil, err
		}
	}

	if req.Address != nil {
		if err := customer.SetAddress(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Activate re-activates a customer
func (s *CustomerService) Activate(ctx context.Context, tenantID, customerID uuid.UUID, userID *uuid.UUID) (*CustomerResponse, error) {
	return s.changeStatus(ctx, tenantID, customerID, userID, func(c *partner.Customer) error {
		return c.Activate()
	})
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID, userID *uuid.UUID) (*CustomerResponse, error) {
	return s.changeStatus(ctx, tenantID, customerID, userID, func(c *partner.Customer) error {
		return c.Deactivate()
	})
}

func (s *CustomerService) changeStatus(ctx context.Context, tenantID, customerID uuid.UUID, userID *uuid.UUID, change func(*partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if err := change(customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, userID, customer)

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete deletes a customer. Customers referenced by proposals cannot
// be removed.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	count, err := s.proposalRepo.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CUSTOMER_IN_USE", "Customer has proposals and cannot be deleted")
	}
	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}
