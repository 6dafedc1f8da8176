package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/shared"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CustomerTier represents the customer's commercial tier
type CustomerTier string

const (
	CustomerTierStandard   CustomerTier = "STANDARD"
	CustomerTierPremium    CustomerTier = "PREMIUM"
	CustomerTierEnterprise CustomerTier = "ENTERPRISE"
	CustomerTierVIP        CustomerTier = "VIP"
)

// Customer represents a customer in the partner context.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Name        string         `gorm:"type:varchar(200);not null"`
	Email       string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_customer_tenant_email,priority:2"`
	Industry    string         `gorm:"type:varchar(100)"`
	Tier        CustomerTier   `gorm:"type:varchar(20);not null;default:'STANDARD'"`
	Status      CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50)"`
	Website     string         `gorm:"type:varchar(200)"`
	Address     string         `gorm:"type:text"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, name, email string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               strings.ToLower(email),
		Tier:                CustomerTierStandard,
		Status:              CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, email, industry string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if industry != "" && len(industry) > 100 {
		return shared.NewDomainError("INVALID_INDUSTRY", "Industry cannot exceed 100 characters")
	}

	c.Name = name
	c.Email = strings.ToLower(email)
	c.Industry = industry
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(contactName, phone, website string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if website != "" && len(website) > 200 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 200 characters")
	}

	c.ContactName = contactName
	c.Phone = phone
	c.Website = website
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetAddress sets the customer's address
func (c *Customer) SetAddress(address string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTier changes the customer's commercial tier
func (c *Customer) SetTier(tier CustomerTier) error {
	if err := validateCustomerTier(tier); err != nil {
		return err
	}

	oldTier := c.Tier
	c.Tier = tier
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerTierChangedEvent(c, oldTier, tier))

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, CustomerStatusInactive, CustomerStatusActive))

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerStatusChangedEvent(c, CustomerStatusActive, CustomerStatusInactive))

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// Validation functions

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateCustomerTier(tier CustomerTier) error {
	switch tier {
	case CustomerTierStandard, CustomerTierPremium, CustomerTierEnterprise, CustomerTierVIP:
		return nil
	default:
		return shared.NewDomainError("INVALID_TIER", "Invalid customer tier")
	}
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
