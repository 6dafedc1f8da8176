package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates customer successfully", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "Acme Corp", "sales@acme.com")

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Acme Corp", customer.Name)
		assert.Equal(t, "sales@acme.com", customer.Email)
		assert.Equal(t, CustomerTierStandard, customer.Tier)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.Equal(t, tenantID, customer.TenantID)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("lowercases email", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "Acme Corp", "Sales@Acme.COM")

		require.NoError(t, err)
		assert.Equal(t, "sales@acme.com", customer.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "", "sales@acme.com")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty email", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "Acme Corp", "")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "Email cannot be empty")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "Acme Corp", "not-an-email")

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "Invalid email format")
	})
}

func TestCustomerUpdate(t *testing.T) {
	tenantID := uuid.New()
	customer, _ := NewCustomer(tenantID, "Original", "orig@acme.com")
	customer.ClearDomainEvents()

	t.Run("updates basic information successfully", func(t *testing.T) {
		err := customer.Update("Renamed", "new@acme.com", "Manufacturing")

		require.NoError(t, err)
		assert.Equal(t, "Renamed", customer.Name)
		assert.Equal(t, "new@acme.com", customer.Email)
		assert.Equal(t, "Manufacturing", customer.Industry)
		assert.Len(t, customer.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		err := customer.Update("", "new@acme.com", "")

		assert.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		err := customer.Update("Renamed", "broken", "")

		assert.Error(t, err)
	})
}

func TestCustomerSetContact(t *testing.T) {
	customer, _ := NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")

	t.Run("sets contact successfully", func(t *testing.T) {
		err := customer.SetContact("Jane Doe", "+1 (555) 010-2000", "https://acme.com")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", customer.ContactName)
		assert.Equal(t, "+1 (555) 010-2000", customer.Phone)
	})

	t.Run("fails with invalid phone", func(t *testing.T) {
		err := customer.SetContact("Jane Doe", "call me", "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "phone number format")
	})
}

func TestCustomerSetTier(t *testing.T) {
	customer, _ := NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")
	customer.ClearDomainEvents()

	t.Run("changes tier and raises event", func(t *testing.T) {
		err := customer.SetTier(CustomerTierEnterprise)

		require.NoError(t, err)
		assert.Equal(t, CustomerTierEnterprise, customer.Tier)

		events := customer.GetDomainEvents()
		require.Len(t, events, 1)
		tierEvent, ok := events[0].(*CustomerTierChangedEvent)
		require.True(t, ok)
		assert.Equal(t, CustomerTierStandard, tierEvent.OldTier)
		assert.Equal(t, CustomerTierEnterprise, tierEvent.NewTier)
	})

	t.Run("fails with unknown tier", func(t *testing.T) {
		err := customer.SetTier(CustomerTier("PLATINUM"))

		assert.Error(t, err)
	})
}

func TestCustomerStatusTransitions(t *testing.T) {
	customer, _ := NewCustomer(uuid.New(), "Acme Corp", "sales@acme.com")
	customer.ClearDomainEvents()

	t.Run("activating an active customer fails", func(t *testing.T) {
		err := customer.Activate()

		assert.Error(t, err)
	})

	t.Run("deactivates successfully", func(t *testing.T) {
		err := customer.Deactivate()

		require.NoError(t, err)
		assert.False(t, customer.IsActive())
	})

	t.Run("deactivating twice fails", func(t *testing.T) {
		err := customer.Deactivate()

		assert.Error(t, err)
	})

	t.Run("reactivates successfully", func(t *testing.T) {
		err := customer.Activate()

		require.NoError(t, err)
		assert.True(t, customer.IsActive())
	})
}
