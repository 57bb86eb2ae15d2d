package customer_test

import (
	"bank-records/internal/domain/customer"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCustomer(t *testing.T) {
	timeBefore := time.Now()

	cust := customer.NewCustomer("  Alice Wonderland ", "alice@example.com", " 1234567890")
	timeAfter := time.Now()

	assert.NotNil(t, cust, "NewCustomer should return a non-nil customer")
	assert.Equal(t, "Alice Wonderland", cust.Name, "Customer name should be trimmed")
	assert.Equal(t, "alice@example.com", cust.Email)
	assert.Equal(t, "1234567890", cust.MobileNumber, "Mobile number should be trimmed")

	assert.Equal(t, cust.CreatedAt, cust.UpdatedAt, "CreatedAt and UpdatedAt should initially be the same")
	assert.True(t, !cust.CreatedAt.Before(timeBefore) && !cust.CreatedAt.After(timeAfter), "CreatedAt should be around the time of creation")
	assert.Equal(t, int64(0), cust.CustomerID, "CustomerID should be assigned by the store")
}

func TestCustomer_Apply(t *testing.T) {
	t.Run("overwrites present fields", func(t *testing.T) {
		cust := customer.NewCustomer("Bob Builder", "bob@example.com", "1111111111")
		cust.CustomerID = 9
		initialUpdateTime := cust.UpdatedAt
		time.Sleep(1 * time.Millisecond)

		changed := cust.Apply(customer.Changes{Name: "Robert Builder", MobileNumber: "2222222222"})

		assert.True(t, changed)
		assert.Equal(t, "Robert Builder", cust.Name)
		assert.Equal(t, "bob@example.com", cust.Email, "Empty email should leave stored value")
		assert.Equal(t, "2222222222", cust.MobileNumber)
		assert.Equal(t, int64(9), cust.CustomerID)
		assert.True(t, cust.UpdatedAt.After(initialUpdateTime), "UpdatedAt should move forward")
	})

	t.Run("no change when values match", func(t *testing.T) {
		cust := customer.NewCustomer("Carol Danvers", "carol@example.com", "3333333333")
		initialUpdateTime := cust.UpdatedAt

		changed := cust.Apply(customer.Changes{Name: "Carol Danvers", Email: " carol@example.com "})

		assert.False(t, changed)
		assert.Equal(t, initialUpdateTime, cust.UpdatedAt)
	})
}
