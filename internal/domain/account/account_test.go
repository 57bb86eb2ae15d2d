package account_test

import (
	"bank-records/internal/domain/account"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_Issue(t *testing.T) {
	var a account.Account
	a.Issue(42, 1_234_567_890)

	assert.Equal(t, int64(1_234_567_890), a.ProductID())
	assert.Equal(t, int64(42), a.OwnerID())
	assert.Equal(t, account.DefaultAccountType, a.AccountType)
	assert.Equal(t, account.DefaultBranchAddress, a.BranchAddress)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestAccount_ApplyChanges(t *testing.T) {
	var a account.Account
	a.Issue(42, 1_234_567_890)

	a.ApplyChanges(&account.Account{
		AccountNumber: 1_999_999_999,
		CustomerID:    7,
		AccountType:   "Current",
		BranchAddress: "9 Elm Street, Boston",
	})

	assert.Equal(t, "Current", a.AccountType)
	assert.Equal(t, "9 Elm Street, Boston", a.BranchAddress)
	assert.Equal(t, int64(1_234_567_890), a.AccountNumber, "identifier must be preserved")
	assert.Equal(t, int64(42), a.CustomerID, "owner must be preserved")

	a.ApplyChanges(nil)
	assert.Equal(t, "Current", a.AccountType)
}
