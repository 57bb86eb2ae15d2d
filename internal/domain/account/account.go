package account

import (
	"time"
)

const (
	DefaultAccountType   = "Savings"
	DefaultBranchAddress = "123 Main Street, New York"
)

type Account struct {
	AccountNumber int64     `json:"accountNumber"`
	CustomerID    int64     `json:"customerId"`
	AccountType   string    `json:"accountType"`
	BranchAddress string    `json:"branchAddress"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (a *Account) ProductID() int64 { return a.AccountNumber }

func (a *Account) OwnerID() int64 { return a.CustomerID }

func (a *Account) Issue(customerID, accountNumber int64) {
	now := time.Now()
	a.CustomerID = customerID
	a.AccountNumber = accountNumber
	a.AccountType = DefaultAccountType
	a.BranchAddress = DefaultBranchAddress
	a.CreatedAt = now
	a.UpdatedAt = now
}

func (a *Account) ApplyChanges(from *Account) {
	if from == nil {
		return
	}
	a.AccountType = from.AccountType
	a.BranchAddress = from.BranchAddress
	a.UpdatedAt = time.Now()
}
