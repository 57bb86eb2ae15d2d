package postgres

import (
	"log/slog"
	"time"

	"bank-records/internal/domain/account"
	"bank-records/internal/domain/product"
)

var accountsTable = &productTable[account.Account]{
	name:     "accounts",
	idColumn: "account_number",
	columns:  []string{"account_type", "branch_address"},
	selects:  []string{"account_type", "branch_address"},
	values: func(a *account.Account) []any {
		return []any{a.AccountType, a.BranchAddress}
	},
	scanTargets: func(a *account.Account) ([]any, func() error) {
		return []any{&a.AccountNumber, &a.CustomerID, &a.AccountType, &a.BranchAddress, &a.CreatedAt, &a.UpdatedAt},
			func() error { return nil }
	},
	stamp: func(a *account.Account, createdAt, updatedAt time.Time) {
		a.CreatedAt, a.UpdatedAt = createdAt, updatedAt
	},
}

func NewAccountRepository(db Querier, logger *slog.Logger) product.Repository[account.Account] {
	return newProductRepository[account.Account, *account.Account](db, accountsTable, logger)
}
