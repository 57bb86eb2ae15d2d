// Package product holds what the account, card and loan records have in common: the kind
// that parameterizes a service instance, the store contract and the record constraint used
// by the registration workflows.
package product

import (
	"context"
	"fmt"
	"strings"
)

type Kind string

const (
	KindAccount Kind = "account"
	KindCard    Kind = "card"
	KindLoan    Kind = "loan"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAccount, KindCard, KindLoan:
		return k, nil
	default:
		return "", fmt.Errorf("unknown product kind %q", s)
	}
}

// DisplayName is the entity name used in error messages and status responses.
func (k Kind) DisplayName() string {
	switch k {
	case KindAccount:
		return "Account"
	case KindCard:
		return "Card"
	case KindLoan:
		return "Loan"
	}
	return string(k)
}

// IdentifierField is the JSON name of the product identifier, e.g. accountNumber.
func (k Kind) IdentifierField() string {
	return string(k) + "Number"
}

// Record is satisfied by *Account, *Card and *Loan.
type Record[P any] interface {
	*P
	ProductID() int64
	OwnerID() int64
	// Issue stamps a fresh record with its owner, its identifier and the kind's defaults.
	Issue(customerID, productID int64)
	// ApplyChanges copies the mutable fields of from. Identifier and owner are preserved.
	ApplyChanges(from *P)
}

// Repository is the product store for one kind. Lookups that match nothing return an error
// wrapping apperrors.ErrNotFound.
type Repository[P any] interface {
	FindByCustomerID(ctx context.Context, customerID int64) (*P, error)

	FindByID(ctx context.Context, productID int64) (*P, error)

	Save(ctx context.Context, p *P) error

	// DeleteByCustomerID succeeds when nothing matches.
	DeleteByCustomerID(ctx context.Context, customerID int64) error
}
