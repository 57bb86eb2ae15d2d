// Package registry implements the customer/product workflows shared by the account, card
// and loan services: registration, lookup, update and deregistration.
package registry

import (
	"context"

	"bank-records/internal/domain/customer"
	"bank-records/internal/domain/product"
)

type RegistrationRequest struct {
	Name         string
	Email        string
	MobileNumber string
}

// UpdateRequest carries the product record to update, located by its identifier, and
// optionally the owning customer's new details.
type UpdateRequest[P any] struct {
	Customer *customer.Changes
	Product  *P
}

type CombinedView[P any] struct {
	Customer customer.Customer
	Product  P
}

// Stores are the repositories visible inside a unit of work.
type Stores[P any] struct {
	Customers customer.Repository
	Products  product.Repository[P]
}

// UnitOfWork runs fn against stores that commit together when fn returns nil and roll back
// otherwise.
type UnitOfWork[P any] interface {
	Within(ctx context.Context, fn func(ctx context.Context, stores Stores[P]) error) error
}

type Service[P any] interface {
	Register(ctx context.Context, req RegistrationRequest) error
	Lookup(ctx context.Context, mobileNumber string) (*CombinedView[P], error)
	// Update returns false without writing when the request carries no product reference.
	Update(ctx context.Context, req UpdateRequest[P]) (bool, error)
	Deregister(ctx context.Context, mobileNumber string) (bool, error)
}
