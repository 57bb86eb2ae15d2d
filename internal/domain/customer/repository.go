package customer

import (
	"context"
)

// Repository is the customer store. Lookups that match nothing return an error wrapping
// apperrors.ErrNotFound; a Save that would duplicate a mobile number returns one wrapping
// apperrors.ErrAlreadyExists.
type Repository interface {
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Customer, error)

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	// Save inserts when CustomerID is zero and assigns it, otherwise updates.
	Save(ctx context.Context, customer *Customer) error

	DeleteByID(ctx context.Context, customerID int64) error
}
