package dto

import (
	"strings"

	"bank-records/internal/domain/customer"
	"bank-records/internal/domain/registry"
)

type CreateCustomerRequest struct {
	Name         string `json:"name" validate:"required,min=5,max=30" example:"Jane Doe"`
	Email        string `json:"email" validate:"required,email" example:"jane@example.com"`
	MobileNumber string `json:"mobileNumber" validate:"required,len=10,numeric" example:"1234567890"`
}

func (r CreateCustomerRequest) ToDomain() registry.RegistrationRequest {
	return registry.RegistrationRequest{
		Name:         r.Name,
		Email:        r.Email,
		MobileNumber: r.MobileNumber,
	}
}

// UpdateDetailsRequest locates the product by its identifier and overwrites its mutable
// fields. The customer fields are optional; empty ones are left unchanged.
type UpdateDetailsRequest[D any] struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=5,max=30"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	MobileNumber string `json:"mobileNumber,omitempty" validate:"omitempty,len=10,numeric"`
	Product      *D     `json:"product"`
}

func (r UpdateDetailsRequest[D]) customerChanges() *customer.Changes {
	ch := customer.Changes{
		Name:         strings.TrimSpace(r.Name),
		Email:        strings.TrimSpace(r.Email),
		MobileNumber: strings.TrimSpace(r.MobileNumber),
	}
	if ch == (customer.Changes{}) {
		return nil
	}
	return &ch
}

// ToUpdateRequest converts the payload. A missing product stays nil so the workflow can
// report that nothing was updated.
func ToUpdateRequest[P, D any](r UpdateDetailsRequest[D], m ProductMapper[P, D]) (registry.UpdateRequest[P], error) {
	req := registry.UpdateRequest[P]{Customer: r.customerChanges()}
	if r.Product == nil {
		return req, nil
	}
	p, err := m.ToDomain(*r.Product)
	if err != nil {
		return registry.UpdateRequest[P]{}, err
	}
	req.Product = p
	return req, nil
}

type CustomerDetailsResponse[D any] struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Product      D      `json:"product"`
}

func NewCustomerDetailsResponse[P, D any](v *registry.CombinedView[P], m ProductMapper[P, D]) CustomerDetailsResponse[D] {
	if v == nil {
		return CustomerDetailsResponse[D]{}
	}
	return CustomerDetailsResponse[D]{
		Name:         v.Customer.Name,
		Email:        v.Customer.Email,
		MobileNumber: v.Customer.MobileNumber,
		Product:      m.FromDomain(&v.Product),
	}
}
