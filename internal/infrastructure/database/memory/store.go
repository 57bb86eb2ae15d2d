// Package memory is a transactional in-memory store for one product kind. Units of work are
// serialized and roll back by restoring a snapshot.
package memory

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"bank-records/internal/domain/account"
	"bank-records/internal/domain/customer"
	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
	"bank-records/internal/pkg/apperrors"
)

type state[P any] struct {
	customers      map[int64]customer.Customer
	byMobile       map[string]int64
	products       map[int64]P
	byOwner        map[int64]int64
	nextCustomerID int64
}

func (s *state[P]) clone() *state[P] {
	return &state[P]{
		customers:      maps.Clone(s.customers),
		byMobile:       maps.Clone(s.byMobile),
		products:       maps.Clone(s.products),
		byOwner:        maps.Clone(s.byOwner),
		nextCustomerID: s.nextCustomerID,
	}
}

type Store[P any, PP product.Record[P]] struct {
	mu   sync.Mutex
	kind product.Kind
	data *state[P]
}

var (
	_ registry.UnitOfWork[account.Account] = (*Store[account.Account, *account.Account])(nil)
	_ registry.Auditor                     = (*Store[account.Account, *account.Account])(nil)
)

func NewStore[P any, PP product.Record[P]](kind product.Kind) *Store[P, PP] {
	return &Store[P, PP]{
		kind: kind,
		data: &state[P]{
			customers: make(map[int64]customer.Customer),
			byMobile:  make(map[string]int64),
			products:  make(map[int64]P),
			byOwner:   make(map[int64]int64),
		},
	}
}

func (s *Store[P, PP]) Within(ctx context.Context, fn func(ctx context.Context, stores registry.Stores[P]) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	stores := registry.Stores[P]{
		Customers: &customerRepo[P]{st: s.data},
		Products:  &productRepo[P, PP]{st: s.data},
	}
	if err := fn(ctx, stores); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store[P, PP]) CountOrphans(ctx context.Context) (registry.AuditReport, error) {
	report := registry.AuditReport{Kind: s.kind}
	err := s.Within(ctx, func(context.Context, registry.Stores[P]) error {
		for id := range s.data.customers {
			if _, ok := s.data.byOwner[id]; !ok {
				report.OrphanCustomers++
			}
		}
		for owner := range s.data.byOwner {
			if _, ok := s.data.customers[owner]; !ok {
				report.OrphanProducts++
			}
		}
		return nil
	})
	return report, err
}

func (s *Store[P, PP]) DeleteOrphanCustomers(ctx context.Context) (int64, error) {
	var removed int64
	err := s.Within(ctx, func(context.Context, registry.Stores[P]) error {
		for id, c := range s.data.customers {
			if _, ok := s.data.byOwner[id]; ok {
				continue
			}
			delete(s.data.customers, id)
			delete(s.data.byMobile, c.MobileNumber)
			removed++
		}
		return nil
	})
	return removed, err
}

type customerRepo[P any] struct {
	st *state[P]
}

func (r *customerRepo[P]) FindByMobileNumber(_ context.Context, mobileNumber string) (*customer.Customer, error) {
	id, ok := r.st.byMobile[strings.TrimSpace(mobileNumber)]
	if !ok {
		return nil, fmt.Errorf("%w: customer with mobile number %s", apperrors.ErrNotFound, mobileNumber)
	}
	c := r.st.customers[id]
	return &c, nil
}

func (r *customerRepo[P]) FindByID(_ context.Context, customerID int64) (*customer.Customer, error) {
	c, ok := r.st.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
	}
	return &c, nil
}

func (r *customerRepo[P]) Save(_ context.Context, c *customer.Customer) error {
	if owner, ok := r.st.byMobile[c.MobileNumber]; ok && owner != c.CustomerID {
		return fmt.Errorf("%w: customers_mobile_number_key", apperrors.ErrAlreadyExists)
	}

	if c.CustomerID == 0 {
		r.st.nextCustomerID++
		c.CustomerID = r.st.nextCustomerID
	} else {
		prev, ok := r.st.customers[c.CustomerID]
		if !ok {
			return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, c.CustomerID)
		}
		delete(r.st.byMobile, prev.MobileNumber)
	}

	r.st.customers[c.CustomerID] = *c
	r.st.byMobile[c.MobileNumber] = c.CustomerID
	return nil
}

func (r *customerRepo[P]) DeleteByID(_ context.Context, customerID int64) error {
	c, ok := r.st.customers[customerID]
	if !ok {
		return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
	}
	delete(r.st.customers, customerID)
	delete(r.st.byMobile, c.MobileNumber)
	return nil
}

type productRepo[P any, PP product.Record[P]] struct {
	st *state[P]
}

func (r *productRepo[P, PP]) FindByCustomerID(_ context.Context, customerID int64) (*P, error) {
	id, ok := r.st.byOwner[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: product for customer %d", apperrors.ErrNotFound, customerID)
	}
	p := r.st.products[id]
	return &p, nil
}

func (r *productRepo[P, PP]) FindByID(_ context.Context, productID int64) (*P, error) {
	p, ok := r.st.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", apperrors.ErrNotFound, productID)
	}
	return &p, nil
}

// Save inserts or replaces by product identifier. An identifier held by another customer,
// or a customer that already owns a different product, is rejected as a duplicate.
func (r *productRepo[P, PP]) Save(_ context.Context, p *P) error {
	rec := PP(p)
	id, owner := rec.ProductID(), rec.OwnerID()

	if existing, ok := r.st.products[id]; ok && PP(&existing).OwnerID() != owner {
		return fmt.Errorf("%w: product %d", apperrors.ErrAlreadyExists, id)
	}
	if held, ok := r.st.byOwner[owner]; ok && held != id {
		return fmt.Errorf("%w: customer %d already owns product %d", apperrors.ErrAlreadyExists, owner, held)
	}

	r.st.products[id] = *p
	r.st.byOwner[owner] = id
	return nil
}

func (r *productRepo[P, PP]) DeleteByCustomerID(_ context.Context, customerID int64) error {
	id, ok := r.st.byOwner[customerID]
	if !ok {
		return nil
	}
	delete(r.st.products, id)
	delete(r.st.byOwner, customerID)
	return nil
}
