package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"bank-records/internal/domain/customer"
	"bank-records/internal/domain/identity"
	"bank-records/internal/domain/product"
	"bank-records/internal/event"
	"bank-records/internal/infrastructure/monitoring"
	"bank-records/internal/pkg/apperrors"
)

const (
	opRegister   = "register"
	opLookup     = "lookup"
	opUpdate     = "update"
	opDeregister = "deregister"

	defaultMaxIdentityAttempts = 5
)

type Option func(*options)

type options struct {
	maxIdentityAttempts int
	publisher           event.EventPublisher
}

func WithMaxIdentityAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIdentityAttempts = n
		}
	}
}

func WithPublisher(p event.EventPublisher) Option {
	return func(o *options) {
		if p != nil {
			o.publisher = p
		}
	}
}

type service[P any, PP product.Record[P]] struct {
	kind   product.Kind
	uow    UnitOfWork[P]
	ids    identity.Generator
	opts   options
	logger *slog.Logger
}

func NewService[P any, PP product.Record[P]](kind product.Kind, uow UnitOfWork[P], ids identity.Generator, logger *slog.Logger, opts ...Option) Service[P] {
	if uow == nil {
		panic("unit of work cannot be nil")
	}
	if ids == nil {
		panic("identity generator cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewService, using default stderr handler")
	}

	o := options{maxIdentityAttempts: defaultMaxIdentityAttempts, publisher: event.NoopPublisher{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &service[P, PP]{
		kind:   kind,
		uow:    uow,
		ids:    ids,
		opts:   o,
		logger: logger.With(slog.String("component", "registryService"), slog.String("kind", string(kind))),
	}
}

func (s *service[P, PP]) Register(ctx context.Context, req RegistrationRequest) (err error) {
	start := time.Now()
	defer func() { monitoring.RecordWorkflow(string(s.kind), opRegister, err, time.Since(start)) }()

	mobileNumber := strings.TrimSpace(req.MobileNumber)
	logger := s.logger.With(slog.String("mobileNumber", mobileNumber))
	logger.InfoContext(ctx, "Attempting to register customer")

	var (
		cust   *customer.Customer
		issued PP
	)
	err = s.uow.Within(ctx, func(ctx context.Context, st Stores[P]) error {
		existing, err := st.Customers.FindByMobileNumber(ctx, mobileNumber)
		switch {
		case err == nil && existing != nil:
			return apperrors.NewDuplicateCustomerError(mobileNumber, nil)
		case err != nil && !errors.Is(err, apperrors.ErrNotFound):
			return fmt.Errorf("failed to check customer by mobile number: %w", err)
		}

		cust = customer.NewCustomer(req.Name, req.Email, mobileNumber)
		if err := st.Customers.Save(ctx, cust); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				return apperrors.NewDuplicateCustomerError(mobileNumber, err)
			}
			return fmt.Errorf("failed to save new customer: %w", err)
		}

		issued, err = s.issueProduct(ctx, st.Products, cust.CustomerID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Customer already registered", slog.Any("error", err))
		} else {
			logger.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
		}
		return err
	}

	logger.InfoContext(ctx, "Customer registered",
		slog.Int64("customerID", cust.CustomerID), slog.Int64("productID", issued.ProductID()))
	s.publish(ctx, event.TypeCustomerRegistered, cust.CustomerID, cust.MobileNumber, issued.ProductID())
	return nil
}

// issueProduct draws identifiers until one is free in the product store, then saves the new
// record under it. A Save rejected as a duplicate identifier counts as a collision.
func (s *service[P, PP]) issueProduct(ctx context.Context, products product.Repository[P], customerID int64) (PP, error) {
	for attempt := 1; attempt <= s.opts.maxIdentityAttempts; attempt++ {
		candidate := s.ids.Next()
		if candidate == 0 {
			continue
		}

		if _, err := products.FindByID(ctx, candidate); err == nil {
			s.logger.WarnContext(ctx, "Product identifier collision", slog.Int64("candidate", candidate), slog.Int("attempt", attempt))
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check %s identifier: %w", s.kind, err)
		}

		p := PP(new(P))
		p.Issue(customerID, candidate)
		if err := products.Save(ctx, (*P)(p)); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				s.logger.WarnContext(ctx, "Product identifier taken on save", slog.Int64("candidate", candidate), slog.Int("attempt", attempt))
				continue
			}
			return nil, fmt.Errorf("failed to save new %s: %w", s.kind, err)
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %d attempts for %s", apperrors.ErrIdentityExhausted, s.opts.maxIdentityAttempts, s.kind)
}

func (s *service[P, PP]) Lookup(ctx context.Context, mobileNumber string) (view *CombinedView[P], err error) {
	start := time.Now()
	defer func() { monitoring.RecordWorkflow(string(s.kind), opLookup, err, time.Since(start)) }()

	mobileNumber = strings.TrimSpace(mobileNumber)
	err = s.uow.Within(ctx, func(ctx context.Context, st Stores[P]) error {
		cust, err := s.findCustomerByMobile(ctx, st.Customers, mobileNumber)
		if err != nil {
			return err
		}

		p, err := st.Products.FindByCustomerID(ctx, cust.CustomerID)
		if err != nil {
			return s.notFound(err, s.kind.DisplayName(), "customerId", cust.CustomerID)
		}

		view = &CombinedView[P]{Customer: *cust, Product: *p}
		return nil
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Lookup failed", slog.String("mobileNumber", mobileNumber), slog.Any("error", err))
		return nil, err
	}
	return view, nil
}

func (s *service[P, PP]) Update(ctx context.Context, req UpdateRequest[P]) (updated bool, err error) {
	start := time.Now()
	defer func() { monitoring.RecordWorkflow(string(s.kind), opUpdate, err, time.Since(start)) }()

	if req.Product == nil || PP(req.Product).ProductID() == 0 {
		s.logger.WarnContext(ctx, "Update rejected: no product reference in payload")
		return false, nil
	}

	productID := PP(req.Product).ProductID()
	logger := s.logger.With(slog.Int64("productID", productID))

	var cust *customer.Customer
	err = s.uow.Within(ctx, func(ctx context.Context, st Stores[P]) error {
		existing, err := st.Products.FindByID(ctx, productID)
		if err != nil {
			return s.notFound(err, s.kind.DisplayName(), s.kind.IdentifierField(), productID)
		}

		rec := PP(existing)
		rec.ApplyChanges(req.Product)
		if err := st.Products.Save(ctx, existing); err != nil {
			return fmt.Errorf("failed to save %s: %w", s.kind, err)
		}

		customerID := rec.OwnerID()
		cust, err = st.Customers.FindByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewConsistencyError(
					fmt.Sprintf("%s %d has no owning customer", s.kind, productID),
					apperrors.NewNotFoundError("Customer", "customerId", customerID))
			}
			return fmt.Errorf("failed to find customer by id: %w", err)
		}

		if req.Customer == nil || !cust.Apply(*req.Customer) {
			return nil
		}
		if err := st.Customers.Save(ctx, cust); err != nil {
			if errors.Is(err, apperrors.ErrAlreadyExists) {
				return apperrors.NewDuplicateCustomerError(cust.MobileNumber, err)
			}
			return fmt.Errorf("failed to save customer: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInternalConsistency) {
			logger.ErrorContext(ctx, "Update found an orphaned product", slog.Any("error", err))
		} else {
			logger.WarnContext(ctx, "Update failed", slog.Any("error", err))
		}
		return false, err
	}

	logger.InfoContext(ctx, "Customer and product updated", slog.Int64("customerID", cust.CustomerID))
	s.publish(ctx, event.TypeCustomerUpdated, cust.CustomerID, cust.MobileNumber, productID)
	return true, nil
}

func (s *service[P, PP]) Deregister(ctx context.Context, mobileNumber string) (deleted bool, err error) {
	start := time.Now()
	defer func() { monitoring.RecordWorkflow(string(s.kind), opDeregister, err, time.Since(start)) }()

	mobileNumber = strings.TrimSpace(mobileNumber)
	logger := s.logger.With(slog.String("mobileNumber", mobileNumber))

	var cust *customer.Customer
	err = s.uow.Within(ctx, func(ctx context.Context, st Stores[P]) error {
		var err error
		cust, err = s.findCustomerByMobile(ctx, st.Customers, mobileNumber)
		if err != nil {
			return err
		}

		// Product goes first so a customer is never removed while still owning one.
		if err := st.Products.DeleteByCustomerID(ctx, cust.CustomerID); err != nil {
			return fmt.Errorf("failed to delete %s for customer %d: %w", s.kind, cust.CustomerID, err)
		}
		if err := st.Customers.DeleteByID(ctx, cust.CustomerID); err != nil {
			return fmt.Errorf("failed to delete customer %d: %w", cust.CustomerID, err)
		}
		return nil
	})
	if err != nil {
		logger.WarnContext(ctx, "Deregistration failed", slog.Any("error", err))
		return false, err
	}

	logger.InfoContext(ctx, "Customer deregistered", slog.Int64("customerID", cust.CustomerID))
	s.publish(ctx, event.TypeCustomerDeregistered, cust.CustomerID, cust.MobileNumber, 0)
	return true, nil
}

func (s *service[P, PP]) findCustomerByMobile(ctx context.Context, customers customer.Repository, mobileNumber string) (*customer.Customer, error) {
	cust, err := customers.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		return nil, s.notFound(err, "Customer", "mobileNumber", mobileNumber)
	}
	return cust, nil
}

// notFound replaces a store miss with a NotFoundError naming the lookup, and wraps anything
// else unchanged.
func (s *service[P, PP]) notFound(err error, entity, field string, value any) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(entity, field, value)
	}
	return fmt.Errorf("failed to find %s by %s: %w", strings.ToLower(entity), field, err)
}

func (s *service[P, PP]) publish(ctx context.Context, eventType string, customerID int64, mobileNumber string, productID int64) {
	evt := event.NewCustomerEvent(eventType, string(s.kind), customerID, mobileNumber, productID)
	if err := s.opts.publisher.PublishCustomerEvent(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Workflow committed, but FAILED to publish event",
			slog.String("eventType", eventType), slog.Any("error", err))
	}
}
