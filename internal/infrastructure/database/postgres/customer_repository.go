package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"bank-records/internal/domain/customer"
	"bank-records/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `customer_id, name, email, mobile_number, created_at, updated_at`

type CustomerRepository struct {
	db     Querier
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db Querier, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("Querier cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.CustomerID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer observe("customers.insert")(&err)

	query := `
        INSERT INTO customers (name, email, mobile_number, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING customer_id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query, cust.Name, cust.Email, cust.MobileNumber).
		Scan(&cust.CustomerID, &cust.CreatedAt, &cust.UpdatedAt)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	defer observe("customers.update")(&err)

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            mobile_number = $3,
            updated_at = NOW()
        WHERE customer_id = $4
        RETURNING updated_at`

	err = r.db.QueryRow(ctx, query, cust.Name, cust.Email, cust.MobileNumber, cust.CustomerID).Scan(&cust.UpdatedAt)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		switch {
		case errors.Is(translatedErr, apperrors.ErrNotFound):
			r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found", slog.Int64("customerID", cust.CustomerID))
			return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, cust.CustomerID)
		case errors.Is(translatedErr, apperrors.ErrAlreadyExists):
			r.logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Int64("customerID", cust.CustomerID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer updated successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE mobile_number = $1`
	return r.findOne(ctx, "customers.find_by_mobile_number", query, mobileNumber)
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	return r.findOne(ctx, "customers.find_by_id", query, customerID)
}

func (r *CustomerRepository) findOne(ctx context.Context, queryName, query string, key any) (_ *customer.Customer, err error) {
	defer observe(queryName)(&err)

	var cust customer.Customer
	err = r.db.QueryRow(ctx, query, key).Scan(
		&cust.CustomerID,
		&cust.Name,
		&cust.Email,
		&cust.MobileNumber,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Customer not found", slog.String("query", queryName))
			return nil, fmt.Errorf("%w: customer by %v", apperrors.ErrNotFound, key)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.String("query", queryName), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer: %w", apperrors.ErrDatabase, err)
	}
	return &cust, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, customerID int64) (err error) {
	defer observe("customers.delete")(&err)

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found", slog.Int64("customerID", customerID))
		return fmt.Errorf("%w: customer with id %d", apperrors.ErrNotFound, customerID)
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully", slog.Int64("customerID", customerID))
	return nil
}
