package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
	"bank-records/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

// ProductRepositoryFactory binds a product repository to a pool or transaction.
type ProductRepositoryFactory[P any] func(db Querier, logger *slog.Logger) product.Repository[P]

// UnitOfWork runs each workflow in one transaction spanning the customers table and the
// product table.
type UnitOfWork[P any] struct {
	pool        DBPool
	newProducts ProductRepositoryFactory[P]
	logger      *slog.Logger
}

func NewUnitOfWork[P any](pool DBPool, newProducts ProductRepositoryFactory[P], logger *slog.Logger) *UnitOfWork[P] {
	if pool == nil {
		panic("DBPool cannot be nil for UnitOfWork")
	}
	if newProducts == nil {
		panic("product repository factory cannot be nil for UnitOfWork")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewUnitOfWork, using default stderr handler")
	}
	return &UnitOfWork[P]{pool: pool, newProducts: newProducts, logger: logger.With("component", "UnitOfWork")}
}

func (u *UnitOfWork[P]) Within(ctx context.Context, fn func(ctx context.Context, stores registry.Stores[P]) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		u.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}

	defer func() {
		if p := recover(); p != nil {
			u.rollback(ctx, tx)
			panic(p)
		}
	}()

	stores := registry.Stores[P]{
		Customers: NewCustomerRepository(tx, u.logger),
		Products:  u.newProducts(tx, u.logger),
	}
	if err := fn(ctx, stores); err != nil {
		u.rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		u.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return translateDBError(err, u.logger)
	}
	return nil
}

func (u *UnitOfWork[P]) rollback(ctx context.Context, tx pgx.Tx) {
	// The request context may already be cancelled; rollback must still reach the server.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		u.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
	}
}
