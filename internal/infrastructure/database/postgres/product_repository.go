package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"bank-records/internal/domain/product"
	"bank-records/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// productTable maps one product kind onto its table. Descriptive columns are everything
// except the identifier, the owner and the timestamps.
type productTable[P any] struct {
	name     string
	idColumn string
	columns  []string
	// selects lists the descriptive columns as read back, e.g. with numeric casts.
	selects []string
	values  func(p *P) []any
	// scanTargets returns destinations for a full selected row and a finisher that decodes
	// text columns into p once Scan succeeded.
	scanTargets func(p *P) ([]any, func() error)
	stamp       func(p *P, createdAt, updatedAt time.Time)
}

type ProductRepository[P any, PP product.Record[P]] struct {
	db     Querier
	table  *productTable[P]
	logger *slog.Logger

	selectByID       string
	selectByCustomer string
	upsert           string
	deleteByCustomer string
}

func newProductRepository[P any, PP product.Record[P]](db Querier, table *productTable[P], logger *slog.Logger) *ProductRepository[P, PP] {
	if db == nil {
		panic("Querier cannot be nil for ProductRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to ProductRepository, using default stderr handler")
	}

	selectCols := table.idColumn + ", customer_id, " + strings.Join(table.selects, ", ") + ", created_at, updated_at"

	insertCols := append([]string{table.idColumn, "customer_id"}, table.columns...)
	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sets := make([]string, 0, len(table.columns)+1)
	for _, c := range table.columns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	sets = append(sets, "updated_at = NOW()")

	return &ProductRepository[P, PP]{
		db:     db,
		table:  table,
		logger: logger.With("component", "ProductRepository", "table", table.name),

		selectByID:       fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", selectCols, table.name, table.idColumn),
		selectByCustomer: fmt.Sprintf("SELECT %s FROM %s WHERE customer_id = $1", selectCols, table.name),
		// A conflicting identifier owned by another customer updates nothing and returns no row.
		upsert: fmt.Sprintf(`INSERT INTO %s (%s, created_at, updated_at)
        VALUES (%s, NOW(), NOW())
        ON CONFLICT (%s) DO UPDATE SET %s
        WHERE %s.customer_id = EXCLUDED.customer_id
        RETURNING created_at, updated_at`,
			table.name, strings.Join(insertCols, ", "), strings.Join(placeholders, ", "),
			table.idColumn, strings.Join(sets, ", "), table.name),
		deleteByCustomer: fmt.Sprintf("DELETE FROM %s WHERE customer_id = $1", table.name),
	}
}

func (r *ProductRepository[P, PP]) FindByID(ctx context.Context, productID int64) (*P, error) {
	return r.findOne(ctx, r.table.name+".find_by_id", r.selectByID, productID)
}

func (r *ProductRepository[P, PP]) FindByCustomerID(ctx context.Context, customerID int64) (*P, error) {
	return r.findOne(ctx, r.table.name+".find_by_customer_id", r.selectByCustomer, customerID)
}

func (r *ProductRepository[P, PP]) findOne(ctx context.Context, queryName, query string, key int64) (_ *P, err error) {
	defer observe(queryName)(&err)

	p := new(P)
	dest, finish := r.table.scanTargets(p)
	if err = r.db.QueryRow(ctx, query, key).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Product not found", slog.String("query", queryName), slog.Int64("key", key))
			return nil, fmt.Errorf("%w: %s by %d", apperrors.ErrNotFound, r.table.name, key)
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan product", slog.String("query", queryName), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get %s: %w", apperrors.ErrDatabase, r.table.name, err)
	}
	if err = finish(); err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode product row", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to decode %s row: %w", apperrors.ErrDatabase, r.table.name, err)
	}
	return p, nil
}

// Save inserts the record, or updates it when the identifier already belongs to the same
// customer. An identifier held by a different customer is reported as ErrAlreadyExists.
func (r *ProductRepository[P, PP]) Save(ctx context.Context, p *P) (err error) {
	if p == nil {
		return fmt.Errorf("%w: product cannot be nil", apperrors.ErrInvalidArgument)
	}
	defer observe(r.table.name + ".upsert")(&err)

	rec := PP(p)
	args := append([]any{rec.ProductID(), rec.OwnerID()}, r.table.values(p)...)

	var createdAt, updatedAt time.Time
	err = r.db.QueryRow(ctx, r.upsert, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		switch {
		case errors.Is(translatedErr, apperrors.ErrNotFound):
			r.logger.WarnContext(ctx, "Product identifier belongs to another customer", slog.Int64("productID", rec.ProductID()))
			return fmt.Errorf("%w: %s %d", apperrors.ErrAlreadyExists, r.table.name, rec.ProductID())
		case errors.Is(translatedErr, apperrors.ErrAlreadyExists):
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to save product", slog.Any("error", err))
		return fmt.Errorf("%w: failed to save %s: %w", apperrors.ErrDatabase, r.table.name, err)
	}

	r.table.stamp(p, createdAt, updatedAt)
	r.logger.InfoContext(ctx, "Product saved successfully", slog.Int64("productID", rec.ProductID()))
	return nil
}

func (r *ProductRepository[P, PP]) DeleteByCustomerID(ctx context.Context, customerID int64) (err error) {
	defer observe(r.table.name + ".delete_by_customer_id")(&err)

	cmdTag, err := r.db.Exec(ctx, r.deleteByCustomer, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete product", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete %s: %w", apperrors.ErrDatabase, r.table.name, err)
	}

	r.logger.InfoContext(ctx, "Products deleted for customer",
		slog.Int64("customerID", customerID), slog.Int64("rows", cmdTag.RowsAffected()))
	return nil
}

// parseAmount decodes a numeric column selected as text.
func parseAmount(column, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", column, v, err)
	}
	return d, nil
}
