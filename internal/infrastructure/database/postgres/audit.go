package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"bank-records/internal/domain/product"
	"bank-records/internal/domain/registry"
	"bank-records/internal/pkg/apperrors"
)

var productTables = map[product.Kind]string{
	product.KindAccount: accountsTable.name,
	product.KindCard:    cardsTable.name,
	product.KindLoan:    loansTable.name,
}

// Auditor finds customers and products of one kind that lost their counterpart.
type Auditor struct {
	db     DBPool
	kind   product.Kind
	logger *slog.Logger

	countOrphanCustomers string
	countOrphanProducts  string
	deleteOrphans        string
}

var _ registry.Auditor = (*Auditor)(nil)

func NewAuditor(db DBPool, kind product.Kind, logger *slog.Logger) (*Auditor, error) {
	table, ok := productTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no product table for kind %q", apperrors.ErrInvalidArgument, kind)
	}
	return &Auditor{
		db:     db,
		kind:   kind,
		logger: logger.With("component", "Auditor", "table", table),

		countOrphanCustomers: fmt.Sprintf(`SELECT COUNT(*) FROM customers c
        WHERE NOT EXISTS (SELECT 1 FROM %s p WHERE p.customer_id = c.customer_id)`, table),
		countOrphanProducts: fmt.Sprintf(`SELECT COUNT(*) FROM %s p
        WHERE NOT EXISTS (SELECT 1 FROM customers c WHERE c.customer_id = p.customer_id)`, table),
		deleteOrphans: fmt.Sprintf(`DELETE FROM customers c
        WHERE NOT EXISTS (SELECT 1 FROM %s p WHERE p.customer_id = c.customer_id)`, table),
	}, nil
}

func (a *Auditor) CountOrphans(ctx context.Context) (_ registry.AuditReport, err error) {
	defer observe("audit.count_orphans")(&err)

	report := registry.AuditReport{Kind: a.kind}
	if err = a.db.QueryRow(ctx, a.countOrphanCustomers).Scan(&report.OrphanCustomers); err != nil {
		a.logger.ErrorContext(ctx, "Failed to count orphaned customers", slog.Any("error", err))
		return report, fmt.Errorf("%w: failed to count orphaned customers: %w", apperrors.ErrDatabase, err)
	}
	if err = a.db.QueryRow(ctx, a.countOrphanProducts).Scan(&report.OrphanProducts); err != nil {
		a.logger.ErrorContext(ctx, "Failed to count orphaned products", slog.Any("error", err))
		return report, fmt.Errorf("%w: failed to count orphaned products: %w", apperrors.ErrDatabase, err)
	}
	return report, nil
}

func (a *Auditor) DeleteOrphanCustomers(ctx context.Context) (_ int64, err error) {
	defer observe("audit.delete_orphan_customers")(&err)

	cmdTag, err := a.db.Exec(ctx, a.deleteOrphans)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to delete orphaned customers", slog.Any("error", err))
		return 0, fmt.Errorf("%w: failed to delete orphaned customers: %w", apperrors.ErrDatabase, err)
	}
	a.logger.InfoContext(ctx, "Deleted orphaned customers", slog.Int64("rows", cmdTag.RowsAffected()))
	return cmdTag.RowsAffected(), nil
}
