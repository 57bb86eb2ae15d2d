package registry

import (
	"context"

	"bank-records/internal/domain/product"
)

// AuditReport counts records that break the one-customer-one-product pairing.
type AuditReport struct {
	Kind            product.Kind
	OrphanCustomers int64
	OrphanProducts  int64
}

func (r AuditReport) Consistent() bool {
	return r.OrphanCustomers == 0 && r.OrphanProducts == 0
}

type Auditor interface {
	CountOrphans(ctx context.Context) (AuditReport, error)
	// DeleteOrphanCustomers removes customers that own no product and returns how many.
	DeleteOrphanCustomers(ctx context.Context) (int64, error)
}
