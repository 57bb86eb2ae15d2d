package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bank-records/internal/domain/registry"
	"bank-records/internal/infrastructure/monitoring"
	"bank-records/internal/pkg/apperrors"
)

// ConsistencyAuditJob reports customers and products that lost their counterpart and,
// when configured to, removes the orphaned customers.
type ConsistencyAuditJob struct {
	auditor       registry.Auditor
	removeOrphans bool
	logger        *slog.Logger
	now           func() time.Time
}

func NewConsistencyAuditJob(auditor registry.Auditor, removeOrphans bool, logger *slog.Logger) *ConsistencyAuditJob {
	if auditor == nil || logger == nil {
		panic("ConsistencyAuditJob dependencies cannot be nil")
	}
	return &ConsistencyAuditJob{
		auditor:       auditor,
		removeOrphans: removeOrphans,
		logger:        logger.With("job", "ConsistencyAudit"),
		now:           time.Now,
	}
}

func (j *ConsistencyAuditJob) Run(ctx context.Context) (registry.AuditReport, error) {
	startTime := j.now()
	j.logger.InfoContext(ctx, "Starting consistency audit job.")

	report, err := j.auditor.CountOrphans(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count orphaned records, aborting job.", slog.Any("error", err))
		return report, fmt.Errorf("cannot run audit, failed to count orphans: %w", err)
	}

	summaryLog := j.logger.With(
		slog.String("kind", string(report.Kind)),
		slog.Int64("orphan_customers", report.OrphanCustomers),
		slog.Int64("orphan_products", report.OrphanProducts),
	)

	if report.Consistent() {
		monitoring.RecordAudit(0, 0, 0, j.now())
		summaryLog.InfoContext(ctx, "Consistency audit found no orphaned records.", slog.Duration("duration", time.Since(startTime)))
		return report, nil
	}

	finding := apperrors.NewConsistencyError(
		fmt.Sprintf("%d customers without a %s, %d %s records without a customer",
			report.OrphanCustomers, report.Kind, report.OrphanProducts, report.Kind), nil)
	summaryLog.WarnContext(ctx, "Consistency audit found orphaned records.", slog.Any("error", finding))

	var removed int64
	if j.removeOrphans && report.OrphanCustomers > 0 {
		removed, err = j.auditor.DeleteOrphanCustomers(ctx)
		if err != nil {
			monitoring.RecordAudit(report.OrphanCustomers, report.OrphanProducts, 0, j.now())
			summaryLog.ErrorContext(ctx, "Failed to remove orphaned customers.", slog.Any("error", err))
			return report, fmt.Errorf("failed to remove orphaned customers: %w", err)
		}
		summaryLog.InfoContext(ctx, "Removed orphaned customers.", slog.Int64("removed", removed))
	}

	monitoring.RecordAudit(report.OrphanCustomers-removed, report.OrphanProducts, removed, j.now())
	summaryLog.InfoContext(ctx, "Consistency audit job finished.", slog.Duration("duration", time.Since(startTime)))
	return report, nil
}
