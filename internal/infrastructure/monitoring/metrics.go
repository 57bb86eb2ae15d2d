package monitoring

import (
	"errors"
	"time"

	"bank-records/internal/pkg/apperrors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess      = "success"
	OutcomeDuplicate    = "duplicate"
	OutcomeNotFound     = "not_found"
	OutcomeInconsistent = "inconsistent"
	OutcomeError        = "error"
)

type WorkflowMetrics struct {
	Total    *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

type AuditMetrics struct {
	OrphanCustomers prometheus.Gauge
	OrphanProducts  prometheus.Gauge
	RemovedTotal    prometheus.Counter
	LastRun         prometheus.Gauge
}

var (
	Workflow = WorkflowMetrics{
		Total: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_records_workflow_total",
				Help: "Total number of registry workflows by product kind, operation and outcome.",
			},
			[]string{"kind", "operation", "outcome"},
		),
		Duration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_records_workflow_duration_seconds",
				Help:    "Histogram of registry workflow latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"kind", "operation"},
		),
	}

	Audit = AuditMetrics{
		OrphanCustomers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bank_records_orphan_customers",
			Help: "Customers without a product found by the last consistency audit.",
		}),
		OrphanProducts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bank_records_orphan_products",
			Help: "Products without an owning customer found by the last consistency audit.",
		}),
		RemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bank_records_orphan_customers_removed_total",
			Help: "Orphaned customers removed by the consistency audit.",
		}),
		LastRun: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "bank_records_audit_last_run_timestamp_seconds",
			Help: "Unix time of the last completed consistency audit.",
		}),
	}
)

// Outcome classifies a workflow error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, apperrors.ErrInternalConsistency):
		return OutcomeInconsistent
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return OutcomeDuplicate
	case errors.Is(err, apperrors.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

func RecordWorkflow(kind, operation string, err error, duration time.Duration) {
	Workflow.Total.WithLabelValues(kind, operation, Outcome(err)).Inc()
	Workflow.Duration.WithLabelValues(kind, operation).Observe(duration.Seconds())
}

func RecordAudit(orphanCustomers, orphanProducts, removed int64, at time.Time) {
	Audit.OrphanCustomers.Set(float64(orphanCustomers))
	Audit.OrphanProducts.Set(float64(orphanProducts))
	if removed > 0 {
		Audit.RemovedTotal.Add(float64(removed))
	}
	Audit.LastRun.Set(float64(at.Unix()))
}

var DBQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bank_records_db_query_duration_seconds",
		Help:    "Histogram of database query latencies.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"query_name", "status"},
)

func RecordDBQuery(queryName string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DBQueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}
