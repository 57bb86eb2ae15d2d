package monitoring

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"bank-records/internal/pkg/apperrors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, OutcomeSuccess},
		{"duplicate", apperrors.NewDuplicateCustomerError("1234567890", nil), OutcomeDuplicate},
		{"not found", apperrors.NewNotFoundError("Customer", "mobileNumber", "1234567890"), OutcomeNotFound},
		{"inconsistent wins over not found", apperrors.NewConsistencyError("orphan", apperrors.NewNotFoundError("Customer", "customerId", 1)), OutcomeInconsistent},
		{"database", fmt.Errorf("%w: boom", apperrors.ErrDatabase), OutcomeError},
		{"plain", errors.New("boom"), OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Outcome(tt.err))
		})
	}
}

func TestRecordWorkflow(t *testing.T) {
	before := testutil.ToFloat64(Workflow.Total.WithLabelValues("card", "register", OutcomeDuplicate))

	RecordWorkflow("card", "register", apperrors.NewDuplicateCustomerError("1234567890", nil), 5*time.Millisecond)

	after := testutil.ToFloat64(Workflow.Total.WithLabelValues("card", "register", OutcomeDuplicate))
	assert.Equal(t, before+1, after)
}

func TestRecordAudit(t *testing.T) {
	removedBefore := testutil.ToFloat64(Audit.RemovedTotal)
	at := time.Unix(1_700_000_000, 0)

	RecordAudit(3, 1, 2, at)

	assert.Equal(t, float64(3), testutil.ToFloat64(Audit.OrphanCustomers))
	assert.Equal(t, float64(1), testutil.ToFloat64(Audit.OrphanProducts))
	assert.Equal(t, removedBefore+2, testutil.ToFloat64(Audit.RemovedTotal))
	assert.Equal(t, float64(1_700_000_000), testutil.ToFloat64(Audit.LastRun))
}
