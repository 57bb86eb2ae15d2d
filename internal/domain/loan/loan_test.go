package loan_test

import (
	"bank-records/internal/domain/loan"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoan_Issue(t *testing.T) {
	var l loan.Loan
	l.Issue(12, 1_800_000_000)

	assert.Equal(t, int64(1_800_000_000), l.ProductID())
	assert.Equal(t, int64(12), l.OwnerID())
	assert.Equal(t, loan.DefaultLoanType, l.LoanType)
	assert.True(t, l.TotalLoan.Equal(decimal.NewFromInt(100_000)))
	assert.True(t, l.AmountPaid.IsZero())
	assert.True(t, l.OutstandingAmount.Equal(l.TotalLoan))
}

func TestLoan_ApplyChanges(t *testing.T) {
	var l loan.Loan
	l.Issue(12, 1_800_000_000)

	l.ApplyChanges(&loan.Loan{
		LoanNumber:        1,
		CustomerID:        1,
		LoanType:          "Vehicle Loan",
		TotalLoan:         decimal.NewFromInt(20_000),
		AmountPaid:        decimal.NewFromInt(5_000),
		OutstandingAmount: decimal.NewFromInt(15_000),
	})

	assert.Equal(t, "Vehicle Loan", l.LoanType)
	assert.Equal(t, "20000", l.TotalLoan.String())
	assert.Equal(t, "5000", l.AmountPaid.String())
	assert.Equal(t, "15000", l.OutstandingAmount.String())
	assert.Equal(t, int64(1_800_000_000), l.LoanNumber)
	assert.Equal(t, int64(12), l.CustomerID)
}
