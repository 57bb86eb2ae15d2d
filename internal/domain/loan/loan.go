package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultLoanType = "Home Loan"

var DefaultTotalLoan = decimal.NewFromInt(100_000)

type Loan struct {
	LoanNumber        int64           `json:"loanNumber"`
	CustomerID        int64           `json:"customerId"`
	LoanType          string          `json:"loanType"`
	TotalLoan         decimal.Decimal `json:"totalLoan"`
	AmountPaid        decimal.Decimal `json:"amountPaid"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (l *Loan) ProductID() int64 { return l.LoanNumber }

func (l *Loan) OwnerID() int64 { return l.CustomerID }

func (l *Loan) Issue(customerID, loanNumber int64) {
	now := time.Now()
	l.CustomerID = customerID
	l.LoanNumber = loanNumber
	l.LoanType = DefaultLoanType
	l.TotalLoan = DefaultTotalLoan
	l.AmountPaid = decimal.Zero
	l.OutstandingAmount = DefaultTotalLoan
	l.CreatedAt = now
	l.UpdatedAt = now
}

func (l *Loan) ApplyChanges(from *Loan) {
	if from == nil {
		return
	}
	l.LoanType = from.LoanType
	l.TotalLoan = from.TotalLoan
	l.AmountPaid = from.AmountPaid
	l.OutstandingAmount = from.OutstandingAmount
	l.UpdatedAt = time.Now()
}
