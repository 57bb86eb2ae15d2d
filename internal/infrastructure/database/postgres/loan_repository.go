package postgres

import (
	"log/slog"
	"time"

	"bank-records/internal/domain/loan"
	"bank-records/internal/domain/product"
)

var loansTable = &productTable[loan.Loan]{
	name:     "loans",
	idColumn: "loan_number",
	columns:  []string{"loan_type", "total_loan", "amount_paid", "outstanding_amount"},
	selects:  []string{"loan_type", "total_loan::text", "amount_paid::text", "outstanding_amount::text"},
	values: func(l *loan.Loan) []any {
		return []any{l.LoanType, l.TotalLoan.String(), l.AmountPaid.String(), l.OutstandingAmount.String()}
	},
	scanTargets: func(l *loan.Loan) ([]any, func() error) {
		var totalLoan, amountPaid, outstanding string
		return []any{&l.LoanNumber, &l.CustomerID, &l.LoanType, &totalLoan, &amountPaid, &outstanding, &l.CreatedAt, &l.UpdatedAt},
			func() (err error) {
				if l.TotalLoan, err = parseAmount("total_loan", totalLoan); err != nil {
					return err
				}
				if l.AmountPaid, err = parseAmount("amount_paid", amountPaid); err != nil {
					return err
				}
				l.OutstandingAmount, err = parseAmount("outstanding_amount", outstanding)
				return err
			}
	},
	stamp: func(l *loan.Loan, createdAt, updatedAt time.Time) {
		l.CreatedAt, l.UpdatedAt = createdAt, updatedAt
	},
}

func NewLoanRepository(db Querier, logger *slog.Logger) product.Repository[loan.Loan] {
	return newProductRepository[loan.Loan, *loan.Loan](db, loansTable, logger)
}
