package dto

import (
	"fmt"

	"bank-records/internal/domain/account"
	"bank-records/internal/domain/card"
	"bank-records/internal/domain/loan"
	"bank-records/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

// ProductMapper converts between a product record and its wire form.
type ProductMapper[P, D any] interface {
	ToDomain(d D) (*P, error)
	FromDomain(p *P) D
}

type AccountDto struct {
	AccountNumber int64  `json:"accountNumber" validate:"required,productid" example:"1234567890"`
	AccountType   string `json:"accountType" validate:"required" example:"Savings"`
	BranchAddress string `json:"branchAddress" validate:"required" example:"123 Main Street, New York"`
}

type AccountMapper struct{}

func (AccountMapper) ToDomain(d AccountDto) (*account.Account, error) {
	return &account.Account{
		AccountNumber: d.AccountNumber,
		AccountType:   d.AccountType,
		BranchAddress: d.BranchAddress,
	}, nil
}

func (AccountMapper) FromDomain(a *account.Account) AccountDto {
	return AccountDto{
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		BranchAddress: a.BranchAddress,
	}
}

type CardDto struct {
	CardNumber      int64  `json:"cardNumber" validate:"required,productid" example:"1234567890"`
	CardType        string `json:"cardType" validate:"required" example:"Credit Card"`
	TotalLimit      string `json:"totalLimit" validate:"required,amount" example:"100000"`
	AmountUsed      string `json:"amountUsed" validate:"required,amount" example:"0"`
	AvailableAmount string `json:"availableAmount" validate:"required,amount" example:"100000"`
}

type CardMapper struct{}

func (CardMapper) ToDomain(d CardDto) (*card.Card, error) {
	amounts, err := parseAmounts(
		namedAmount{"totalLimit", d.TotalLimit},
		namedAmount{"amountUsed", d.AmountUsed},
		namedAmount{"availableAmount", d.AvailableAmount},
	)
	if err != nil {
		return nil, err
	}
	return &card.Card{
		CardNumber:      d.CardNumber,
		CardType:        d.CardType,
		TotalLimit:      amounts[0],
		AmountUsed:      amounts[1],
		AvailableAmount: amounts[2],
	}, nil
}

func (CardMapper) FromDomain(c *card.Card) CardDto {
	return CardDto{
		CardNumber:      c.CardNumber,
		CardType:        c.CardType,
		TotalLimit:      c.TotalLimit.String(),
		AmountUsed:      c.AmountUsed.String(),
		AvailableAmount: c.AvailableAmount.String(),
	}
}

type LoanDto struct {
	LoanNumber        int64  `json:"loanNumber" validate:"required,productid" example:"1234567890"`
	LoanType          string `json:"loanType" validate:"required" example:"Home Loan"`
	TotalLoan         string `json:"totalLoan" validate:"required,amount" example:"100000"`
	AmountPaid        string `json:"amountPaid" validate:"required,amount" example:"0"`
	OutstandingAmount string `json:"outstandingAmount" validate:"required,amount" example:"100000"`
}

type LoanMapper struct{}

func (LoanMapper) ToDomain(d LoanDto) (*loan.Loan, error) {
	amounts, err := parseAmounts(
		namedAmount{"totalLoan", d.TotalLoan},
		namedAmount{"amountPaid", d.AmountPaid},
		namedAmount{"outstandingAmount", d.OutstandingAmount},
	)
	if err != nil {
		return nil, err
	}
	return &loan.Loan{
		LoanNumber:        d.LoanNumber,
		LoanType:          d.LoanType,
		TotalLoan:         amounts[0],
		AmountPaid:        amounts[1],
		OutstandingAmount: amounts[2],
	}, nil
}

func (LoanMapper) FromDomain(l *loan.Loan) LoanDto {
	return LoanDto{
		LoanNumber:        l.LoanNumber,
		LoanType:          l.LoanType,
		TotalLoan:         l.TotalLoan.String(),
		AmountPaid:        l.AmountPaid.String(),
		OutstandingAmount: l.OutstandingAmount.String(),
	}
}

type namedAmount struct {
	field string
	value string
}

func parseAmounts(in ...namedAmount) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(in))
	for i, a := range in {
		d, err := decimal.NewFromString(a.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a decimal amount: %v", apperrors.ErrInvalidArgument, a.field, err)
		}
		out[i] = d
	}
	return out, nil
}
