package dto_test

import (
	"errors"
	"testing"

	"bank-records/internal/api/handler/dto"
	"bank-records/internal/domain/identity"
	"bank-records/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *dto.Validator {
	return dto.NewValidator(identity.DefaultMin, identity.DefaultMax)
}

func TestValidator_CreateCustomerRequest(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name      string
		req       dto.CreateCustomerRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "valid request",
			req:  dto.CreateCustomerRequest{Name: "Jane Doe", Email: "jane@example.com", MobileNumber: "1234567890"},
		},
		{
			name:      "name too short",
			req:       dto.CreateCustomerRequest{Name: "Jan", Email: "jane@example.com", MobileNumber: "1234567890"},
			wantField: "name",
			wantMsg:   "name must be at least 5 characters long",
		},
		{
			name:      "name too long",
			req:       dto.CreateCustomerRequest{Name: "Janet Alexandra Montgomery-Smythe", Email: "jane@example.com", MobileNumber: "1234567890"},
			wantField: "name",
			wantMsg:   "name must be at most 30 characters long",
		},
		{
			name:      "invalid email",
			req:       dto.CreateCustomerRequest{Name: "Jane Doe", Email: "not-an-email", MobileNumber: "1234567890"},
			wantField: "email",
			wantMsg:   "email must be a valid email address",
		},
		{
			name:      "mobile number with nine digits",
			req:       dto.CreateCustomerRequest{Name: "Jane Doe", Email: "jane@example.com", MobileNumber: "123456789"},
			wantField: "mobileNumber",
			wantMsg:   "mobileNumber must be exactly 10 digits",
		},
		{
			name:      "mobile number with letters",
			req:       dto.CreateCustomerRequest{Name: "Jane Doe", Email: "jane@example.com", MobileNumber: "12345abcde"},
			wantField: "mobileNumber",
			wantMsg:   "mobileNumber must contain only digits",
		},
		{
			name:      "missing email",
			req:       dto.CreateCustomerRequest{Name: "Jane Doe", MobileNumber: "1234567890"},
			wantField: "email",
			wantMsg:   "email must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}
}

func TestValidator_ReportsEveryFailingField(t *testing.T) {
	err := newValidator().Struct(dto.CreateCustomerRequest{})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "name must not be empty; email must not be empty; mobileNumber must not be empty", verr.Message)
}

func TestValidator_ProductDtos(t *testing.T) {
	v := newValidator()

	t.Run("account in range", func(t *testing.T) {
		err := v.Struct(dto.AccountDto{AccountNumber: 1_234_567_890, AccountType: "Savings", BranchAddress: "Main St"})
		assert.NoError(t, err)
	})

	t.Run("account number outside the identity range", func(t *testing.T) {
		err := v.Struct(dto.AccountDto{AccountNumber: 999, AccountType: "Savings", BranchAddress: "Main St"})

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "accountNumber", verr.Field)
		assert.Equal(t, "accountNumber must be between 1000000000 and 1899999999", verr.Message)
	})

	t.Run("upper bound is exclusive", func(t *testing.T) {
		err := v.Struct(dto.LoanDto{LoanNumber: identity.DefaultMax, LoanType: "Home Loan", TotalLoan: "1", AmountPaid: "0", OutstandingAmount: "1"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("negative card amount", func(t *testing.T) {
		err := v.Struct(dto.CardDto{CardNumber: 1_500_000_000, CardType: "Credit Card", TotalLimit: "100", AmountUsed: "-1", AvailableAmount: "101"})

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "amountUsed", verr.Field)
		assert.Equal(t, "amountUsed must be a non-negative amount with at most 13 integer digits and 2 decimals", verr.Message)
	})

	t.Run("card amounts must fit the stored precision", func(t *testing.T) {
		card := func(limit string) dto.CardDto {
			return dto.CardDto{CardNumber: 1_500_000_000, CardType: "Credit Card", TotalLimit: limit, AmountUsed: "0", AvailableAmount: "0"}
		}

		tests := []struct {
			name    string
			limit   string
			wantErr bool
		}{
			{name: "two decimals", limit: "12.50"},
			{name: "largest storable amount", limit: "9999999999999.99"},
			{name: "twenty integer digits", limit: "99999999999999999999", wantErr: true},
			{name: "fourteen integer digits", limit: "10000000000000", wantErr: true},
			{name: "three decimals", limit: "0.123", wantErr: true},
			{name: "not a number", limit: "ten", wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := v.Struct(card(tt.limit))
				if !tt.wantErr {
					assert.NoError(t, err)
					return
				}
				var verr *apperrors.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "totalLimit", verr.Field)
			})
		}
	})

	t.Run("nested product in update payload", func(t *testing.T) {
		req := dto.UpdateDetailsRequest[dto.AccountDto]{
			Product: &dto.AccountDto{AccountNumber: 1_234_567_890, AccountType: "", BranchAddress: "Main St"},
		}

		var verr *apperrors.ValidationError
		require.True(t, errors.As(v.Struct(req), &verr))
		assert.Equal(t, "accountType", verr.Field)
	})

	t.Run("update payload without product passes", func(t *testing.T) {
		assert.NoError(t, v.Struct(dto.UpdateDetailsRequest[dto.AccountDto]{}))
	})
}

func TestValidator_MobileNumber(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.MobileNumber("1234567890"))

	for _, bad := range []string{"", "12345", "123456789012", "12345678ab"} {
		err := v.MobileNumber(bad)

		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr), "input %q", bad)
		assert.Equal(t, "mobileNumber", verr.Field)
	}
}

func TestValidator_NonStructInput(t *testing.T) {
	err := newValidator().Struct("not a struct")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
