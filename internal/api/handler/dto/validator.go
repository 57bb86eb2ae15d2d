package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"bank-records/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const mobileNumberRule = "required,len=10,numeric"

// Amounts are stored as NUMERIC(15,2).
const (
	amountIntegerDigits = 13
	amountScale         = 2
)

var amountCeiling = decimal.New(1, amountIntegerDigits)

// Validator checks request DTOs. The productid tag accepts identifiers inside the configured
// identity range and the amount tag accepts non-negative decimal strings that fit NUMERIC(15,2).
type Validator struct {
	validate *validator.Validate
	minID    int64
	maxID    int64
}

func NewValidator(minID, maxID int64) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("productid", func(fl validator.FieldLevel) bool {
		id := fl.Field().Int()
		return id >= minID && id < maxID
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		return validAmount(fl.Field().String())
	})

	return &Validator{validate: v, minID: minID, maxID: maxID}
}

func validAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return false
	}
	return d.LessThan(amountCeiling) && d.Equal(d.Truncate(amountScale))
}

func (v *Validator) Struct(s any) error {
	return v.translate(v.validate.Struct(s), "")
}

// MobileNumber validates a mobile number passed outside a request body.
func (v *Validator) MobileNumber(mobileNumber string) error {
	return v.translate(v.validate.Var(mobileNumber, mobileNumberRule), "mobileNumber")
}

func (v *Validator) translate(err error, field string) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
	}

	fields := make([]string, 0, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = field
		}
		fields = append(fields, name)
		messages = append(messages, name+" "+v.describe(fe))
	}
	return apperrors.NewValidationError(fields[0], strings.Join(messages, "; "))
}

func (v *Validator) describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s digits", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "email":
		return "must be a valid email address"
	case "productid":
		return fmt.Sprintf("must be between %d and %d", v.minID, v.maxID-1)
	case "amount":
		return fmt.Sprintf("must be a non-negative amount with at most %d integer digits and %d decimals", amountIntegerDigits, amountScale)
	default:
		return fmt.Sprintf("failed the %q check", fe.Tag())
	}
}
