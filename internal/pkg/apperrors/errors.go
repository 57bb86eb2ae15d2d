package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrAlreadyExists = errors.New("resource already exists")

	ErrDatabase = errors.New("database error")

	// ErrInternalConsistency marks a product without a live owning customer, or the reverse.
	ErrInternalConsistency = errors.New("internal consistency failure")

	ErrIdentityExhausted = errors.New("could not issue a unique product identifier")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {

	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// NotFoundError names the entity that was looked up and the key used to look it up.
type NotFoundError struct {
	Entity string
	Field  string
	Value  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with the given input data %s : '%s'", e.Entity, e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity, field string, value any) error {
	return &NotFoundError{Entity: entity, Field: field, Value: fmt.Sprint(value)}
}

type DuplicateCustomerError struct {
	MobileNumber string
	Cause        error
}

func (e *DuplicateCustomerError) Error() string {
	return fmt.Sprintf("customer already registered with given mobileNumber %s", e.MobileNumber)
}

func (e *DuplicateCustomerError) Is(target error) bool {
	return target == ErrAlreadyExists
}

func (e *DuplicateCustomerError) Unwrap() error {
	return e.Cause
}

func NewDuplicateCustomerError(mobileNumber string, cause error) error {
	return &DuplicateCustomerError{MobileNumber: mobileNumber, Cause: cause}
}

type ConsistencyError struct {
	Message string
	Cause   error
}

func (e *ConsistencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrInternalConsistency, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInternalConsistency, e.Message)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrInternalConsistency
}

func (e *ConsistencyError) Unwrap() error {
	return e.Cause
}

func NewConsistencyError(message string, cause error) error {
	return &ConsistencyError{Message: message, Cause: cause}
}
