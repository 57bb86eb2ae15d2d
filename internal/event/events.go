package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypeCustomerRegistered   = "customer.registered"
	TypeCustomerUpdated      = "customer.updated"
	TypeCustomerDeregistered = "customer.deregistered"
)

// CustomerEvent is published once a workflow has committed. Type doubles as the routing key.
type CustomerEvent struct {
	EventID      string    `json:"eventId"`
	Type         string    `json:"type"`
	ProductKind  string    `json:"productKind"`
	CustomerID   int64     `json:"customerId"`
	MobileNumber string    `json:"mobileNumber"`
	ProductID    int64     `json:"productId,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewCustomerEvent(eventType, productKind string, customerID int64, mobileNumber string, productID int64) CustomerEvent {
	return CustomerEvent{
		EventID:      uuid.NewString(),
		Type:         eventType,
		ProductKind:  productKind,
		CustomerID:   customerID,
		MobileNumber: mobileNumber,
		ProductID:    productID,
		Timestamp:    time.Now().UTC(),
	}
}

type EventPublisher interface {
	PublishCustomerEvent(ctx context.Context, event CustomerEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishCustomerEvent(context.Context, CustomerEvent) error { return nil }

var _ EventPublisher = NoopPublisher{}
