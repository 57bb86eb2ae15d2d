package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable).Error(0)
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, msg).Error(0)
}

func (m *MockChannel) Close() error {
	return m.Called().Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewPublisher_DeclaresTopicExchange(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "bank.events", amqp.ExchangeTopic, true).Return(nil).Once()
	ch.On("Close").Return(nil)

	p, err := newPublisher(func() (amqpChannel, error) { return ch, nil }, "bank.events", discardLogger())

	require.NoError(t, err)
	assert.NotNil(t, p)
	ch.AssertExpectations(t)
}

func TestNewPublisher_Errors(t *testing.T) {
	t.Run("empty exchange", func(t *testing.T) {
		_, err := newPublisher(func() (amqpChannel, error) { return nil, nil }, "", discardLogger())
		assert.ErrorContains(t, err, "exchange name cannot be empty")
	})

	t.Run("channel open fails", func(t *testing.T) {
		_, err := newPublisher(func() (amqpChannel, error) { return nil, errors.New("closed") }, "bank.events", discardLogger())
		assert.ErrorContains(t, err, "failed to open temporary channel")
	})

	t.Run("declare fails", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("ExchangeDeclare", "bank.events", amqp.ExchangeTopic, true).Return(errors.New("denied"))
		ch.On("Close").Return(nil)

		_, err := newPublisher(func() (amqpChannel, error) { return ch, nil }, "bank.events", discardLogger())
		assert.ErrorContains(t, err, "failed to declare exchange 'bank.events'")
	})

	t.Run("nil connection", func(t *testing.T) {
		_, err := NewRabbitMQEventPublisher(nil, "bank.events", discardLogger())
		assert.Error(t, err)
	})
}

func TestPublishCustomerEvent(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "bank.events", amqp.ExchangeTopic, true).Return(nil)
	ch.On("Close").Return(nil)

	var published amqp.Publishing
	ch.On("PublishWithContext", "bank.events", TypeCustomerRegistered, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).(amqp.Publishing) }).
		Return(nil).Once()

	p, err := newPublisher(func() (amqpChannel, error) { return ch, nil }, "bank.events", discardLogger())
	require.NoError(t, err)

	evt := NewCustomerEvent(TypeCustomerRegistered, "account", 7, "1234567890", 1000000001)
	require.NoError(t, p.PublishCustomerEvent(context.Background(), evt))

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, publisherAppID, published.AppId)

	var decoded CustomerEvent
	require.NoError(t, json.Unmarshal(published.Body, &decoded))
	assert.Equal(t, evt.EventID, decoded.EventID)
	assert.Equal(t, int64(7), decoded.CustomerID)
	assert.Equal(t, int64(1000000001), decoded.ProductID)
	ch.AssertExpectations(t)
}

func TestPublishCustomerEvent_PublishFails(t *testing.T) {
	ch := new(MockChannel)
	ch.On("ExchangeDeclare", "bank.events", amqp.ExchangeTopic, true).Return(nil)
	ch.On("Close").Return(nil)
	ch.On("PublishWithContext", "bank.events", TypeCustomerUpdated, mock.Anything).Return(errors.New("broker gone"))

	p, err := newPublisher(func() (amqpChannel, error) { return ch, nil }, "bank.events", discardLogger())
	require.NoError(t, err)

	err = p.PublishCustomerEvent(context.Background(), NewCustomerEvent(TypeCustomerUpdated, "card", 1, "1234567890", 0))
	assert.ErrorContains(t, err, "failed to publish message")
}

func TestNewCustomerEvent(t *testing.T) {
	a := NewCustomerEvent(TypeCustomerDeregistered, "loan", 3, "0987654321", 0)
	b := NewCustomerEvent(TypeCustomerDeregistered, "loan", 3, "0987654321", 0)

	assert.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Equal(t, "loan", a.ProductKind)
	assert.False(t, a.Timestamp.IsZero())
	assert.NoError(t, NoopPublisher{}.PublishCustomerEvent(context.Background(), a))
}
