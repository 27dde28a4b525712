// Package events publishes domain events to a message broker on a
// best-effort, at-most-once basis.
package events

import (
	"context"
	"time"
)

// Topics events are published to.
const (
	TopicMarketplaceOrders   = "marketplace.orders"
	TopicMarketplaceProducts = "marketplace.products"
	TopicFinanceTransactions = "finance.transactions"
	TopicFraudAlerts         = "fraud.alerts"
	TopicPaymentWebhooks     = "payments.webhooks"
)

// Event types.
const (
	TypeCheckoutCompleted      = "checkout_completed"
	TypeProductCreated         = "product_created"
	TypeTransactionProcessed   = "transaction_processed"
	TypeFraudAlert             = "fraud_alert"
	TypeBankSyncTransaction    = "bank_sync_transaction"
	TypePaymentWebhookReceived = "payment_webhook_received"
)

// Event is the envelope every published message carries.
type Event struct {
	EventType string    `json:"event_type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// New stamps an event with the current UTC time.
func New(eventType string, data any) Event {
	return Event{EventType: eventType, Data: data, Timestamp: time.Now().UTC()}
}

// Message is a serialized event as handed to a broker.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Broker is a connected transport capable of sending messages to a topic.
type Broker interface {
	Send(ctx context.Context, topic string, msg Message) error
	Close() error
}

// Dialer opens a broker connection.
type Dialer func(ctx context.Context) (Broker, error)

// Emitter is what services depend on to publish events.
type Emitter interface {
	Publish(ctx context.Context, topic string, event Event) error
}
