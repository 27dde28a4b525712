package services

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"pasar/internal/events"
)

// ErrMalformedWebhook is returned for a verified callback whose body is not
// a provider event.
var ErrMalformedWebhook = errors.New("malformed webhook payload")

// PaymentWebhook is the envelope a payment provider posts.
type PaymentWebhook struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// PaymentService consumes payment-provider callbacks.
type PaymentService struct {
	publisher events.Emitter
	lg        *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(publisher events.Emitter, lg *zap.Logger) *PaymentService {
	return &PaymentService{publisher: publisher, lg: lg.Named("payments")}
}

// HandleWebhook forwards a callback to the payments stream. The caller must
// have verified the body's signature.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte) (*PaymentWebhook, error) {
	var hook PaymentWebhook
	if err := json.Unmarshal(body, &hook); err != nil || hook.Event == "" {
		return nil, ErrMalformedWebhook
	}

	s.lg.Info("Payment webhook received", zap.String("event", hook.Event))
	ev := events.New(events.TypePaymentWebhookReceived, hook)
	if err := s.publisher.Publish(ctx, events.TopicPaymentWebhooks, ev); err != nil {
		s.lg.Warn("Failed to publish payment webhook", zap.String("event", hook.Event), zap.Error(err))
	}
	return &hook, nil
}
