package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnavailable is returned by Publish when the broker could not be reached
// or the publisher has been closed.
var ErrUnavailable = errors.New("event publisher unavailable")

// State describes the publisher connection.
type State string

const (
	StateIdle      State = "idle"
	StateConnected State = "connected"
	StateDegraded  State = "degraded"
	StateClosed    State = "closed"
)

// Publisher owns a single shared broker connection, opened lazily on the
// first Publish. If opening fails the publisher stays degraded and drops
// every event.
type Publisher struct {
	dial Dialer
	lg   *zap.Logger

	once   sync.Once
	mu     sync.RWMutex
	broker Broker
	state  State
}

var _ Emitter = (*Publisher)(nil)

// NewPublisher creates a publisher that connects through dial on first use.
func NewPublisher(dial Dialer, lg *zap.Logger) *Publisher {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Publisher{
		dial:  dial,
		lg:    lg.Named("events"),
		state: StateIdle,
	}
}

// State reports the current connection state.
func (p *Publisher) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *Publisher) connect(ctx context.Context) {
	p.once.Do(func() {
		if p.State() == StateClosed {
			return
		}
		// Dial is not bound to the caller's request.
		b, err := p.dial(context.WithoutCancel(ctx))

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.state == StateClosed {
			if b != nil {
				_ = b.Close()
			}
			return
		}
		if err != nil {
			p.state = StateDegraded
			p.lg.Error("Broker connection failed, events will be dropped", zap.Error(err))
			return
		}
		p.broker = b
		p.state = StateConnected
		p.lg.Info("Broker connected")
	})
}

// Publish serializes event and sends it to topic once. Events are never
// retried or deduplicated.
func (p *Publisher) Publish(ctx context.Context, topic string, event Event) error {
	p.connect(ctx)

	p.mu.RLock()
	b, state := p.broker, p.state
	p.mu.RUnlock()
	if state != StateConnected {
		return ErrUnavailable
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := Message{
		Key:   []byte(uuid.NewString()),
		Value: body,
		Headers: map[string]string{
			"event_type": event.EventType,
		},
	}
	if err := b.Send(ctx, topic, msg); err != nil {
		return errors.Wrapf(err, "send to %s", topic)
	}
	p.lg.Debug("Event published",
		zap.String("topic", topic),
		zap.String("event_type", event.EventType),
	)
	return nil
}

// Close releases the broker connection. Publish calls after Close fail with
// ErrUnavailable.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = StateClosed
	if p.broker == nil {
		return nil
	}
	err := p.broker.Close()
	p.broker = nil
	if err != nil {
		return errors.Wrap(err, "close broker")
	}
	return nil
}
