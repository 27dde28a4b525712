package events

import (
	"context"
	"sync"
)

// Sent is a message recorded by MemoryBroker.
type Sent struct {
	Topic   string
	Message Message
}

// MemoryBroker keeps sent messages in process memory. It backs local runs
// without a broker and tests.
type MemoryBroker struct {
	mu     sync.Mutex
	sent   []Sent
	closed bool
}

// NewMemoryBroker creates an empty MemoryBroker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{}
}

// Dialer returns a Dialer that always yields b.
func (b *MemoryBroker) Dialer() Dialer {
	return func(context.Context) (Broker, error) { return b, nil }
}

func (b *MemoryBroker) Send(_ context.Context, topic string, msg Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrUnavailable
	}
	b.sent = append(b.sent, Sent{Topic: topic, Message: msg})
	return nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Messages returns a copy of everything sent to topic, or to any topic when
// topic is empty.
func (b *MemoryBroker) Messages(topic string) []Sent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Sent, 0, len(b.sent))
	for _, s := range b.sent {
		if topic == "" || s.Topic == topic {
			out = append(out, s)
		}
	}
	return out
}
