// Package kafka implements an event broker on top of segmentio/kafka-go.
package kafka

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/segmentio/kafka-go"

	"pasar/internal/events"
)

// Config holds Kafka producer settings.
type Config struct {
	Brokers      []string
	WriteTimeout time.Duration
	Compression  string // none, gzip, snappy, lz4, zstd
}

// Broker sends messages through a single shared kafka.Writer. The writer is
// not bound to a topic; each message names its own.
type Broker struct {
	writer *kafka.Writer
}

var _ events.Broker = (*Broker)(nil)

// NewBroker creates a Broker. kafka-go connects on the first write, so this
// only fails on invalid configuration.
func NewBroker(cfg Config) (*Broker, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1, // at-most-once
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           cfg.WriteTimeout,
		Compression:            compression(cfg.Compression),
		AllowAutoTopicCreation: true,
	}
	return &Broker{writer: w}, nil
}

// Dialer adapts cfg into an events.Dialer.
func Dialer(cfg Config) events.Dialer {
	return func(context.Context) (events.Broker, error) {
		return NewBroker(cfg)
	}
}

func compression(name string) kafka.Compression {
	switch name {
	case "gzip":
		return kafka.Gzip
	case "snappy":
		return kafka.Snappy
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Compression(0)
	}
}

// Send writes msg to topic and waits for the leader's acknowledgement.
func (b *Broker) Send(ctx context.Context, topic string, msg events.Message) error {
	if err := b.writer.WriteMessages(ctx, toKafka(topic, msg)); err != nil {
		return errors.Wrap(err, "kafka write")
	}
	return nil
}

func toKafka(topic string, msg events.Message) kafka.Message {
	km := kafka.Message{
		Topic: topic,
		Key:   msg.Key,
		Value: msg.Value,
		Time:  time.Now(),
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return km
}

// Close flushes pending writes and closes connections.
func (b *Broker) Close() error {
	return b.writer.Close()
}
