package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasar/internal/events"
)

func TestNewBroker_RequiresBrokers(t *testing.T) {
	_, err := NewBroker(Config{})
	require.Error(t, err)
}

func TestNewBroker_WriterSettings(t *testing.T) {
	b, err := NewBroker(Config{Brokers: []string{"localhost:9092"}, Compression: "snappy"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	assert.Equal(t, 1, b.writer.MaxAttempts)
	assert.Equal(t, kafka.Snappy, b.writer.Compression)
	assert.Positive(t, b.writer.WriteTimeout)
}

func TestToKafka(t *testing.T) {
	km := toKafka("fraud.alerts", events.Message{
		Key:     []byte("k"),
		Value:   []byte(`{"event_type":"fraud_alert"}`),
		Headers: map[string]string{"event_type": "fraud_alert"},
	})

	assert.Equal(t, "fraud.alerts", km.Topic)
	assert.Equal(t, []byte("k"), km.Key)
	require.Len(t, km.Headers, 1)
	assert.Equal(t, "event_type", km.Headers[0].Key)
	assert.Equal(t, []byte("fraud_alert"), km.Headers[0].Value)
}

func TestCompression(t *testing.T) {
	assert.Equal(t, kafka.Gzip, compression("gzip"))
	assert.Equal(t, kafka.Zstd, compression("zstd"))
	assert.Equal(t, kafka.Compression(0), compression(""))
}
