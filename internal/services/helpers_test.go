package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pasar/internal/database/dbtest"
	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// MockEmitter is a mock implementation of events.Emitter
type MockEmitter struct {
	mock.Mock
}

func (m *MockEmitter) Publish(ctx context.Context, topic string, event events.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func newMemoryPublisher(t *testing.T) (*events.Publisher, *events.MemoryBroker) {
	t.Helper()
	broker := events.NewMemoryBroker()
	pub := events.NewPublisher(broker.Dialer(), zap.NewNop())
	t.Cleanup(func() { _ = pub.Close() })
	return pub, broker
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.OpenMemory(t)
	require.NoError(t, repositories.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		VendorID: 1,
		Name:     "Product",
		Price:    decimal.RequireFromString(price),
		StockQty: stock,
		IsActive: true,
	}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	p, err := repositories.NewGORMProductRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQty
}

// decodeData unmarshals the data field of a published envelope.
func decodeData(t *testing.T, sent events.Sent, into any) string {
	t.Helper()
	var env struct {
		EventType string          `json:"event_type"`
		Data      json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sent.Message.Value, &env))
	require.NoError(t, json.Unmarshal(env.Data, into))
	return env.EventType
}
