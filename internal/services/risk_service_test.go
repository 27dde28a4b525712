package services_test

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/risk"
	"pasar/internal/services"
)

func fixedScore(score float64) risk.Model {
	return risk.ModelFunc(func(context.Context, models.Transaction) (float64, error) {
		return score, nil
	})
}

var sampleTxn = models.Transaction{UserID: 11, Amount: 2500, Merchant: "Acme", Location: "Pune"}

func TestRiskService_ScoreAtThresholdIsCleared(t *testing.T) {
	pub, broker := newMemoryPublisher(t)
	svc := services.NewRiskService(fixedScore(0.85), pub, 0, zap.NewNop())

	verdict, err := svc.Score(context.Background(), sampleTxn)
	require.NoError(t, err)
	assert.Equal(t, risk.StatusCleared, verdict.Status)
	assert.Equal(t, risk.ActionApprove, verdict.Action)
	assert.Equal(t, 0.85, verdict.RiskScore)

	processed := broker.Messages(events.TopicFinanceTransactions)
	require.Len(t, processed, 1)
	var payload services.TransactionProcessed
	assert.Equal(t, events.TypeTransactionProcessed, decodeData(t, processed[0], &payload))
	assert.Equal(t, sampleTxn, payload.Transaction)
	assert.Equal(t, 0.85, payload.RiskScore)

	assert.Empty(t, broker.Messages(events.TopicFraudAlerts))
}

func TestRiskService_ScoreAboveThresholdIsFlagged(t *testing.T) {
	pub, broker := newMemoryPublisher(t)
	svc := services.NewRiskService(fixedScore(0.86), pub, 0, zap.NewNop())

	verdict, err := svc.Score(context.Background(), sampleTxn)
	require.NoError(t, err)
	assert.Equal(t, risk.StatusFlagged, verdict.Status)
	assert.Equal(t, risk.ActionRequire2FA, verdict.Action)

	assert.Len(t, broker.Messages(events.TopicFinanceTransactions), 1)
	alerts := broker.Messages(events.TopicFraudAlerts)
	require.Len(t, alerts, 1)
	var alert services.FraudAlert
	assert.Equal(t, events.TypeFraudAlert, decodeData(t, alerts[0], &alert))
	assert.Equal(t, "CRITICAL", alert.Severity)
	assert.NotEmpty(t, alert.Reason)
	assert.Equal(t, sampleTxn, alert.Details)
}

func TestRiskService_ClampsModelOutput(t *testing.T) {
	pub, _ := newMemoryPublisher(t)

	verdict, err := services.NewRiskService(fixedScore(1.7), pub, 0, zap.NewNop()).Score(context.Background(), sampleTxn)
	require.NoError(t, err)
	assert.Equal(t, 1.0, verdict.RiskScore)
	assert.Equal(t, risk.StatusFlagged, verdict.Status)

	verdict, err = services.NewRiskService(fixedScore(-3), pub, 0, zap.NewNop()).Score(context.Background(), sampleTxn)
	require.NoError(t, err)
	assert.Equal(t, 0.0, verdict.RiskScore)
	assert.Equal(t, risk.StatusCleared, verdict.Status)
}

func TestRiskService_ModelError(t *testing.T) {
	emitter := new(MockEmitter)
	model := risk.ModelFunc(func(context.Context, models.Transaction) (float64, error) {
		return 0, errors.New("inference timeout")
	})
	svc := services.NewRiskService(model, emitter, 0, zap.NewNop())

	_, err := svc.Score(context.Background(), sampleTxn)
	require.ErrorIs(t, err, services.ErrModelUnavailable)
	emitter.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestRiskService_PublishFailureStillReturnsVerdict(t *testing.T) {
	emitter := new(MockEmitter)
	emitter.On("Publish", mock.Anything, events.TopicFinanceTransactions, mock.Anything).
		Return(events.ErrUnavailable).Once()
	emitter.On("Publish", mock.Anything, events.TopicFraudAlerts, mock.Anything).
		Return(events.ErrUnavailable).Once()
	svc := services.NewRiskService(fixedScore(0.99), emitter, 0, zap.NewNop())

	verdict, err := svc.Score(context.Background(), sampleTxn)
	require.NoError(t, err)
	assert.Equal(t, risk.StatusFlagged, verdict.Status)
	emitter.AssertExpectations(t)
}

func TestRiskService_RandomModelStaysInRange(t *testing.T) {
	pub, _ := newMemoryPublisher(t)
	svc := services.NewRiskService(risk.RandomModel{}, pub, 0, zap.NewNop())

	for n := 0; n < 50; n++ {
		verdict, err := svc.Score(context.Background(), sampleTxn)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, verdict.RiskScore, 0.0)
		assert.LessOrEqual(t, verdict.RiskScore, 1.0)
		if verdict.RiskScore > risk.Threshold {
			assert.Equal(t, risk.ActionRequire2FA, verdict.Action)
		} else {
			assert.Equal(t, risk.ActionApprove, verdict.Action)
		}
	}
}
