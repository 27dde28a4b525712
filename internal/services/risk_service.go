package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/risk"
)

// DefaultLatencyBudget is the time scoring may add on top of model inference.
const DefaultLatencyBudget = 100 * time.Millisecond

// ErrModelUnavailable is returned when the scoring model fails.
var ErrModelUnavailable = errors.New("risk model unavailable")

// RiskVerdict is the classification of a transaction.
type RiskVerdict struct {
	Status    risk.Status `json:"status"`
	RiskScore float64     `json:"risk_score"`
	Action    risk.Action `json:"action"`
}

// TransactionProcessed is the payload of a transaction_processed event.
type TransactionProcessed struct {
	Transaction models.Transaction `json:"transaction"`
	RiskScore   float64            `json:"risk_score"`
}

// FraudAlert is the payload of a fraud_alert event.
type FraudAlert struct {
	Severity string             `json:"severity"`
	Reason   string             `json:"reason"`
	Score    float64            `json:"risk_score"`
	Details  models.Transaction `json:"details"`
}

// RiskService scores transactions and raises fraud alerts.
type RiskService struct {
	model     risk.Model
	publisher events.Emitter
	budget    time.Duration
	lg        *zap.Logger
	now       func() time.Time
}

// NewRiskService creates a RiskService. A non-positive budget selects
// DefaultLatencyBudget.
func NewRiskService(model risk.Model, publisher events.Emitter, budget time.Duration, lg *zap.Logger) *RiskService {
	if budget <= 0 {
		budget = DefaultLatencyBudget
	}
	return &RiskService{
		model:     model,
		publisher: publisher,
		budget:    budget,
		lg:        lg.Named("risk"),
		now:       time.Now,
	}
}

// Score classifies txn. Both events are best-effort and independent of each
// other and of the returned verdict.
func (s *RiskService) Score(ctx context.Context, txn models.Transaction) (*RiskVerdict, error) {
	start := s.now()

	score, err := s.model.Score(ctx, txn)
	if err != nil {
		s.lg.Error("Risk model failed", zap.Uint("user_id", txn.UserID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	inference := s.now().Sub(start)

	score = risk.Clamp(score)
	status, action := risk.Classify(score)

	processed := events.New(events.TypeTransactionProcessed, TransactionProcessed{
		Transaction: txn,
		RiskScore:   score,
	})
	if err := s.publisher.Publish(ctx, events.TopicFinanceTransactions, processed); err != nil {
		s.lg.Warn("Failed to publish transaction event", zap.Uint("user_id", txn.UserID), zap.Error(err))
	}

	if status == risk.StatusFlagged {
		alert := events.New(events.TypeFraudAlert, FraudAlert{
			Severity: "CRITICAL",
			Reason:   "High anomaly score",
			Score:    score,
			Details:  txn,
		})
		if err := s.publisher.Publish(ctx, events.TopicFraudAlerts, alert); err != nil {
			s.lg.Warn("Failed to publish fraud alert", zap.Uint("user_id", txn.UserID), zap.Error(err))
		} else {
			s.lg.Info("Fraud alert published", zap.Uint("user_id", txn.UserID), zap.Float64("risk_score", score))
		}
	}

	if overhead := s.now().Sub(start) - inference; overhead > s.budget {
		s.lg.Warn("Risk scoring exceeded latency budget",
			zap.Duration("overhead", overhead),
			zap.Duration("inference", inference),
			zap.Duration("budget", s.budget),
		)
	}

	return &RiskVerdict{Status: status, RiskScore: score, Action: action}, nil
}
