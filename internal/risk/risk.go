// Package risk holds the transaction risk policy and the scoring model
// contract.
package risk

import (
	"context"
	"math"
	"math/rand"

	"pasar/internal/models"
)

// Threshold is the score above which a transaction is flagged. A score equal
// to Threshold is cleared.
const Threshold = 0.85

// Status is a risk classification.
type Status string

const (
	StatusCleared Status = "cleared"
	StatusFlagged Status = "flagged"
)

// Action is what the caller is told to do with the transaction.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionRequire2FA Action = "requires_2fa"
)

// Model produces the probability that a transaction is fraudulent.
type Model interface {
	Score(ctx context.Context, txn models.Transaction) (float64, error)
}

// ModelFunc adapts a function to Model.
type ModelFunc func(ctx context.Context, txn models.Transaction) (float64, error)

func (f ModelFunc) Score(ctx context.Context, txn models.Transaction) (float64, error) {
	return f(ctx, txn)
}

// RandomModel draws scores uniformly from [0.01, 0.99]. It stands in until a
// trained classifier is deployed.
type RandomModel struct{}

func (RandomModel) Score(context.Context, models.Transaction) (float64, error) {
	return 0.01 + rand.Float64()*0.98, nil
}

// Clamp forces s into [0, 1]. NaN maps to 1 so that a broken model flags
// rather than clears.
func Clamp(s float64) float64 {
	switch {
	case math.IsNaN(s):
		return 1
	case s < 0:
		return 0
	case s > 1:
		return 1
	}
	return s
}

// Classify applies the fixed threshold policy.
func Classify(score float64) (Status, Action) {
	if score > Threshold {
		return StatusFlagged, ActionRequire2FA
	}
	return StatusCleared, ActionApprove
}
