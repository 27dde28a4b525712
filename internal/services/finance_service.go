package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
)

// Spending categories assigned to synced bank transactions.
const (
	CategorySoftware = "Software Subscriptions"
	CategoryGeneral  = "General Shopping"
)

// BankSyncTransaction is the payload of a bank_sync_transaction event.
type BankSyncTransaction struct {
	UserID      uint    `json:"user_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// FinanceService ingests transactions synced from open-banking providers.
type FinanceService struct {
	publisher events.Emitter
	lg        *zap.Logger
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(publisher events.Emitter, lg *zap.Logger) *FinanceService {
	return &FinanceService{publisher: publisher, lg: lg.Named("finance")}
}

// Categorize assigns a spending category to a transaction description.
func Categorize(description string) string {
	if strings.Contains(strings.ToLower(description), "tech") {
		return CategorySoftware
	}
	return CategoryGeneral
}

// Sync categorizes a bank transaction and forwards it to the transaction
// stream. The provider token is never forwarded.
func (s *FinanceService) Sync(ctx context.Context, sync models.BankSync) string {
	category := Categorize(sync.Description)

	ev := events.New(events.TypeBankSyncTransaction, BankSyncTransaction{
		UserID:      sync.UserID,
		Amount:      sync.Amount,
		Description: sync.Description,
		Category:    category,
	})
	if err := s.publisher.Publish(ctx, events.TopicFinanceTransactions, ev); err != nil {
		s.lg.Warn("Failed to publish bank sync event", zap.Uint("user_id", sync.UserID), zap.Error(err))
	}
	return category
}
