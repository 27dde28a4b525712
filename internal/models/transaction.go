package models

// Transaction is the unit of risk assessment. It is never persisted here.
type Transaction struct {
	UserID   uint    `json:"user_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Merchant string  `json:"merchant" validate:"required,max=200"`
	Location string  `json:"location" validate:"max=200"`
}

// BankSync is a transaction pulled from an open-banking provider.
type BankSync struct {
	UserID      uint    `json:"user_id" validate:"required"`
	PlaidToken  string  `json:"plaid_token" validate:"required"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description" validate:"max=500"`
}
