package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals are rendered as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a vendor's catalog entry.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	VendorID    uint            `json:"vendor_id" gorm:"not null;index"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Slug        *string         `json:"slug,omitempty" gorm:"type:varchar(120);uniqueIndex"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	StockQty    int             `json:"stock_qty" gorm:"not null;default:0;check:stock_qty >= 0"`
	IsActive    bool            `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
