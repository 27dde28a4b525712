package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus reports whether s names a known order status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
)

// ParsePaymentMethod maps free-form input onto the closed set of payment
// methods. Unknown input yields cash-on-delivery with recognized == false so
// the caller can tell a fallback from an explicit choice.
func ParsePaymentMethod(s string) (method PaymentMethod, recognized bool) {
	switch pm := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); pm {
	case PaymentMethodCOD, PaymentMethodUPI, PaymentMethodCard:
		return pm, true
	}
	return PaymentMethodCOD, false
}

// InitialStatus is the status a freshly checked-out order starts in.
// Non-COD payments are assumed to have been captured upstream.
func (pm PaymentMethod) InitialStatus() OrderStatus {
	if pm == PaymentMethodCOD {
		return OrderStatusPending
	}
	return OrderStatusPaid
}

// OrderItem represents a single line within an order.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"` // Price at the time of order
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order.
type Order struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	CustomerID       uint            `json:"customer_id" gorm:"not null;index"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(16);not null"`
	PaymentMethod    PaymentMethod   `json:"payment_method" gorm:"type:varchar(8);not null"`
	ShippingAddress  string          `json:"shipping_address" gorm:"type:text"`
	PaymentReference string          `json:"payment_reference" gorm:"type:varchar(64)"`
	Items            []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
