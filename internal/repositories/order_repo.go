package repositories

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"pasar/internal/models"
)

var (
	// ErrOrderNotFound is returned when no order matches the requested ID.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientStock is returned when a product is missing, inactive or
	// has fewer units than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
}

// CheckoutTx is the unit of work a checkout runs in. Nothing done through it
// is visible to other readers until the enclosing RunInTx returns nil.
type CheckoutTx interface {
	// ReserveStock decrements stock by qty if at least qty units of an active
	// product are available and returns the product's current unit price.
	ReserveStock(productID uint, qty int) (decimal.Decimal, error)
	// CreateOrder inserts the order header followed by its items.
	CreateOrder(order *models.Order) error
}

// CheckoutStore runs checkouts atomically.
type CheckoutStore interface {
	RunInTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}
