package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ErrOutOfStockOrNotFound is returned when a cart line cannot be fulfilled.
var ErrOutOfStockOrNotFound = errors.New("out of stock or not found")

// OutOfStockError identifies the cart line that could not be fulfilled.
type OutOfStockError struct {
	ProductID uint
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Product %d is out of stock or does not exist.", e.ProductID)
}

func (e *OutOfStockError) Unwrap() error { return ErrOutOfStockOrNotFound }

// CartLine is one requested product and quantity.
type CartLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the input of a checkout.
type CheckoutRequest struct {
	CustomerID      uint       `json:"customer_id" validate:"required"`
	Items           []CartLine `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string     `json:"payment_method"`
	ShippingAddress string     `json:"shipping_address" validate:"max=1000"`
}

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	OrderID     uint
	TotalAmount decimal.Decimal
}

// CheckoutCompleted is the payload of a checkout_completed event.
type CheckoutCompleted struct {
	OrderID uint            `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// CheckoutService reserves stock and records orders.
type CheckoutService struct {
	store     repositories.CheckoutStore
	publisher events.Emitter
	lg        *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(store repositories.CheckoutStore, publisher events.Emitter, lg *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:     store,
		publisher: publisher,
		lg:        lg.Named("checkout"),
	}
}

// Checkout reserves stock for every line, creates the order and its items in
// one transaction, and announces the order once it is committed.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("at least one item is required")
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, errors.Errorf("quantity must be greater than 0 for product %d", line.ProductID)
		}
	}

	method, recognized := models.ParsePaymentMethod(req.PaymentMethod)
	if !recognized {
		s.lg.Warn("Unrecognized payment method, falling back to cash on delivery",
			zap.String("payment_method", req.PaymentMethod),
			zap.Uint("customer_id", req.CustomerID),
		)
	}

	order := &models.Order{
		CustomerID:       req.CustomerID,
		Status:           method.InitialStatus(),
		PaymentMethod:    method,
		ShippingAddress:  req.ShippingAddress,
		PaymentReference: newPaymentReference(),
	}

	err := s.store.RunInTx(ctx, func(tx repositories.CheckoutTx) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			price, err := tx.ReserveStock(line.ProductID, line.Quantity)
			if err != nil {
				if errors.Is(err, repositories.ErrInsufficientStock) {
					return &OutOfStockError{ProductID: line.ProductID}
				}
				return err
			}
			item := models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}
		order.TotalAmount = total
		order.Items = items
		return tx.CreateOrder(order)
	})
	if err != nil {
		return nil, errors.Wrap(err, "checkout")
	}

	s.lg.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("total", order.TotalAmount.String()),
		zap.String("status", string(order.Status)),
	)

	// Published strictly after commit; a failure here never undoes the order.
	ev := events.New(events.TypeCheckoutCompleted, CheckoutCompleted{
		OrderID: order.ID,
		Amount:  order.TotalAmount,
	})
	if err := s.publisher.Publish(ctx, events.TopicMarketplaceOrders, ev); err != nil {
		s.lg.Warn("Failed to publish checkout event", zap.Uint("order_id", order.ID), zap.Error(err))
	}

	return &CheckoutResult{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

func newPaymentReference() string {
	return "pay_" + uuid.NewString()[:8]
}
