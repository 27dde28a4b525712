package repositories

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pasar/internal/models"
)

var (
	_ OrderRepository = (*GORMOrderRepository)(nil)
	_ CheckoutStore   = (*GORMOrderRepository)(nil)
)

// GORMOrderRepository is a GORM implementation of OrderRepository and
// CheckoutStore.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetAll returns all orders with their items, newest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID returns an order with its items.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrOrderNotFound, "order %d", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus updates the status of an order.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.Wrapf(ErrOrderNotFound, "order %d", id)
	}
	return nil
}

// RunInTx runs fn inside a database transaction, committing only if fn
// returns nil.
func (r *GORMOrderRepository) RunInTx(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutTx{tx: tx})
	})
}

type gormCheckoutTx struct {
	tx *gorm.DB
}

// ReserveStock uses a single conditional UPDATE so that concurrent checkouts
// of the same product serialize on the row and can never oversell.
func (t *gormCheckoutTx) ReserveStock(productID uint, qty int) (decimal.Decimal, error) {
	res := t.tx.Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock_qty >= ?", productID, true, qty).
		UpdateColumn("stock_qty", gorm.Expr("stock_qty - ?", qty))
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to reserve stock for product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, errors.Wrapf(ErrInsufficientStock, "product %d", productID)
	}

	// The row stays locked by the update until commit, so this price is the
	// one the reservation was made against.
	var price decimal.Decimal
	row := t.tx.Model(&models.Product{}).Select("price").Where("id = ?", productID).Row()
	if err := row.Scan(&price); err != nil {
		return decimal.Zero, fmt.Errorf("failed to read price of product %d: %w", productID, err)
	}
	return price, nil
}

func (t *gormCheckoutTx) CreateOrder(order *models.Order) error {
	items := order.Items
	if err := t.tx.Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := t.tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}
	order.Items = items
	return nil
}
