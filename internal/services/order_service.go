package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ErrInvalidStatus is returned for a status outside the order lifecycle.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderService handles business logic related to placed orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return errors.Wrapf(ErrInvalidStatus, "%q", status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, st); err != nil {
		return fmt.Errorf("failed to update order status for order %d: %w", id, err)
	}
	return nil
}
