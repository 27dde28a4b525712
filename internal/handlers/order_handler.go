package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pasar/internal/repositories"
	"pasar/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	lg      *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, lg *zap.Logger) *OrderHandler {
	return &OrderHandler{service: service, lg: lg}
}

// RegisterRoutes registers the order routes with the Fiber app. Orders are
// created through checkout only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		h.lg.Error("Error getting all orders", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order with its line items.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order ID")
	}
	order, err := h.service.GetOrderByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Order not found")
		}
		h.lg.Error("Error getting order", zap.Uint("order_id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not retrieve order")
	}
	return c.JSON(order)
}

// StatusUpdate is the body of an order status change.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid order ID")
	}
	var update StatusUpdate
	if ok, err := bindJSON(c, &update); !ok {
		return err
	}

	if err := h.service.UpdateOrderStatus(c.UserContext(), id, update.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest, "Invalid order status")
		case errors.Is(err, repositories.ErrOrderNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Order not found")
		}
		h.lg.Error("Error updating order status", zap.Uint("order_id", id), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not update order status")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Order status updated",
	})
}
