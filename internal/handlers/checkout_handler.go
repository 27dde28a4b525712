package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pasar/internal/services"
)

// CheckoutHandler handles HTTP requests for checkout.
type CheckoutHandler struct {
	service *services.CheckoutService
	lg      *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService, lg *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, lg: lg}
}

// RegisterRoutes registers the checkout route under router.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleCheckout)
}

// HandleCheckout places an order for the posted cart.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	result, err := h.service.Checkout(c.UserContext(), req)
	if err != nil {
		var stockErr *services.OutOfStockError
		if errors.As(err, &stockErr) {
			return errorJSON(c, fiber.StatusBadRequest, stockErr.Error())
		}
		h.lg.Error("Checkout failed", zap.Uint("customer_id", req.CustomerID), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not complete checkout")
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount,
	})
}
