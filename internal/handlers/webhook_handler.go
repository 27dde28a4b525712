package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pasar/internal/services"
)

// WebhookHandler receives payment-provider callbacks. Routes must be
// mounted behind middleware.VerifySignature.
type WebhookHandler struct {
	service *services.PaymentService
	lg      *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(service *services.PaymentService, lg *zap.Logger) *WebhookHandler {
	return &WebhookHandler{service: service, lg: lg}
}

// RegisterRoutes registers the provider routes under router.
func (h *WebhookHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/razorpay", h.HandleRazorpay)
}

// HandleRazorpay acknowledges a verified Razorpay event.
func (h *WebhookHandler) HandleRazorpay(c *fiber.Ctx) error {
	hook, err := h.service.HandleWebhook(c.UserContext(), c.Body())
	if err != nil {
		if errors.Is(err, services.ErrMalformedWebhook) {
			return errorJSON(c, fiber.StatusBadRequest, "Malformed webhook payload")
		}
		h.lg.Error("Webhook handling failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not process webhook")
	}
	return c.JSON(fiber.Map{
		"status": "success",
		"event":  hook.Event,
	})
}
