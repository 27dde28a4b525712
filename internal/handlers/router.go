package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Checkout *services.CheckoutService
	Products *services.ProductService
	Orders   *services.OrderService
	Risk     *services.RiskService
	Finance  *services.FinanceService
	Payments *services.PaymentService
}

// WebhookConfig configures signature checks on provider callbacks.
type WebhookConfig struct {
	Secret []byte
	Header string
}

// Mount registers every API route under /api/v1 on app.
func Mount(app fiber.Router, svc Services, hook WebhookConfig, lg *zap.Logger) {
	apiV1 := app.Group("/api/v1")

	marketplace := apiV1.Group("/marketplace")
	NewCheckoutHandler(svc.Checkout, lg.Named("checkout")).RegisterRoutes(marketplace)
	NewProductHandler(svc.Products, lg.Named("catalog")).RegisterRoutes(marketplace)
	NewOrderHandler(svc.Orders, lg.Named("orders")).RegisterRoutes(marketplace)

	NewFraudHandler(svc.Risk).RegisterRoutes(apiV1.Group("/fraud"))
	NewFinanceHandler(svc.Finance).RegisterRoutes(apiV1.Group("/finance"))

	webhooks := apiV1.Group("/webhooks", middleware.VerifySignature(hook.Secret, hook.Header, lg.Named("webhooks")))
	NewWebhookHandler(svc.Payments, lg.Named("webhooks")).RegisterRoutes(webhooks)
}

// ErrorHandler renders errors that escape handlers, such as unknown routes
// or recovered panics, without exposing their details.
func ErrorHandler(lg *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		} else {
			lg.Error("Unhandled error", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
		}
		return errorJSON(c, code, message)
	}
}
