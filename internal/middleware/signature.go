package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"pasar/internal/webhook"
)

// DefaultSignatureHeader carries the provider's HMAC of the raw body.
const DefaultSignatureHeader = "X-Razorpay-Signature"

// VerifySignature is a Fiber middleware that rejects requests whose body is
// not signed with secret. The signature is read from header.
func VerifySignature(secret []byte, header string, lg *zap.Logger) fiber.Handler {
	if header == "" {
		header = DefaultSignatureHeader
	}
	return func(c *fiber.Ctx) error {
		if err := webhook.Verify(c.Body(), c.Get(header), secret); err != nil {
			lg.Warn("Rejected webhook", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "invalid signature",
			})
		}

		// Continue to the next handler
		return c.Next()
	}
}
