package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/models"
	"pasar/internal/services"
)

// FraudHandler exposes transaction risk scoring.
type FraudHandler struct {
	service *services.RiskService
}

// NewFraudHandler creates a new FraudHandler.
func NewFraudHandler(service *services.RiskService) *FraudHandler {
	return &FraudHandler{service: service}
}

// RegisterRoutes registers the fraud routes under router.
func (h *FraudHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/score", h.HandleScore)
}

// HandleScore returns the risk verdict for a transaction.
func (h *FraudHandler) HandleScore(c *fiber.Ctx) error {
	var txn models.Transaction
	if ok, err := bindJSON(c, &txn); !ok {
		return err
	}

	verdict, err := h.service.Score(c.UserContext(), txn)
	if err != nil {
		if errors.Is(err, services.ErrModelUnavailable) {
			return errorJSON(c, fiber.StatusServiceUnavailable, "risk model unavailable")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Could not score transaction")
	}
	return c.JSON(verdict)
}
