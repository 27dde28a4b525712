package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pasar/internal/models"
	"pasar/internal/services"
)

// FinanceHandler ingests bank transactions.
type FinanceHandler struct {
	service *services.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler.
func NewFinanceHandler(service *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

// RegisterRoutes registers the finance routes under router.
func (h *FinanceHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/sync", h.HandleSync)
}

// HandleSync categorizes a synced bank transaction.
func (h *FinanceHandler) HandleSync(c *fiber.Ctx) error {
	var sync models.BankSync
	if ok, err := bindJSON(c, &sync); !ok {
		return err
	}

	category := h.service.Sync(c.UserContext(), sync)
	return c.JSON(fiber.Map{
		"status":   "success",
		"category": category,
		"message":  "Transaction synced and categorized",
	})
}
