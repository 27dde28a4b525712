package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"pasar/internal/models"
)

// Migrate creates or updates the tables backing the repositories.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}
