package services

import (
	"context"

	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher events.Emitter
	lg        *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, publisher events.Emitter, lg *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		lg:        lg.Named("catalog"),
	}
}

// GetAllProducts retrieves all active products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListActive(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct stores a new, active product and announces it.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = 0
	product.IsActive = true
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}

	ev := events.New(events.TypeProductCreated, product)
	if err := s.publisher.Publish(ctx, events.TopicMarketplaceProducts, ev); err != nil {
		s.lg.Warn("Failed to publish product created event", zap.Uint("product_id", product.ID), zap.Error(err))
	}
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	return s.repo.Update(ctx, product)
}

// DeleteProduct takes a product off sale.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Deactivate(ctx, id)
}
