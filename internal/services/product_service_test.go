package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"pasar/internal/events"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

var _ repositories.ProductRepository = (*MockProductRepository)(nil)

func (m *MockProductRepository) ListActive(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Deactivate(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockEmitter), zap.NewNop())

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: decimal.NewFromInt(10), StockQty: 100, IsActive: true},
		{ID: 2, Name: "Product B", Price: decimal.NewFromInt(20), StockQty: 50, IsActive: true},
	}

	mockRepo.On("ListActive", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockEmitter), zap.NewNop())

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: decimal.NewFromInt(10), StockQty: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	emitter := new(MockEmitter)
	service := services.NewProductService(mockRepo, emitter, zap.NewNop())

	newProduct := &models.Product{ID: 77, VendorID: 4, Name: "New Product", Price: decimal.NewFromInt(50), StockQty: 20}

	// Test successful creation
	mockRepo.On("Create", mock.Anything, newProduct).Return(nil).Once()
	emitter.On("Publish", mock.Anything, events.TopicMarketplaceProducts, mock.MatchedBy(func(ev events.Event) bool {
		return ev.EventType == events.TypeProductCreated
	})).Return(nil).Once()
	err := service.CreateProduct(context.Background(), newProduct)
	assert.NoError(t, err)
	assert.True(t, newProduct.IsActive)
	assert.Zero(t, newProduct.ID)
	mockRepo.AssertExpectations(t)
	emitter.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.Anything, newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(context.Background(), newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	emitter.AssertNumberOfCalls(t, "Publish", 1)
}

func TestProductService_CreateProductPublishFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	emitter := new(MockEmitter)
	service := services.NewProductService(mockRepo, emitter, zap.NewNop())

	p := &models.Product{Name: "Lamp", Price: decimal.NewFromInt(5)}
	mockRepo.On("Create", mock.Anything, p).Return(nil).Once()
	emitter.On("Publish", mock.Anything, events.TopicMarketplaceProducts, mock.Anything).Return(events.ErrUnavailable).Once()

	assert.NoError(t, service.CreateProduct(context.Background(), p))
	emitter.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockEmitter), zap.NewNop())

	updatedProduct := &models.Product{ID: 1, Name: "Product A Updated", Price: decimal.NewFromInt(12), StockQty: 95}

	// Test successful update
	mockRepo.On("Update", mock.Anything, updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(context.Background(), updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (e.g., product not found in repo)
	missing := &models.Product{ID: 99, Name: "NonExistent", Price: decimal.NewFromInt(1), StockQty: 1}
	mockRepo.On("Update", mock.Anything, missing).Return(repositories.ErrProductNotFound).Once()
	err = service.UpdateProduct(context.Background(), missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, new(MockEmitter), zap.NewNop())

	// Test successful deletion
	mockRepo.On("Deactivate", mock.Anything, uint(1)).Return(nil).Once()
	err := service.DeleteProduct(context.Background(), 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion failure (e.g., product not found)
	mockRepo.On("Deactivate", mock.Anything, uint(99)).Return(repositories.ErrProductNotFound).Once()
	err = service.DeleteProduct(context.Background(), 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
