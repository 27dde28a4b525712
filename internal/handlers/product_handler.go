package handlers

import (
	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
	lg      *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, lg *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, lg: lg}
}

// ProductRequest is the body of product create and update calls.
type ProductRequest struct {
	VendorID    uint            `json:"vendor_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=100"`
	Slug        *string         `json:"slug" validate:"omitempty,max=120"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	StockQty    int             `json:"stock_qty" validate:"gte=0"`
}

func (r ProductRequest) apply(p *models.Product) {
	p.VendorID = r.VendorID
	p.Name = r.Name
	p.Slug = r.Slug
	p.Description = r.Description
	p.Price = r.Price
	p.StockQty = r.StockQty
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists products that are on sale.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		h.lg.Error("Error getting products", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid product ID")
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.productError(c, id, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if !req.Price.IsPositive() {
		return errorJSON(c, fiber.StatusBadRequest, "Price must be greater than 0")
	}

	var product models.Product
	req.apply(&product)
	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		h.lg.Error("Error creating product", zap.String("name", req.Name), zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces a product's editable fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid product ID")
	}
	var req ProductRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if !req.Price.IsPositive() {
		return errorJSON(c, fiber.StatusBadRequest, "Price must be greater than 0")
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.productError(c, id, err, "Could not update product")
	}
	req.apply(product)
	if err := h.service.UpdateProduct(c.UserContext(), product); err != nil {
		return h.productError(c, id, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct takes a product off sale.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid product ID")
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.productError(c, id, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) productError(c *fiber.Ctx, id uint, err error, message string) error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return errorJSON(c, fiber.StatusNotFound, "Product not found")
	}
	h.lg.Error(message, zap.Uint("product_id", id), zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, message)
}
