package handlers

import (
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/featured", h.HandleFeaturedProducts)
}

// HandleListProducts returns the whole catalog. ?sort=recent orders it
// newest first.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	newestFirst := c.Query("sort") == "recent"
	products, err := h.service.ListProducts(c.UserContext(), newestFirst)
	if err != nil {
		return writeError(c, err, "", "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleFeaturedProducts returns the most recent featured products.
func (h *ProductHandler) HandleFeaturedProducts(c *fiber.Ctx) error {
	products, err := h.service.FeaturedProducts(c.UserContext())
	if err != nil {
		return writeError(c, err, "", "Could not retrieve featured products")
	}
	return c.JSON(products)
}
