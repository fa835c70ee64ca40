package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin panel's product and user management.
// Its routes must be mounted behind middleware.RequireRole.
type AdminHandler struct {
	products *services.ProductService
	users    *services.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(products *services.ProductService, users *services.UserService) *AdminHandler {
	return &AdminHandler{
		products: products,
		users:    users,
	}
}

// RegisterRoutes registers the admin routes on an already protected router.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)

	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleListProducts returns every product with the dashboard statistics.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	overview, err := h.products.AdminOverview(c.UserContext())
	if err != nil {
		return writeError(c, err, "", "Could not retrieve products")
	}
	return c.JSON(overview)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *AdminHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Product not found", "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.products.CreateProduct(c.UserContext(), input)
	if err != nil {
		return writeError(c, err, "", "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces an existing product.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.products.UpdateProduct(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return writeError(c, err, "Product not found", "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.products.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "Product not found", "Could not delete product")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted",
	})
}

// HandleListUsers returns every registered user.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, err, "", "Could not retrieve users")
	}
	return c.JSON(users)
}

// HandleUpdateUser renames a user.
func (h *AdminHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var input models.UserUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.users.UpdateUserName(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return writeError(c, err, "User not found", "Could not update user")
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes a user.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err, "User not found", "Could not delete user")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted",
	})
}
