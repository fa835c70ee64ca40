package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login-user", h.HandleLogin)
	router.Post("/login", h.HandleLogin)
	router.Post("/recover", h.HandleRecover)
	router.Post("/login-admin", h.HandleAdminLogin)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), input)
	if err != nil {
		return writeError(c, err, "", "Could not register user")
	}

	log.Info().Str("user_id", user.ID).Msg("User registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// HandleLogin authenticates a customer and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}
	token, user, err := h.authService.LoginUser(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return writeError(c, err, "", "Could not log in")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleRecover answers the password recovery form. Nothing is sent and the
// answer is the same for every body, including empty or malformed ones.
func (h *AuthHandler) HandleRecover(c *fiber.Ctx) error {
	var input models.RecoverInput
	if err := c.BodyParser(&input); err != nil {
		log.Debug().Err(err).Msg("Unreadable password recovery body")
	}

	message := h.authService.RecoverPassword(c.UserContext(), input.Email)
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// HandleAdminLogin checks the admin credentials and issues an admin token.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	var input models.AdminLoginInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c, err)
	}

	token, err := h.authService.LoginAdmin(input.Username, input.Password)
	if err != nil {
		log.Warn().Str("username", input.Username).Msg("Failed admin login")
		return writeError(c, err, "", "Could not log in")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}
