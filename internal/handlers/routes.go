package handlers

import (
	"context"
	"time"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// AppOptions holds everything NewApp wires into the Fiber app.
type AppOptions struct {
	Products *services.ProductService
	Auth     *services.AuthService
	Users    *services.UserService

	// Ping checks the database for /health. Nil reports it as up.
	Ping func(ctx context.Context) error
	// PublicDir, when set, is served as static files at "/".
	PublicDir string
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp builds the Fiber app with middleware, the health check and every
// API route.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "storefront",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New())

	app.Get("/health", healthCheck(opts.Ping))

	api := app.Group("/api")
	RegisterAPI(api, opts.Products, opts.Auth, opts.Users)

	if opts.PublicDir != "" {
		app.Static("/", opts.PublicDir)
	}
	return app
}

// RegisterAPI mounts the catalog, authentication and admin routes on router.
func RegisterAPI(router fiber.Router, products *services.ProductService, auth *services.AuthService, users *services.UserService) {
	NewProductHandler(products).RegisterRoutes(router)
	NewAuthHandler(auth).RegisterRoutes(router)

	adminRoutes := router.Group("/admin", middleware.RequireRole(auth, services.RoleAdmin))
	NewAdminHandler(products, users).RegisterRoutes(adminRoutes)
}

func healthCheck(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database, code := "healthy", "up", fiber.StatusOK
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
