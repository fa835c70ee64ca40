package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
)

// eventsQueue receives every event this service publishes, for the audit log consumer.
const eventsQueue = "storefront.events.log"

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.NewLogger(cfg.Logger)

	app, cleanup, err := setup(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	// --- Start HTTP Server ---
	log.Info().Str("addr", cfg.ListenAddr()).Str("driver", cfg.Database.Driver).Msg("Starting server")

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	cleanup()
	log.Info().Msg("Server gracefully stopped")
}

// setup opens the store and the optional event broker and builds the app.
// cleanup releases both.
func setup(ctx context.Context, cfg *config.Config) (*fiber.App, func(), error) {
	// --- Initialize Repositories ---
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	store, err := repositories.Open(openCtx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.Driver == config.DriverMemory {
		seedProducts(ctx, store.Products)
	}

	// --- Initialize RabbitMQ Client ---
	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.URL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		})
		if err != nil {
			_ = store.Close(ctx)
			return nil, nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		publisher = mqClient

		err = mqClient.Consume(eventsQueue, []string{"product.*", "user.*"}, func(msg amqp.Delivery) error {
			return events.Handle(msg.RoutingKey, msg.Body)
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to start RabbitMQ consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL not set; event publishing disabled")
	}

	// --- Initialize Services ---
	productService := services.NewProductService(store.Products, publisher, cfg.Catalog.FeaturedLimit)
	authService := services.NewAuthService(store.Users, cfg.Auth, publisher)
	userService := services.NewUserService(store.Users)

	// --- Initialize Fiber App ---
	app := handlers.NewApp(handlers.AppOptions{
		Products:  productService,
		Auth:      authService,
		Users:     userService,
		Ping:      store.Ping,
		PublicDir: cfg.PublicDir,
		AccessLog: true,
	})

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing RabbitMQ client")
			}
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}
	return app, cleanup, nil
}

// seedProducts populates the in-memory product repository with some initial data.
func seedProducts(ctx context.Context, repo repositories.ProductRepository) {
	products := []models.Product{
		{Name: "Laptop", Brand: "Lumen", Category: "Computers", Description: "High performance laptop", Price: 1200.00, Stock: 10, Featured: true},
		{Name: "Keyboard", Brand: "Clacky", Category: "Accessories", Description: "Mechanical keyboard", Price: 75.00, Stock: 25, Featured: true},
		{Name: "Mouse", Brand: "Clacky", Category: "Accessories", Description: "Ergonomic wireless mouse", Price: 25.00, Stock: 50},
		{Name: "Monitor", Brand: "Lumen", Category: "Displays", Description: "27 inch IPS monitor", Price: 320.00, Stock: 0},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			log.Error().Err(err).Str("name", products[i].Name).Msg("Error seeding product")
			continue
		}
		log.Debug().Str("name", products[i].Name).Str("id", products[i].ID).Msg("Seeded product")
	}
}
