package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds all server configuration.
type Config struct {
	Port      string
	PublicDir string

	Database DatabaseConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	RabbitMQ RabbitMQConfig
	Logger   LoggerConfig
}

// DatabaseConfig selects and configures the document store.
type DatabaseConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	DSN           string // used by the GORM drivers
}

// AuthConfig holds the static admin credentials and token settings.
type AuthConfig struct {
	AdminUser     string
	AdminPass     string
	JWTSecret     string
	AdminTokenTTL time.Duration
	UserTokenTTL  time.Duration
}

// CatalogConfig holds storefront listing settings.
type CatalogConfig struct {
	FeaturedLimit int
}

// RabbitMQConfig configures event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// SetDefaults registers the default value of every key and enables
// environment variable lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "4000")
	v.SetDefault("PUBLIC_DIR", "")
	v.SetDefault("DATABASE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "storefront")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("ADMIN_USER", "")
	v.SetDefault("ADMIN_PASS", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_TOKEN_TTL", "2h")
	v.SetDefault("USER_TOKEN_TTL", "24h")
	v.SetDefault("FEATURED_LIMIT", 4)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "storefront")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.AutomaticEnv()
}

// Load builds a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Port:      v.GetString("PORT"),
		PublicDir: v.GetString("PUBLIC_DIR"),
		Database: DatabaseConfig{
			Driver:        strings.ToLower(v.GetString("DATABASE_DRIVER")),
			MongoURI:      v.GetString("MONGO_URI"),
			MongoDatabase: v.GetString("MONGO_DATABASE"),
			DSN:           v.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			AdminUser:     v.GetString("ADMIN_USER"),
			AdminPass:     v.GetString("ADMIN_PASS"),
			JWTSecret:     v.GetString("JWT_SECRET"),
			AdminTokenTTL: v.GetDuration("ADMIN_TOKEN_TTL"),
			UserTokenTTL:  v.GetDuration("USER_TOKEN_TTL"),
		},
		Catalog: CatalogConfig{
			FeaturedLimit: v.GetInt("FEATURED_LIMIT"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}

	switch c.Database.Driver {
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required for the mongo driver")
		}
	case DriverPostgres, DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the %s driver", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.AdminUser == "" || c.Auth.AdminPass == "" {
		return fmt.Errorf("ADMIN_USER and ADMIN_PASS are required")
	}
	if c.Auth.AdminTokenTTL <= 0 {
		return fmt.Errorf("invalid admin token TTL: %s", c.Auth.AdminTokenTTL)
	}
	if c.Auth.UserTokenTTL <= 0 {
		return fmt.Errorf("invalid user token TTL: %s", c.Auth.UserTokenTTL)
	}
	if c.Catalog.FeaturedLimit < 1 {
		return fmt.Errorf("invalid featured limit: %d", c.Catalog.FeaturedLimit)
	}
	return nil
}

// ListenAddr returns the address passed to fiber's Listen.
func (c *Config) ListenAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
