package repositories

import (
	"context"
	"errors"

	"storefront/internal/models"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// ListOptions narrows and orders a product listing.
type ListOptions struct {
	FeaturedOnly bool
	NewestFirst  bool
	Limit        int // 0 means no limit
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, opts ListOptions) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
