package services

import (
	"context"
	"fmt"

	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// DefaultFeaturedLimit bounds the featured listing when no limit is configured.
const DefaultFeaturedLimit = 4

// ProductService handles business logic related to products.
type ProductService struct {
	repo          repositories.ProductRepository
	publisher     EventPublisher
	featuredLimit int
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, featuredLimit int) *ProductService {
	if featuredLimit < 1 {
		featuredLimit = DefaultFeaturedLimit
	}
	return &ProductService{
		repo:          repo,
		publisher:     publisher,
		featuredLimit: featuredLimit,
	}
}

// ListProducts retrieves all products, optionally newest first.
func (s *ProductService) ListProducts(ctx context.Context, newestFirst bool) ([]models.Product, error) {
	return s.repo.List(ctx, repositories.ListOptions{NewestFirst: newestFirst})
}

// FeaturedProducts retrieves the most recent featured products.
func (s *ProductService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx, repositories.ListOptions{
		FeaturedOnly: true,
		NewestFirst:  true,
		Limit:        s.featuredLimit,
	})
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates the input and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	product := &models.Product{}
	in.Apply(product)
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	env, err := events.ProductEvent(events.ProductCreated, *product)
	publishEvent(s.publisher, env, err)
	return product, nil
}

// UpdateProduct validates the input and replaces the product's fields.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Apply(product)
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}

	env, err := events.ProductEvent(events.ProductUpdated, *product)
	publishEvent(s.publisher, env, err)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	env, err := events.ProductEvent(events.ProductDeleted, models.Product{ID: id})
	publishEvent(s.publisher, env, err)
	return nil
}

// AdminOverview returns every product, newest first, with its statistics.
func (s *ProductService) AdminOverview(ctx context.Context) (*models.AdminProductList, error) {
	products, err := s.repo.List(ctx, repositories.ListOptions{NewestFirst: true})
	if err != nil {
		return nil, err
	}
	return &models.AdminProductList{
		Products: products,
		Stats:    ComputeStats(products),
	}, nil
}

// ComputeStats aggregates the dashboard figures over products.
func ComputeStats(products []models.Product) models.ProductStats {
	stats := models.ProductStats{TotalProducts: len(products)}
	for _, p := range products {
		stats.TotalStock += p.Stock
		stats.TotalValue += p.Price * float64(p.Stock)
		if p.Featured {
			stats.FeaturedCount++
		}
	}
	return stats
}
