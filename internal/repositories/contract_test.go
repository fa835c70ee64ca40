package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testProductRepository exercises the behaviour every ProductRepository must share.
func testProductRepository(t *testing.T, repo repositories.ProductRepository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	keyboard := &models.Product{Name: "Keyboard", Brand: "Keychron", Category: "Peripherals", Price: 75, Stock: 25, CreatedAt: base}
	laptop := &models.Product{Name: "Laptop", Brand: "Lenovo", Category: "Computers", Price: 1200, Stock: 10, Featured: true, CreatedAt: base.Add(time.Hour)}
	mouse := &models.Product{Name: "Mouse", Brand: "Logitech", Category: "Peripherals", Price: 25, Stock: 50, Featured: true, CreatedAt: base.Add(2 * time.Hour)}

	for _, p := range []*models.Product{keyboard, laptop, mouse} {
		require.NoError(t, repo.Create(ctx, p))
		assert.NotEmpty(t, p.ID)
	}

	t.Run("List", func(t *testing.T) {
		products, err := repo.List(ctx, repositories.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{keyboard.ID, laptop.ID, mouse.ID}, productIDs(products))

		products, err = repo.List(ctx, repositories.ListOptions{NewestFirst: true})
		require.NoError(t, err)
		assert.Equal(t, []string{mouse.ID, laptop.ID, keyboard.ID}, productIDs(products))

		products, err = repo.List(ctx, repositories.ListOptions{FeaturedOnly: true, NewestFirst: true, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{mouse.ID}, productIDs(products))
	})

	t.Run("GetByID", func(t *testing.T) {
		product, err := repo.GetByID(ctx, laptop.ID)
		require.NoError(t, err)
		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, 1200.0, product.Price)
		assert.True(t, product.Featured)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		product, err := repo.GetByID(ctx, keyboard.ID)
		require.NoError(t, err)
		product.Price = 80
		product.Stock = 0
		require.NoError(t, repo.Update(ctx, product))

		updated, err := repo.GetByID(ctx, keyboard.ID)
		require.NoError(t, err)
		assert.Equal(t, 80.0, updated.Price)
		assert.Equal(t, 0, updated.Stock)
		assert.WithinDuration(t, base, updated.CreatedAt, time.Second)

		err = repo.Update(ctx, &models.Product{ID: "missing", Name: "Ghost", Price: 1})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, keyboard.ID))
		_, err := repo.GetByID(ctx, keyboard.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, keyboard.ID), repositories.ErrNotFound)

		products, err := repo.List(ctx, repositories.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})
}

// testUserRepository exercises the behaviour every UserRepository must share.
func testUserRepository(t *testing.T, repo repositories.UserRepository) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "ana@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	err := repo.Create(ctx, &models.User{Name: "Other Ana", Email: "ana@example.com", Password: "hash"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	found, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "hash", found.Password)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	found.Name = "Ana Maria"
	require.NoError(t, repo.Update(ctx, found))
	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", byID.Name)

	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: "missing", Email: "x@example.com"}), repositories.ErrNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
}

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
