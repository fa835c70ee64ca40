package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongo starts a MongoDB container and returns a fresh database.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client.Database("storefront_" + uuid.NewString()[:8])
}

func TestMongoRepositories(t *testing.T) {
	db := setupMongo(t)
	ctx := context.Background()

	t.Run("Products", func(t *testing.T) {
		repo := repositories.NewMongoProductRepository(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		testProductRepository(t, repo)
	})

	t.Run("Users", func(t *testing.T) {
		repo := repositories.NewMongoUserRepository(db)
		require.NoError(t, repo.EnsureIndexes(ctx))
		testUserRepository(t, repo)
	})
}
