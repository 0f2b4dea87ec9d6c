package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// setupProductTestDB creates an in-memory SQLite database for testing
func setupProductTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			name TEXT NOT NULL,
			description TEXT,
			mrp INTEGER NOT NULL,
			discount_percent INTEGER
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE product_variants (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			size TEXT NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(product_id, size)
		)
	`).Error
	require.NoError(t, err)

	return db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, stock int) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct("Tee", "Plain cotton tee", 999, nil)
	require.NoError(t, err)
	_, err = p.AddVariant("M", stock)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("loads product with variants", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		p := createTestProduct(t, repo, 10)

		loaded, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tee", loaded.Name)
		require.Len(t, loaded.Variants, 1)
		assert.Equal(t, 10, loaded.Variants[0].Stock)
	})

	t.Run("returns ErrNotFound for unknown id", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	t.Run("missing ids are absent from the result", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		p := createTestProduct(t, repo, 5)

		products, err := repo.FindByIDs(context.Background(), []uuid.UUID{p.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, p.ID, products[0].ID)
	})

	t.Run("empty id list returns empty result", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))

		products, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	t.Run("decrements available stock", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		p := createTestProduct(t, repo, 10)

		require.NoError(t, repo.DecrementStock(context.Background(), p.ID, "M", 3))

		loaded, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 7, loaded.Variants[0].Stock)
	})

	t.Run("fails when fewer units remain than requested", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		p := createTestProduct(t, repo, 2)

		err := repo.DecrementStock(context.Background(), p.ID, "M", 3)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		// Stock is untouched on failure
		loaded, err := repo.FindByID(context.Background(), p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Variants[0].Stock)
	})

	t.Run("fails for unknown variant", func(t *testing.T) {
		repo := NewGormProductRepository(setupProductTestDB(t))
		p := createTestProduct(t, repo, 10)

		err := repo.DecrementStock(context.Background(), p.ID, "XXL", 1)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}
