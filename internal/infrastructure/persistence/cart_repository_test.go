package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// setupCartTestDB creates an in-memory SQLite database for testing
func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE carts (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			user_id TEXT NOT NULL UNIQUE
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE cart_lines (
			id TEXT PRIMARY KEY,
			cart_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			size TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(cart_id, product_id, size)
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestGormCartRepository_EnsureForUser(t *testing.T) {
	t.Run("creates cart on first call", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		userID := uuid.New()

		c, err := repo.EnsureForUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, c.UserID)
		assert.Empty(t, c.Lines)
	})

	t.Run("returns existing cart on subsequent calls", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		userID := uuid.New()

		first, err := repo.EnsureForUser(context.Background(), userID)
		require.NoError(t, err)

		second, err := repo.EnsureForUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestGormCartRepository_FindByUser(t *testing.T) {
	t.Run("returns ErrNotFound for user without cart", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))

		_, err := repo.FindByUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("loads cart with lines", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		userID := uuid.New()
		productID := uuid.New()

		c, err := repo.EnsureForUser(context.Background(), userID)
		require.NoError(t, err)
		require.NoError(t, repo.IncrementLine(context.Background(), c.ID, productID, "M", 2))

		loaded, err := repo.FindByUser(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, loaded.Lines, 1)
		assert.Equal(t, productID, loaded.Lines[0].ProductID)
		assert.Equal(t, "M", loaded.Lines[0].Size)
		assert.Equal(t, 2, loaded.Lines[0].Quantity)
	})
}

func TestGormCartRepository_IncrementLine(t *testing.T) {
	t.Run("inserts new line then increments on repeat", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()
		productID := uuid.New()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)

		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 2))
		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 3))

		loaded, err := repo.FindByUser(ctx, c.UserID)
		require.NoError(t, err)
		require.Len(t, loaded.Lines, 1)
		assert.Equal(t, 5, loaded.Lines[0].Quantity)
	})

	t.Run("same product in a different size is a separate line", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()
		productID := uuid.New()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)

		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 1))
		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "L", 1))

		loaded, err := repo.FindByUser(ctx, c.UserID)
		require.NoError(t, err)
		assert.Len(t, loaded.Lines, 2)
	})
}

func TestGormCartRepository_SetLineQuantity(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()
		productID := uuid.New()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 2))

		require.NoError(t, repo.SetLineQuantity(ctx, c.ID, productID, "M", 7))

		loaded, err := repo.FindByUser(ctx, c.UserID)
		require.NoError(t, err)
		require.Len(t, loaded.Lines, 1)
		assert.Equal(t, 7, loaded.Lines[0].Quantity)
	})

	t.Run("quantity zero removes the line", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()
		productID := uuid.New()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 2))

		require.NoError(t, repo.SetLineQuantity(ctx, c.ID, productID, "M", 0))

		loaded, err := repo.FindByUser(ctx, c.UserID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Lines)
	})

	t.Run("missing line returns ErrNotFound", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)

		err = repo.SetLineQuantity(ctx, c.ID, uuid.New(), "M", 3)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCartRepository_RemoveLine(t *testing.T) {
	t.Run("removes existing line", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()
		productID := uuid.New()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)
		require.NoError(t, repo.IncrementLine(ctx, c.ID, productID, "M", 2))

		require.NoError(t, repo.RemoveLine(ctx, c.ID, productID, "M"))

		loaded, err := repo.FindByUser(ctx, c.UserID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Lines)
	})

	t.Run("removing an absent line succeeds", func(t *testing.T) {
		repo := NewGormCartRepository(setupCartTestDB(t))
		ctx := context.Background()

		c, err := repo.EnsureForUser(ctx, uuid.New())
		require.NoError(t, err)

		assert.NoError(t, repo.RemoveLine(ctx, c.ID, uuid.New(), "XL"))
	})
}

func TestGormCartRepository_ClearLines(t *testing.T) {
	repo := NewGormCartRepository(setupCartTestDB(t))
	ctx := context.Background()

	c, err := repo.EnsureForUser(ctx, uuid.New())
	require.NoError(t, err)
	require.NoError(t, repo.IncrementLine(ctx, c.ID, uuid.New(), "M", 1))
	require.NoError(t, repo.IncrementLine(ctx, c.ID, uuid.New(), "L", 2))

	require.NoError(t, repo.ClearLines(ctx, c.ID))

	loaded, err := repo.FindByUser(ctx, c.UserID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)
}
