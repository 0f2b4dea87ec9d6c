package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for products
type Repository interface {
	// FindByID loads a product with its variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs batch-loads products by ID. Missing IDs are simply absent
	// from the result; callers decide whether that is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// Save persists the product and its variants
	Save(ctx context.Context, p *Product) error
	// DecrementStock atomically decrements a variant's stock, failing with
	// ErrInsufficientStock when fewer than quantity units remain
	DecrementStock(ctx context.Context, productID uuid.UUID, size string, quantity int) error
}
