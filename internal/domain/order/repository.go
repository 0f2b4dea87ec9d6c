package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines the persistence contract for orders
type Repository interface {
	// FindByID loads an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByUser returns a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	// CountByUser returns the number of orders a user has placed
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// Save persists the order and its lines in a transaction
	Save(ctx context.Context, o *Order) error
	// SaveWithLock persists the order with an optimistic version check
	SaveWithLock(ctx context.Context, o *Order) error
}
