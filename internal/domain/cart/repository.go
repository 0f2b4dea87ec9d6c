package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for carts.
//
// Line mutations are expressed as single-statement operations so that
// concurrent requests from the same user cannot interleave a read-modify-
// write cycle; implementations must make IncrementLine an atomic
// increment-or-insert at the store level.
type Repository interface {
	// FindByUser loads a user's cart with its lines, or ErrNotFound
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	// EnsureForUser returns the user's cart, creating an empty one if
	// absent. Safe under concurrent calls for the same user.
	EnsureForUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	// IncrementLine atomically increments the quantity of a (product, size)
	// line, inserting it when absent
	IncrementLine(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error
	// SetLineQuantity sets an absolute quantity on an existing line.
	// Returns ErrNotFound when the line does not exist.
	SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error
	// RemoveLine deletes a line; deleting an absent line is not an error
	RemoveLine(ctx context.Context, cartID, productID uuid.UUID, size string) error
	// ClearLines deletes all lines of a cart
	ClearLines(ctx context.Context, cartID uuid.UUID) error
}
