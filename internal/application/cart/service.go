package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles shopping cart operations.
// Carts are created lazily: reads of an absent cart render an empty view,
// the first write creates the row.
type Service struct {
	cartRepo cart.Repository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository) *Service {
	return &Service{
		cartRepo: cartRepo,
	}
}

// GetCart returns the user's cart. A user without a cart sees an empty one;
// no row is created on read.
func (s *Service) GetCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			response := EmptyCartResponse(userID)
			return &response, nil
		}
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds quantity to a (product, size) line, creating the cart and
// the line as needed. The increment happens in a single statement so
// concurrent adds for the same line cannot lose updates.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.EnsureForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.IncrementLine(ctx, c.ID, req.ProductID, req.Size, req.Quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem sets an absolute quantity on an existing line. Quantity zero
// removes the line. A missing cart or line is NotFound.
func (s *Service) UpdateItem(ctx context.Context, userID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.SetLineQuantity(ctx, c.ID, req.ProductID, req.Size, *req.Quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem removes a line. Removing an absent line, or calling without a
// cart, succeeds; the operation is idempotent.
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			response := EmptyCartResponse(userID)
			return &response, nil
		}
		return nil, err
	}

	if err := s.cartRepo.RemoveLine(ctx, c.ID, req.ProductID, req.Size); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// ClearCart removes all lines from the user's cart. A user without a cart
// gets NotFound.
func (s *Service) ClearCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearLines(ctx, c.ID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}
