package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// AddItemRequest represents a request to add an item to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"required,min=1,max=20"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to set an absolute quantity on a
// cart line. Quantity zero removes the line.
type UpdateItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"required,min=1,max=20"`
	Quantity  *int      `json:"quantity" binding:"required,min=0"`
}

// RemoveItemRequest represents a request to remove a cart line
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"required,min=1,max=20"`
}

// LineResponse represents a cart line in responses
type LineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
}

// CartResponse represents a cart in responses
type CartResponse struct {
	ID        string         `json:"id,omitempty"`
	UserID    uuid.UUID      `json:"user_id"`
	Lines     []LineResponse `json:"lines"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

// ToCartResponse maps a cart aggregate to its response representation
func ToCartResponse(c *cart.Cart) CartResponse {
	lines := make([]LineResponse, 0, len(c.Lines))
	for _, line := range c.Lines {
		lines = append(lines, LineResponse{
			ProductID: line.ProductID,
			Size:      line.Size,
			Quantity:  line.Quantity,
		})
	}

	updatedAt := c.UpdatedAt
	return CartResponse{
		ID:        c.ID.String(),
		UserID:    c.UserID,
		Lines:     lines,
		UpdatedAt: &updatedAt,
	}
}

// EmptyCartResponse is the view of a user who has no cart yet
func EmptyCartResponse(userID uuid.UUID) CartResponse {
	return CartResponse{
		UserID: userID,
		Lines:  make([]LineResponse, 0),
	}
}
