package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Line represents a cart line item.
// A line is identified by (ProductID, Size); the same product in two sizes
// is two distinct lines.
type Line struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_identity"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_identity"`
	Size      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cart_lines_identity"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "cart_lines"
}

// NewLine creates a new cart line
func NewLine(cartID, productID uuid.UUID, size string, quantity int) (*Line, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	now := time.Now()
	return &Line{
		ID:        uuid.New(),
		CartID:    cartID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Cart represents a user's shopping cart aggregate root.
// Each user has at most one cart; it is created lazily on first use.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Lines  []Line    `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// New creates a new empty cart for a user
func New(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Lines:             make([]Line, 0),
	}, nil
}

// AddLine increments an existing (product, size) line or appends a new one.
// Input is trusted; the catalog is consulted at checkout, not here.
func (c *Cart) AddLine(productID uuid.UUID, size string, quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID && c.Lines[idx].Size == size {
			c.Lines[idx].Quantity += quantity
			c.Lines[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	line, err := NewLine(c.ID, productID, size, quantity)
	if err != nil {
		return err
	}

	c.Lines = append(c.Lines, *line)
	c.UpdatedAt = time.Now()

	return nil
}

// UpdateLine sets an absolute quantity on an existing line.
// Quantity zero removes the line. A missing line is an error; use AddLine
// to create lines.
func (c *Cart) UpdateLine(productID uuid.UUID, size string, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID && c.Lines[idx].Size == size {
			if quantity == 0 {
				c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			} else {
				c.Lines[idx].Quantity = quantity
				c.Lines[idx].UpdatedAt = time.Now()
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.ErrNotFound
}

// RemoveLine removes a line if present. Removing an absent line succeeds;
// the operation is idempotent.
func (c *Cart) RemoveLine(productID uuid.UUID, size string) {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID && c.Lines[idx].Size == size {
			c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear removes all lines from the cart
func (c *Cart) Clear() {
	c.Lines = make([]Line, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineCount returns the number of lines in the cart
func (c *Cart) LineCount() int {
	return len(c.Lines)
}

// GetLine returns the line for a (product, size) pair, or nil
func (c *Cart) GetLine(productID uuid.UUID, size string) *Line {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID && c.Lines[idx].Size == size {
			return &c.Lines[idx]
		}
	}
	return nil
}
