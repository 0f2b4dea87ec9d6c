package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM.
// Line mutations are single SQL statements so concurrent requests from the
// same user cannot lose updates through read-modify-write interleaving.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser loads a user's cart with its lines
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// EnsureForUser returns the user's cart, creating an empty one if absent.
// The insert uses ON CONFLICT DO NOTHING on user_id so two concurrent first
// writes for the same user converge on a single cart row.
func (r *GormCartRepository) EnsureForUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := cart.New(userID)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Omit("Lines").
		Create(c).Error; err != nil {
		return nil, err
	}

	// Refetch so the conflict case returns the existing row
	return r.FindByUser(ctx, userID)
}

// IncrementLine atomically increments the quantity of a (product, size) line,
// inserting it when absent
func (r *GormCartRepository) IncrementLine(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	line, err := cart.NewLine(cartID, productID, size, quantity)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "size"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_lines.quantity + ?", quantity),
				"updated_at": time.Now(),
			}),
		}).
		Create(line).Error
}

// SetLineQuantity sets an absolute quantity on an existing line.
// Quantity zero deletes the line. Returns ErrNotFound when the line does
// not exist.
func (r *GormCartRepository) SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	var result *gorm.DB
	if quantity == 0 {
		result = r.db.WithContext(ctx).
			Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
			Delete(&cart.Line{})
	} else {
		result = r.db.WithContext(ctx).
			Model(&cart.Line{}).
			Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
			Updates(map[string]interface{}{
				"quantity":   quantity,
				"updated_at": time.Now(),
			})
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RemoveLine deletes a line; deleting an absent line is not an error
func (r *GormCartRepository) RemoveLine(ctx context.Context, cartID, productID uuid.UUID, size string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ?", cartID, productID, size).
		Delete(&cart.Line{}).Error
}

// ClearLines deletes all lines of a cart
func (r *GormCartRepository) ClearLines(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cart.Line{}).Error
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
