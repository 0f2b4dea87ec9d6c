package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.Repository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID loads a product with its variants
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var p catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByIDs batch-loads products by ID. Missing IDs are simply absent from
// the result.
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product and its variants in a transaction
func (r *GormProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Variants").Save(p).Error; err != nil {
			return err
		}

		currentVariantIDs := make([]uuid.UUID, len(p.Variants))
		for i, v := range p.Variants {
			currentVariantIDs[i] = v.ID
		}

		if len(currentVariantIDs) > 0 {
			if err := tx.Where("product_id = ? AND id NOT IN ?", p.ID, currentVariantIDs).
				Delete(&catalog.Variant{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("product_id = ?", p.ID).
				Delete(&catalog.Variant{}).Error; err != nil {
				return err
			}
		}

		for i := range p.Variants {
			p.Variants[i].ProductID = p.ID
			if err := tx.Save(&p.Variants[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DecrementStock atomically decrements a variant's stock. The WHERE clause
// guards against going negative; zero rows affected means either the variant
// is missing or fewer than quantity units remain.
func (r *GormProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, size string, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Variant{}).
		Where("product_id = ? AND size = ? AND stock >= ?", productID, size, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// Ensure GormProductRepository implements catalog.Repository
var _ catalog.Repository = (*GormProductRepository)(nil)
