package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Variant represents a sized variant of a product with its own stock
type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_variants_identity"`
	Size      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_product_variants_identity"`
	Stock     int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a new product variant
func NewVariant(productID uuid.UUID, size string, stock int) (*Variant, error) {
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	now := time.Now()
	return &Variant{
		ID:        uuid.New(),
		ProductID: productID,
		Size:      size,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Product represents a catalog product aggregate root.
// MRP is the integer list price; DiscountPercent, when set, drives the
// effective selling price computed at checkout.
type Product struct {
	shared.BaseAggregateRoot
	Name            string    `gorm:"type:varchar(200);not null"`
	Description     string    `gorm:"type:text"`
	MRP             int64     `gorm:"column:mrp;not null"`
	DiscountPercent *int64    `gorm:"column:discount_percent"`
	Variants        []Variant `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, mrp int64, discountPercent *int64) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if mrp <= 0 {
		return nil, shared.NewDomainError("INVALID_PRICE", "MRP must be positive")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		MRP:               mrp,
		DiscountPercent:   discountPercent,
		Variants:          make([]Variant, 0),
	}, nil
}

// AddVariant adds a sized variant to the product
func (p *Product) AddVariant(size string, stock int) (*Variant, error) {
	for _, v := range p.Variants {
		if v.Size == size {
			return nil, shared.NewDomainError("DUPLICATE_SIZE", "Variant with this size already exists")
		}
	}

	variant, err := NewVariant(p.ID, size, stock)
	if err != nil {
		return nil, err
	}

	p.Variants = append(p.Variants, *variant)
	p.UpdatedAt = time.Now()

	return variant, nil
}

// GetVariant returns the variant for a size, or nil
func (p *Product) GetVariant(size string) *Variant {
	for idx := range p.Variants {
		if p.Variants[idx].Size == size {
			return &p.Variants[idx]
		}
	}
	return nil
}
