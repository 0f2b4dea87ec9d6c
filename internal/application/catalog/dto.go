package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CreateVariantInput represents a sized variant in the create request
type CreateVariantInput struct {
	Size  string `json:"size" binding:"required,min=1,max=20"`
	Stock int    `json:"stock" binding:"min=0"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name            string               `json:"name" binding:"required,min=1,max=200"`
	Description     string               `json:"description" binding:"max=2000"`
	MRP             int64                `json:"mrp" binding:"required,gt=0"`
	DiscountPercent *int64               `json:"discount_percent"`
	Variants        []CreateVariantInput `json:"variants" binding:"dive"`
}

// VariantResponse represents a variant in responses
type VariantResponse struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// ProductResponse represents a product in responses
type ProductResponse struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	MRP             int64             `json:"mrp"`
	DiscountPercent *int64            `json:"discount_percent,omitempty"`
	Variants        []VariantResponse `json:"variants"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToProductResponse maps a product aggregate to its response representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantResponse{
			Size:  v.Size,
			Stock: v.Stock,
		})
	}

	return ProductResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		MRP:             p.MRP,
		DiscountPercent: p.DiscountPercent,
		Variants:        variants,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ResolveProductsRequest asks for a batch of products by ID
type ResolveProductsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}
