package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
)

// Service handles catalog authoring and lookup
type Service struct {
	productRepo catalog.Repository
}

// NewService creates a new catalog Service
func NewService(productRepo catalog.Repository) *Service {
	return &Service{
		productRepo: productRepo,
	}
}

// CreateProduct creates a product with its sized variants
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.Name, req.Description, req.MRP, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	for _, v := range req.Variants {
		if _, err := p.AddVariant(v.Size, v.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// ResolveProducts batch-loads products by ID. Missing IDs are absent from
// the result; callers decide whether that is an error.
func (s *Service) ResolveProducts(ctx context.Context, ids []uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	return responses, nil
}
