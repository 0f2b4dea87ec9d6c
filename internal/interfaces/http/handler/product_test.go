package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Mock product repository

type mockProductRepository struct {
	products  map[uuid.UUID]*catalog.Product
	returnErr error
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if m.returnErr != nil {
		return nil, m.returnErr
	}
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, productID uuid.UUID, size string, quantity int) error {
	if m.returnErr != nil {
		return m.returnErr
	}
	p, ok := m.products[productID]
	if !ok {
		return shared.ErrInsufficientStock
	}
	v := p.GetVariant(size)
	if v == nil || v.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	v.Stock -= quantity
	return nil
}

// Test helpers

func setupProductTestHandler() (*ProductHandler, *mockProductRepository) {
	gin.SetMode(gin.TestMode)

	productRepo := newMockProductRepository()
	service := catalogapp.NewService(productRepo)
	return NewProductHandler(service), productRepo
}

func createTestProduct(t *testing.T, mrp int64, discountPercent *int64) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct("Crew Neck Tee", "Plain cotton tee", mrp, discountPercent)
	require.NoError(t, err)
	_, err = p.AddVariant("M", 10)
	require.NoError(t, err)
	_, err = p.AddVariant("L", 5)
	require.NoError(t, err)
	return p
}

func int64Ptr(v int64) *int64 {
	return &v
}

// Tests

func TestProductHandler_CreateProduct_Success(t *testing.T) {
	handler, productRepo := setupProductTestHandler()

	req := catalogapp.CreateProductRequest{
		Name:            "Crew Neck Tee",
		Description:     "Plain cotton tee",
		MRP:             999,
		DiscountPercent: int64Ptr(10),
		Variants: []catalogapp.CreateVariantInput{
			{Size: "M", Stock: 10},
			{Size: "L", Stock: 5},
		},
	}
	c, w := newCartTestContext(t, http.MethodPost, "/products", req, uuid.Nil)
	handler.CreateProduct(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, productRepo.products, 1)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Crew Neck Tee", data["name"])
	assert.Equal(t, float64(999), data["mrp"])
	assert.Len(t, data["variants"], 2)
}

func TestProductHandler_CreateProduct_RejectsZeroMRP(t *testing.T) {
	handler, _ := setupProductTestHandler()

	body := map[string]any{"name": "Tee", "mrp": 0}
	c, w := newCartTestContext(t, http.MethodPost, "/products", body, uuid.Nil)
	handler.CreateProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_GetProduct_Success(t *testing.T) {
	handler, productRepo := setupProductTestHandler()

	p := createTestProduct(t, 1299, nil)
	productRepo.products[p.ID] = p

	c, w := newCartTestContext(t, http.MethodGet, "/products/"+p.ID.String(), nil, uuid.Nil)
	c.Params = gin.Params{{Key: "id", Value: p.ID.String()}}
	handler.GetProduct(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, p.ID.String(), data["id"])
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	handler, _ := setupProductTestHandler()

	id := uuid.New()
	c, w := newCartTestContext(t, http.MethodGet, "/products/"+id.String(), nil, uuid.Nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	handler.GetProduct(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	handler, _ := setupProductTestHandler()

	c, w := newCartTestContext(t, http.MethodGet, "/products/bogus", nil, uuid.Nil)
	c.Params = gin.Params{{Key: "id", Value: "bogus"}}
	handler.GetProduct(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
