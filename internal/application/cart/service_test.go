package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) EnsureForUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) IncrementLine(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	args := m.Called(ctx, cartID, productID, size, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) SetLineQuantity(ctx context.Context, cartID, productID uuid.UUID, size string, quantity int) error {
	args := m.Called(ctx, cartID, productID, size, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) RemoveLine(ctx context.Context, cartID, productID uuid.UUID, size string) error {
	args := m.Called(ctx, cartID, productID, size)
	return args.Error(0)
}

func (m *MockCartRepository) ClearLines(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func newTestCart(t *testing.T, userID uuid.UUID) *cart.Cart {
	c, err := cart.New(userID)
	require.NoError(t, err)
	return c
}

func TestService_GetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("returns cart with lines", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		require.NoError(t, c.AddLine(uuid.New(), "M", 2))
		repo.On("FindByUser", ctx, userID).Return(c, nil)

		resp, err := service.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, resp.UserID)
		assert.Len(t, resp.Lines, 1)
		repo.AssertExpectations(t)
	})

	t.Run("absent cart renders empty without creating", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		repo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

		resp, err := service.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		assert.Empty(t, resp.ID)
		repo.AssertNotCalled(t, "EnsureForUser", mock.Anything, mock.Anything)
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates cart lazily and increments line", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		productID := uuid.New()

		repo.On("EnsureForUser", ctx, userID).Return(c, nil)
		repo.On("IncrementLine", ctx, c.ID, productID, "M", 2).Return(nil)

		updated := newTestCart(t, userID)
		updated.ID = c.ID
		require.NoError(t, updated.AddLine(productID, "M", 2))
		repo.On("FindByUser", ctx, userID).Return(updated, nil)

		resp, err := service.AddItem(ctx, userID, AddItemRequest{
			ProductID: productID,
			Size:      "M",
			Quantity:  2,
		})

		require.NoError(t, err)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 2, resp.Lines[0].Quantity)
		repo.AssertExpectations(t)
	})
}

func TestService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	quantity := func(q int) *int { return &q }

	t.Run("missing cart is not found", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		repo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

		_, err := service.UpdateItem(ctx, userID, UpdateItemRequest{
			ProductID: uuid.New(),
			Size:      "M",
			Quantity:  quantity(1),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "SetLineQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing line is not found", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		productID := uuid.New()
		repo.On("FindByUser", ctx, userID).Return(c, nil)
		repo.On("SetLineQuantity", ctx, c.ID, productID, "M", 1).Return(shared.ErrNotFound)

		_, err := service.UpdateItem(ctx, userID, UpdateItemRequest{
			ProductID: productID,
			Size:      "M",
			Quantity:  quantity(1),
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		productID := uuid.New()
		repo.On("FindByUser", ctx, userID).Return(c, nil)
		repo.On("SetLineQuantity", ctx, c.ID, productID, "M", 0).Return(nil)

		resp, err := service.UpdateItem(ctx, userID, UpdateItemRequest{
			ProductID: productID,
			Size:      "M",
			Quantity:  quantity(0),
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		repo.AssertExpectations(t)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("removes existing line", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		productID := uuid.New()
		repo.On("FindByUser", ctx, userID).Return(c, nil)
		repo.On("RemoveLine", ctx, c.ID, productID, "M").Return(nil)

		_, err := service.RemoveItem(ctx, userID, RemoveItemRequest{
			ProductID: productID,
			Size:      "M",
		})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("no cart is still a success", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		repo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

		resp, err := service.RemoveItem(ctx, userID, RemoveItemRequest{
			ProductID: uuid.New(),
			Size:      "M",
		})

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		repo.AssertNotCalled(t, "RemoveLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_ClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("clears existing cart", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		c := newTestCart(t, userID)
		repo.On("FindByUser", ctx, userID).Return(c, nil)
		repo.On("ClearLines", ctx, c.ID).Return(nil)

		resp, err := service.ClearCart(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, resp.Lines)
		repo.AssertExpectations(t)
	})

	t.Run("no cart is not found", func(t *testing.T) {
		repo := new(MockCartRepository)
		service := NewService(repo)

		repo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

		_, err := service.ClearCart(ctx, userID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
