package cart

import (
	"context"
	"testing"

	"abarrotes-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) GetCartRows(ctx context.Context, userID int64) ([]*CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CartItem), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, params AddToCartParams) (*CartItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter *product.Filter) ([]*product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, params product.CreateParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, params product.UpdateParams) error {
	args := m.Called(ctx, id, params)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("NewItem", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		params := AddToCartParams{UserID: 1, ProductID: 5, Quantity: 2}

		productRepo.On("GetByID", ctx, int64(5)).
			Return(&product.Product{ID: 5, Stock: 10}, nil)
		repo.On("GetItemByUserAndProduct", ctx, int64(1), int64(5)).
			Return(nil, nil)
		repo.On("CreateItem", ctx, params).
			Return(&CartItem{ID: 1, UserID: 1, ProductID: 5, Quantity: 2}, nil)

		item, err := svc.AddToCart(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("MergesQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		productRepo.On("GetByID", ctx, int64(5)).
			Return(&product.Product{ID: 5, Stock: 10}, nil)
		repo.On("GetItemByUserAndProduct", ctx, int64(1), int64(5)).
			Return(&CartItem{ID: 7, UserID: 1, ProductID: 5, Quantity: 3}, nil)
		repo.On("UpdateItemQuantity", ctx, int64(7), 5).Return(nil)

		item, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: 5, Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		productRepo.On("GetByID", ctx, int64(5)).
			Return(&product.Product{ID: 5, Stock: 4}, nil)
		repo.On("GetItemByUserAndProduct", ctx, int64(1), int64(5)).
			Return(&CartItem{ID: 7, Quantity: 3}, nil)

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: 5, Quantity: 2})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateItemQuantity")
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: 5, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("ProductMissing", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		productRepo.On("GetByID", ctx, int64(99)).
			Return(nil, product.ErrProductNotFound)

		_, err := svc.AddToCart(ctx, AddToCartParams{UserID: 1, ProductID: 99, Quantity: 1})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(repo, productRepo)

		repo.On("GetItemByUserAndProduct", ctx, int64(1), int64(5)).
			Return(&CartItem{ID: 7, Quantity: 2}, nil)
		productRepo.On("GetByID", ctx, int64(5)).
			Return(&product.Product{ID: 5, Stock: 10}, nil)
		repo.On("UpdateItemQuantity", ctx, int64(7), 4).Return(nil)

		assert.NoError(t, svc.UpdateQuantity(ctx, 1, 5, 4))
	})

	t.Run("MissingItem", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProductRepository))

		repo.On("GetItemByUserAndProduct", ctx, int64(1), int64(5)).Return(nil, nil)

		assert.ErrorIs(t, svc.UpdateQuantity(ctx, 1, 5, 4), ErrCartItemNotFound)
	})
}

func TestService_GetCart_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepository))

	repo.On("GetCartRows", ctx, int64(1)).Return(([]*CartItem)(nil), nil)

	items, err := svc.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
