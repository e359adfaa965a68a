package product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter *Filter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) error {
	args := m.Called(ctx, id, params)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("List", ctx, (*Filter)(nil)).Return(([]*Product)(nil), nil)

	products, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Create(ctx, CreateParams{Name: "", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.Create(ctx, CreateParams{Name: "Arroz", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = svc.Create(ctx, CreateParams{Name: "Arroz", Price: 10, Stock: -3})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	repo.AssertNotCalled(t, "Create")
}

func TestService_Update_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	err := svc.Update(ctx, 1, UpdateParams{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	repo.AssertNotCalled(t, "Update")
}

func TestService_Delete_PassesThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Delete", ctx, int64(9)).Return(ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 9), ErrProductNotFound)
}
