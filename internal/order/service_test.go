package order

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"abarrotes-be/internal/metrics"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, userID int64, lines []Line, shippingAddress *string) (int64, error) {
	args := m.Called(ctx, userID, lines, shippingAddress)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*OrderWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OrderWithUser), args.Error(1)
}

func (m *MockRepository) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) MarkItemReceived(ctx context.Context, orderID, itemID, userID int64, privileged bool) error {
	args := m.Called(ctx, orderID, itemID, userID, privileged)
	return args.Error(0)
}

func (m *MockRepository) RequestItemReturn(ctx context.Context, orderID, itemID, userID int64, privileged bool, reason *string) error {
	args := m.Called(ctx, orderID, itemID, userID, privileged, reason)
	return args.Error(0)
}

func TestGroupLines(t *testing.T) {
	t.Run("MergesDuplicateProducts", func(t *testing.T) {
		lines := groupLines([]ItemInput{
			{ProductID: 5, Quantity: 2},
			{ProductID: 8, Quantity: 1},
			{ProductID: 5, Quantity: 3},
		})

		require.Len(t, lines, 2)
		assert.Equal(t, Line{ProductID: 5, Quantity: 5}, lines[0])
		assert.Equal(t, Line{ProductID: 8, Quantity: 1}, lines[1])
	})

	t.Run("DropsInvalidEntries", func(t *testing.T) {
		lines := groupLines([]ItemInput{
			{ProductID: 0, Quantity: 2},
			{ProductID: 5, Quantity: 0},
			{ProductID: 5, Quantity: -1},
			{ProductID: -3, Quantity: 4},
		})
		assert.Empty(t, lines)
	})
}

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		m := &metrics.OrderMetrics{}
		svc := NewService(repo, m)

		repo.On("CreateOrder", ctx, int64(1),
			[]Line{{ProductID: 5, Quantity: 5}, {ProductID: 8, Quantity: 1}},
			(*string)(nil),
		).Return(int64(10), nil)

		orderID, err := svc.PlaceOrder(ctx, 1, []ItemInput{
			{ProductID: 5, Quantity: 2},
			{ProductID: 8, Quantity: 1},
			{ProductID: 5, Quantity: 3},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(10), orderID)
		assert.Equal(t, uint64(1), m.Placed.Load())
		assert.Equal(t, uint64(0), m.Rejected.Load())
		repo.AssertExpectations(t)
	})

	t.Run("NoValidItems", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.PlaceOrder(ctx, 1, []ItemInput{{ProductID: 5, Quantity: 0}}, nil)

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.PlaceOrder(ctx, 1, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("AddressTooLong", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		addr := strings.Repeat("a", 256)

		_, err := svc.PlaceOrder(ctx, 1, []ItemInput{{ProductID: 5, Quantity: 1}}, &addr)

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AddressAtLimit", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		addr := strings.Repeat("a", 255)

		repo.On("CreateOrder", ctx, int64(1), []Line{{ProductID: 5, Quantity: 1}}, &addr).
			Return(int64(12), nil)

		orderID, err := svc.PlaceOrder(ctx, 1, []ItemInput{{ProductID: 5, Quantity: 1}}, &addr)
		require.NoError(t, err)
		assert.Equal(t, int64(12), orderID)
	})

	t.Run("RepositoryFailureCountsRejected", func(t *testing.T) {
		repo := new(MockRepository)
		m := &metrics.OrderMetrics{}
		svc := NewService(repo, m)

		repo.On("CreateOrder", ctx, int64(1), []Line{{ProductID: 5, Quantity: 2}}, (*string)(nil)).
			Return(int64(0), ErrInsufficientStock)

		_, err := svc.PlaceOrder(ctx, 1, []ItemInput{{ProductID: 5, Quantity: 2}}, nil)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, uint64(0), m.Placed.Load())
		assert.Equal(t, uint64(1), m.Rejected.Load())
	})
}

func TestService_GetOrder(t *testing.T) {
	ctx := context.Background()
	stored := &Order{ID: 10, UserID: 1, Total: 61.0, Status: StatusPending}

	t.Run("Owner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("GetOrder", ctx, int64(10)).Return(stored, nil)

		o, err := svc.GetOrder(ctx, 10, 1, false)
		require.NoError(t, err)
		assert.Equal(t, int64(10), o.ID)
	})

	t.Run("PrivilegedNonOwner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("GetOrder", ctx, int64(10)).Return(stored, nil)

		o, err := svc.GetOrder(ctx, 10, 99, true)
		require.NoError(t, err)
		assert.Equal(t, int64(10), o.ID)
	})

	t.Run("NonOwnerLooksLikeMissing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("GetOrder", ctx, int64(10)).Return(stored, nil)

		_, err := svc.GetOrder(ctx, 10, 99, false)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Missing", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("GetOrder", ctx, int64(404)).Return(nil, ErrOrderNotFound)

		_, err := svc.GetOrder(ctx, 404, 1, false)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyUserListIsNotNil", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("ListByUser", ctx, int64(1)).Return([]*Order(nil), nil)

		orders, err := svc.ListOrdersForUser(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("EmptyAdminListIsNotNil", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		repo.On("ListAll", ctx).Return([]*OrderWithUser(nil), nil)

		orders, err := svc.ListAllOrders(ctx)
		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})
}

func TestService_RequestItemReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("ReasonTooLong", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		reason := strings.Repeat("x", 256)

		err := svc.RequestItemReturn(ctx, 10, 2, 1, false, &reason)

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "RequestItemReturn",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delegates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)
		reason := "llegó dañado"

		repo.On("RequestItemReturn", ctx, int64(10), int64(2), int64(1), false, &reason).Return(nil)

		err := svc.RequestItemReturn(ctx, 10, 2, 1, false, &reason)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_MarkItemReceived(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("MarkItemReceived", ctx, int64(10), int64(2), int64(1), false).Return(ErrInvalidState)

	err := svc.MarkItemReceived(ctx, 10, 2, 1, false)
	assert.ErrorIs(t, err, ErrInvalidState)
}
