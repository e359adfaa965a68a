package order

import (
	"context"
	"fmt"
	"unicode/utf8"

	"abarrotes-be/internal/logger"
	"abarrotes-be/internal/metrics"

	"go.uber.org/zap"
)

const maxAddressLen = 255

// Service is the order placement and fulfillment engine.
type Service interface {
	PlaceOrder(ctx context.Context, userID int64, items []ItemInput, shippingAddress *string) (int64, error)
	ListOrdersForUser(ctx context.Context, userID int64) ([]*Order, error)
	ListAllOrders(ctx context.Context) ([]*OrderWithUser, error)
	GetOrder(ctx context.Context, orderID, userID int64, privileged bool) (*Order, error)
	MarkItemReceived(ctx context.Context, orderID, itemID, userID int64, privileged bool) error
	RequestItemReturn(ctx context.Context, orderID, itemID, userID int64, privileged bool, reason *string) error
}

type service struct {
	repo Repository
	m    *metrics.OrderMetrics
}

func NewService(repo Repository, m *metrics.OrderMetrics) Service {
	if m == nil {
		m = &metrics.OrderMetrics{}
	}
	return &service{repo: repo, m: m}
}

// groupLines merges duplicate products by summing quantities and drops
// entries without a positive product id and quantity. First-seen order of
// products is preserved.
func groupLines(items []ItemInput) []Line {
	index := make(map[int64]int, len(items))
	var lines []Line

	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			continue
		}
		if i, ok := index[it.ProductID]; ok {
			lines[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(lines)
		lines = append(lines, Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return lines
}

func (s *service) PlaceOrder(
	ctx context.Context,
	userID int64,
	items []ItemInput,
	shippingAddress *string,
) (int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int64("user_id", userID),
		zap.Int("item_count", len(items)),
	)

	lines := groupLines(items)
	if len(lines) == 0 {
		log.Warn("order has no valid items")
		return 0, fmt.Errorf("%w: order has no valid items", ErrInvalidInput)
	}

	if shippingAddress != nil && utf8.RuneCountInString(*shippingAddress) > maxAddressLen {
		log.Warn("shipping address too long")
		return 0, fmt.Errorf("%w: shipping address exceeds %d characters", ErrInvalidInput, maxAddressLen)
	}

	timer := metrics.StartTimer()

	orderID, err := s.repo.CreateOrder(ctx, userID, lines, shippingAddress)
	if err != nil {
		s.m.Rejected.Inc()
		return 0, err
	}

	s.m.Placed.Inc()
	log.Info("order placed",
		zap.Int64("order_id", orderID),
		zap.Int("product_count", len(lines)),
		zap.Duration("took", timer.Duration()),
	)

	return orderID, nil
}

func (s *service) ListOrdersForUser(ctx context.Context, userID int64) ([]*Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) ListAllOrders(ctx context.Context) ([]*OrderWithUser, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*OrderWithUser{}
	}
	return orders, nil
}

// GetOrder hides orders the requester may not see behind the same not-found
// outcome as a missing id.
func (s *service) GetOrder(ctx context.Context, orderID, userID int64, privileged bool) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !privileged && o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return o, nil
}

func (s *service) MarkItemReceived(ctx context.Context, orderID, itemID, userID int64, privileged bool) error {
	return s.repo.MarkItemReceived(ctx, orderID, itemID, userID, privileged)
}

func (s *service) RequestItemReturn(
	ctx context.Context,
	orderID, itemID, userID int64,
	privileged bool,
	reason *string,
) error {

	if reason != nil && utf8.RuneCountInString(*reason) > maxAddressLen {
		return fmt.Errorf("%w: return reason exceeds %d characters", ErrInvalidInput, maxAddressLen)
	}

	return s.repo.RequestItemReturn(ctx, orderID, itemID, userID, privileged, reason)
}
