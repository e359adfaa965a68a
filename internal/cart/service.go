package cart

import (
	"context"
	"errors"

	"abarrotes-be/internal/product"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error)
	GetCart(ctx context.Context, userID int64) ([]*CartItem, error)
	UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveFromCart(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.Stock < finalQty {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, params)
	}

	if err := s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

func (s *service) GetCart(ctx context.Context, userID int64) ([]*CartItem, error) {
	items, err := s.repo.GetCartRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*CartItem{}
	}
	return items, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}

	return s.repo.UpdateItemQuantity(ctx, existing.ID, quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID int64) error {
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID int64) error {
	return s.repo.ClearCart(ctx, userID)
}
