package product

import (
	"context"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, filter *Filter) ([]*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter *Filter) ([]*Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return products, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Name == "" || params.Price < 0 || params.Stock < 0 {
		return nil, ErrInvalidProduct
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create product", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, id int64, params UpdateParams) error {
	if params.Name == "" || params.Price < 0 || params.Stock < 0 {
		return ErrInvalidProduct
	}
	return s.repo.Update(ctx, id, params)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
