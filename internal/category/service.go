package category

import (
	"context"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context, filter *string) ([]*Category, error)
	AddCategory(ctx context.Context, name string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, filter *string) ([]*Category, error) {
	categories, err := s.repo.GetCategories(ctx, filter)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if categories == nil {
		categories = []*Category{}
	}
	return categories, nil
}

func (s *service) AddCategory(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
	)

	category, err := s.repo.AddCategory(ctx, name)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.Int64("category_id", category.ID))
	return category, nil
}
