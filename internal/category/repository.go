package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, filter *string) ([]*Category, error)
	AddCategory(ctx context.Context, name string) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context, filter *string) ([]*Category, error) {
	log := logger.FromCtx(ctx)

	query := `SELECT id, name FROM categories`
	args := []interface{}{}

	if filter != nil && *filter != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+*filter+"%")
	}

	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("db query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *repository) AddCategory(ctx context.Context, name string) (*Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("category_name", name))

	if name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, errors.New("category name cannot be empty")
	}

	var c Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id, name
	`, name).Scan(&c.ID, &c.Name)
	if err != nil {
		log.Error("AddCategory db query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.Int64("category_id", c.ID))
	return &c, nil
}
