package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter *Filter) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Update(ctx context.Context, id int64, params UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.stock, p.category_id, c.name, p.created_at
`

func (r *repository) List(ctx context.Context, filter *Filter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "List"))

	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`

	where := []string{}
	args := []interface{}{}

	if filter != nil {
		if filter.Q != nil && *filter.Q != "" {
			where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR c.name ILIKE $%d)", len(args)+1, len(args)+1))
			args = append(args, "%"+*filter.Q+"%")
		}
		if filter.MinPrice != nil {
			where = append(where, fmt.Sprintf("p.price >= $%d", len(args)+1))
			args = append(args, *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			where = append(where, fmt.Sprintf("p.price <= $%d", len(args)+1))
			args = append(args, *filter.MaxPrice)
		}
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY p.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
			&p.CategoryID, &p.CategoryName, &p.CreatedAt,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(zap.String("product_name", params.Name))

	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, price, stock, category_id, created_at
	`, params.Name, params.Description, params.Price, params.Stock, params.CategoryID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.Int64("product_id", p.ID))
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int64, params UpdateParams) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category_id = $5
		WHERE id = $6
	`, params.Name, params.Description, params.Price, params.Stock, params.CategoryID, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
