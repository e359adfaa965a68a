package cart

import (
	"context"
	"database/sql"
	"errors"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error)
	GetCartRows(ctx context.Context, userID int64) ([]*CartItem, error)
	CreateItem(ctx context.Context, params AddToCartParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID int64) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetCartRows(ctx context.Context, userID int64) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("user_id", userID))

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at,
		       p.name, p.price, p.stock
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		log.Error("failed to query cart rows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&item.ProductName, &item.UnitPrice, &item.ProductStock,
		); err != nil {
			log.Error("failed to scan cart row", zap.Error(err))
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *repository) CreateItem(ctx context.Context, params AddToCartParams) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, product_id, quantity, created_at
	`, params.UserID, params.ProductID, params.Quantity).
		Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts SET quantity = $1 WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
