package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"abarrotes-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrder(ctx context.Context, userID int64, lines []Line, shippingAddress *string) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	ListAll(ctx context.Context) ([]*OrderWithUser, error)
	GetOrder(ctx context.Context, orderID int64) (*Order, error)
	MarkItemReceived(ctx context.Context, orderID, itemID, userID int64, privileged bool) error
	RequestItemReturn(ctx context.Context, orderID, itemID, userID int64, privileged bool, reason *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrder persists a grouped order in one transaction. Each product row
// is locked with FOR UPDATE before its stock is checked, so concurrent
// orders against the same product serialize and stock never goes negative.
func (r *repository) CreateOrder(
	ctx context.Context,
	userID int64,
	lines []Line,
	shippingAddress *string,
) (int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.Int64("user_id", userID),
		zap.Int("product_count", len(lines)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Provisional header; total is finalized after all lines are priced.
	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status, shipping_address)
		VALUES ($1, 0, $2, $3)
		RETURNING id
	`, userID, StatusPending, shippingAddress).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order header", zap.Error(err))
		return 0, err
	}

	var total float64

	for _, line := range lines {
		var (
			productID int64
			name      string
			price     float64
			stock     int
		)

		err = tx.QueryRowContext(ctx, `
			SELECT id, name, price, stock
			FROM products
			WHERE id = $1
			FOR UPDATE
		`, line.ProductID).Scan(&productID, &name, &price, &stock)

		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", ErrProductNotFound, line.ProductID)
		}
		if err != nil {
			log.Error("failed to lock product row",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err),
			)
			return 0, err
		}

		if stock < line.Quantity {
			log.Warn("insufficient stock",
				zap.Int64("product_id", productID),
				zap.Int("requested", line.Quantity),
				zap.Int("available", stock),
			)
			return 0, fmt.Errorf("%w: %s", ErrInsufficientStock, name)
		}

		// Price captured at purchase time, never re-read later.
		subtotal := price * float64(line.Quantity)

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, line.ProductID, line.Quantity, price, subtotal, ItemStatusPending)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err),
			)
			return 0, err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2
		`, line.Quantity, line.ProductID)
		if err != nil {
			log.Error("failed to decrement stock",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err),
			)
			return 0, err
		}

		total += subtotal
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET total = $1 WHERE id = $2
	`, total, orderID)
	if err != nil {
		log.Error("failed to finalize order total", zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return 0, err
	}

	committed = true
	log.Info("order committed",
		zap.Int64("order_id", orderID),
		zap.Float64("total", total),
	)

	return orderID, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, status, shipping_address, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]*OrderWithUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.total, o.status, o.shipping_address, o.created_at,
		       u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query all orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*OrderWithUser
	for rows.Next() {
		var o OrderWithUser
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.CreatedAt,
			&o.UserName, &o.UserEmail,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *repository) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, shipping_address, created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.unit_price,
		       i.subtotal, i.status, i.return_reason, i.received_at, i.returned_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.Status,
			&item.ReturnReason, &item.ReceivedAt, &item.ReturnedAt,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

// lockItem reads the order header, enforces ownership, and locks the item
// row. It must run inside tx so the ownership check and the state check hold
// until commit.
func lockItem(
	ctx context.Context,
	tx *sql.Tx,
	orderID, itemID, userID int64,
	privileged bool,
) (ItemStatus, error) {

	var ownerID int64
	err := tx.QueryRowContext(ctx, `
		SELECT user_id FROM orders WHERE id = $1
	`, orderID).Scan(&ownerID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}

	if !privileged && ownerID != userID {
		return "", ErrUnauthorized
	}

	var status ItemStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status
		FROM order_items
		WHERE id = $1 AND order_id = $2
		FOR UPDATE
	`, itemID, orderID).Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrItemNotFound
	}
	if err != nil {
		return "", err
	}

	return status, nil
}

func (r *repository) MarkItemReceived(
	ctx context.Context,
	orderID, itemID, userID int64,
	privileged bool,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("method", "MarkItemReceived"),
		zap.Int64("order_id", orderID),
		zap.Int64("item_id", itemID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	status, err := lockItem(ctx, tx, orderID, itemID, userID, privileged)
	if err != nil {
		return err
	}

	if !status.CanMarkReceived() {
		log.Warn("item not receivable", zap.String("status", string(status)))
		return fmt.Errorf("%w: %s", ErrInvalidState, status)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE order_items
		SET status = $1, received_at = NOW()
		WHERE id = $2
	`, ItemStatusReceived, itemID)
	if err != nil {
		log.Error("failed to mark item received", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("item marked received")
	return nil
}

func (r *repository) RequestItemReturn(
	ctx context.Context,
	orderID, itemID, userID int64,
	privileged bool,
	reason *string,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("method", "RequestItemReturn"),
		zap.Int64("order_id", orderID),
		zap.Int64("item_id", itemID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	status, err := lockItem(ctx, tx, orderID, itemID, userID, privileged)
	if err != nil {
		return err
	}

	if !status.CanRequestReturn() {
		log.Warn("item not returnable", zap.String("status", string(status)))
		return fmt.Errorf("%w: %s", ErrInvalidState, status)
	}

	// A repeated request overwrites the reason and clears any prior
	// returned timestamp.
	_, err = tx.ExecContext(ctx, `
		UPDATE order_items
		SET status = $1, return_reason = $2, returned_at = NULL
		WHERE id = $3
	`, ItemStatusReturnRequested, reason, itemID)
	if err != nil {
		log.Error("failed to request item return", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("item return requested")
	return nil
}
