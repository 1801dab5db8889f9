package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/tab1k/PandaShopBot/internal/logger"
)

// Cart stores per-user product quantities. Rows are chat-scoped so users
// cannot interfere with each other by key design.
type Cart struct {
	db *sqlx.DB
}

// NewCart returns a cart store backed by the given pool.
func NewCart(db *sqlx.DB) *Cart {
	return &Cart{db: db}
}

// Add inserts the (user, product) row with quantity 1 or bumps the existing
// quantity. A single upsert statement keeps concurrent double-taps serialized
// at the database rather than racing a read-modify-write.
func (c *Cart) Add(ctx context.Context, userID, productID int64) error {
	const q = `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE
		SET quantity = carts.quantity + 1`
	if _, err := c.db.ExecContext(ctx, q, userID, productID); err != nil {
		return fmt.Errorf("cart add: %w", err)
	}
	logger.SVCCart.Debug("cart item added",
		slog.String("event", "cart.add"),
		slog.Int64("user_id", userID),
		slog.Int64("product_id", productID),
	)
	return nil
}

// Items returns the cart joined against the catalog for current names and prices.
func (c *Cart) Items(ctx context.Context, userID int64) ([]CartItem, error) {
	var out []CartItem
	const q = `
		SELECT p.id AS product_id, p.name, p.price, c.quantity
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY p.id`
	if err := c.db.SelectContext(ctx, &out, q, userID); err != nil {
		return nil, fmt.Errorf("cart items: %w", err)
	}
	return out, nil
}

// Clear removes every cart row for the user. Clearing an empty cart is a no-op.
func (c *Cart) Clear(ctx context.Context, userID int64) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	n, _ := res.RowsAffected()
	logger.SVCCart.Debug("cart cleared",
		slog.String("event", "cart.clear"),
		slog.Int64("user_id", userID),
		slog.Int64("rows", n),
	)
	return nil
}
