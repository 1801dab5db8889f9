package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/tab1k/PandaShopBot/internal/logger"
)

// Orders persists finalized checkouts. It never clears carts or notifies
// anyone; the conversation engine sequences those side effects.
type Orders struct {
	db *sqlx.DB
}

// NewOrders returns an order recorder backed by the given pool.
func NewOrders(db *sqlx.DB) *Orders {
	return &Orders{db: db}
}

// Save inserts one pending order row and returns its id.
func (o *Orders) Save(ctx context.Context, userID int64, d OrderDetails) (int64, error) {
	var id int64
	const q = `
		INSERT INTO orders (user_id, status, total_amount, summary, customer_name, address, phone, receipt_file_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := o.db.GetContext(ctx, &id, q,
		userID, OrderStatusPending, d.Total, d.Summary, d.Name, d.Address, d.Phone, d.ReceiptFileID)
	if err != nil {
		return 0, fmt.Errorf("save order: %w", err)
	}
	logger.SVCOrders.Info("order saved",
		slog.String("event", "orders.save"),
		slog.Int64("order_id", id),
		slog.Int64("user_id", userID),
		slog.String("total", d.Total.StringFixed(2)),
	)
	return id, nil
}
