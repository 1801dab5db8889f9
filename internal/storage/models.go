package storage

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicateCategory is returned when a category name is already taken.
	ErrDuplicateCategory = errors.New("storage: category already exists")
)

// User is a registered bot user, created on first /start and never mutated.
type User struct {
	ChatID    int64     `db:"chat_id"`
	Username  string    `db:"username"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
}

// Category groups products in the catalog.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// SizeList maps an ordered set of size labels onto a comma-joined text column.
type SizeList []string

// Value implements driver.Valuer.
func (s SizeList) Value() (driver.Value, error) {
	return strings.Join(s, ","), nil
}

// Scan implements sql.Scanner. Empty segments are dropped.
func (s *SizeList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("storage: cannot scan %T into SizeList", src)
	}
	*s = SplitSizes(raw)
	return nil
}

// SplitSizes parses a comma-separated size list, trimming labels and dropping
// empty segments.
func SplitSizes(raw string) SizeList {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(SizeList, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Product is a catalog item.
type Product struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	CategoryID int64           `db:"category_id"`
	Price      decimal.Decimal `db:"price"`
	Sizes      SizeList        `db:"sizes"`
	Photo      string          `db:"photo"`
}

// NewProduct carries the fields needed to create a product.
type NewProduct struct {
	Name       string
	CategoryID int64
	Price      decimal.Decimal
	Sizes      SizeList
	Photo      string
}

// CartItem is one cart row joined against current catalog data, so the price
// reflects the catalog at read time, not at add time.
type CartItem struct {
	ProductID int64           `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int             `db:"quantity"`
}

// OrderDetails carries the fields collected by a completed checkout wizard.
type OrderDetails struct {
	Summary       string
	Total         decimal.Decimal
	Name          string
	Address       string
	Phone         string
	ReceiptFileID string
}

// OrderStatusPending is the status every new order starts in.
const OrderStatusPending = "pending"
