package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tab1k/PandaShopBot/internal/logger"
)

// pqUniqueViolation is the Postgres error code for unique constraint breaches.
const pqUniqueViolation = "23505"

// Catalog provides read-mostly access to categories and products. Writes come
// only from admin wizards and may run concurrently with reads.
type Catalog struct {
	db *sqlx.DB
}

// NewCatalog returns a catalog store backed by the given pool.
func NewCatalog(db *sqlx.DB) *Catalog {
	return &Catalog{db: db}
}

// ListCategories returns all categories ordered by id.
func (c *Catalog) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// InsertCategory creates a category with a unique name.
func (c *Catalog) InsertCategory(ctx context.Context, name string) (Category, error) {
	var cat Category
	err := c.db.GetContext(ctx, &cat,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return Category{}, ErrDuplicateCategory
		}
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	logger.SVCCatalog.Info("category created",
		slog.String("event", "catalog.category.insert"),
		slog.Int64("category_id", cat.ID),
		slog.String("name", logger.SanitizeLimit(cat.Name, 64)),
	)
	return cat, nil
}

// ProductsByCategory returns every product in the category ordered by id.
func (c *Catalog) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	var out []Product
	const q = `SELECT id, name, category_id, price, sizes, photo FROM products WHERE category_id = $1 ORDER BY id`
	if err := c.db.SelectContext(ctx, &out, q, categoryID); err != nil {
		return nil, fmt.Errorf("products by category: %w", err)
	}
	return out, nil
}

// ProductByID fetches one product or ErrNotFound.
func (c *Catalog) ProductByID(ctx context.Context, id int64) (Product, error) {
	var p Product
	const q = `SELECT id, name, category_id, price, sizes, photo FROM products WHERE id = $1`
	err := c.db.GetContext(ctx, &p, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// InsertProduct creates a product row. The category must exist; the foreign
// key rejects orphans.
func (c *Catalog) InsertProduct(ctx context.Context, np NewProduct) (Product, error) {
	var p Product
	const q = `
		INSERT INTO products (name, category_id, price, sizes, photo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, category_id, price, sizes, photo`
	err := c.db.GetContext(ctx, &p, q, np.Name, np.CategoryID, np.Price, np.Sizes, np.Photo)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	logger.SVCCatalog.Info("product created",
		slog.String("event", "catalog.product.insert"),
		slog.Int64("product_id", p.ID),
		slog.Int64("category_id", p.CategoryID),
		slog.String("name", logger.SanitizeLimit(p.Name, 64)),
	)
	return p, nil
}

// SetProductPhoto records the stored photo file name for a product. The row
// is created before the photo because the file name is derived from the id.
func (c *Catalog) SetProductPhoto(ctx context.Context, id int64, filename string) error {
	res, err := c.db.ExecContext(ctx, `UPDATE products SET photo = $2 WHERE id = $1`, id, filename)
	if err != nil {
		return fmt.Errorf("set product photo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product and every cart row referencing it. Cart
// rows go first so a partial failure cannot leave dangling references; both
// statements run in one transaction scoped to this call.
func (c *Catalog) DeleteProduct(ctx context.Context, id int64) error {
	start := time.Now()
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete product: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var cartRows int64
	if res, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete product carts: %w", err)
	} else {
		cartRows, _ = res.RowsAffected()
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	deleted, _ := res.RowsAffected()
	if deleted == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete product: commit: %w", err)
	}

	logger.SVCCatalog.Info("product deleted",
		slog.String("event", "catalog.product.delete"),
		slog.Int64("product_id", id),
		slog.Int64("cart_rows_purged", cartRows),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
