// Package media stores product photos on the local filesystem. Files are
// keyed by product id, so renaming a product never orphans or overwrites a
// photo.
package media

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tab1k/PandaShopBot/internal/logger"
)

// Store writes and resolves product photos under a configured root directory.
type Store struct {
	dir string
}

// NewStore creates the media root if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("media: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Filename returns the canonical file name for a product photo.
func Filename(productID int64) string {
	return fmt.Sprintf("%d.jpg", productID)
}

// Save writes the photo bytes for a product and returns the stored file name.
func (s *Store) Save(productID int64, r io.Reader) (string, error) {
	name := Filename(productID)
	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("media: create %s: %w", name, err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("media: write %s: %w", name, err)
	}
	logger.SVCMedia.Debug("photo stored",
		slog.String("event", "media.save"),
		slog.Int64("product_id", productID),
		slog.Int64("bytes", n),
	)
	return name, nil
}

// Path resolves a stored file name to its absolute location.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Remove deletes a stored photo. A missing file is not an error.
func (s *Store) Remove(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media: remove %s: %w", filename, err)
	}
	return nil
}
