// Package handlers implements the storefront flows: catalog browsing, cart
// management, checkout wizards and the admin product wizards. Handlers talk
// to storage through narrow interfaces so tests can swap in fakes.
package handlers

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/metrics"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// UserStore registers and looks up bot users.
type UserStore interface {
	Register(ctx context.Context, user storage.User) error
	IsRegistered(ctx context.Context, chatID int64) (bool, error)
	ByChatID(ctx context.Context, chatID int64) (storage.User, error)
}

// CatalogStore provides category and product access.
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]storage.Category, error)
	InsertCategory(ctx context.Context, name string) (storage.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]storage.Product, error)
	ProductByID(ctx context.Context, id int64) (storage.Product, error)
	InsertProduct(ctx context.Context, np storage.NewProduct) (storage.Product, error)
	SetProductPhoto(ctx context.Context, id int64, filename string) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CartStore provides per-user cart access.
type CartStore interface {
	Add(ctx context.Context, userID, productID int64) error
	Items(ctx context.Context, userID int64) ([]storage.CartItem, error)
	Clear(ctx context.Context, userID int64) error
}

// OrderStore persists finalized checkouts.
type OrderStore interface {
	Save(ctx context.Context, userID int64, d storage.OrderDetails) (int64, error)
}

// MediaStore stores product photos keyed by product id.
type MediaStore interface {
	Save(productID int64, r io.Reader) (string, error)
	Path(filename string) string
	Remove(filename string) error
}

// Notifier pushes order events to the staff group. Implementations must be
// best-effort; handlers never fail a flow on a notification problem.
type Notifier interface {
	Enabled() bool
	OrderText(ctx context.Context, text string)
	OrderReceipt(ctx context.Context, fileID, caption string)
}

// FileFetcher downloads Telegram files. *tele.Bot satisfies it.
type FileFetcher interface {
	File(file *tele.File) (io.ReadCloser, error)
}

// Options wires a Handlers instance.
type Options struct {
	Users   UserStore
	Catalog CatalogStore
	Cart    CartStore
	Orders  OrderStore
	Media   MediaStore
	Steps   wizard.Manager
	Notify  Notifier
	Files   FileFetcher

	// ExchangeRate is tenge per USDT, used for checkout totals.
	ExchangeRate decimal.Decimal
	// StickerPath is an optional greeting sticker sent on /start.
	StickerPath string
}

// Handlers holds every storefront handler's dependencies.
type Handlers struct {
	users   UserStore
	catalog CatalogStore
	cart    CartStore
	orders  OrderStore
	media   MediaStore
	steps   wizard.Manager
	notify  Notifier
	files   FileFetcher

	rate        decimal.Decimal
	stickerPath string
}

// New builds a Handlers from its dependencies.
func New(opts Options) *Handlers {
	rate := opts.ExchangeRate
	if !rate.IsPositive() {
		rate = decimal.NewFromInt(475)
	}
	return &Handlers{
		users:       opts.Users,
		catalog:     opts.Catalog,
		cart:        opts.Cart,
		orders:      opts.Orders,
		media:       opts.Media,
		steps:       opts.Steps,
		notify:      opts.Notify,
		files:       opts.Files,
		rate:        rate,
		stickerPath: opts.StickerPath,
	}
}

// Steps exposes the wizard manager for the message router.
func (h *Handlers) Steps() wizard.Manager { return h.steps }

// InProgress reports whether the chat has a pending wizard step.
func (h *Handlers) InProgress(chatID int64) bool {
	return h.steps.InProgress(chatID)
}

// beginWizard opens a new conversation, counting any pending step it
// replaces as abandoned.
func (h *Handlers) beginWizard(chatID int64, step wizard.Step) {
	if h.steps.InProgress(chatID) {
		metrics.WizardAbandons.Inc()
	}
	h.steps.Set(chatID, step)
}

// dropWizard clears the chat's pending step, counting it as abandoned if
// one was active.
func (h *Handlers) dropWizard(chatID int64) {
	if h.steps.InProgress(chatID) {
		metrics.WizardAbandons.Inc()
	}
	h.steps.Clear(chatID)
}
