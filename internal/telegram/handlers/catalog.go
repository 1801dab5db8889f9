package handlers

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/keyboard"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
)

// showCatalog redraws the category menu. When triggered by a button press the
// previous menu message is deleted so the chat does not fill up with stale
// keyboards; a failed delete is not an error.
func (h *Handlers) showCatalog(c tele.Context) error {
	ctx := helpers.WithHandler(c, "catalog")

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "catalog.list_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}

	buttons := make([]keyboard.InlineBtn, 0, len(categories)+1)
	for _, cat := range categories {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: cat.Name,
			Data: route.CategoryData(cat.ID),
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: btnBack, Data: route.BackCatalogData()})

	if c.Callback() != nil {
		if err := c.Delete(); err != nil {
			logger.Debug(ctx, "tg", "catalog.delete_prev_failed", slog.String("err", err.Error()))
		}
	}
	return c.Send(msgCatalogTitle, keyboard.InlineButtons(buttons))
}

// showCategory lists the products of one category as buttons.
func (h *Handlers) showCategory(c tele.Context, categoryID int64) error {
	ctx := helpers.WithHandler(c, "category")

	products, err := h.catalog.ProductsByCategory(ctx, categoryID)
	if err != nil {
		logger.Error(ctx, "tg", "category.list_failed",
			slog.Int64("category_id", categoryID),
			slog.String("err", err.Error()),
		)
		return c.Send(msgGenericError)
	}
	if len(products) == 0 {
		return c.Send(msgCategoryEmpty)
	}

	buttons := make([]keyboard.InlineBtn, 0, len(products))
	for _, p := range products {
		buttons = append(buttons, keyboard.InlineBtn{
			Text: fmt.Sprintf("%s - %s тг.", p.Name, p.Price.String()),
			Data: route.ProductData(p.ID),
		})
	}
	return c.Send(msgChooseProduct, keyboard.InlineButtons(buttons))
}

// showProduct sends the product card: photo, caption and an add-to-cart
// button. A missing photo file degrades to a text-only card.
func (h *Handlers) showProduct(c tele.Context, productID int64) error {
	ctx := helpers.WithHandler(c, "product")

	p, err := h.catalog.ProductByID(ctx, productID)
	if err != nil {
		if err == storage.ErrNotFound {
			return c.Send(msgProductMissing)
		}
		logger.Error(ctx, "tg", "product.get_failed",
			slog.Int64("product_id", productID),
			slog.String("err", err.Error()),
		)
		return c.Send(msgGenericError)
	}

	caption := productCaption(p)
	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnAddToCart, Data: route.AddToCartData(p.ID)},
	})

	if p.Photo != "" {
		path := h.media.Path(p.Photo)
		if _, err := os.Stat(path); err == nil {
			photo := &tele.Photo{File: tele.FromDisk(path), Caption: caption}
			return c.Send(photo, markup, tele.ModeHTML)
		}
		logger.Warn(ctx, "tg", "product.photo_missing",
			slog.Int64("product_id", p.ID),
			slog.String("file", p.Photo),
		)
	}
	return c.Send(caption, markup, tele.ModeHTML)
}

func productCaption(p storage.Product) string {
	return fmt.Sprintf("ID товара: %d\n\nНазвание: <b>%s</b>\n\nЦена: %s тг.\n\nРазмеры: %s",
		p.ID, p.Name, p.Price.String(), strings.Join(p.Sizes, ", "))
}
