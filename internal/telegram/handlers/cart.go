package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/keyboard"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
)

// addToCart adds one unit of the product to the caller's cart. Unregistered
// users are pointed at /start instead.
func (h *Handlers) addToCart(c tele.Context, productID int64) error {
	ctx := helpers.WithHandler(c, "add_to_cart")
	chatID := c.Chat().ID

	registered, err := h.users.IsRegistered(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "tg", "cart.add.check_user_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}
	if !registered {
		return c.Send(msgNotRegistered)
	}

	if _, err := h.catalog.ProductByID(ctx, productID); err != nil {
		if err == storage.ErrNotFound {
			return c.Send(msgProductMissing)
		}
		logger.Error(ctx, "tg", "cart.add.get_product_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}

	if err := h.cart.Add(ctx, chatID, productID); err != nil {
		logger.Error(ctx, "tg", "cart.add_failed",
			slog.Int64("product_id", productID),
			slog.String("err", err.Error()),
		)
		return c.Send("Произошла ошибка при добавлении товара в корзину. Пожалуйста, попробуйте позже.")
	}

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnViewCart, Data: route.ViewCartData()},
	})
	return c.Send(fmt.Sprintf("Товар с ID %d добавлен в корзину.", productID), markup)
}

// viewCart prints the cart contents with a grand total and the clear/checkout
// buttons. An empty cart gets a plain notice.
func (h *Handlers) viewCart(c tele.Context) error {
	ctx := helpers.WithHandler(c, "view_cart")
	chatID := c.Chat().ID

	items, err := h.cart.Items(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "tg", "cart.view_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}
	if len(items) == 0 {
		return c.Send(msgCartEmpty)
	}

	var b strings.Builder
	b.WriteString("Ваша корзина:\n ----------------- \n")
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		fmt.Fprintf(&b, " %s \n Кол-во: %d шт.\n Цена: %s тг. за шт.\n", item.Name, item.Quantity, item.Price.String())
	}
	fmt.Fprintf(&b, " ----------------- \nИтого: %s тг.", total.StringFixed(2))

	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: btnClearCart, Data: route.ClearCartData()},
		{Text: btnCheckout, Data: route.OrderFromCartData()},
	})
	return c.Send(b.String(), markup)
}

// clearCart empties the caller's cart.
func (h *Handlers) clearCart(c tele.Context) error {
	ctx := helpers.WithHandler(c, "clear_cart")

	if err := h.cart.Clear(ctx, c.Chat().ID); err != nil {
		logger.Error(ctx, "tg", "cart.clear_failed", slog.String("err", err.Error()))
		return c.Send(msgCartError)
	}
	return c.Send(msgCartCleared)
}
