package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/metrics"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/keyboard"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// orderFromCart summarizes the cart, shows the dual-currency total and starts
// the payment-method step of the checkout wizard.
func (h *Handlers) orderFromCart(c tele.Context) error {
	ctx := helpers.WithHandler(c, "order_from_cart")
	chatID := c.Chat().ID

	items, err := h.cart.Items(ctx, chatID)
	if err != nil {
		logger.Error(ctx, "tg", "checkout.cart_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}
	if len(items) == 0 {
		return c.Send(msgCartEmpty)
	}

	summary, total := summarizeCart(items)
	usdt := total.Div(h.rate).Round(2)

	h.beginWizard(chatID, wizard.Step{
		Name:     wizard.StepCheckoutPayment,
		Checkout: &wizard.CheckoutDraft{Summary: summary, Total: total},
	})

	markup := keyboard.OneTimeReplyButtons([]string{labelPayCard, labelPayCrypto})
	text := fmt.Sprintf(
		"Вы собираетесь оформить заказ:\n\n%s\n\nИтого: %s тг. | %s USDT.\n\n1 USDT ~ %s тг.\n\n%s",
		summary, total.StringFixed(2), usdt.StringFixed(2), h.rate.String(), msgChoosePayment,
	)
	return c.Send(text, markup)
}

// summarizeCart renders one line per cart item and the grand total.
func summarizeCart(items []storage.CartItem) (string, decimal.Decimal) {
	lines := make([]string, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lines = append(lines, fmt.Sprintf("%s - %d шт. - %s тг. за шт.", item.Name, item.Quantity, item.Price.String()))
	}
	return strings.Join(lines, "\n"), total
}

// stepCheckoutPayment consumes the payment-method reply. Unknown labels
// re-prompt the same step with the draft intact.
func (h *Handlers) stepCheckoutPayment(c tele.Context, draft *wizard.CheckoutDraft) error {
	chatID := c.Chat().ID

	switch strings.TrimSpace(c.Text()) {
	case labelPayCard:
		draft.Payment = labelPayCard
	case labelPayCrypto:
		draft.Payment = labelPayCrypto
	default:
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepCheckoutPayment, Checkout: draft})
		return c.Send(msgBadPayment)
	}

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepCheckoutReceipt, Checkout: draft})
	if draft.Payment == labelPayCrypto {
		return c.Send(msgCryptoHowTo, keyboard.RemoveKeyboard())
	}
	return c.Send(msgSendReceipt, keyboard.RemoveKeyboard())
}

// stepCheckoutReceipt consumes the receipt photo.
func (h *Handlers) stepCheckoutReceipt(c tele.Context, draft *wizard.CheckoutDraft) error {
	chatID := c.Chat().ID

	photo := c.Message().Photo
	if photo == nil {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepCheckoutReceipt, Checkout: draft})
		return c.Send(msgSendReceiptPhoto)
	}
	draft.ReceiptFileID = photo.FileID

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepCheckoutName, Checkout: draft})
	return c.Send(msgAskName)
}

func (h *Handlers) stepCheckoutName(c tele.Context, draft *wizard.CheckoutDraft) error {
	draft.Name = strings.TrimSpace(c.Text())
	h.steps.Set(c.Chat().ID, wizard.Step{Name: wizard.StepCheckoutAddress, Checkout: draft})
	return c.Send(msgAskAddress)
}

func (h *Handlers) stepCheckoutAddress(c tele.Context, draft *wizard.CheckoutDraft) error {
	draft.Address = strings.TrimSpace(c.Text())
	h.steps.Set(c.Chat().ID, wizard.Step{Name: wizard.StepCheckoutPhone, Checkout: draft})
	return c.Send(msgAskPhone)
}

// stepCheckoutPhone is the terminal step: save the order, clear the cart and
// notify the staff group. The three side effects run independently; one
// failure never blocks the next.
func (h *Handlers) stepCheckoutPhone(c tele.Context, draft *wizard.CheckoutDraft) error {
	ctx := helpers.WithHandler(c, "checkout_commit")
	chatID := c.Chat().ID
	draft.Phone = strings.TrimSpace(c.Text())

	h.steps.Clear(chatID)

	details := storage.OrderDetails{
		Summary:       draft.Summary,
		Total:         draft.Total,
		Name:          draft.Name,
		Address:       draft.Address,
		Phone:         draft.Phone,
		ReceiptFileID: draft.ReceiptFileID,
	}
	orderID, saveErr := h.orders.Save(ctx, chatID, details)
	if saveErr != nil {
		metrics.ErrorsTotal.WithLabelValues("order_save").Inc()
		logger.Error(ctx, "tg", "checkout.save_failed", slog.String("err", saveErr.Error()))
	} else {
		metrics.OrdersCreated.Inc()
	}

	if err := h.cart.Clear(ctx, chatID); err != nil {
		logger.Error(ctx, "tg", "checkout.clear_cart_failed", slog.String("err", err.Error()))
	}

	if h.notify != nil && h.notify.Enabled() {
		text := fmt.Sprintf(
			"Пользователь %s оформил заказ:\n\nТовары:\n%s\n\nИтого: %s тг.\nИмя: %s\nАдрес: %s\nТелефон: %s",
			draft.Name, draft.Summary, draft.Total.StringFixed(2), draft.Name, draft.Address, draft.Phone,
		)
		h.notify.OrderText(ctx, text)
		if draft.ReceiptFileID != "" {
			h.notify.OrderReceipt(ctx, draft.ReceiptFileID, msgReceiptCaption)
		}
	}

	if saveErr != nil {
		return c.Send(msgOrderError)
	}
	logger.Info(ctx, "tg", "checkout.done", slog.Int64("order_id", orderID))
	return c.Send(msgOrderDone)
}

// orderProduct starts a single-product checkout: the product card is restated
// with a confirm/cancel choice.
func (h *Handlers) orderProduct(c tele.Context, productID int64) error {
	ctx := helpers.WithHandler(c, "order_product")

	p, err := h.catalog.ProductByID(ctx, productID)
	if err != nil {
		if err == storage.ErrNotFound {
			return c.Send(msgProductMissing)
		}
		logger.Error(ctx, "tg", "order.get_product_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}

	markup := keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: btnConfirm, Data: route.ConfirmOrderData(p.ID)},
		{Text: btnCancel, Data: route.CancelOrderData()},
	})
	text := fmt.Sprintf("Вы хотите оформить заказ:\n\n%s - %s тг.", p.Name, p.Price.String())
	return c.Send(text, markup)
}

// confirmOrder commits a single-product checkout. This short path collects no
// receipt or delivery details; staff follow up with the user directly.
func (h *Handlers) confirmOrder(c tele.Context, productID int64) error {
	ctx := helpers.WithHandler(c, "confirm_order")
	chatID := c.Chat().ID

	p, err := h.catalog.ProductByID(ctx, productID)
	if err != nil {
		if err == storage.ErrNotFound {
			return c.Send(msgProductMissing)
		}
		logger.Error(ctx, "tg", "order.confirm.get_product_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}

	username := ""
	if u, err := h.users.ByChatID(ctx, chatID); err == nil {
		username = u.Username
	}

	summary := fmt.Sprintf("%s - %s тг.", p.Name, p.Price.String())
	if _, err := h.orders.Save(ctx, chatID, storage.OrderDetails{Summary: summary, Total: p.Price}); err != nil {
		metrics.ErrorsTotal.WithLabelValues("order_save").Inc()
		logger.Error(ctx, "tg", "order.confirm.save_failed", slog.String("err", err.Error()))
		return c.Send(msgOrderError)
	}
	metrics.OrdersCreated.Inc()
	h.dropWizard(chatID)

	if h.notify != nil && h.notify.Enabled() {
		h.notify.OrderText(ctx, fmt.Sprintf("Новый заказ:\n\n%s\nПользователь: @%s (id %d)", summary, username, chatID))
	}
	return c.Send(msgOrderDone)
}

// cancelOrder abandons a single-product checkout and any pending step.
func (h *Handlers) cancelOrder(c tele.Context) error {
	h.dropWizard(c.Chat().ID)
	return c.Send(msgOrderCancelled)
}

// payBy handles the inline payment buttons. They only make sense while the
// payment step is pending; otherwise the user is told to start a checkout.
func (h *Handlers) payBy(c tele.Context, label string) error {
	chatID := c.Chat().ID

	step, ok := h.steps.Current(chatID)
	if !ok || step.Name != wizard.StepCheckoutPayment || step.Checkout == nil {
		return c.Send(msgNoActiveOrder)
	}
	draft := step.Checkout
	draft.Payment = label

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepCheckoutReceipt, Checkout: draft})
	if label == labelPayCrypto {
		return c.Send(msgCryptoHowTo, keyboard.RemoveKeyboard())
	}
	return c.Send(msgSendReceipt, keyboard.RemoveKeyboard())
}
