package handlers

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/metrics"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// HandleStep feeds an inbound message to the chat's pending wizard step. The
// message router calls it only when a step is pending; a missing step or a
// step without its accumulator means the slot was corrupted, so it is dropped
// and the message falls through to the unknown handler.
func (h *Handlers) HandleStep(c tele.Context) error {
	chatID := c.Chat().ID

	step, ok := h.steps.Current(chatID)
	if !ok {
		return h.Unknown(c)
	}
	metrics.WizardSteps.WithLabelValues(string(step.Name)).Inc()

	switch step.Name {
	case wizard.StepCategoryName:
		return h.stepCategoryName(c)
	case wizard.StepDeleteProduct:
		return h.stepDeleteProduct(c)

	case wizard.StepProductName, wizard.StepProductCategory, wizard.StepProductPrice,
		wizard.StepProductSizes, wizard.StepProductPhoto:
		if step.Product == nil {
			break
		}
		switch step.Name {
		case wizard.StepProductName:
			return h.stepProductName(c, step.Product)
		case wizard.StepProductCategory:
			return h.stepProductCategory(c, step.Product)
		case wizard.StepProductPrice:
			return h.stepProductPrice(c, step.Product)
		case wizard.StepProductSizes:
			return h.stepProductSizes(c, step.Product)
		case wizard.StepProductPhoto:
			return h.stepProductPhoto(c, step.Product)
		}

	case wizard.StepCheckoutPayment, wizard.StepCheckoutReceipt, wizard.StepCheckoutName,
		wizard.StepCheckoutAddress, wizard.StepCheckoutPhone:
		if step.Checkout == nil {
			break
		}
		switch step.Name {
		case wizard.StepCheckoutPayment:
			return h.stepCheckoutPayment(c, step.Checkout)
		case wizard.StepCheckoutReceipt:
			return h.stepCheckoutReceipt(c, step.Checkout)
		case wizard.StepCheckoutName:
			return h.stepCheckoutName(c, step.Checkout)
		case wizard.StepCheckoutAddress:
			return h.stepCheckoutAddress(c, step.Checkout)
		case wizard.StepCheckoutPhone:
			return h.stepCheckoutPhone(c, step.Checkout)
		}
	}

	ctx := helpers.WithHandler(c, "wizard")
	logger.Warn(ctx, "tg", "wizard.step_dropped",
		slog.Int64("chat_id", chatID),
		slog.String("step", string(step.Name)),
	)
	h.steps.Clear(chatID)
	return h.Unknown(c)
}
