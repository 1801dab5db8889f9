package handlers

import (
	"log/slog"
	"os"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/keyboard"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
)

// Start greets the user, registers them on first contact and shows the
// catalog entry button. Registration failures are logged but never block
// the greeting.
func (h *Handlers) Start(c tele.Context) error {
	ctx := helpers.WithHandler(c, "start")
	chat := c.Chat()

	if h.stickerPath != "" {
		if _, err := os.Stat(h.stickerPath); err == nil {
			sticker := &tele.Sticker{File: tele.FromDisk(h.stickerPath)}
			if err := c.Send(sticker); err != nil {
				logger.Warn(ctx, "tg", "start.sticker_failed", slog.String("err", err.Error()))
			}
		}
	}

	user := storage.User{ChatID: chat.ID}
	if sender := c.Sender(); sender != nil {
		user.Username = sender.Username
		user.FirstName = sender.FirstName
		user.LastName = sender.LastName
	}
	if err := h.users.Register(ctx, user); err != nil {
		logger.Error(ctx, "tg", "start.register_failed", slog.String("err", err.Error()))
	}

	markup := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: btnCatalog, Data: route.CatalogData()},
	})
	return c.Send(msgWelcome, markup)
}

// Stop hides any reply keyboard. The bot keeps serving the chat.
func (h *Handlers) Stop(c tele.Context) error {
	h.dropWizard(c.Chat().ID)
	return c.Send(msgStop, keyboard.RemoveKeyboard())
}

// Admin shows the admin action menu. Authorization happens in middleware
// before this handler runs.
func (h *Handlers) Admin(c tele.Context) error {
	markup := keyboard.ReplyButtons(
		[]string{"/add_category"},
		[]string{"/add_product"},
		[]string{"/delete_product"},
	)
	return c.Send(msgChooseAction, markup)
}

// Unknown answers messages that matched no command and no pending step.
func (h *Handlers) Unknown(c tele.Context) error {
	return c.Send(msgUnknown)
}
