package notify

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/telegram/sender"
)

// Notifier pushes order events to the staff group chat. All sends are
// best-effort: a failed notification never fails the customer-facing flow.
type Notifier struct {
	bot        *tele.Bot
	groupID    int64
	dispatcher *sender.Dispatcher
}

func New(bot *tele.Bot, groupID int64, d *sender.Dispatcher) *Notifier {
	return &Notifier{bot: bot, groupID: groupID, dispatcher: d}
}

// Enabled reports whether a group chat is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.bot != nil && n.groupID != 0
}

// OrderText sends a plain-text order summary to the group chat.
func (n *Notifier) OrderText(ctx context.Context, text string) {
	if !n.Enabled() || text == "" {
		return
	}
	n.enqueue(ctx, "notify.order_text", func() error {
		_, err := n.bot.Send(tele.ChatID(n.groupID), text)
		return err
	})
}

// OrderReceipt forwards the payment receipt photo with the order summary as
// its caption. fileID is the Telegram file id of the customer's photo.
func (n *Notifier) OrderReceipt(ctx context.Context, fileID, caption string) {
	if !n.Enabled() || fileID == "" {
		return
	}
	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
	n.enqueue(ctx, "notify.order_receipt", func() error {
		_, err := n.bot.Send(tele.ChatID(n.groupID), photo)
		return err
	})
}

func (n *Notifier) enqueue(ctx context.Context, action string, run func() error) {
	if n.dispatcher == nil {
		if err := run(); err != nil {
			logger.TG.LogAttrs(ctx, slog.LevelWarn, "notify.send_failed",
				slog.String("action", action),
				slog.String("err", err.Error()),
			)
		}
		return
	}
	if err := n.dispatcher.Enqueue(ctx, action, run); err != nil {
		logger.TG.LogAttrs(ctx, slog.LevelWarn, "notify.enqueue_failed",
			slog.String("action", action),
			slog.String("err", err.Error()),
		)
	}
}
