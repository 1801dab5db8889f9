package router

import (
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/tab1k/PandaShopBot/internal/telegram"
	"github.com/tab1k/PandaShopBot/internal/telegram/middleware"
)

// Wizard is the minimal interface the routers need from the conversation
// engine: whether a chat awaits input, and the consumer for that input.
type Wizard interface {
	InProgress(chatID int64) bool
	HandleStep(c tele.Context) error
}

// TextOptions controls fallback behaviour for text/photo updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownPhoto tele.HandlerFunc
}

// TextRoutes builds handlers for free-text and photo routing. Pending wizard
// steps consume the message first; command texts never reach here because
// registered commands are bound to their own endpoints.
func TextRoutes(wiz Wizard, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		if wiz != nil && wiz.InProgress(c.Chat().ID) {
			return handleWithSummary(c, "wizard", start, func() error {
				return wiz.HandleStep(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, nil)
		return nil
	}

	photoHandler := func(c tele.Context) error {
		start := time.Now()
		if wiz != nil && wiz.InProgress(c.Chat().ID) {
			return handleWithSummary(c, "wizard_photo", start, func() error {
				return wiz.HandleStep(c)
			})
		}
		if opts.UnknownPhoto != nil {
			return handleWithSummary(c, "unexpected_photo", start, func() error {
				return opts.UnknownPhoto(c)
			})
		}
		logHandlerSummary(c, "unexpected_photo", start, nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(handler),
		},
		{
			Endpoint: tele.OnPhoto,
			Handler:  middleware.RecoverMiddleware(photoHandler),
		},
	}
}
