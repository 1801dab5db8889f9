package router

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/metrics"
	tg "github.com/tab1k/PandaShopBot/internal/telegram"
	"github.com/tab1k/PandaShopBot/internal/telegram/middleware"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
)

// RouteHandler consumes a decoded callback route.
type RouteHandler interface {
	HandleRoute(c tele.Context, r route.Route) error
}

// CallbackRoute builds the single tele.OnCallback binding. The payload is
// decoded exactly once; handlers downstream work with the typed route and
// never re-parse callback data.
func CallbackRoute(h RouteHandler, reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		// Ack early so the client stops showing the loading spinner even
		// if the handler below fails.
		_ = c.Respond()

		data := middleware.CallbackData(c.Callback())
		r, err := route.Parse(data)
		switch {
		case errors.Is(err, route.ErrBadPayload):
			metrics.ErrorsTotal.WithLabelValues("bad_payload").Inc()
			logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "callback.bad_payload",
				slog.String("data", logger.Sanitize(data)),
			)
			return handleWithSummary(c, "callback_bad_payload", start, func() error {
				return c.Send("Ошибка: некорректный формат данных.")
			})
		case errors.Is(err, route.ErrUnknown):
			name := "callback_not_found"
			fn := func() error { return nil }
			if reg != nil {
				if nf := reg.CallbackNotFound(); nf != nil {
					fn = func() error { return nf(c) }
				}
			}
			return handleWithSummary(c, name, start, fn)
		case err != nil:
			return handleWithSummary(c, "callback", start, func() error { return err })
		}

		metrics.CallbacksProcessed.WithLabelValues(r.Kind.String()).Inc()
		return handleWithSummary(c, "cb_"+r.Kind.String(), start, func() error {
			return h.HandleRoute(c, r)
		}, slog.String("data", logger.Sanitize(data)))
	}

	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(handler),
	}
}
