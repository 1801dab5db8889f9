package handlers

import (
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/telegram/route"
)

// HandleRoute dispatches a decoded callback route to its flow.
func (h *Handlers) HandleRoute(c tele.Context, r route.Route) error {
	switch r.Kind {
	case route.KindCatalog:
		return h.showCatalog(c)
	case route.KindCategory:
		return h.showCategory(c, r.ID)
	case route.KindProduct:
		return h.showProduct(c, r.ID)
	case route.KindAddToCart:
		return h.addToCart(c, r.ID)
	case route.KindViewCart:
		return h.viewCart(c)
	case route.KindClearCart:
		return h.clearCart(c)
	case route.KindOrderFromCart:
		return h.orderFromCart(c)
	case route.KindOrderProduct:
		return h.orderProduct(c, r.ID)
	case route.KindConfirmOrder:
		return h.confirmOrder(c, r.ID)
	case route.KindCancelOrder:
		return h.cancelOrder(c)
	case route.KindPayByCard:
		return h.payBy(c, labelPayCard)
	case route.KindPayByCrypto:
		return h.payBy(c, labelPayCrypto)
	}
	return c.Send(msgUnknown)
}
