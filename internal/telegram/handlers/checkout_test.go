package handlers

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tab1k/PandaShopBot/internal/telegram/route"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

func TestOrderFromCartTotals(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindOrderFromCart}); err != nil {
		t.Fatalf("order from cart: %v", err)
	}

	got := c.lastText(t)
	if !strings.Contains(got, "Итого: 10000.00 тг. | 21.05 USDT.") {
		t.Fatalf("checkout summary missing dual-currency total:\n%s", got)
	}
	if !strings.Contains(got, "Кеды - 2 шт. - 5000 тг. за шт.") {
		t.Fatalf("checkout summary missing item line:\n%s", got)
	}

	step, ok := env.steps.Current(10)
	if !ok || step.Name != wizard.StepCheckoutPayment {
		t.Fatalf("pending step = %+v, want payment", step)
	}
	if step.Checkout == nil || !step.Checkout.Total.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("draft total = %+v, want 10000", step.Checkout)
	}
}

func TestOrderFromCartEmpty(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindOrderFromCart}); err != nil {
		t.Fatalf("order from cart: %v", err)
	}
	if got := c.lastText(t); got != msgCartEmpty {
		t.Fatalf("reply = %q, want %q", got, msgCartEmpty)
	}
	if env.steps.InProgress(10) {
		t.Fatal("empty cart must not start a wizard")
	}
}

func TestCheckoutWizardFull(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	if err := env.h.HandleStep(c.withText("Оплатить картой")); err != nil {
		t.Fatalf("payment step: %v", err)
	}
	if got := c.lastText(t); got != msgSendReceipt {
		t.Fatalf("reply = %q, want %q", got, msgSendReceipt)
	}

	if err := env.h.HandleStep(c.withPhoto("receipt-file-id")); err != nil {
		t.Fatalf("receipt step: %v", err)
	}
	if err := env.h.HandleStep(c.withText("Аружан")); err != nil {
		t.Fatalf("name step: %v", err)
	}
	if err := env.h.HandleStep(c.withText("Алматы, Абая 10")); err != nil {
		t.Fatalf("address step: %v", err)
	}
	if err := env.h.HandleStep(c.withText("+77001234567")); err != nil {
		t.Fatalf("phone step: %v", err)
	}

	if got := c.lastText(t); got != msgOrderDone {
		t.Fatalf("reply = %q, want %q", got, msgOrderDone)
	}
	if env.steps.InProgress(10) {
		t.Fatal("wizard must be cleared after commit")
	}
	if len(env.db.carts[10]) != 0 {
		t.Fatal("cart must be cleared after commit")
	}

	if len(env.db.orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(env.db.orders))
	}
	order := env.db.orders[0]
	if order.userID != 10 {
		t.Fatalf("order user = %d, want 10", order.userID)
	}
	if !order.details.Total.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("order total = %s, want 5000", order.details.Total)
	}
	if order.details.Name != "Аружан" || order.details.Phone != "+77001234567" {
		t.Fatalf("order contact = %+v", order.details)
	}
	if order.details.ReceiptFileID != "receipt-file-id" {
		t.Fatalf("order receipt = %q", order.details.ReceiptFileID)
	}

	if len(env.notify.texts) != 1 || !strings.Contains(env.notify.texts[0], "оформил заказ") {
		t.Fatalf("notify texts = %v", env.notify.texts)
	}
	if len(env.notify.receipts) != 1 || env.notify.receipts[0] != "receipt-file-id" {
		t.Fatalf("notify receipts = %v", env.notify.receipts)
	}
}

func TestCheckoutBadPaymentRetries(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	if err := env.h.HandleStep(c.withText("Наличными")); err != nil {
		t.Fatalf("payment step: %v", err)
	}
	if got := c.lastText(t); got != msgBadPayment {
		t.Fatalf("reply = %q, want %q", got, msgBadPayment)
	}

	step, ok := env.steps.Current(10)
	if !ok || step.Name != wizard.StepCheckoutPayment {
		t.Fatalf("step = %+v, want payment retry", step)
	}
	if step.Checkout == nil || step.Checkout.Summary == "" {
		t.Fatal("retry must keep the draft")
	}
}

func TestCheckoutReceiptRequiresPhoto(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	_ = env.h.HandleStep(c.withText("Оплатить криптовалютой"))

	if err := env.h.HandleStep(c.withText("вот чек")); err != nil {
		t.Fatalf("receipt step: %v", err)
	}
	if got := c.lastText(t); got != msgSendReceiptPhoto {
		t.Fatalf("reply = %q, want %q", got, msgSendReceiptPhoto)
	}
	step, _ := env.steps.Current(10)
	if step.Name != wizard.StepCheckoutReceipt {
		t.Fatalf("step = %s, want receipt retry", step.Name)
	}
}

func TestCheckoutSaveFailureStillClearsCart(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)
	env.db.failOrderSave = true

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	_ = env.h.HandleStep(c.withText("Оплатить картой"))
	_ = env.h.HandleStep(c.withPhoto("receipt"))
	_ = env.h.HandleStep(c.withText("Имя"))
	_ = env.h.HandleStep(c.withText("Адрес"))
	if err := env.h.HandleStep(c.withText("Телефон")); err != nil {
		t.Fatalf("phone step: %v", err)
	}

	if got := c.lastText(t); got != msgOrderError {
		t.Fatalf("reply = %q, want %q", got, msgOrderError)
	}
	if len(env.db.carts[10]) != 0 {
		t.Fatal("cart clear must proceed after a failed save")
	}
	if env.steps.InProgress(10) {
		t.Fatal("wizard must be cleared even when the save fails")
	}
}

func TestSingleProductOrder(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindOrderProduct, ID: p.ID}); err != nil {
		t.Fatalf("order product: %v", err)
	}
	if !strings.Contains(c.lastText(t), "Кеды - 5000 тг.") {
		t.Fatalf("confirm prompt = %q", c.lastText(t))
	}

	c = newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindConfirmOrder, ID: p.ID}); err != nil {
		t.Fatalf("confirm order: %v", err)
	}
	if got := c.lastText(t); got != msgOrderDone {
		t.Fatalf("reply = %q, want %q", got, msgOrderDone)
	}

	if len(env.db.orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(env.db.orders))
	}
	order := env.db.orders[0]
	if order.details.Summary != "Кеды - 5000 тг." {
		t.Fatalf("summary = %q", order.details.Summary)
	}
	if order.details.ReceiptFileID != "" || order.details.Address != "" {
		t.Fatalf("short path must not collect receipt or address: %+v", order.details)
	}
	if len(env.notify.texts) != 1 || !strings.Contains(env.notify.texts[0], "Новый заказ") {
		t.Fatalf("notify = %v", env.notify.texts)
	}
}

func TestConfirmOrderClearsPendingStep(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindConfirmOrder, ID: p.ID}); err != nil {
		t.Fatalf("confirm order: %v", err)
	}
	if got := c.lastText(t); got != msgOrderDone {
		t.Fatalf("reply = %q, want %q", got, msgOrderDone)
	}
	if env.steps.InProgress(10) {
		t.Fatal("confirm must release the pending cart checkout step")
	}
}

func TestCancelOrderClearsPendingStep(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindCancelOrder}); err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if got := c.lastText(t); got != msgOrderCancelled {
		t.Fatalf("reply = %q, want %q", got, msgOrderCancelled)
	}
	if env.steps.InProgress(10) {
		t.Fatal("cancel must release the pending step")
	}
	if len(env.db.orders) != 0 {
		t.Fatal("cancel must not create an order")
	}
}

func TestPayByButtonAdvancesPendingCheckout(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)
	p := env.seedProduct("Кеды", 5000)

	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindAddToCart, ID: p.ID})
	_ = env.h.HandleRoute(newFakeContext(10), route.Route{Kind: route.KindOrderFromCart})

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindPayByCard}); err != nil {
		t.Fatalf("pay_by_card: %v", err)
	}
	step, _ := env.steps.Current(10)
	if step.Name != wizard.StepCheckoutReceipt {
		t.Fatalf("step = %s, want receipt", step.Name)
	}
	if step.Checkout.Payment != labelPayCard {
		t.Fatalf("payment = %q", step.Checkout.Payment)
	}
}

func TestPayByButtonWithoutCheckout(t *testing.T) {
	env := newTestEnv()
	env.seedUser(10)

	c := newFakeContext(10)
	if err := env.h.HandleRoute(c, route.Route{Kind: route.KindPayByCrypto}); err != nil {
		t.Fatalf("pay_by_crypto: %v", err)
	}
	if got := c.lastText(t); got != msgNoActiveOrder {
		t.Fatalf("reply = %q, want %q", got, msgNoActiveOrder)
	}
}
