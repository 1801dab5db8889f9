// Package route decodes callback button payloads into tagged routes. Payloads
// are underscore-joined strings; decoding happens once at the boundary so
// handlers never touch raw strings.
package route

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies the action a callback payload requests.
type Kind int

const (
	// KindCatalog shows the category list.
	KindCatalog Kind = iota + 1
	// KindCategory shows the products of one category.
	KindCategory
	// KindProduct shows one product's detail card.
	KindProduct
	// KindAddToCart adds a product to the caller's cart.
	KindAddToCart
	// KindViewCart shows the caller's cart.
	KindViewCart
	// KindClearCart empties the caller's cart.
	KindClearCart
	// KindOrderFromCart begins checkout from current cart contents.
	KindOrderFromCart
	// KindOrderProduct begins a single-product checkout.
	KindOrderProduct
	// KindConfirmOrder finalizes a single-product checkout.
	KindConfirmOrder
	// KindCancelOrder abandons a single-product checkout.
	KindCancelOrder
	// KindPayByCard selects card payment inside a checkout.
	KindPayByCard
	// KindPayByCrypto selects crypto payment inside a checkout.
	KindPayByCrypto
)

var kindNames = map[Kind]string{
	KindCatalog:       "catalog",
	KindCategory:      "category",
	KindProduct:       "product",
	KindAddToCart:     "add_to_cart",
	KindViewCart:      "view_cart",
	KindClearCart:     "clear_cart",
	KindOrderFromCart: "order_from_cart",
	KindOrderProduct:  "order_product",
	KindConfirmOrder:  "confirm_order",
	KindCancelOrder:   "cancel_order",
	KindPayByCard:     "pay_by_card",
	KindPayByCrypto:   "pay_by_crypto",
}

// String returns the route name used in logs and metrics labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Route is one decoded callback payload.
type Route struct {
	Kind Kind
	// ID is the target entity id for routes that carry one.
	ID int64
}

var (
	// ErrUnknown means the payload matched no route.
	ErrUnknown = errors.New("route: unknown payload")
	// ErrBadPayload means a route matched but its id segment did not parse.
	ErrBadPayload = errors.New("route: malformed payload")
)

// Payload button tokens. Exact tokens are matched before prefixes.
const (
	payloadCatalog     = "catalog"
	payloadBackCatalog = "back_catalog"
	payloadViewCart    = "view_cart"
	payloadClearCart   = "clear_cart"
	payloadCancelOrder = "cancel_order"
	payloadPayByCard   = "pay_by_card"
	payloadPayByCrypto = "pay_by_crypto"

	prefixAddToCart    = "add_to_cart_"
	prefixCategory     = "category_"
	prefixProduct      = "product_"
	prefixConfirmOrder = "confirm_order_"
	prefixOrder        = "order_"
)

// CatalogData returns the payload for the catalog button.
func CatalogData() string { return payloadCatalog }

// BackCatalogData returns the payload for the "back" button under the catalog.
func BackCatalogData() string { return payloadBackCatalog }

// ViewCartData returns the payload for the view-cart button.
func ViewCartData() string { return payloadViewCart }

// ClearCartData returns the payload for the clear-cart button.
func ClearCartData() string { return payloadClearCart }

// CancelOrderData returns the payload for the cancel button of a confirm dialog.
func CancelOrderData() string { return payloadCancelOrder }

// CategoryData builds the payload opening one category.
func CategoryData(id int64) string { return prefixCategory + strconv.FormatInt(id, 10) }

// ProductData builds the payload opening one product card.
func ProductData(id int64) string { return prefixProduct + strconv.FormatInt(id, 10) }

// AddToCartData builds the payload adding one product to the cart.
func AddToCartData(id int64) string { return prefixAddToCart + strconv.FormatInt(id, 10) }

// OrderFromCartData returns the payload starting checkout from the cart.
// The zero id is reserved for "order everything in the cart".
func OrderFromCartData() string { return prefixOrder + "0" }

// OrderProductData builds the payload starting a single-product checkout.
func OrderProductData(id int64) string { return prefixOrder + strconv.FormatInt(id, 10) }

// ConfirmOrderData builds the payload confirming a single-product checkout.
func ConfirmOrderData(id int64) string { return prefixConfirmOrder + strconv.FormatInt(id, 10) }

// Parse decodes a raw callback payload. Exact tokens are tested first, then
// prefixed routes in fixed priority order. A prefixed route whose id segment
// is not an integer yields ErrBadPayload; anything else yields ErrUnknown.
func Parse(data string) (Route, error) {
	data = strings.TrimSpace(data)

	switch data {
	case payloadCatalog, payloadBackCatalog:
		return Route{Kind: KindCatalog}, nil
	case payloadViewCart:
		return Route{Kind: KindViewCart}, nil
	case payloadClearCart:
		return Route{Kind: KindClearCart}, nil
	case payloadCancelOrder:
		return Route{Kind: KindCancelOrder}, nil
	case payloadPayByCard:
		return Route{Kind: KindPayByCard}, nil
	case payloadPayByCrypto:
		return Route{Kind: KindPayByCrypto}, nil
	}

	for _, p := range []struct {
		prefix string
		kind   Kind
	}{
		{prefixAddToCart, KindAddToCart},
		{prefixCategory, KindCategory},
		{prefixConfirmOrder, KindConfirmOrder},
		{prefixProduct, KindProduct},
		{prefixOrder, KindOrderProduct},
	} {
		if !strings.HasPrefix(data, p.prefix) {
			continue
		}
		id, err := strconv.ParseInt(data[len(p.prefix):], 10, 64)
		if err != nil {
			return Route{}, ErrBadPayload
		}
		if p.kind == KindOrderProduct && id == 0 {
			return Route{Kind: KindOrderFromCart}, nil
		}
		return Route{Kind: p.kind, ID: id}, nil
	}

	return Route{}, ErrUnknown
}
