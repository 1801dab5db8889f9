// Package wizard holds the per-chat conversation state for multi-step flows.
// Each chat has at most one pending step; registering a step always replaces
// whatever was pending before, so starting a new flow implicitly abandons an
// unfinished one.
package wizard

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// StepName identifies the next expected input for a chat.
type StepName string

const (
	// StepCategoryName awaits the new category name.
	StepCategoryName StepName = "category_name"

	// StepProductName awaits the new product name.
	StepProductName StepName = "product_name"
	// StepProductCategory awaits a category choice from the listed set.
	StepProductCategory StepName = "product_category"
	// StepProductPrice awaits a positive decimal price.
	StepProductPrice StepName = "product_price"
	// StepProductSizes awaits a comma-separated size list.
	StepProductSizes StepName = "product_sizes"
	// StepProductPhoto awaits the product photo upload.
	StepProductPhoto StepName = "product_photo"

	// StepDeleteProduct awaits the id of the product to delete.
	StepDeleteProduct StepName = "delete_product_id"

	// StepCheckoutPayment awaits one of the two payment method labels.
	StepCheckoutPayment StepName = "checkout_payment"
	// StepCheckoutReceipt awaits the payment receipt photo.
	StepCheckoutReceipt StepName = "checkout_receipt"
	// StepCheckoutName awaits the customer name.
	StepCheckoutName StepName = "checkout_name"
	// StepCheckoutAddress awaits the delivery address.
	StepCheckoutAddress StepName = "checkout_address"
	// StepCheckoutPhone awaits the phone number.
	StepCheckoutPhone StepName = "checkout_phone"
)

// CategoryOption is one entry of the category set listed to the admin when a
// product is being created. The reply must match one of these by name.
type CategoryOption struct {
	ID   int64
	Name string
}

// ProductDraft accumulates fields across the add-product wizard.
type ProductDraft struct {
	Name       string
	Categories []CategoryOption
	CategoryID int64
	Price      decimal.Decimal
	Sizes      []string
}

// CheckoutDraft accumulates fields across the from-cart checkout wizard.
type CheckoutDraft struct {
	Summary       string
	Total         decimal.Decimal
	Payment       string
	ReceiptFileID string
	Name          string
	Address       string
	Phone         string
}

// Step is the pending step of one chat: the expected input plus the partial
// wizard data collected so far. At most one of the draft pointers is set.
type Step struct {
	Name     StepName
	Product  *ProductDraft
	Checkout *CheckoutDraft
}

// Manager keeps the single pending-step slot per chat.
type Manager interface {
	// Set replaces the chat's pending step.
	Set(chatID int64, step Step)
	// Current returns the chat's pending step, if any.
	Current(chatID int64) (Step, bool)
	// Clear drops the chat's pending step and its accumulator.
	Clear(chatID int64)
	// InProgress reports whether the chat has a pending step.
	InProgress(chatID int64) bool
}

// ErrBadPrice is returned for prices that do not parse as a positive decimal.
var ErrBadPrice = errors.New("wizard: invalid price")

// ParsePrice validates a price reply: a decimal number strictly above zero.
func ParsePrice(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, ErrBadPrice
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, ErrBadPrice
	}
	return d, nil
}

// SplitSizes parses a comma-separated size reply: labels trimmed, empty
// segments dropped. An all-empty reply yields nil.
func SplitSizes(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// MatchCategory resolves a category reply against the listed set by exact name.
func MatchCategory(options []CategoryOption, reply string) (int64, bool) {
	reply = strings.TrimSpace(reply)
	for _, opt := range options {
		if opt.Name == reply {
			return opt.ID, true
		}
	}
	return 0, false
}
