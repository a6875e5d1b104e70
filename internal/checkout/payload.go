package checkout

import (
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// PayloadModifier is a modifier denormalized at order time.
type PayloadModifier struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	PriceDelta money.Money `json:"price_delta"`
}

// PayloadItem is a line item denormalized at order time: names and prices
// are resolved copies, not live menu references, so later menu changes
// never retroactively alter a placed order.
type PayloadItem struct {
	MenuItemID  string            `json:"menu_item_id"`
	Name        string            `json:"name"`
	UnitPrice   money.Money       `json:"unit_price"`
	OptionID    string            `json:"option_id,omitempty"`
	OptionName  string            `json:"option_name,omitempty"`
	OptionDelta money.Money       `json:"option_delta,omitempty"`
	Modifiers   []PayloadModifier `json:"modifiers,omitempty"`
	Quantity    int               `json:"quantity"`
	LineTotal   money.Money       `json:"line_total"`
}

// OrderTotals is the order-level price rollup. Derived, never mutated:
// recomputed whenever cart, delivery selection or tip changes.
type OrderTotals struct {
	Subtotal    money.Money `json:"subtotal"`
	DeliveryFee money.Money `json:"delivery_fee"`
	Taxes       money.Money `json:"taxes"`
	Tip         money.Money `json:"tip"`
	GrandTotal  money.Money `json:"grand_total"`
}

// OrderPayload is the immutable submission payload handed to the order
// sink. IdempotencyKey is generated per checkout attempt and reused across
// automatic retries so the backend can recognize duplicates.
type OrderPayload struct {
	IdempotencyKey     string            `json:"idempotency_key"`
	RestaurantID       string            `json:"restaurant_id"`
	Items              []PayloadItem     `json:"items"`
	Totals             OrderTotals       `json:"totals"`
	Delivery           DeliverySelection `json:"delivery"`
	PaymentMethodToken string            `json:"payment_method_token"`
	Language           string            `json:"language"`
	CreatedAt          time.Time         `json:"created_at"`
}
