package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/cart"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// Pricing carries the order-level rates. Defaults match the production
// backend: 5% tax, $4.99 flat delivery fee.
type Pricing struct {
	TaxRateBasisPoints int64
	DeliveryFee        money.Money
}

var DefaultPricing = Pricing{
	TaxRateBasisPoints: 500,
	DeliveryFee:        499,
}

// Fee returns the delivery fee for the method: the flat fee for delivery,
// zero for pickup.
func (p Pricing) Fee(method Method) money.Money {
	if method == MethodDelivery {
		return p.DeliveryFee
	}
	return 0
}

// CartReader is the slice of the cart store the aggregator needs.
type CartReader interface {
	Items(restaurantID string) []cart.LineItem
}

// Aggregator combines cart contents with the delivery, tip and payment
// selections into a validated order payload.
type Aggregator struct {
	carts   CartReader
	pricing Pricing
	now     func() time.Time
}

func NewAggregator(carts CartReader, pricing Pricing, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		carts:   carts,
		pricing: pricing,
		now:     now,
	}
}

// Totals computes the rollup for the restaurant's current cart under the
// given delivery and tip selections. Used by the order summary screen;
// BuildOrderPayload recomputes the same numbers at submission time.
func (a *Aggregator) Totals(restaurantID string, delivery DeliverySelection, tip TipSelection) OrderTotals {
	return a.totalsFor(a.carts.Items(restaurantID), delivery, tip)
}

// BuildOrderPayload validates the checkout inputs and produces the
// immutable submission payload. Validation failures surface as the
// sentinel errors in errors.go; nothing is submitted here.
func (a *Aggregator) BuildOrderPayload(
	restaurantID string,
	delivery DeliverySelection,
	tip TipSelection,
	paymentToken string,
	lang string,
) (*OrderPayload, error) {
	items := a.carts.Items(restaurantID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := delivery.Validate(a.now()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentToken) == "" {
		return nil, ErrMissingPaymentMethod
	}

	payloadItems := make([]PayloadItem, 0, len(items))
	for _, li := range items {
		payloadItems = append(payloadItems, denormalize(li, lang))
	}

	return &OrderPayload{
		IdempotencyKey:     uuid.NewString(),
		RestaurantID:       restaurantID,
		Items:              payloadItems,
		Totals:             a.totalsFor(items, delivery, tip),
		Delivery:           delivery,
		PaymentMethodToken: paymentToken,
		Language:           lang,
		CreatedAt:          a.now(),
	}, nil
}

func (a *Aggregator) totalsFor(items []cart.LineItem, delivery DeliverySelection, tip TipSelection) OrderTotals {
	var subtotal money.Money
	for _, li := range items {
		subtotal += li.Total()
	}
	fee := a.pricing.Fee(delivery.Method)
	taxes := money.Taxes(subtotal, a.pricing.TaxRateBasisPoints)
	tipAmount := tip.Amount(subtotal)
	return OrderTotals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Taxes:       taxes,
		Tip:         tipAmount,
		GrandTotal:  money.GrandTotal(subtotal, fee, taxes, tipAmount),
	}
}

func denormalize(li cart.LineItem, lang string) PayloadItem {
	out := PayloadItem{
		MenuItemID: li.Item.ID,
		Name:       li.Item.Name(lang),
		UnitPrice:  li.Item.BasePrice,
		Quantity:   li.Quantity,
		LineTotal:  li.Total(),
	}
	if li.Option != nil {
		out.OptionID = li.Option.ID
		out.OptionName = displayName(li.Option.Names, lang, li.Option.ID)
		out.OptionDelta = li.Option.PriceDelta
	}
	for _, m := range li.Modifiers {
		out.Modifiers = append(out.Modifiers, PayloadModifier{
			ID:         m.ID,
			Name:       displayName(m.Names, lang, m.ID),
			PriceDelta: m.PriceDelta,
		})
	}
	return out
}

func displayName(names map[string]string, lang, fallback string) string {
	if n, ok := names[lang]; ok && n != "" {
		return n
	}
	if n, ok := names["en"]; ok && n != "" {
		return n
	}
	for _, n := range names {
		if n != "" {
			return n
		}
	}
	return fallback
}
