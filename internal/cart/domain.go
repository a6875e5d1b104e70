package cart

import (
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// MenuItem is a purchasable dish as served by the menu source. Immutable
// from the cart's point of view.
type MenuItem struct {
	ID        string            `json:"id"`
	Names     map[string]string `json:"names"` // language tag -> display name
	BasePrice money.Money       `json:"base_price"`
	ImageURL  string            `json:"image_url,omitempty"`
}

// Name returns the display name for the given language, falling back to
// English, then to any available name.
func (m MenuItem) Name(lang string) string {
	if n, ok := m.Names[lang]; ok && n != "" {
		return n
	}
	if n, ok := m.Names["en"]; ok && n != "" {
		return n
	}
	for _, n := range m.Names {
		if n != "" {
			return n
		}
	}
	return m.ID
}

// SelectedOption is the mutually-exclusive variant chosen for an item
// (e.g. size). Its price is a delta added to the base price, never an
// override.
type SelectedOption struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	PriceDelta money.Money       `json:"price_delta"`
}

// SelectedModifier is an additive add-on (e.g. extra sauce). Order in the
// slice affects display only, never price or identity.
type SelectedModifier struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	PriceDelta money.Money       `json:"price_delta"`
}

// LineItem is one distinct cart entry: item + chosen option + chosen
// modifiers + quantity. Key is the merge identity within a restaurant's
// cart; two line items with the same key are the same logical entry.
type LineItem struct {
	Item      MenuItem           `json:"item"`
	Option    *SelectedOption    `json:"option,omitempty"`
	Modifiers []SelectedModifier `json:"modifiers,omitempty"`
	Quantity  int                `json:"quantity"`
	Key       string             `json:"key"`
}

// Total is the priced line: (base + option delta + modifier deltas) * quantity.
func (li LineItem) Total() money.Money {
	var optDelta money.Money
	if li.Option != nil {
		optDelta = li.Option.PriceDelta
	}
	deltas := make([]money.Money, 0, len(li.Modifiers))
	for _, m := range li.Modifiers {
		deltas = append(deltas, m.PriceDelta)
	}
	return money.LineTotal(li.Item.BasePrice, optDelta, deltas, li.Quantity)
}
