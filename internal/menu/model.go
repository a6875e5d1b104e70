package menu

import (
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// Option is a variant or add-on attached to a menu item. The same shape
// serves both mutually-exclusive options (size) and additive modifiers
// (extra topping); the item decides which list it lives in.
type Option struct {
	ID         string            `json:"id"`
	Names      map[string]string `json:"names"`
	PriceDelta money.Money       `json:"price_delta"`
}

type Item struct {
	ID         string            `json:"id"`
	CategoryID string            `json:"category_id"`
	Names      map[string]string `json:"names"`
	BasePrice  money.Money       `json:"base_price"`
	ImageURL   string            `json:"image_url,omitempty"`
	Options    []Option          `json:"options,omitempty"`
	Modifiers  []Option          `json:"modifiers,omitempty"`
}

type Category struct {
	ID        string            `json:"id"`
	Names     map[string]string `json:"names"`
	SortOrder int               `json:"sort_order"`
}

type Menu struct {
	RestaurantID string     `json:"restaurant_id"`
	Categories   []Category `json:"categories"`
	Items        []Item     `json:"items"`
}

// Wire DTOs. The backend serves prices as float dollars; conversion into
// minor units happens here, leniently: an invalid price component is
// logged and zeroed instead of poisoning the whole menu.

type optionDTO struct {
	ID    string            `json:"id"`
	Name  map[string]string `json:"name"`
	Price float64           `json:"price"`
}

type itemDTO struct {
	ID         string            `json:"id"`
	CategoryID string            `json:"category_id"`
	Name       map[string]string `json:"name"`
	Price      float64           `json:"price"`
	ImageURL   string            `json:"image_url"`
	Options    []optionDTO       `json:"options"`
	Modifiers  []optionDTO       `json:"modifiers"`
}

type categoryDTO struct {
	ID        string            `json:"id"`
	Name      map[string]string `json:"name"`
	SortOrder int               `json:"sort_order"`
}

type menuDTO struct {
	Categories []categoryDTO `json:"categories"`
	Items      []itemDTO     `json:"items"`
}

func (d menuDTO) toDomain(restaurantID string) *Menu {
	m := &Menu{
		RestaurantID: restaurantID,
		Categories:   make([]Category, 0, len(d.Categories)),
		Items:        make([]Item, 0, len(d.Items)),
	}
	for _, c := range d.Categories {
		m.Categories = append(m.Categories, Category{
			ID:        c.ID,
			Names:     c.Name,
			SortOrder: c.SortOrder,
		})
	}
	for _, it := range d.Items {
		m.Items = append(m.Items, Item{
			ID:         it.ID,
			CategoryID: it.CategoryID,
			Names:      it.Name,
			BasePrice:  money.LenientFromDollars(it.Price, "item "+it.ID),
			ImageURL:   it.ImageURL,
			Options:    toOptions(it.Options, "option"),
			Modifiers:  toOptions(it.Modifiers, "modifier"),
		})
	}
	return m
}

func toOptions(dtos []optionDTO, kind string) []Option {
	if len(dtos) == 0 {
		return nil
	}
	out := make([]Option, 0, len(dtos))
	for _, o := range dtos {
		out = append(out, Option{
			ID:         o.ID,
			Names:      o.Name,
			PriceDelta: money.LenientFromDollars(o.Price, kind+" "+o.ID),
		})
	}
	return out
}
