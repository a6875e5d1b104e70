package cart

import (
	"fmt"
	"sync"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// MaxQuantity caps a single line item. Matches the quantity validation at
// the HTTP boundary.
const MaxQuantity = 99

// MemoryStore holds one cart per restaurant, in memory. All UI-driven
// mutations are serialized through the mutex; the store is the system of
// record for cart state until an order is placed.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]LineItem // restaurantID -> ordered line items
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string][]LineItem),
	}
}

// Add merges the item into the restaurant's cart. When a line item with the
// same identity already exists its quantity grows by quantity and its
// option/modifier metadata is overwritten with the incoming values
// (identity already guarantees they match); otherwise a new line item is
// appended. Quantity is clamped to [1, MaxQuantity]. Returns the resulting
// line item.
func (s *MemoryStore) Add(restaurantID string, item MenuItem, option *SelectedOption, modifiers []SelectedModifier, quantity int) LineItem {
	mustID("restaurantID", restaurantID)
	mustID("menuItemID", item.ID)

	quantity = clampQuantity(quantity)

	optionID := ""
	if option != nil {
		optionID = option.ID
	}
	modifierIDs := make([]string, 0, len(modifiers))
	for _, m := range modifiers {
		modifierIDs = append(modifierIDs, m.ID)
	}
	key := LineItemKey(item.ID, optionID, modifierIDs)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[restaurantID]
	for i := range items {
		if items[i].Key == key {
			q := items[i].Quantity + quantity
			if q > MaxQuantity {
				q = MaxQuantity
			}
			items[i].Quantity = q
			items[i].Option = copyOption(option)
			items[i].Modifiers = copyModifiers(modifiers)
			return items[i]
		}
	}

	li := LineItem{
		Item:      item,
		Option:    copyOption(option),
		Modifiers: copyModifiers(modifiers),
		Quantity:  quantity,
		Key:       key,
	}
	s.carts[restaurantID] = append(items, li)
	return li
}

// Remove deletes the line item with the given key. Removing an absent key
// is a no-op. An emptied cart keeps no entry for the restaurant.
func (s *MemoryStore) Remove(restaurantID, key string) {
	mustID("restaurantID", restaurantID)
	mustID("key", key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(restaurantID, key)
}

// UpdateQuantity sets the line item's quantity directly (not a delta).
// A quantity of zero or less removes the line item; values above
// MaxQuantity are clamped. Unknown keys are a no-op.
func (s *MemoryStore) UpdateQuantity(restaurantID, key string, quantity int) {
	mustID("restaurantID", restaurantID)
	mustID("key", key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(restaurantID, key)
		return
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
	}

	items := s.carts[restaurantID]
	for i := range items {
		if items[i].Key == key {
			items[i].Quantity = quantity
			return
		}
	}
}

// Clear drops the restaurant's entire cart entry.
func (s *MemoryStore) Clear(restaurantID string) {
	mustID("restaurantID", restaurantID)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, restaurantID)
}

// Items returns a copy of the restaurant's line items in insertion order.
// Never nil: an unknown restaurant yields an empty slice.
func (s *MemoryStore) Items(restaurantID string) []LineItem {
	mustID("restaurantID", restaurantID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[restaurantID]
	out := make([]LineItem, len(items))
	for i, li := range items {
		out[i] = li
		out[i].Option = copyOption(li.Option)
		out[i].Modifiers = copyModifiers(li.Modifiers)
	}
	return out
}

// TotalItems is the sum of quantities across the restaurant's cart.
func (s *MemoryStore) TotalItems(restaurantID string) int {
	mustID("restaurantID", restaurantID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, li := range s.carts[restaurantID] {
		total += li.Quantity
	}
	return total
}

// Subtotal is the priced sum of the restaurant's line items.
func (s *MemoryStore) Subtotal(restaurantID string) money.Money {
	mustID("restaurantID", restaurantID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var subtotal money.Money
	for _, li := range s.carts[restaurantID] {
		subtotal += li.Total()
	}
	return subtotal
}

// Restaurants lists the restaurant ids that currently have a cart.
func (s *MemoryStore) Restaurants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.carts))
	for id := range s.carts {
		ids = append(ids, id)
	}
	return ids
}

func (s *MemoryStore) removeLocked(restaurantID, key string) {
	items := s.carts[restaurantID]
	for i, li := range items {
		if li.Key == key {
			items = append(items[:i], items[i+1:]...)
			if len(items) == 0 {
				delete(s.carts, restaurantID)
			} else {
				s.carts[restaurantID] = items
			}
			return
		}
	}
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// mustID panics on a missing identifier. Passing an empty restaurant or
// line-item id is a programmer error, not a user input problem.
func mustID(name, v string) {
	if v == "" {
		panic(fmt.Sprintf("cart: %s must not be empty", name))
	}
}

func copyOption(o *SelectedOption) *SelectedOption {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func copyModifiers(ms []SelectedModifier) []SelectedModifier {
	if len(ms) == 0 {
		return nil
	}
	out := make([]SelectedModifier, len(ms))
	copy(out, ms)
	return out
}
