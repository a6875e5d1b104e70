package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/cart"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/order"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/payment"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

type CartHandler struct {
	store *cart.MemoryStore
}

func NewCartHandler(store *cart.MemoryStore) *CartHandler {
	return &CartHandler{
		store: store,
	}
}

type SelectedOptionDTO struct {
	ID              string            `json:"id"`
	Names           map[string]string `json:"names"`
	PriceDeltaCents int64             `json:"price_delta_cents"`
}

type AddItemRequestDTO struct {
	MenuItemID string              `json:"menu_item_id"`
	Names      map[string]string   `json:"names"`
	PriceCents int64               `json:"price_cents"`
	ImageURL   string              `json:"image_url"`
	Option     *SelectedOptionDTO  `json:"option,omitempty"`
	Modifiers  []SelectedOptionDTO `json:"modifiers,omitempty"`
	Quantity   int                 `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type LineItemDTO struct {
	Key            string              `json:"key"`
	MenuItemID     string              `json:"menu_item_id"`
	Name           string              `json:"name"`
	UnitPriceCents int64               `json:"unit_price_cents"`
	Option         *SelectedOptionDTO  `json:"option,omitempty"`
	Modifiers      []SelectedOptionDTO `json:"modifiers,omitempty"`
	Quantity       int                 `json:"quantity"`
	LineTotalCents int64               `json:"line_total_cents"`
	LineTotal      string              `json:"line_total"`
}

type CartResponseDTO struct {
	RestaurantID  string        `json:"restaurant_id"`
	Items         []LineItemDTO `json:"items"`
	TotalItems    int           `json:"total_items"`
	SubtotalCents int64         `json:"subtotal_cents"`
	Subtotal      string        `json:"subtotal"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// POST /api/v1/restaurants/{restaurant_id}/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.MenuItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_menu_item_id", "menu_item_id is required")
		return
	}
	if req.Quantity < 1 || req.Quantity > cart.MaxQuantity {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	item := cart.MenuItem{
		ID:        req.MenuItemID,
		Names:     req.Names,
		BasePrice: money.Money(req.PriceCents),
		ImageURL:  req.ImageURL,
	}
	var option *cart.SelectedOption
	if req.Option != nil {
		option = &cart.SelectedOption{
			ID:         req.Option.ID,
			Names:      req.Option.Names,
			PriceDelta: money.Money(req.Option.PriceDeltaCents),
		}
	}
	modifiers := make([]cart.SelectedModifier, 0, len(req.Modifiers))
	for _, m := range req.Modifiers {
		modifiers = append(modifiers, cart.SelectedModifier{
			ID:         m.ID,
			Names:      m.Names,
			PriceDelta: money.Money(m.PriceDeltaCents),
		})
	}

	h.store.Add(restaurantID, item, option, modifiers, req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse(restaurantID, r))
}

// GET /api/v1/restaurants/{restaurant_id}/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}
	respondJSON(w, http.StatusOK, h.cartResponse(restaurantID, r))
}

// PUT /api/v1/restaurants/{restaurant_id}/cart/items/{item_key}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	itemKey := chi.URLParam(r, "item_key")
	if restaurantID == "" || itemKey == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "restaurant_id and item_key are required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// quantity <= 0 removes the line item
	h.store.UpdateQuantity(restaurantID, itemKey, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse(restaurantID, r))
}

// DELETE /api/v1/restaurants/{restaurant_id}/cart/items/{item_key}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	itemKey := chi.URLParam(r, "item_key")
	if restaurantID == "" || itemKey == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "restaurant_id and item_key are required")
		return
	}

	h.store.Remove(restaurantID, itemKey)
	respondJSON(w, http.StatusOK, h.cartResponse(restaurantID, r))
}

// DELETE /api/v1/restaurants/{restaurant_id}/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}

	h.store.Clear(restaurantID)
	respondJSON(w, http.StatusOK, h.cartResponse(restaurantID, r))
}

func (h *CartHandler) cartResponse(restaurantID string, r *http.Request) CartResponseDTO {
	lang := requestLanguage(r)
	items := h.store.Items(restaurantID)

	dtos := make([]LineItemDTO, 0, len(items))
	for _, li := range items {
		dto := LineItemDTO{
			Key:            li.Key,
			MenuItemID:     li.Item.ID,
			Name:           li.Item.Name(lang),
			UnitPriceCents: int64(li.Item.BasePrice),
			Quantity:       li.Quantity,
			LineTotalCents: int64(li.Total()),
			LineTotal:      li.Total().String(),
		}
		if li.Option != nil {
			dto.Option = &SelectedOptionDTO{
				ID:              li.Option.ID,
				Names:           li.Option.Names,
				PriceDeltaCents: int64(li.Option.PriceDelta),
			}
		}
		for _, m := range li.Modifiers {
			dto.Modifiers = append(dto.Modifiers, SelectedOptionDTO{
				ID:              m.ID,
				Names:           m.Names,
				PriceDeltaCents: int64(m.PriceDelta),
			})
		}
		dtos = append(dtos, dto)
	}

	subtotal := h.store.Subtotal(restaurantID)
	return CartResponseDTO{
		RestaurantID:  restaurantID,
		Items:         dtos,
		TotalItems:    h.store.TotalItems(restaurantID),
		SubtotalCents: int64(subtotal),
		Subtotal:      subtotal.String(),
	}
}

func requestLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return "en"
}

func getUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value("user_id").(string); ok {
		return userID
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCheckoutError maps core and collaborator errors to HTTP responses.
// Validation problems come back as 400s with stable codes the client can
// key messages off; infrastructure failures come back retryable.
func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusBadRequest, "missing_address", err.Error())
	case errors.Is(err, checkout.ErrInvalidSchedule):
		respondError(w, http.StatusBadRequest, "invalid_schedule", err.Error())
	case errors.Is(err, checkout.ErrMissingPaymentMethod), errors.Is(err, payment.ErrNoSavedMethod):
		respondError(w, http.StatusBadRequest, "missing_payment_method", err.Error())
	case errors.Is(err, order.ErrDuplicateSubmission):
		respondError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case remote.IsNetworkError(err):
		respondError(w, http.StatusBadGateway, "upstream_unavailable", "a backend call failed, please retry")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
