package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/menu"
)

// MenuGetter is the cached menu source. Implemented by menu.Service.
type MenuGetter interface {
	GetMenu(ctx context.Context, restaurantID string) (*menu.Menu, error)
}

type MenuHandler struct {
	menus   MenuGetter
	timeout time.Duration
}

func NewMenuHandler(menus MenuGetter, timeout time.Duration) *MenuHandler {
	return &MenuHandler{
		menus:   menus,
		timeout: timeout,
	}
}

// GET /api/v1/restaurants/{restaurant_id}/menu
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}

	m, err := h.menus.GetMenu(ctx, restaurantID)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, m)
}
