package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/order"
)

// HistoryLister serves the order-history screen. Implemented by
// order.HistoryStore.
type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]order.HistoryEntry, error)
}

type OrdersHandler struct {
	history HistoryLister
	timeout time.Duration
}

func NewOrdersHandler(history HistoryLister, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		history: history,
		timeout: timeout,
	}
}

// GET /api/v1/orders?limit=20
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	entries, err := h.history.ListByUser(ctx, userID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
