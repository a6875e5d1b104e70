package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/order"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/payment"
)

// OrderPlacer submits a built payload. Implemented by order.Service.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID string, payload *checkout.OrderPayload) (*order.Receipt, error)
}

type CheckoutHandler struct {
	aggregator *checkout.Aggregator
	payments   payment.MethodSource
	orders     OrderPlacer
	timeout    time.Duration
}

func NewCheckoutHandler(agg *checkout.Aggregator, payments payment.MethodSource, orders OrderPlacer, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		aggregator: agg,
		payments:   payments,
		orders:     orders,
		timeout:    timeout,
	}
}

type DeliveryDTO struct {
	Method      string `json:"method"`       // PICKUP | DELIVERY
	Timing      string `json:"timing"`       // IMMEDIATE | SCHEDULED
	ScheduledAt string `json:"scheduled_at"` // RFC 3339, required when SCHEDULED
	Address     string `json:"address"`
}

type TipDTO struct {
	Percent     *int   `json:"percent,omitempty"`
	CustomCents *int64 `json:"custom_cents,omitempty"`
}

type CheckoutRequestDTO struct {
	Delivery     DeliveryDTO `json:"delivery"`
	Tip          TipDTO      `json:"tip"`
	PaymentToken string      `json:"payment_token,omitempty"`
}

type TotalsDTO struct {
	SubtotalCents    int64  `json:"subtotal_cents"`
	DeliveryFeeCents int64  `json:"delivery_fee_cents"`
	TaxesCents       int64  `json:"taxes_cents"`
	TipCents         int64  `json:"tip_cents"`
	GrandTotalCents  int64  `json:"grand_total_cents"`
	GrandTotal       string `json:"grand_total"`
}

type CheckoutResponseDTO struct {
	OrderID string    `json:"order_id"`
	Status  string    `json:"status"`
	Totals  TotalsDTO `json:"totals"`
}

// POST /api/v1/restaurants/{restaurant_id}/checkout/quote
// Returns the order summary rollup for the current cart and selections
// without submitting anything.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	delivery, err := req.Delivery.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_delivery", err.Error())
		return
	}

	totals := h.aggregator.Totals(restaurantID, delivery, req.Tip.toDomain())
	respondJSON(w, http.StatusOK, toTotalsDTO(totals))
}

// POST /api/v1/restaurants/{restaurant_id}/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	restaurantID := chi.URLParam(r, "restaurant_id")
	if restaurantID == "" {
		respondError(w, http.StatusBadRequest, "invalid_restaurant_id", "restaurant_id is required")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	delivery, err := req.Delivery.toDomain()
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_delivery", err.Error())
		return
	}

	// Fall back to the user's saved method when the client sends no token.
	token := req.PaymentToken
	if token == "" {
		method, errPay := h.payments.SavedMethod(ctx, userID)
		if errPay != nil {
			handleCheckoutError(w, errPay)
			return
		}
		token = method.Token
	}

	payload, err := h.aggregator.BuildOrderPayload(restaurantID, delivery, req.Tip.toDomain(), token, requestLanguage(r))
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	rcpt, err := h.orders.PlaceOrder(ctx, userID, payload)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: rcpt.OrderID,
		Status:  rcpt.Status,
		Totals:  toTotalsDTO(payload.Totals),
	})
}

func (d DeliveryDTO) toDomain() (checkout.DeliverySelection, error) {
	sel := checkout.DeliverySelection{
		Method:  checkout.Method(d.Method),
		Timing:  checkout.Timing(d.Timing),
		Address: d.Address,
	}
	if sel.Method == "" {
		sel.Method = checkout.MethodPickup
	}
	if sel.Timing == "" {
		sel.Timing = checkout.TimingImmediate
	}
	if d.ScheduledAt != "" {
		at, err := time.Parse(time.RFC3339, d.ScheduledAt)
		if err != nil {
			return sel, err
		}
		sel.ScheduledAt = at
	}
	return sel, nil
}

func (t TipDTO) toDomain() checkout.TipSelection {
	var sel checkout.TipSelection
	// last write wins between the two fields; a body carrying both keeps
	// the custom amount, matching the tip picker's behavior
	if t.Percent != nil {
		sel.SetPercent(*t.Percent)
	}
	if t.CustomCents != nil {
		sel.SetCustom(money.Money(*t.CustomCents))
	}
	return sel
}

func toTotalsDTO(t checkout.OrderTotals) TotalsDTO {
	return TotalsDTO{
		SubtotalCents:    int64(t.Subtotal),
		DeliveryFeeCents: int64(t.DeliveryFee),
		TaxesCents:       int64(t.Taxes),
		TipCents:         int64(t.Tip),
		GrandTotalCents:  int64(t.GrandTotal),
		GrandTotal:       t.GrandTotal.String(),
	}
}
