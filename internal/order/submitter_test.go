package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

func testPayload() *checkout.OrderPayload {
	return &checkout.OrderPayload{
		IdempotencyKey: "idem-123",
		RestaurantID:   "r1",
		Items: []checkout.PayloadItem{
			{MenuItemID: "burger", Name: "Burger", UnitPrice: 500, Quantity: 2, LineTotal: 1000},
		},
		Totals: checkout.OrderTotals{
			Subtotal: 1000, Taxes: 50, GrandTotal: 1050,
		},
		Delivery: checkout.DeliverySelection{
			Method: checkout.MethodPickup,
			Timing: checkout.TimingImmediate,
		},
		PaymentMethodToken: "tok_123",
		CreatedAt:          time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
	}
}

func TestHTTPSink_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-123", r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"order_id": "ord-1", "status": "CONFIRMED"}`))
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, remote.StaticCredentials("test-token"))
	rcpt, err := sink.Submit(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, "ord-1", rcpt.OrderID)
	assert.Equal(t, "CONFIRMED", rcpt.Status)
}

func TestHTTPSink_ConflictMeansDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, remote.StaticCredentials("test-token"))
	_, err := sink.Submit(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestHTTPSink_ServerErrorIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, remote.StaticCredentials("test-token"))
	_, err := sink.Submit(context.Background(), testPayload())
	assert.True(t, remote.IsNetworkError(err), "expected NetworkError, got %v", err)
}

func TestHTTPSink_ClientRejectionIsNotNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, remote.StaticCredentials("test-token"))
	_, err := sink.Submit(context.Background(), testPayload())
	require.Error(t, err)
	assert.False(t, remote.IsNetworkError(err))
}
