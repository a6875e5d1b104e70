package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

// Receipt is the sink's acknowledgement of a placed order.
type Receipt struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Sink is the order submission collaborator.
type Sink interface {
	Submit(ctx context.Context, payload *checkout.OrderPayload) (*Receipt, error)
}

// HTTPSink posts order payloads to the backend. The payload's idempotency
// token travels in a header so the server can dedup retries.
type HTTPSink struct {
	baseURL    string
	httpClient *http.Client
	creds      remote.CredentialStore
}

func NewHTTPSink(baseURL string, creds remote.CredentialStore) *HTTPSink {
	return &HTTPSink{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		creds:      creds,
	}
}

func (s *HTTPSink) Submit(ctx context.Context, payload *checkout.OrderPayload) (*Receipt, error) {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("order submit: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("order submit: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("order submit: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", payload.IdempotencyKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &remote.NetworkError{Op: "order.submit", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return nil, ErrDuplicateSubmission
	case resp.StatusCode >= 500:
		return nil, &remote.NetworkError{
			Op:  "order.submit",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, fmt.Errorf("order submit: rejected with status %d", resp.StatusCode)
	}

	var rcpt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&rcpt); err != nil {
		return nil, &remote.NetworkError{Op: "order.submit", Err: fmt.Errorf("decode receipt: %w", err)}
	}
	return &rcpt, nil
}
