// Package payment is the payment collaborator. Only opaque saved-card
// tokens pass through here; card PAN/CVV never enter this codebase.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

// Method is a saved payment method as the gateway describes it.
type Method struct {
	Token string `json:"token"`
	Brand string `json:"brand,omitempty"`
	Last4 string `json:"last4,omitempty"`
}

// MethodSource yields the user's saved payment method.
type MethodSource interface {
	SavedMethod(ctx context.Context, userID string) (*Method, error)
}

var ErrNoSavedMethod = errors.New("payment: no saved method for user")

// Client fetches saved methods from the payment gateway facade.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      remote.CredentialStore
}

func NewClient(baseURL string, creds remote.CredentialStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		creds:      creds,
	}
}

func (c *Client) SavedMethod(ctx context.Context, userID string) (*Method, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment method: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/payment-method", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("payment method: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &remote.NetworkError{Op: "payment.method", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusNotFound:
		return nil, ErrNoSavedMethod
	default:
		return nil, &remote.NetworkError{
			Op:  "payment.method",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var m Method
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, &remote.NetworkError{Op: "payment.method", Err: fmt.Errorf("decode body: %w", err)}
	}
	if m.Token == "" {
		return nil, ErrNoSavedMethod
	}
	return &m, nil
}
