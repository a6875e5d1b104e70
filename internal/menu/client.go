package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

// Fetcher is the menu source collaborator.
type Fetcher interface {
	FetchMenu(ctx context.Context, restaurantID string) (*Menu, error)
}

// Client fetches menus from the backend over HTTP, authenticated with a
// bearer token from the credential store. The request context carries
// cancellation: a screen unmount aborts the fetch.
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

func (c *Client) FetchMenu(ctx context.Context, restaurantID string) (*Menu, error) {
	token, err := c.creds.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu fetch: %w", err)
	}

	url := fmt.Sprintf("%s/restaurants/%s/menu", c.baseURL, restaurantID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("menu fetch: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &remote.NetworkError{Op: "menu.fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &remote.NetworkError{
			Op:  "menu.fetch",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var dto menuDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return nil, &remote.NetworkError{Op: "menu.fetch", Err: fmt.Errorf("decode body: %w", err)}
	}

	return dto.toDomain(restaurantID), nil
}
