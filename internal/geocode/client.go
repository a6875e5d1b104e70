// Package geocode is the address source collaborator: forward search for
// the delivery-address picker and reverse lookup for the map pin.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

type Address struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchAddress returns candidate addresses for a free-text query. The
// context carries cancellation so an abandoned search aborts the request.
func (c *Client) SearchAddress(ctx context.Context, query string) ([]Address, error) {
	u := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	var out []Address
	if err := c.getJSON(ctx, "geocode.search", u, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Address{}
	}
	return out, nil
}

// ReverseGeocode resolves coordinates into a display name.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	u := fmt.Sprintf("%s/reverse?lat=%s&lon=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))

	var out Address
	if err := c.getJSON(ctx, "geocode.reverse", u, &out); err != nil {
		return "", err
	}
	return out.DisplayName, nil
}

func (c *Client) getJSON(ctx context.Context, op, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &remote.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &remote.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &remote.NetworkError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
