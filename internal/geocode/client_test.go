package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

func TestSearchAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "123 main st", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"display_name": "123 Main St, Vancouver", "lat": 49.28, "lon": -123.12}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.SearchAddress(context.Background(), "123 main st")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "123 Main St, Vancouver", got[0].DisplayName)
	assert.InDelta(t, 49.28, got[0].Lat, 0.001)
}

func TestSearchAddress_EmptyResultIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got, err := c.SearchAddress(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "49.28", r.URL.Query().Get("lat"))
		_, _ = w.Write([]byte(`{"display_name": "123 Main St, Vancouver", "lat": 49.28, "lon": -123.12}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	name, err := c.ReverseGeocode(context.Background(), 49.28, -123.12)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St, Vancouver", name)
}

func TestSearchAddress_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SearchAddress(context.Background(), "anywhere")
	assert.True(t, remote.IsNetworkError(err), "expected NetworkError, got %v", err)
}
