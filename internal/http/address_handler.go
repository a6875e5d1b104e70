package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/geocode"
)

// Geocoder is the address source. Implemented by geocode.Client.
type Geocoder interface {
	SearchAddress(ctx context.Context, query string) ([]geocode.Address, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

type AddressHandler struct {
	geo     Geocoder
	timeout time.Duration
}

func NewAddressHandler(geo Geocoder, timeout time.Duration) *AddressHandler {
	return &AddressHandler{
		geo:     geo,
		timeout: timeout,
	}
}

// GET /api/v1/addresses/search?q=...
func (h *AddressHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "invalid_query", "q is required")
		return
	}

	results, err := h.geo.SearchAddress(ctx, query)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

// GET /api/v1/addresses/reverse?lat=...&lon=...
func (h *AddressHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		respondError(w, http.StatusBadRequest, "invalid_coordinates", "lat and lon must be numbers")
		return
	}

	name, err := h.geo.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"display_name": name})
}
