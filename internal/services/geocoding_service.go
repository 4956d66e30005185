package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (latitude, longitude decimal.Decimal, err error)
}

// GeocodingService calls a Nominatim-compatible geocoding endpoint. Requests
// are rate limited to one per second, the public usage policy for Nominatim.
type GeocodingService struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func NewGeocodingService(baseURL, userAgent string) (*GeocodingService, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("geocoding base URL is required")
	}
	if userAgent == "" {
		userAgent = "listings-backend/1.0"
	}

	return &GeocodingService{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Geocode resolves the address through the search endpoint, taking the first
// match. No match is an error so the caller can decide whether to retry.
func (g *GeocodingService) Geocode(ctx context.Context, address string) (decimal.Decimal, decimal.Decimal, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("rate limit wait failed: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, decimal.Zero, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("no geocoding result for address: %s", address)
	}

	latitude, err := decimal.NewFromString(results[0].Lat)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	longitude, err := decimal.NewFromString(results[0].Lon)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return latitude, longitude, nil
}
