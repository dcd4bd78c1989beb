package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

const (
	googleGeocodeURL   = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultHTTPTimeout = 8 * time.Second
)

// GoogleProvider implements the GeocodingProvider using the Google Geocoding API.
// It is the key-gated primary provider.
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a new Google geocoding provider.
func NewGoogleProvider(apiKey string) providers.GeocodingProvider {
	return NewGoogleProviderWithOptions(apiKey, googleGeocodeURL, nil)
}

// NewGoogleProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.GeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Geocode converts free text to coordinates. Returns nil, nil when the API
// reports zero results for the text.
func (g *GoogleProvider) Geocode(ctx context.Context, text string) (*providers.Coordinates, error) {
	params := url.Values{}
	params.Set("address", text)
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build geocode request", 0, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("geocode request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("geocode request returned status %d", resp.StatusCode),
			resp.StatusCode, nil,
		)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode geocode response", 0, err)
	}

	if payload.Status == "ZERO_RESULTS" || (payload.Status == "OK" && len(payload.Results) == 0) {
		return nil, nil
	}
	if payload.Status != "OK" {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("geocode request failed: %s", payload.Status),
			0, nil,
		)
	}

	location := payload.Results[0].Geometry.Location
	return &providers.Coordinates{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}

type googleGeocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}
