package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org"

	// Nominatim's usage policy requires an identifying User-Agent
	nominatimUserAgent = "medfinder/1.0 (github.com/medfind/medfinder)"
)

// NominatimProvider implements the GeocodingProvider using the OpenStreetMap
// Nominatim API. It is the keyless fallback provider, used when no Google
// Maps credential is configured.
type NominatimProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewNominatimProvider creates a new Nominatim geocoding provider.
func NewNominatimProvider() providers.GeocodingProvider {
	return NewNominatimProviderWithOptions(nominatimBaseURL, nil)
}

// NewNominatimProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewNominatimProviderWithOptions(baseURL string, httpClient *http.Client) providers.GeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = nominatimBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &NominatimProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Geocode converts free text to coordinates. Returns nil, nil when the
// provider returns an empty result set.
func (n *NominatimProvider) Geocode(ctx context.Context, text string) (*providers.Coordinates, error) {
	params := url.Values{}
	params.Set("q", text)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build geocode request", 0, err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := n.httpClient.Do(req)
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

	var payload []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode geocode response", 0, err)
	}

	if len(payload) == 0 {
		return nil, nil
	}

	// Nominatim encodes coordinates as strings
	lat, err := strconv.ParseFloat(payload[0].Lat, 64)
	if err != nil {
		return nil, apperrors.NewUpstreamError("invalid latitude in geocode response", 0, err)
	}
	lon, err := strconv.ParseFloat(payload[0].Lon, 64)
	if err != nil {
		return nil, apperrors.NewUpstreamError("invalid longitude in geocode response", 0, err)
	}

	return &providers.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}
