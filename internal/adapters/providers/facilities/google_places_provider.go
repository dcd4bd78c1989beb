package facilities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medfind/medfinder/internal/domain/entities"
	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
	"github.com/medfind/medfinder/pkg/geo"
)

const (
	googleNearbyURL    = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	defaultHTTPTimeout = 8 * time.Second
)

// GooglePlacesProvider implements the FacilityProvider using the Google Places
// Nearby Search API. It is the key-gated primary provider. Nearby Search does
// not report distances, so they are computed locally from the result coordinates.
type GooglePlacesProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGooglePlacesProvider creates a new Google Places facility provider.
func NewGooglePlacesProvider(apiKey string) providers.FacilityProvider {
	return NewGooglePlacesProviderWithOptions(apiKey, googleNearbyURL, nil)
}

// NewGooglePlacesProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGooglePlacesProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.FacilityProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleNearbyURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Nearby returns pharmacies around center, in provider-return order.
func (g *GooglePlacesProvider) Nearby(ctx context.Context, center providers.Coordinates, radiusMeters int) ([]*entities.Facility, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", "pharmacy")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build places request", 0, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("places request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("places request returned status %d", resp.StatusCode),
			resp.StatusCode, nil,
		)
	}

	var payload googleNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode places response", 0, err)
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("places request failed: %s", payload.Status),
			0, nil,
		)
	}

	facilities := make([]*entities.Facility, 0, len(payload.Results))
	for _, result := range payload.Results {
		lat := result.Geometry.Location.Lat
		lon := result.Geometry.Location.Lng
		distance := geo.DistanceKm(center.Latitude, center.Longitude, lat, lon)

		facility := &entities.Facility{
			ID:         result.PlaceID,
			Name:       result.Name,
			Latitude:   &lat,
			Longitude:  &lon,
			DistanceKm: &distance,
		}
		if result.Vicinity != "" {
			vicinity := result.Vicinity
			facility.Address = &vicinity
		}
		facilities = append(facilities, facility)
	}
	return facilities, nil
}

type googleNearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}
