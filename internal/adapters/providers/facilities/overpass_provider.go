package facilities

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/medfind/medfinder/internal/domain/entities"
	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
	"github.com/medfind/medfinder/pkg/geo"
)

const (
	overpassBaseURL = "https://overpass-api.de"

	// generic display name for OSM elements tagged amenity=pharmacy without a name
	placeholderName = "Pharmacy"
)

// OverpassProvider implements the FacilityProvider using the OpenStreetMap
// Overpass API. It is the keyless fallback provider. Elements without
// resolvable coordinates still participate in results, with a nil distance
// rather than a zero one.
type OverpassProvider struct {
	httpClient *http.Client
	baseURL    string
}

// NewOverpassProvider creates a new Overpass facility provider.
func NewOverpassProvider() providers.FacilityProvider {
	return NewOverpassProviderWithOptions(overpassBaseURL, nil)
}

// NewOverpassProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewOverpassProviderWithOptions(baseURL string, httpClient *http.Client) providers.FacilityProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = overpassBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OverpassProvider{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Nearby returns pharmacies around center, in provider-return order.
func (o *OverpassProvider) Nearby(ctx context.Context, center providers.Coordinates, radiusMeters int) ([]*entities.Facility, error) {
	query := fmt.Sprintf(
		`[out:json][timeout:25];(node["amenity"="pharmacy"](around:%d,%f,%f);way["amenity"="pharmacy"](around:%d,%f,%f);relation["amenity"="pharmacy"](around:%d,%f,%f););out center;`,
		radiusMeters, center.Latitude, center.Longitude,
		radiusMeters, center.Latitude, center.Longitude,
		radiusMeters, center.Latitude, center.Longitude,
	)

	form := url.Values{}
	form.Set("data", query)

	reqURL := o.baseURL + "/api/interpreter"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.NewUpstreamError("failed to build overpass request", 0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamError("overpass request failed", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			fmt.Sprintf("overpass request returned status %d", resp.StatusCode),
			resp.StatusCode, nil,
		)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewUpstreamError("failed to decode overpass response", 0, err)
	}

	facilities := make([]*entities.Facility, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		facilities = append(facilities, o.toFacility(element, center))
	}
	return facilities, nil
}

func (o *OverpassProvider) toFacility(element overpassElement, center providers.Coordinates) *entities.Facility {
	facility := &entities.Facility{
		ID:   fmt.Sprintf("%s/%d", element.Type, element.ID),
		Name: placeholderName,
	}

	if name := element.Tags["name"]; name != "" {
		facility.Name = name
	}

	if phone := firstTag(element.Tags, "phone", "contact:phone"); phone != "" {
		facility.Phone = &phone
	}

	if address := assembleAddress(element.Tags); address != "" {
		facility.Address = &address
	}

	// Nodes carry lat/lon directly; ways and relations report a computed center
	lat, lon := element.Lat, element.Lon
	if lat == nil && element.Center != nil {
		lat, lon = element.Center.Lat, element.Center.Lon
	}
	if lat != nil && lon != nil {
		facility.Latitude = lat
		facility.Longitude = lon
		distance := geo.DistanceKm(center.Latitude, center.Longitude, *lat, *lon)
		facility.DistanceKm = &distance
	}

	return facility
}

// assembleAddress concatenates the structured address components that are
// present, in house-number/street/city/postal-code order.
func assembleAddress(tags map[string]string) string {
	var parts []string
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city", "addr:postcode"} {
		if value := tags[key]; value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, ", ")
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := tags[key]; value != "" {
			return value
		}
	}
	return ""
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}
