package facilities

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

var boston = providers.Coordinates{Latitude: 42.3601, Longitude: -71.0589}

func TestGooglePlacesProvider_Nearby(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pharmacy", r.URL.Query().Get("type"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{
					"place_id": "ChIJa",
					"name": "Downtown Pharmacy",
					"vicinity": "100 Main St, Boston",
					"geometry": {"location": {"lat": 42.3656, "lng": -71.0096}}
				},
				{
					"place_id": "ChIJb",
					"name": "Back Bay Drugs",
					"geometry": {"location": {"lat": 42.3503, "lng": -71.0810}}
				}
			]
		}`))
	}))
	defer server.Close()

	provider := NewGooglePlacesProviderWithOptions("test-key", server.URL, nil)

	facilities, err := provider.Nearby(context.Background(), boston, 5000)
	require.NoError(t, err)
	require.Len(t, facilities, 2)

	first := facilities[0]
	assert.Equal(t, "ChIJa", first.ID)
	assert.Equal(t, "Downtown Pharmacy", first.Name)
	require.NotNil(t, first.Address)
	assert.Equal(t, "100 Main St, Boston", *first.Address)
	require.NotNil(t, first.DistanceKm)
	assert.InDelta(t, 4.1, *first.DistanceKm, 0.3)

	// no vicinity means no address, not an empty string
	assert.Nil(t, facilities[1].Address)
	assert.NotNil(t, facilities[1].DistanceKm)
}

func TestGooglePlacesProvider_Nearby_ZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	provider := NewGooglePlacesProviderWithOptions("test-key", server.URL, nil)

	facilities, err := provider.Nearby(context.Background(), boston, 5000)
	require.NoError(t, err)
	assert.Empty(t, facilities)
}

func TestGooglePlacesProvider_Nearby_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "results": []}`))
	}))
	defer server.Close()

	provider := NewGooglePlacesProviderWithOptions("test-key", server.URL, nil)

	_, err := provider.Nearby(context.Background(), boston, 5000)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
}
