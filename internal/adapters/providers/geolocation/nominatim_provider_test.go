package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medfind/medfinder/pkg/errors"
)

func TestNominatimProvider_Geocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Boston, MA", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "42.3554334", "lon": "-71.060511"}]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, nil)

	coords, err := provider.Geocode(context.Background(), "Boston, MA")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 42.3554334, coords.Latitude, 1e-6)
	assert.InDelta(t, -71.060511, coords.Longitude, 1e-6)
}

func TestNominatimProvider_Geocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, nil)

	coords, err := provider.Geocode(context.Background(), "Zzzzznotaplace123")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestNominatimProvider_Geocode_MalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "-71.06"}]`))
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, nil)

	_, err := provider.Geocode(context.Background(), "Boston, MA")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
}

func TestNominatimProvider_Geocode_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewNominatimProviderWithOptions(server.URL, nil)

	_, err := provider.Geocode(context.Background(), "Boston, MA")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusTooManyRequests, appErr.UpstreamStatus)
}
