package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medfind/medfinder/internal/adapters/cache"
	"github.com/medfind/medfinder/internal/domain/providers"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

type stubGeoProvider struct {
	coords *providers.Coordinates
	err    error
	calls  int
}

func (s *stubGeoProvider) Geocode(ctx context.Context, text string) (*providers.Coordinates, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.coords, nil
}

func TestLocationService_Resolve(t *testing.T) {
	provider := &stubGeoProvider{
		coords: &providers.Coordinates{Latitude: 42.3601, Longitude: -71.0589},
	}
	service := NewLocationService(provider, cache.NewMemoryAdapter(), nil)

	coords, err := service.Resolve(context.Background(), "Boston, MA")
	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 42.3601, coords.Latitude, 1e-6)
}

func TestLocationService_Resolve_CachesByNormalizedText(t *testing.T) {
	provider := &stubGeoProvider{
		coords: &providers.Coordinates{Latitude: 42.3601, Longitude: -71.0589},
	}
	service := NewLocationService(provider, cache.NewMemoryAdapter(), nil)
	ctx := context.Background()

	first, err := service.Resolve(ctx, "Boston, MA")
	require.NoError(t, err)
	second, err := service.Resolve(ctx, "  boston, ma ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.calls)
}

func TestLocationService_Resolve_NotFound(t *testing.T) {
	provider := &stubGeoProvider{}
	service := NewLocationService(provider, cache.NewMemoryAdapter(), nil)
	ctx := context.Background()

	coords, err := service.Resolve(ctx, "Zzzzznotaplace123")
	require.NoError(t, err)
	assert.Nil(t, coords)

	// not-found is cached as well
	coords, err = service.Resolve(ctx, "zzzzznotaplace123")
	require.NoError(t, err)
	assert.Nil(t, coords)
	assert.Equal(t, 1, provider.calls)
}

func TestLocationService_Resolve_WrapsPlainErrors(t *testing.T) {
	provider := &stubGeoProvider{err: errors.New("connection refused")}
	service := NewLocationService(provider, cache.NewMemoryAdapter(), nil)

	_, err := service.Resolve(context.Background(), "Boston, MA")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeUpstream, appErr.Type)
	assert.Zero(t, appErr.UpstreamStatus)
}
