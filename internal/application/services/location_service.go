package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/medfind/medfinder/internal/domain/providers"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
)

const geoCacheKeyPrefix = "geo:v1:"

// LocationService resolves free-text locations to coordinates. The cache key
// space is shared across geocoding providers: a given configuration only ever
// uses one, chosen at startup. Not-found outcomes are cached too.
type LocationService struct {
	provider providers.GeocodingProvider
	cache    providers.CacheProvider
	metrics  *observability.Metrics
}

// NewLocationService creates a new location resolution service
func NewLocationService(provider providers.GeocodingProvider, cache providers.CacheProvider, metrics *observability.Metrics) *LocationService {
	return &LocationService{
		provider: provider,
		cache:    cache,
		metrics:  metrics,
	}
}

// cachedLocation records a geocoding outcome, including "no match"
type cachedLocation struct {
	Found     bool    `json:"found"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Resolve converts free text to coordinates. A nil result with a nil error
// means the location was not found.
func (s *LocationService) Resolve(ctx context.Context, text string) (*providers.Coordinates, error) {
	trimmed := strings.TrimSpace(text)
	cacheKey := geoCacheKeyPrefix + strings.ToLower(trimmed)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var entry cachedLocation
			if err := json.Unmarshal(cached, &entry); err == nil {
				observability.RecordCacheHit(ctx, s.metrics, "geo")
				if !entry.Found {
					return nil, nil
				}
				return &providers.Coordinates{
					Latitude:  entry.Latitude,
					Longitude: entry.Longitude,
				}, nil
			}
		}
		observability.RecordCacheMiss(ctx, s.metrics, "geo")
	}

	coords, err := s.provider.Geocode(ctx, trimmed)
	if err != nil {
		return nil, wrapUpstream("geocoding failed", err)
	}

	entry := cachedLocation{}
	if coords != nil {
		entry.Found = true
		entry.Latitude = coords.Latitude
		entry.Longitude = coords.Longitude
	}
	if s.cache != nil {
		if payload, err := json.Marshal(entry); err == nil {
			_ = s.cache.Set(ctx, cacheKey, payload, 0)
		}
	}

	return coords, nil
}
