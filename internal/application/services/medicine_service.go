package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/medfind/medfinder/internal/domain/entities"
	"github.com/medfind/medfinder/internal/domain/providers"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

const drugCacheKeyPrefix = "drug:v1:"

// MedicineService resolves free-text medicine names to canonical drug concepts.
// Resolutions, including not-found outcomes, are memoized by normalized input
// text for the process lifetime so repeated invalid queries do not re-hit the
// provider.
type MedicineService struct {
	provider providers.DrugNormalizationProvider
	cache    providers.CacheProvider
	metrics  *observability.Metrics
}

// NewMedicineService creates a new medicine resolution service
func NewMedicineService(provider providers.DrugNormalizationProvider, cache providers.CacheProvider, metrics *observability.Metrics) *MedicineService {
	return &MedicineService{
		provider: provider,
		cache:    cache,
		metrics:  metrics,
	}
}

// Resolve normalizes a medicine name to a canonical drug concept, or to a
// ranked list of spelling suggestions when no concept matches.
func (s *MedicineService) Resolve(ctx context.Context, name string) (*entities.DrugResolution, error) {
	trimmed := strings.TrimSpace(name)
	cacheKey := drugCacheKeyPrefix + strings.ToLower(trimmed)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var resolution entities.DrugResolution
			if err := json.Unmarshal(cached, &resolution); err == nil {
				observability.RecordCacheHit(ctx, s.metrics, "drug")
				return &resolution, nil
			}
		}
		observability.RecordCacheMiss(ctx, s.metrics, "drug")
	}

	candidates, err := s.provider.FindCandidates(ctx, trimmed)
	if err != nil {
		return nil, wrapUpstream("medicine normalization failed", err)
	}

	resolution := &entities.DrugResolution{}
	if len(candidates) > 0 {
		chosen := candidates[0]
		for _, candidate := range candidates {
			if strings.EqualFold(candidate.Name, trimmed) {
				chosen = candidate
				break
			}
		}
		resolution.RxCUI = chosen.RxCUI
		resolution.Name = chosen.Name
	} else {
		suggestions, err := s.provider.SpellingSuggestions(ctx, trimmed)
		if err != nil {
			return nil, wrapUpstream("spelling suggestion lookup failed", err)
		}
		resolution.Suggestions = suggestions
	}

	if s.cache != nil {
		if payload, err := json.Marshal(resolution); err == nil {
			_ = s.cache.Set(ctx, cacheKey, payload, 0)
		}
	}

	return resolution, nil
}

// wrapUpstream passes typed provider errors through and wraps anything else
// as an upstream failure with unknown status.
func wrapUpstream(message string, err error) error {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.NewUpstreamError(message, 0, err)
}
