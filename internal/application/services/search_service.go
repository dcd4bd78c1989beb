package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/medfind/medfinder/internal/domain/entities"
	"github.com/medfind/medfinder/internal/domain/providers"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

// Facility search radius bounds in meters
const (
	minRadiusMeters = 1000
	maxRadiusMeters = 50000
)

// SearchService orchestrates the aggregation pipeline: medicine normalization,
// location resolution, nearby-facility search, attribute synthesis, filtering
// and sorting. Each request runs the upstream chain sequentially; requests are
// independent of one another.
type SearchService struct {
	medicine   *MedicineService
	location   *LocationService
	facilities providers.FacilityProvider
	metrics    *observability.Metrics
}

// NewSearchService creates a new search service
func NewSearchService(
	medicine *MedicineService,
	location *LocationService,
	facilities providers.FacilityProvider,
	metrics *observability.Metrics,
) *SearchService {
	return &SearchService{
		medicine:   medicine,
		location:   location,
		facilities: facilities,
		metrics:    metrics,
	}
}

// Search runs one medication search. It either returns a complete result or
// fails with exactly one typed error; partial results are not produced.
func (s *SearchService) Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResult, error) {
	logger := observability.LoggerFromContext(ctx)

	medText := strings.TrimSpace(query.Medicine)
	locationText := strings.TrimSpace(query.Location)
	if medText == "" {
		return nil, apperrors.NewMissingParameterError("med parameter is required")
	}
	if locationText == "" {
		return nil, apperrors.NewMissingParameterError("location parameter is required")
	}

	start := time.Now()
	resolution, err := s.medicine.Resolve(ctx, medText)
	if err != nil {
		return nil, err
	}
	observability.RecordUpstreamMetric(ctx, s.metrics, "drug_normalization", time.Since(start))

	if !resolution.Resolved() {
		return nil, apperrors.NewInvalidMedicineError("no matching medicine found", resolution.Suggestions)
	}

	start = time.Now()
	coords, err := s.location.Resolve(ctx, locationText)
	if err != nil {
		return nil, err
	}
	observability.RecordUpstreamMetric(ctx, s.metrics, "geocoding", time.Since(start))

	if coords == nil {
		return nil, apperrors.NewLocationNotFoundError("location not found")
	}

	radiusMeters := clampRadiusMeters(query.RadiusKm)

	start = time.Now()
	facilities, err := s.facilities.Nearby(ctx, *coords, radiusMeters)
	if err != nil {
		return nil, wrapUpstream("facility search failed", err)
	}
	observability.RecordUpstreamMetric(ctx, s.metrics, "facility_search", time.Since(start))

	items := make([]*entities.EnrichedFacility, 0, len(facilities))
	for _, facility := range facilities {
		enriched := &entities.EnrichedFacility{
			Facility:     *facility,
			PriceUSD:     Price(resolution.RxCUI, facility.ID),
			Availability: AvailabilityFor(facility.ID),
		}
		if !matchesFilters(enriched, query) {
			continue
		}
		items = append(items, enriched)
	}

	sortItems(items, query.SortBy)

	logger.Debug().
		Str("rxcui", resolution.RxCUI).
		Int("radius_meters", radiusMeters).
		Int("results", len(items)).
		Msg("search pipeline completed")

	return &entities.SearchResult{
		Drug: entities.DrugSummary{
			Name:  resolution.Name,
			RxCUI: resolution.RxCUI,
		},
		Location: entities.LocationSummary{
			Text:      locationText,
			Latitude:  coords.Latitude,
			Longitude: coords.Longitude,
		},
		Total: len(items),
		Items: items,
	}, nil
}

// clampRadiusMeters converts a radius in kilometers to meters clamped into
// [1000, 50000], the precondition of every facility provider.
func clampRadiusMeters(radiusKm float64) int {
	meters := int(radiusKm * 1000)
	if meters < minRadiusMeters {
		return minRadiusMeters
	}
	if meters > maxRadiusMeters {
		return maxRadiusMeters
	}
	return meters
}

func matchesFilters(item *entities.EnrichedFacility, query entities.SearchQuery) bool {
	if query.PriceMin != nil && item.PriceUSD < *query.PriceMin {
		return false
	}
	if query.PriceMax != nil && item.PriceUSD > *query.PriceMax {
		return false
	}
	// only in_stock and low_stock act as filters; "any" and unrecognized
	// values pass everything through
	if query.Stock == string(entities.AvailabilityInStock) || query.Stock == string(entities.AvailabilityLowStock) {
		return string(item.Availability) == query.Stock
	}
	return true
}

// sortItems orders results by the requested key. Unrecognized sort values fall
// back to distance. Ties keep input order (stable sort); items with no known
// distance always trail items with one.
func sortItems(items []*entities.EnrichedFacility, sortBy string) {
	switch sortBy {
	case entities.SortByPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PriceUSD < items[j].PriceUSD
		})
	case entities.SortByPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PriceUSD > items[j].PriceUSD
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			di, dj := items[i].DistanceKm, items[j].DistanceKm
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return *di < *dj
		})
	}
}
