package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/medfind/medfinder/internal/domain/entities"
	"github.com/medfind/medfinder/internal/infrastructure/observability"
	apperrors "github.com/medfind/medfinder/pkg/errors"
)

const (
	defaultRadiusKm = 10.0
	minRadiusKm     = 1.0
	maxRadiusKm     = 50.0

	// display-friendly cap on spelling suggestions
	maxSuggestions = 5
)

// SearchService defines the pipeline operation consumed by the handler
type SearchService interface {
	Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResult, error)
}

// SearchHandler handles medication search requests
type SearchHandler struct {
	service SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := entities.SearchQuery{
		Medicine: params.Get("med"),
		Location: params.Get("location"),
		RadiusKm: clampRadiusKm(parseFloat(params.Get("radius_km"), defaultRadiusKm)),
		PriceMin: parseOptionalFloat(params.Get("price_min")),
		PriceMax: parseOptionalFloat(params.Get("price_max")),
		Stock:    paramOrDefault(params.Get("stock"), entities.StockFilterAny),
		SortBy:   paramOrDefault(params.Get("sort"), entities.SortByDistance),
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *SearchHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := observability.LoggerFromContext(r.Context())

	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		logger.Error().Err(err).Msg("search failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeMissingParameter:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeInvalidMedicine:
		suggestions := appErr.Suggestions
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":       appErr.Message,
			"suggestions": suggestions,
		})
	case apperrors.ErrorTypeLocationNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeUpstream:
		// log the detail, return only a generic message to the caller
		logger.Error().Err(appErr).Int("upstream_status", appErr.UpstreamStatus).Msg("upstream provider failed")
		respondWithError(w, http.StatusBadGateway, "upstream provider unavailable")
	default:
		logger.Error().Err(appErr).Msg("search failed")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func clampRadiusKm(radiusKm float64) float64 {
	if radiusKm < minRadiusKm {
		return minRadiusKm
	}
	if radiusKm > maxRadiusKm {
		return maxRadiusKm
	}
	return radiusKm
}

// parseFloat returns fallback for empty or unparsable input
func parseFloat(value string, fallback float64) float64 {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseOptionalFloat(value string) *float64 {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func paramOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
