package providers

import (
	"context"

	"github.com/medfind/medfinder/internal/domain/entities"
)

// FacilityProvider defines the interface for nearby pharmacy search services.
// Selected at startup alongside the geocoding provider.
type FacilityProvider interface {
	// Nearby returns pharmacies around center, in provider-return order.
	// radiusMeters is already clamped to [1000, 50000] by the caller; this is
	// a precondition, not something implementations re-check.
	Nearby(ctx context.Context, center Coordinates, radiusMeters int) ([]*entities.Facility, error)
}
