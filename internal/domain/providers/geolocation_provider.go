package providers

import (
	"context"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeocodingProvider defines the interface for forward geocoding services.
// Exactly one implementation is selected at startup based on credential
// presence and held for the process lifetime.
type GeocodingProvider interface {
	// Geocode converts free text to coordinates. A nil result with a nil error
	// means the provider found no match for the text.
	Geocode(ctx context.Context, text string) (*Coordinates, error)
}
