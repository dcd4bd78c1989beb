package entities

// Availability classifies the synthesized stock level of a medicine at a facility
type Availability string

const (
	// AvailabilityInStock indicates the medicine is in stock
	AvailabilityInStock Availability = "in_stock"

	// AvailabilityLowStock indicates the medicine is running low
	AvailabilityLowStock Availability = "low_stock"

	// AvailabilityOutOfStock indicates the medicine is out of stock
	AvailabilityOutOfStock Availability = "out_of_stock"
)

// Facility represents a pharmacy-like point of interest returned by a places
// provider. Optional fields are nil when the provider did not supply them; a
// nil DistanceKm means the distance could not be determined and must never be
// treated as zero.
type Facility struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    *string  `json:"address,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lon,omitempty"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// EnrichedFacility is a Facility carrying synthesized price and availability.
// Both attributes derive deterministically from (drug RxCUI, facility ID).
type EnrichedFacility struct {
	Facility
	PriceUSD     float64      `json:"price_usd"`
	Availability Availability `json:"availability"`
}
