package services

import (
	"math"

	"github.com/medfind/medfinder/internal/domain/entities"
)

// Synthesized price and availability stand in for a live pricing feed: the
// same (drug, facility) pair reproduces identical values across requests and
// process restarts, with no randomness or clock dependency. Swapping in a
// real data source later only needs to replace these two functions.

// Price derives a deterministic price in USD for a drug at a facility. The
// result lies in [10.00, 52.00): a per-drug base in [10, 50) plus a
// per-facility cent-level variation in [0.00, 2.00), rounded to 2 decimals.
func Price(drugID, facilityID string) float64 {
	base := 10 + float64(hash31(drugID)%40)
	cents := float64(hash31(facilityID)%200) / 100
	return math.Round((base+cents)*100) / 100
}

// AvailabilityFor derives a deterministic stock classification for a facility.
// The partition is fixed: hash mod 100 below 10 is out of stock, below 35 is
// low stock, everything else is in stock.
func AvailabilityFor(facilityID string) entities.Availability {
	switch value := hash31(facilityID) % 100; {
	case value < 10:
		return entities.AvailabilityOutOfStock
	case value < 35:
		return entities.AvailabilityLowStock
	default:
		return entities.AvailabilityInStock
	}
}

// hash31 is a polynomial rolling hash with multiplier 31 and unsigned 32-bit
// wraparound.
func hash31(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
