package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_SamePoint(t *testing.T) {
	d := DistanceKm(42.3601, -71.0589, 42.3601, -71.0589)
	assert.Equal(t, 0.0, d)
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	testCases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expectedKm             float64
		tolerance              float64
	}{
		{
			name: "Boston to New York",
			lat1: 42.3601, lon1: -71.0589,
			lat2: 40.7128, lon2: -74.0060,
			expectedKm: 306, tolerance: 5,
		},
		{
			name: "London to Paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			expectedKm: 344, tolerance: 5,
		},
		{
			name: "short hop within a city",
			lat1: 42.3601, lon1: -71.0589,
			lat2: 42.3656, lon2: -71.0096,
			expectedKm: 4.1, tolerance: 0.3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := DistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			assert.InDelta(t, tc.expectedKm, d, tc.tolerance)
		})
	}
}

func TestDistanceKm_Symmetry(t *testing.T) {
	forward := DistanceKm(6.5244, 3.3792, 9.0765, 7.3986)
	backward := DistanceKm(9.0765, 7.3986, 6.5244, 3.3792)
	assert.InDelta(t, forward, backward, 1e-9)
}
