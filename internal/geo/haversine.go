// Package geo holds the pure geographic helpers: great-circle distance and
// synthetic responder placement around an emergency.
package geo

import (
	"math"
	"rapid-response-sim/internal/domain"
)

// Mean earth radius used by every distance in the simulation.
const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// Distance returns the great-circle distance between a and b in kilometers
// (haversine formula). NaN components propagate to the result.
func Distance(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*sinLon*sinLon

	// Rounding can push h marginally past 1 for antipodal points.
	if h > 1 {
		h = 1
	}

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
