package geo

import (
	"math"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
)

// RandomOffset draws a distance in [0, maxKm) and then a bearing, and returns
// the matching latitude/longitude deltas in degrees.
//
// This is a planar approximation: the longitude delta is not scaled by
// cos(latitude), so east-west offsets shrink in kilometers away from the
// equator. Generated distributions depend on it; keep it as is.
func RandomOffset(rng ports.RandomSource, maxKm float64) (dLat, dLon float64) {
	distanceKm := rng.Float64() * maxKm
	bearing := rng.Float64() * 2 * math.Pi

	deg := distanceKm / EarthRadiusKm * (180 / math.Pi)

	return deg * math.Sin(bearing), deg * math.Cos(bearing)
}

// Offset moves c by the given deltas, clamping latitude and wrapping longitude
// so the result stays a valid coordinate.
func Offset(c domain.Coordinate, dLat, dLon float64) domain.Coordinate {
	lat := math.Max(-90, math.Min(90, c.Lat+dLat))

	lon := c.Lon + dLon
	if lon > 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}

	return domain.Coordinate{Lat: lat, Lon: lon}
}
