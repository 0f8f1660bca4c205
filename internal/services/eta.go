package services

import "math"

const (
	// Assumed ambulance speed in city traffic.
	AssumedSpeedKmH = 35.0

	MinETAMinutes = 3
	MaxETAMinutes = 7
)

// ETAMinutes estimates the ambulance arrival time for a distance in km.
// Minutes are rounded first and then clamped to [MinETAMinutes, MaxETAMinutes].
// A NaN distance yields MaxETAMinutes.
func ETAMinutes(distanceKm float64) int {
	if math.IsNaN(distanceKm) {
		return MaxETAMinutes
	}

	minutes := math.Round(distanceKm / AssumedSpeedKmH * 60)
	minutes = math.Max(minutes, MinETAMinutes)
	minutes = math.Min(minutes, MaxETAMinutes)

	return int(minutes)
}
