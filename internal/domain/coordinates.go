package domain

import (
	"fmt"
	"math"
)

// Coordinate is an immutable geographic coordinate in decimal degrees (WGS84).
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate reports whether the coordinate lies inside the valid latitude and
// longitude ranges. NaN components are rejected.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// String formats the coordinate with 4 decimals, the precision shown to callers.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lon)
}

// LocationFix is the coordinate an emergency is dispatched to.
// Approximate is set when the location provider failed and a fallback was substituted.
type LocationFix struct {
	Coordinate  Coordinate
	Approximate bool
}
