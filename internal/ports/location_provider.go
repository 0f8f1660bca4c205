package ports

import (
	"context"
	"rapid-response-sim/internal/domain"
)

// Contract for obtaining the caller's current position on a best-effort basis.
type LocationProvider interface {
	// Return the current coordinate. Implementations return an error wrapping
	// domain.ErrLocationUnavailable when no fix can be produced.
	Locate(ctx context.Context) (domain.Coordinate, error)
}
