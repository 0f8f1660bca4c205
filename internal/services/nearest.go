package services

import (
	"math"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/geo"
)

// Select the candidate closest to origin by great-circle distance.
//
// The scan is a single greedy pass. Ties keep the first candidate seen, so the
// result is deterministic for a given candidate order. An empty candidate set
// is not an error: the result is nil and callers render "no match".
func Nearest(origin domain.Coordinate, candidates []domain.Candidate) *domain.RankedCandidate {
	if len(candidates) == 0 {
		return nil
	}

	best := -1
	shortest := math.Inf(1)

	for i, c := range candidates {
		d := geo.Distance(origin, c.Coordinate)
		// Strict comparison is the tie-breaker: earlier candidates win.
		if d < shortest {
			shortest = d
			best = i
		}
	}

	// Every distance was NaN (malformed coordinates). Surface the NaN on the
	// first candidate instead of pretending nothing was offered.
	if best < 0 {
		best = 0
		shortest = geo.Distance(origin, candidates[0].Coordinate)
	}

	return &domain.RankedCandidate{
		Candidate:  candidates[best],
		DistanceKm: shortest,
	}
}
