package geo

import (
	"fmt"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
)

// FleetSpec describes how a set of synthetic responders is placed around a center.
//
// Unit i (0-based) is placed at a random offset in [0, BaseOffsetKm + i*OffsetStepKm).
// Names and contacts are taken from their pools in order, cycling when a pool is
// shorter than Count.
type FleetSpec struct {
	Kind         domain.CandidateKind
	Count        int
	Names        []string
	Contacts     []string
	BaseOffsetKm float64
	OffsetStepKm float64
	// Append the 1-based unit number to the pool name ("CityCare Ambulance 1").
	NumberNames bool
}

// Generate places Count candidates around center. Each call draws fresh
// offsets from rng.
func (f FleetSpec) Generate(rng ports.RandomSource, center domain.Coordinate) []domain.Candidate {
	if f.Count <= 0 {
		return []domain.Candidate{}
	}

	out := make([]domain.Candidate, 0, f.Count)
	for i := 0; i < f.Count; i++ {
		dLat, dLon := RandomOffset(rng, f.BaseOffsetKm+float64(i)*f.OffsetStepKm)

		out = append(out, domain.Candidate{
			Kind:       f.Kind,
			Name:       f.name(i),
			Coordinate: Offset(center, dLat, dLon),
			Contact:    f.contact(i),
		})
	}

	return out
}

func (f FleetSpec) name(i int) string {
	if len(f.Names) == 0 {
		return fmt.Sprintf("Unit %d", i+1)
	}

	base := f.Names[i%len(f.Names)]
	if f.NumberNames {
		return fmt.Sprintf("%s %d", base, i+1)
	}
	return base
}

func (f FleetSpec) contact(i int) string {
	if len(f.Contacts) == 0 {
		return ""
	}
	return f.Contacts[i%len(f.Contacts)]
}

// GenerateCandidates places count candidates uniformly within maxOffsetKm of center.
func GenerateCandidates(
	rng ports.RandomSource,
	center domain.Coordinate,
	count int,
	maxOffsetKm float64,
	names []string,
	contacts []string,
) []domain.Candidate {
	spec := FleetSpec{
		Count:        count,
		Names:        names,
		Contacts:     contacts,
		BaseOffsetKm: maxOffsetKm,
	}
	return spec.Generate(rng, center)
}

// Ambulances within roughly 2-4 km of the caller.
func DefaultAmbulanceFleet() FleetSpec {
	return FleetSpec{
		Kind:  domain.KindAmbulance,
		Count: 3,
		Names: []string{
			"CityCare Ambulance",
			"Quick Response Ambulance",
			"MedExpress Ambulance",
		},
		Contacts:     []string{"+91-9876543210", "+91-9812345678", "+91-9998887770"},
		BaseOffsetKm: 2,
		OffsetStepKm: 1,
		NumberNames:  true,
	}
}

// Hospitals within roughly 3-5 km of the caller.
func DefaultHospitalFleet() FleetSpec {
	return FleetSpec{
		Kind:  domain.KindHospital,
		Count: 3,
		Names: []string{
			"City General Hospital",
			"Shanti Multi-Speciality Hospital",
			"Metro Care Hospital",
		},
		BaseOffsetKm: 3,
		OffsetStepKm: 1,
	}
}
