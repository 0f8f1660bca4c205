package domain

// CandidateKind is the kind of responder a Candidate represents.
type CandidateKind string

const (
	KindAmbulance CandidateKind = "ambulance"
	KindHospital  CandidateKind = "hospital"
)

// Candidate is a synthetic ambulance or hospital generated around an emergency.
// Candidates are created once per emergency and never mutated.
type Candidate struct {
	Kind       CandidateKind
	Name       string
	Coordinate Coordinate
	Contact    string // optional; empty for facilities
}

// RankedCandidate is a Candidate annotated with its distance from the emergency origin.
// It is derived per query and never stored on its own.
type RankedCandidate struct {
	Candidate
	DistanceKm float64
}
