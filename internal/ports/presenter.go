package ports

import "rapid-response-sim/internal/domain"

// One step of the emergency request timeline.
type StatusStep string

const (
	StepRequest   StatusStep = "request"
	StepAmbulance StatusStep = "ambulance"
	StepHospital  StatusStep = "hospital"
)

// Receives the outputs of an emergency dispatch.
// A nil match means the candidate set was empty ("no match found").
type DispatchObserver interface {
	Notify(message string)
	StatusChanged(step StatusStep, done bool)
	LocationResolved(fix domain.LocationFix)
	AmbulanceConfirmed(match *domain.RankedCandidate, etaMinutes int)
	HospitalConfirmed(match *domain.RankedCandidate)
}

// Receives the conversation produced by the question flow.
type GuidanceObserver interface {
	SystemMessage(text string)
	UserMessage(text string)
	Typing(active bool)
	QuestionAsked(q domain.Question)
	GuidanceReady(steps []domain.GuidanceStep)
}

// Presentation layer collaborator consuming everything the core produces.
type Presenter interface {
	DispatchObserver
	GuidanceObserver
	// Hint shows input help from the driver, outside the conversation.
	Hint(text string)
}
