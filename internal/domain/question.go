package domain

// QuestionID identifies one of the fixed first-aid questions.
type QuestionID string

const (
	QuestionEmergencyType QuestionID = "emergencyType"
	QuestionPatientHealth QuestionID = "patientHealth"
	QuestionConscious     QuestionID = "conscious"
	QuestionBreathing     QuestionID = "breathing"
	QuestionBleeding      QuestionID = "bleeding"
)

// Option values accepted by the question catalog.
const (
	EmergencyAccident    = "accident"
	EmergencyHeart       = "heart"
	EmergencyBreathing   = "breathing"
	EmergencyUnconscious = "unconscious"
	EmergencyOther       = "other"

	HealthStable   = "stable"
	HealthModerate = "moderate"
	HealthCritical = "critical"

	AnswerYes = "yes"
	AnswerNo  = "no"

	BreathingNormal    = "normal"
	BreathingDifficult = "difficult"
	BreathingNone      = "none"
)

type Option struct {
	Value string
	Label string
}

type Question struct {
	ID      QuestionID
	Prompt  string
	Options []Option
}

// Option returns the option with the given value, if the question offers it.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

var questionCatalog = []Question{
	{
		ID:     QuestionEmergencyType,
		Prompt: "What type of emergency is this?",
		Options: []Option{
			{Value: EmergencyAccident, Label: "Road accident / injury"},
			{Value: EmergencyHeart, Label: "Chest pain / heart issue"},
			{Value: EmergencyBreathing, Label: "Breathing problem"},
			{Value: EmergencyUnconscious, Label: "Person unconscious"},
			{Value: EmergencyOther, Label: "Other / not sure"},
		},
	},
	{
		ID:     QuestionPatientHealth,
		Prompt: "How is the patient's overall condition?",
		Options: []Option{
			{Value: HealthStable, Label: "Stable"},
			{Value: HealthModerate, Label: "Serious but awake"},
			{Value: HealthCritical, Label: "Very critical"},
		},
	},
	{
		ID:     QuestionConscious,
		Prompt: "Is the patient conscious (responding when you talk or touch)?",
		Options: []Option{
			{Value: AnswerYes, Label: "Yes"},
			{Value: AnswerNo, Label: "No"},
		},
	},
	{
		ID:     QuestionBreathing,
		Prompt: "How is the breathing?",
		Options: []Option{
			{Value: BreathingNormal, Label: "Normal"},
			{Value: BreathingDifficult, Label: "Difficult or noisy"},
			{Value: BreathingNone, Label: "Not breathing"},
		},
	},
	{
		ID:     QuestionBleeding,
		Prompt: "Is there heavy bleeding that is not stopping?",
		Options: []Option{
			{Value: AnswerYes, Label: "Yes"},
			{Value: AnswerNo, Label: "No"},
		},
	},
}

// QuestionCount is the number of questions in the catalog.
var QuestionCount = len(questionCatalog)

// Questions returns the fixed question sequence in asking order.
// The returned slice is a copy; the catalog itself is never mutated.
func Questions() []Question {
	out := make([]Question, len(questionCatalog))
	for i, q := range questionCatalog {
		opts := make([]Option, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{ID: q.ID, Prompt: q.Prompt, Options: opts}
	}
	return out
}

// LookupQuestion finds a catalog question by id.
func LookupQuestion(id QuestionID) (Question, bool) {
	for _, q := range Questions() {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
