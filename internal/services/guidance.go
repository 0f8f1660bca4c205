package services

import (
	"fmt"
	"rapid-response-sim/internal/domain"
)

// Rule maps one answer value of one question to the steps it contributes.
type Rule struct {
	Question domain.QuestionID
	Value    string
	Steps    []domain.GuidanceStep
}

// Rulebook is a flat lookup table from (question, value) to guidance steps.
//
// Every question contributes independently, in catalog order, followed by the
// closing steps. Values without a rule contribute nothing.
type Rulebook struct {
	order   []domain.QuestionID
	table   map[domain.QuestionID]map[string][]domain.GuidanceStep
	closing []domain.GuidanceStep
}

// NewRulebook builds a rulebook. A later rule for the same (question, value)
// replaces an earlier one.
func NewRulebook(rules []Rule, closing []domain.GuidanceStep) *Rulebook {
	rb := &Rulebook{
		table:   make(map[domain.QuestionID]map[string][]domain.GuidanceStep),
		closing: append([]domain.GuidanceStep(nil), closing...),
	}

	for _, q := range domain.Questions() {
		rb.order = append(rb.order, q.ID)
	}

	for _, r := range rules {
		byValue, ok := rb.table[r.Question]
		if !ok {
			byValue = make(map[string][]domain.GuidanceStep)
			rb.table[r.Question] = byValue
		}
		byValue[r.Value] = append([]domain.GuidanceStep(nil), r.Steps...)
	}

	return rb
}

// Generate assembles the ordered first-aid steps for a completed answer state.
// It fails with domain.ErrIncompleteState when any question is unanswered.
func (rb *Rulebook) Generate(state *domain.AnswerState) ([]domain.GuidanceStep, error) {
	if state == nil {
		return nil, fmt.Errorf("generate guidance: %w: nil state", domain.ErrIncompleteState)
	}
	if missing := state.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("generate guidance: %w: missing %v", domain.ErrIncompleteState, missing)
	}

	steps := make([]domain.GuidanceStep, 0, 16)
	for _, id := range rb.order {
		value, _ := state.Get(id)
		steps = append(steps, rb.table[id][value]...)
	}
	steps = append(steps, rb.closing...)

	return steps, nil
}

var defaultRulebook = NewRulebook(defaultRules(), []domain.GuidanceStep{
	"Stay with the patient and speak calmly.",
	"Do not move the patient if you suspect head, neck, or back injury unless there is immediate danger.",
	"Be ready to share what happened with the ambulance and hospital staff.",
})

// DefaultRulebook returns the built-in first-aid rules.
func DefaultRulebook() *Rulebook { return defaultRulebook }

// GenerateGuidance applies the built-in rules to state.
func GenerateGuidance(state *domain.AnswerState) ([]domain.GuidanceStep, error) {
	return defaultRulebook.Generate(state)
}

func defaultRules() []Rule {
	return []Rule{
		{Question: domain.QuestionEmergencyType, Value: domain.EmergencyAccident, Steps: []domain.GuidanceStep{
			"Ensure the area is safe. Move the patient away from traffic if possible.",
			"Do not move the neck or spine if you suspect head or back injury.",
		}},
		{Question: domain.QuestionEmergencyType, Value: domain.EmergencyHeart, Steps: []domain.GuidanceStep{
			"Make the patient sit in a semi-upright position, back supported.",
			"Ask if they have heart medicines prescribed and help them take it only if they confirm.",
		}},
		{Question: domain.QuestionEmergencyType, Value: domain.EmergencyBreathing, Steps: []domain.GuidanceStep{
			"Help the patient sit slightly forward, with support for arms and back.",
			"Loosen tight clothing around the neck and chest.",
		}},
		{Question: domain.QuestionEmergencyType, Value: domain.EmergencyUnconscious, Steps: []domain.GuidanceStep{
			"Check quickly if the patient is breathing.",
			"Lay them on their back on a flat surface and open the airway (head tilt, chin lift).",
		}},
		{Question: domain.QuestionEmergencyType, Value: domain.EmergencyOther, Steps: []domain.GuidanceStep{
			"Keep the patient comfortable and away from any danger.",
		}},

		{Question: domain.QuestionPatientHealth, Value: domain.HealthStable, Steps: []domain.GuidanceStep{
			"Keep talking to the patient and monitor their condition every few minutes.",
		}},
		{Question: domain.QuestionPatientHealth, Value: domain.HealthModerate, Steps: []domain.GuidanceStep{
			"Avoid unnecessary movement and keep the patient warm and comfortable.",
		}},
		{Question: domain.QuestionPatientHealth, Value: domain.HealthCritical, Steps: []domain.GuidanceStep{
			"Do not delay. Focus on basic life support: breathing, bleeding control, and consciousness.",
		}},

		{Question: domain.QuestionConscious, Value: domain.AnswerNo, Steps: []domain.GuidanceStep{
			"If unresponsive, shout for help and check breathing immediately.",
			"If there is no normal breathing, start CPR if you are trained.",
			"Do not give anything to drink or eat.",
		}},
		{Question: domain.QuestionConscious, Value: domain.AnswerYes, Steps: []domain.GuidanceStep{
			"Reassure the patient and ask where they feel pain or discomfort.",
		}},

		{Question: domain.QuestionBreathing, Value: domain.BreathingNone, Steps: []domain.GuidanceStep{
			"If trained, start chest compressions immediately (30 compressions then 2 breaths).",
			"If not trained, give hands-only CPR: push hard and fast in the center of the chest.",
		}},
		{Question: domain.QuestionBreathing, Value: domain.BreathingDifficult, Steps: []domain.GuidanceStep{
			"Encourage slow, deep breaths. Keep them sitting slightly forward.",
			"Remove any tight clothing, scarf, or tie from the neck area.",
		}},
		{Question: domain.QuestionBreathing, Value: domain.BreathingNormal, Steps: []domain.GuidanceStep{
			"Keep checking breathing every 1–2 minutes.",
		}},

		{Question: domain.QuestionBleeding, Value: domain.AnswerYes, Steps: []domain.GuidanceStep{
			"Apply firm, direct pressure to the wound using a clean cloth or bandage.",
			"If blood soaks through, do not remove the first cloth. Add another on top and keep pressing.",
			"If safe, raise the bleeding area above the level of the heart.",
			"Do not apply a tourniquet unless you are trained.",
		}},
		{Question: domain.QuestionBleeding, Value: domain.AnswerNo, Steps: []domain.GuidanceStep{
			"Look quickly for hidden bleeding or obvious fractures.",
		}},
	}
}
