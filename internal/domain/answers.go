package domain

import (
	"fmt"
)

// Unanswered marks a question that has not received an answer yet.
const Unanswered = ""

// AnswerState accumulates the answers of one guidance session.
// It always holds exactly one entry per catalog question.
type AnswerState struct {
	values map[QuestionID]string
}

func NewAnswerState() *AnswerState {
	s := &AnswerState{}
	s.Reset()
	return s
}

// Reset marks every question as unanswered.
func (s *AnswerState) Reset() {
	s.values = make(map[QuestionID]string, len(questionCatalog))
	for _, q := range questionCatalog {
		s.values[q.ID] = Unanswered
	}
}

// Set records the answer for a catalog question.
func (s *AnswerState) Set(id QuestionID, value string) error {
	if _, ok := s.values[id]; !ok {
		return fmt.Errorf("set answer: %w: %q", ErrUnknownQuestion, id)
	}
	s.values[id] = value
	return nil
}

// Get returns the recorded answer and whether the question was answered.
func (s *AnswerState) Get(id QuestionID) (string, bool) {
	v, ok := s.values[id]
	if !ok || v == Unanswered {
		return Unanswered, false
	}
	return v, true
}

// Missing lists unanswered questions in catalog order.
func (s *AnswerState) Missing() []QuestionID {
	var out []QuestionID
	for _, q := range questionCatalog {
		if _, ok := s.Get(q.ID); !ok {
			out = append(out, q.ID)
		}
	}
	return out
}

func (s *AnswerState) Complete() bool { return len(s.Missing()) == 0 }

// Clone returns an independent copy.
func (s *AnswerState) Clone() *AnswerState {
	c := &AnswerState{values: make(map[QuestionID]string, len(s.values))}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Map returns a copy of the answers keyed by question id.
func (s *AnswerState) Map() map[QuestionID]string {
	out := make(map[QuestionID]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// GuidanceStep is one instruction line of the first-aid advice.
type GuidanceStep string
