package services

import (
	"context"
	"fmt"
	"rapid-response-sim/internal/domain"
)

// Session ties one dispatcher and one question flow into a single emergency
// experience. It holds no other state.
type Session struct {
	dispatcher *Dispatcher
	flow       *QuestionFlow
}

func NewSession(dispatcher *Dispatcher, flow *QuestionFlow) *Session {
	return &Session{dispatcher: dispatcher, flow: flow}
}

// Trigger starts a new emergency and a fresh guidance conversation. Any
// pending work of the previous emergency is cancelled.
func (s *Session) Trigger(ctx context.Context) (Emergency, error) {
	em, err := s.dispatcher.Start(ctx)
	if err != nil {
		return Emergency{}, fmt.Errorf("trigger emergency: %w", err)
	}

	s.flow.Reset()

	return em, nil
}

// Answer feeds one answer event into the question flow.
func (s *Session) Answer(id domain.QuestionID, value string) error {
	return s.flow.Submit(id, value)
}

func (s *Session) ResetGuidance() { s.flow.Reset() }

func (s *Session) CurrentQuestion() (domain.Question, bool) { return s.flow.Current() }

func (s *Session) Guidance() ([]domain.GuidanceStep, bool) { return s.flow.Guidance() }

func (s *Session) Flow() FlowSnapshot { return s.flow.Snapshot() }

func (s *Session) Emergency() (Emergency, bool) { return s.dispatcher.Current() }

// Close cancels every outstanding task.
func (s *Session) Close() {
	s.dispatcher.Cancel()
	s.flow.Close()
}
