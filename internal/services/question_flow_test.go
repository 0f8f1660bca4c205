package services

import (
	"errors"
	"rapid-response-sim/internal/adapters/scheduler"
	"rapid-response-sim/internal/domain"
	"rapid-response-sim/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	id    domain.QuestionID
	value string
}

var criticalPath = []answer{
	{domain.QuestionEmergencyType, domain.EmergencyUnconscious},
	{domain.QuestionPatientHealth, domain.HealthCritical},
	{domain.QuestionConscious, domain.AnswerNo},
	{domain.QuestionBreathing, domain.BreathingNone},
	{domain.QuestionBleeding, domain.AnswerYes},
}

type countingEngine struct {
	calls int
}

func (e *countingEngine) Generate(state *domain.AnswerState) ([]domain.GuidanceStep, error) {
	e.calls++
	return DefaultRulebook().Generate(state)
}

func TestQuestionFlowInOrder(t *testing.T) {
	rec := &recorder{}
	engine := &countingEngine{}
	f := NewQuestionFlow(FlowOptions{Engine: engine, Observer: rec})
	f.Reset()

	assert.Equal(t, []string{
		"system:" + introMessage,
		"system:" + reassureMessage,
		"question:emergencyType",
	}, rec.Events())

	for i, a := range criticalPath {
		q, ok := f.Current()
		require.True(t, ok)
		require.Equal(t, a.id, q.ID)
		assert.Equal(t, FlowAwaitingAnswer, f.State())

		require.NoError(t, f.Submit(a.id, a.value))
		assert.Equal(t, i+1, f.Snapshot().Index)
	}

	assert.Equal(t, FlowComplete, f.State())
	assert.Equal(t, 1, engine.calls)

	steps, ok := f.Guidance()
	require.True(t, ok)
	assert.Len(t, steps, 15)
	assert.Equal(t, "guidance:15", rec.Events()[len(rec.Events())-1])
	assert.Contains(t, rec.Events(), "user:Person unconscious")

	_, ok = f.Current()
	assert.False(t, ok)
}

func TestQuestionFlowOutOfOrder(t *testing.T) {
	f := NewQuestionFlow(FlowOptions{})
	f.Reset()
	require.NoError(t, f.Submit(domain.QuestionEmergencyType, domain.EmergencyHeart))
	before := f.Snapshot()

	err := f.Submit(domain.QuestionBleeding, domain.AnswerYes)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.QuestionPatientHealth, te.Expected)
	assert.Equal(t, domain.QuestionBleeding, te.Got)

	assert.Equal(t, before, f.Snapshot())
}

func TestQuestionFlowUnknownOption(t *testing.T) {
	f := NewQuestionFlow(FlowOptions{})
	f.Reset()

	err := f.Submit(domain.QuestionEmergencyType, "alien-abduction")
	assert.ErrorIs(t, err, domain.ErrUnknownOption)
	assert.Equal(t, 0, f.Snapshot().Index)
}

func TestQuestionFlowCompleteRejectsAnswers(t *testing.T) {
	engine := &countingEngine{}
	f := NewQuestionFlow(FlowOptions{Engine: engine})
	f.Reset()
	for _, a := range criticalPath {
		require.NoError(t, f.Submit(a.id, a.value))
	}

	err := f.Submit(domain.QuestionBleeding, domain.AnswerNo)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, domain.AnswerYes, f.Snapshot().Answers[domain.QuestionBleeding])
}

func TestQuestionFlowResetFromAnyState(t *testing.T) {
	for n := 0; n <= len(criticalPath); n++ {
		f := NewQuestionFlow(FlowOptions{})
		f.Reset()
		for _, a := range criticalPath[:n] {
			require.NoError(t, f.Submit(a.id, a.value))
		}
		firstSession := f.Snapshot().SessionID

		f.Reset()

		s := f.Snapshot()
		assert.Equal(t, 0, s.Index)
		assert.Equal(t, FlowAwaitingAnswer, s.State)
		assert.Empty(t, s.Guidance)
		assert.NotEqual(t, firstSession, s.SessionID)
		for _, v := range s.Answers {
			assert.Equal(t, domain.Unanswered, v)
		}
		q, ok := f.Current()
		require.True(t, ok)
		assert.Equal(t, domain.QuestionEmergencyType, q.ID)
	}
}

func TestQuestionFlowBusyDuringTyping(t *testing.T) {
	clock := scheduler.NewManualScheduler()
	rec := &recorder{}
	f := NewQuestionFlow(FlowOptions{AckDelay: 650 * time.Millisecond, Scheduler: clock, Observer: rec})
	f.Reset()

	require.NoError(t, f.Submit(domain.QuestionEmergencyType, domain.EmergencyAccident))
	assert.True(t, f.Snapshot().Busy)
	assert.Equal(t, -1, rec.Index("question:patientHealth"))

	err := f.Submit(domain.QuestionPatientHealth, domain.HealthStable)
	require.ErrorIs(t, err, domain.ErrFlowBusy)
	assert.Equal(t, 1, f.Snapshot().Index)

	clock.Advance(649 * time.Millisecond)
	assert.True(t, f.Snapshot().Busy)

	clock.Advance(time.Millisecond)
	assert.False(t, f.Snapshot().Busy)

	typingOn, typingOff, next := rec.Index("typing:true"), rec.Index("typing:false"), rec.Index("question:patientHealth")
	require.NotEqual(t, -1, next)
	assert.Less(t, typingOn, typingOff)
	assert.Less(t, typingOff, next)

	require.NoError(t, f.Submit(domain.QuestionPatientHealth, domain.HealthStable))
}

func TestQuestionFlowResetDropsPendingAcknowledgement(t *testing.T) {
	clock := scheduler.NewManualScheduler()
	rec := &recorder{}
	f := NewQuestionFlow(FlowOptions{AckDelay: 650 * time.Millisecond, Scheduler: clock, Observer: rec})
	f.Reset()

	require.NoError(t, f.Submit(domain.QuestionEmergencyType, domain.EmergencyAccident))
	f.Reset()
	assert.False(t, f.Snapshot().Busy)
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, -1, rec.Index("question:patientHealth"))
	assert.Equal(t, 0, rec.Count("typing:false"))

	// The new session accepts the first question immediately.
	require.NoError(t, f.Submit(domain.QuestionEmergencyType, domain.EmergencyHeart))
}

func TestFlowStateString(t *testing.T) {
	assert.Equal(t, "awaiting_answer", FlowAwaitingAnswer.String())
	assert.Equal(t, "complete", FlowComplete.String())
	assert.Equal(t, "FlowState(9)", FlowState(9).String())
}

// inlineScheduler runs every callback before AfterFunc returns.
type inlineScheduler struct{}

type spentTask struct{}

func (spentTask) Stop() bool { return false }

func (inlineScheduler) AfterFunc(_ time.Duration, f func()) ports.Task {
	f()
	return spentTask{}
}

func TestQuestionFlowEchoPrecedesAcknowledgement(t *testing.T) {
	rec := &recorder{}
	f := NewQuestionFlow(FlowOptions{AckDelay: time.Nanosecond, Scheduler: inlineScheduler{}, Observer: rec})
	f.Reset()

	for _, a := range criticalPath {
		require.NoError(t, f.Submit(a.id, a.value))
		assert.False(t, f.Snapshot().Busy)
	}

	events := rec.Events()
	assert.Equal(t, []string{
		"user:Person unconscious",
		"typing:true",
		"typing:false",
		"question:patientHealth",
	}, events[3:7])
	assert.Equal(t, []string{
		"user:Yes",
		"typing:true",
		"typing:false",
		"guidance:15",
	}, events[len(events)-4:])
	assert.Equal(t, FlowComplete, f.State())
}
