package services

import (
	"context"
	"math/rand/v2"
	"rapid-response-sim/internal/adapters/location"
	"rapid-response-sim/internal/adapters/scheduler"
	"rapid-response-sim/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *recorder, *scheduler.ManualScheduler) {
	t.Helper()

	rec := &recorder{}
	clock := scheduler.NewManualScheduler()
	d, err := NewDispatcher(DefaultDispatchConfig(), location.NewStaticProvider(mumbai), rand.New(rand.NewPCG(3, 4)), clock, rec)
	require.NoError(t, err)
	f := NewQuestionFlow(FlowOptions{AckDelay: 650 * time.Millisecond, Scheduler: clock, Observer: rec})
	return NewSession(d, f), rec, clock
}

func TestSessionEndToEnd(t *testing.T) {
	s, rec, clock := newTestSession(t)

	em, err := s.Trigger(context.Background())
	require.NoError(t, err)
	assert.Less(t, rec.Index("status:request:true"), rec.Index("question:emergencyType"))

	for _, a := range criticalPath {
		q, ok := s.CurrentQuestion()
		require.True(t, ok)
		require.Equal(t, a.id, q.ID)
		require.NoError(t, s.Answer(a.id, a.value))
		clock.Advance(650 * time.Millisecond)
	}

	steps, ok := s.Guidance()
	require.True(t, ok)
	assert.Len(t, steps, 15)
	assert.Equal(t, FlowComplete, s.Flow().State)

	cur, ok := s.Emergency()
	require.True(t, ok)
	assert.Equal(t, em.ID, cur.ID)
	assert.True(t, cur.AmbulanceConfirmed)
	assert.True(t, cur.HospitalConfirmed)
}

func TestSessionRetriggerResetsConversation(t *testing.T) {
	s, rec, clock := newTestSession(t)

	_, err := s.Trigger(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Answer(domain.QuestionEmergencyType, domain.EmergencyHeart))

	_, err = s.Trigger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.Flow().Index)
	assert.False(t, s.Flow().Busy)

	clock.Advance(3 * time.Second)
	assert.Equal(t, 1, rec.Count("ambulance:"))
	assert.Equal(t, 0, rec.Count("question:patientHealth"))
}

func TestSessionResetGuidanceKeepsDispatch(t *testing.T) {
	s, rec, clock := newTestSession(t)

	_, err := s.Trigger(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Answer(domain.QuestionEmergencyType, domain.EmergencyHeart))
	clock.Advance(650 * time.Millisecond)

	s.ResetGuidance()
	assert.Equal(t, 0, s.Flow().Index)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, rec.Count("hospital:true"))
}

func TestSessionClose(t *testing.T) {
	s, rec, clock := newTestSession(t)

	_, err := s.Trigger(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Answer(domain.QuestionEmergencyType, domain.EmergencyHeart))

	s.Close()
	assert.Equal(t, 0, clock.Pending())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 0, rec.Count("ambulance:"))
	assert.Equal(t, 0, rec.Count("typing:false"))
}

func TestSessionTriggerError(t *testing.T) {
	s, _, _ := newTestSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Trigger(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "trigger emergency")
}
