package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerRunsInDueOrder(t *testing.T) {
	s := NewManualScheduler()
	var got []string

	s.AfterFunc(900*time.Millisecond, func() { got = append(got, "ambulance") })
	s.AfterFunc(300*time.Millisecond, func() { got = append(got, "first") })
	s.AfterFunc(900*time.Millisecond, func() { got = append(got, "tie") })

	s.Advance(299 * time.Millisecond)
	assert.Empty(t, got)
	assert.Equal(t, 3, s.Pending())

	s.Advance(time.Second)
	assert.Equal(t, []string{"first", "ambulance", "tie"}, got)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 1299*time.Millisecond, s.Now())
}

func TestManualSchedulerChainedCallbacks(t *testing.T) {
	s := NewManualScheduler()
	var got []time.Duration

	s.AfterFunc(900*time.Millisecond, func() {
		got = append(got, s.Now())
		s.AfterFunc(600*time.Millisecond, func() { got = append(got, s.Now()) })
	})

	s.Advance(1500 * time.Millisecond)
	require.Len(t, got, 2)
	assert.Equal(t, 900*time.Millisecond, got[0])
	assert.Equal(t, 1500*time.Millisecond, got[1])
}

func TestManualSchedulerStop(t *testing.T) {
	s := NewManualScheduler()
	ran := false

	task := s.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, task.Stop())
	assert.False(t, task.Stop(), "second stop reports already stopped")

	s.Advance(2 * time.Second)
	assert.False(t, ran)

	fired := s.AfterFunc(0, func() {})
	s.Advance(0)
	assert.False(t, fired.Stop(), "stop after firing reports false")
}

func TestTimerSchedulerFires(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	TimerScheduler{}.AfterFunc(time.Millisecond, wg.Done)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback did not run")
	}

	cancelled := TimerScheduler{}.AfterFunc(time.Hour, func() { t.Error("cancelled timer ran") })
	assert.True(t, cancelled.Stop())
}
