package scheduler

import (
	"rapid-response-sim/internal/ports"
	"sync"
	"time"
)

// ManualScheduler is a virtual clock. Callbacks only run inside Advance, on the
// caller's goroutine, in due-time order (scheduling order on ties).
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

var _ ports.Scheduler = (*ManualScheduler)(nil)

type manualTask struct {
	s       *ManualScheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) ports.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTask{s: s, at: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves the clock forward by d, running every callback that becomes
// due, including callbacks scheduled by other callbacks within the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.compactLocked()
			s.mu.Unlock()
			return
		}
		s.now = next.at
		next.fired = true
		s.mu.Unlock()

		next.f()
	}
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTask {
	var next *manualTask
	for _, t := range s.tasks {
		if t.stopped || t.fired || t.at > target {
			continue
		}
		if next == nil || t.at < next.at || (t.at == next.at && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (s *ManualScheduler) compactLocked() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.tasks = live
}

// Pending reports how many callbacks are still scheduled.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}
