package scheduler

import (
	"rapid-response-sim/internal/ports"
	"time"
)

// TimerScheduler runs callbacks on runtime timers. *time.Timer already
// satisfies ports.Task.
type TimerScheduler struct{}

var _ ports.Scheduler = TimerScheduler{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) ports.Task {
	return time.AfterFunc(d, f)
}
