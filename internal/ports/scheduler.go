package ports

import "time"

// A scheduled callback that can be cancelled before it fires.
type Task interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Contract for running callbacks after a delay without blocking the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}
