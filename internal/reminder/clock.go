package reminder

import (
	"time"
)

// Clock abstracts time and one-shot timers so the scheduler can be driven
// deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable one-shot handle.
type Timer interface {
	Stop() bool
}

// realClock backs the scheduler with the runtime clock.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// NewRealClock returns a Clock backed by the runtime clock.
func NewRealClock() Clock { return realClock{} }
