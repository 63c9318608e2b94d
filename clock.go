package retryctl

import "time"

// Clock abstracts timer creation so tests can drive delays without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending callback that can be cancelled before it fires.
type Timer interface {
	Stop() bool
}

// realClock implements Clock using the standard time package.
type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
