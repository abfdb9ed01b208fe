package session

import "time"

// Timer is the handle of a pending one-shot callback
type Timer interface {
	Stop() bool
}

// Clock abstracts time so that expiry can be driven by tests
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock
var SystemClock Clock = systemClock{}
