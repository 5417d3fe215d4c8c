package scheduler

import "time"

type Scheduler interface {
	Start() error
	Stop()
	// Reset restarts the current interval.
	Reset()
}

// IntervalMinute is the refresh cadence the quote provider recommends.
const IntervalMinute = 1 * time.Minute
