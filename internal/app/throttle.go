package app

import "time"

// failureThreshold is how many consecutive failures turn a transient
// error into a persistent one.
const failureThreshold = 3

// idleCeilingFactor caps idle relaxation at this multiple of the base
// interval.
const idleCeilingFactor = 4

// Throttle is the per-kind adaptive interval controller. It owns no
// clock and does no waiting itself: the fetcher asks Interval() before
// each sleep and reports what happened afterwards, which keeps the
// whole policy unit-testable as pure state transitions.
//
// Policy:
//   - success with changed data resets to the base interval
//   - success with unchanged data past the idle threshold doubles the
//     interval up to the idle ceiling
//   - failure doubles the interval up to the backoff maximum
type Throttle struct {
	base        time.Duration
	maxBackoff  time.Duration
	idleEnabled bool
	idleAfter   int // unchanged results before relaxation kicks in

	interval   time.Duration
	failures   int
	idleStreak int
}

// NewThrottle builds a throttle starting at the base interval.
func NewThrottle(base, maxBackoff time.Duration, idleEnabled bool, idleAfter int) *Throttle {
	if base <= 0 {
		base = time.Second
	}
	if maxBackoff < base {
		maxBackoff = base
	}
	if idleAfter < 1 {
		idleAfter = 1
	}
	return &Throttle{
		base:        base,
		maxBackoff:  maxBackoff,
		idleEnabled: idleEnabled,
		idleAfter:   idleAfter,
		interval:    base,
	}
}

// Interval is the wait before the next fetch of this kind.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Failures is the current consecutive-failure count.
func (t *Throttle) Failures() int {
	return t.failures
}

// idleCeiling is the slowest the throttle will poll while healthy.
func (t *Throttle) idleCeiling() time.Duration {
	return t.base * idleCeilingFactor
}

// RecordSuccess updates the throttle after a successful fetch. changed
// reports whether the result differed from the previous snapshot: any
// change snaps straight back to the base interval so the user sees
// activity promptly, while a long unchanged streak relaxes polling.
func (t *Throttle) RecordSuccess(changed bool) {
	t.failures = 0
	if changed {
		t.idleStreak = 0
		t.interval = t.base
		return
	}
	t.idleStreak++
	if !t.idleEnabled || t.idleStreak < t.idleAfter {
		return
	}
	t.interval *= 2
	if ceiling := t.idleCeiling(); t.interval > ceiling {
		t.interval = ceiling
	}
}

// RecordFailure applies exponential backoff and reports whether the
// failure streak has crossed into persistent-error territory.
func (t *Throttle) RecordFailure() (persistent bool) {
	t.failures++
	t.idleStreak = 0
	t.interval *= 2
	if t.interval > t.maxBackoff {
		t.interval = t.maxBackoff
	}
	return t.failures >= failureThreshold
}
