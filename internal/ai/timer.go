package ai

import "time"

// Timer is an armed countdown checked once per tick. Arming an armed timer
// replaces the pending deadline.
type Timer struct {
	remaining time.Duration
	armed     bool
}

func (t *Timer) Arm(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.remaining = d
	t.armed = true
}

func (t *Timer) Cancel() {
	t.remaining = 0
	t.armed = false
}

func (t *Timer) Active() bool { return t.armed }

// Remaining returns the time left, 0 when disarmed.
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Tick advances the timer and reports true exactly once, on the tick it
// expires.
func (t *Timer) Tick(dt time.Duration) bool {
	if !t.armed {
		return false
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		t.remaining = 0
		t.armed = false
		return true
	}
	return false
}
