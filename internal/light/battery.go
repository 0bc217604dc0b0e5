// Package light implements the light sources players use against the
// enemies: flashlights, battery lamps and timed room lights.
package light

import "time"

// Battery is a charge that drains while its light is on. A battery with a
// recharge duration refills itself after running flat; one without must be
// replaced.
type Battery struct {
	working  time.Duration
	recharge time.Duration

	remaining    time.Duration
	rechargeLeft time.Duration
	recharging   bool
}

// NewBattery returns a full battery.
func NewBattery(working, recharge time.Duration) *Battery {
	return &Battery{working: working, recharge: recharge, remaining: working}
}

// Working reports whether the battery can power a light.
func (b *Battery) Working() bool { return !b.recharging && b.remaining > 0 }

func (b *Battery) Recharging() bool { return b.recharging }

// Charge is the remaining fraction of a full battery.
func (b *Battery) Charge() float64 {
	if b.working <= 0 {
		return 0
	}
	return float64(b.remaining) / float64(b.working)
}

// Replace installs a fresh battery.
func (b *Battery) Replace() {
	b.remaining = b.working
	b.recharging = false
	b.rechargeLeft = 0
}

// Step drains the battery when on and advances a pending recharge. It
// reports true on the tick the battery runs flat.
func (b *Battery) Step(dt time.Duration, on bool) (depleted bool) {
	if on && b.Working() {
		b.remaining -= dt
		if b.remaining <= 0 {
			b.remaining = 0
			depleted = true
			if b.recharge > 0 {
				b.recharging = true
				b.rechargeLeft = b.recharge
				return depleted
			}
		}
	}
	if b.recharging {
		b.rechargeLeft -= dt
		if b.rechargeLeft <= 0 {
			b.Replace()
		}
	}
	return depleted
}
