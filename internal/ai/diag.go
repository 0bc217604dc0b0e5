package ai

import (
	"time"

	"github.com/nightwarden/darkhunt/internal/world"
)

// TimerSnapshot lists the remaining time on every agent timer; zero means
// disarmed.
type TimerSnapshot struct {
	Retarget      time.Duration
	ChaseBurst    time.Duration
	ChaseCooldown time.Duration
	Panic         time.Duration
	Escape        time.Duration
	Respawn       time.Duration
}

// Diagnostics is a read-only view of an agent for debug overlays.
type Diagnostics struct {
	ID         world.EnemyID
	State      State
	Position   world.Point
	Spawn      world.SpawnCandidate
	HasSpawn   bool
	Target     world.PlayerTarget
	HasTarget  bool
	Visible    bool
	Collidable bool
	LitZones   int
	Timers     TimerSnapshot
}

func (a *Agent) Diagnostics() Diagnostics {
	return Diagnostics{
		ID:         a.id,
		State:      a.state,
		Position:   a.nav.Position(),
		Spawn:      a.spawn,
		HasSpawn:   a.hasSpawn,
		Target:     a.target,
		HasTarget:  a.hasTarget,
		Visible:    a.visible,
		Collidable: a.collidable,
		LitZones:   len(a.litZones),
		Timers: TimerSnapshot{
			Retarget:      a.retarget.Remaining(),
			ChaseBurst:    a.chaseBurst.Remaining(),
			ChaseCooldown: a.chaseCooldown.Remaining(),
			Panic:         a.stun.Remaining(),
			Escape:        a.escape.Remaining(),
			Respawn:       a.respawn.Remaining(),
		},
	}
}

// ChaseOnCooldown reports whether a new burst is currently blocked.
func (a *Agent) ChaseOnCooldown() bool { return a.chaseCooldown.Active() }
