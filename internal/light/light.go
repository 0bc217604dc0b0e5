package light

import (
	"github.com/nightwarden/darkhunt/internal/exposure"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Darkness receives light injections.
type Darkness interface {
	InjectLight(zoneID string, strength, decayPerSecond float64) bool
	InjectLightAt(p world.Point, radius, strength, decayPerSecond float64) int
	// ZoneAt returns the nearest zone whose area covers p.
	ZoneAt(p world.Point) (string, bool)
}

// Caster sweeps a beam through the tracked enemies.
type Caster interface {
	CastCone(origin, dir world.Point, length, halfAngle float64) (exposure.Hit, world.Point, bool)
}

// Toucher finds enemies inside an area and fires their light triggers.
type Toucher interface {
	Overlap(center world.Point, radius float64) []exposure.Target
	Trigger(id world.EnemyID)
}

// Switcher toggles registered lit volumes.
type Switcher interface {
	SetActive(id string, on bool) bool
}
