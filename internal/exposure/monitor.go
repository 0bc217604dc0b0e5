// Package exposure detects when enemies are lit and publishes the result on
// the event bus. Three mechanisms feed the same events: volume sweeps, casts
// from a light source, and trigger callbacks from light collaborators.
package exposure

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/core/event"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Target is an enemy the monitor can detect. Only collidable targets are
// hit; hidden or panicking enemies are transparent to light.
type Target interface {
	ID() world.EnemyID
	Position() world.Point
	Collidable() bool
}

// Shape is a lit volume.
type Shape interface {
	Contains(p world.Point) bool
}

// Sphere is a ball-shaped volume.
type Sphere struct {
	Center world.Point
	Radius float64
}

func (s Sphere) Contains(p world.Point) bool {
	return world.Distance(s.Center, p) <= s.Radius
}

type volume struct {
	id     string
	shape  Shape
	active bool
}

// Stats counts published detections.
type Stats struct {
	Entered int
	Exited  int
	Exposed int
}

// Monitor tracks targets against lit volumes.
type Monitor struct {
	bus *event.Bus
	log *zap.Logger

	targets []Target
	volumes []*volume
	byID    map[string]*volume
	inside  map[world.EnemyID]map[string]struct{}

	stats Stats
}

func NewMonitor(bus *event.Bus, log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Monitor{
		bus:    bus,
		log:    log,
		byID:   make(map[string]*volume),
		inside: make(map[world.EnemyID]map[string]struct{}),
	}
}

// Track registers a target. Targets are swept in registration order.
func (m *Monitor) Track(t Target) {
	m.targets = append(m.targets, t)
	m.inside[t.ID()] = make(map[string]struct{})
}

// AddVolume registers an inactive lit volume.
func (m *Monitor) AddVolume(id string, shape Shape) error {
	if _, dup := m.byID[id]; dup {
		return fmt.Errorf("volume %q already registered", id)
	}
	v := &volume{id: id, shape: shape}
	m.volumes = append(m.volumes, v)
	m.byID[id] = v
	return nil
}

// SetActive switches a volume on or off. Membership changes are published
// by the next Sweep. Returns false for an unknown volume.
func (m *Monitor) SetActive(id string, on bool) bool {
	v, ok := m.byID[id]
	if !ok {
		return false
	}
	v.active = on
	return true
}

// Active reports whether the volume is lit.
func (m *Monitor) Active(id string) bool {
	v, ok := m.byID[id]
	return ok && v.active
}

// Sweep tests every target against every volume and publishes enter and
// exit transitions. A target that is not collidable counts as outside every
// volume.
func (m *Monitor) Sweep() {
	for _, t := range m.targets {
		id := t.ID()
		in := m.inside[id]
		pos := t.Position()
		solid := t.Collidable()
		for _, v := range m.volumes {
			now := solid && v.active && v.shape.Contains(pos)
			_, was := in[v.id]
			switch {
			case now && !was:
				in[v.id] = struct{}{}
				m.stats.Entered++
				event.Emit(m.bus, event.LightZoneEntered{EnemyID: id, ZoneID: v.id})
				m.log.Debug("enemy entered lit volume", zap.Stringer("enemy", id), zap.String("volume", v.id))
			case !now && was:
				delete(in, v.id)
				m.stats.Exited++
				event.Emit(m.bus, event.LightZoneExited{EnemyID: id, ZoneID: v.id})
			}
		}
	}
}

// Inside reports whether the target is currently inside the volume.
func (m *Monitor) Inside(id world.EnemyID, volumeID string) bool {
	_, ok := m.inside[id][volumeID]
	return ok
}

// IsLit reports whether p lies in any active volume.
func (m *Monitor) IsLit(p world.Point) bool {
	for _, v := range m.volumes {
		if v.active && v.shape.Contains(p) {
			return true
		}
	}
	return false
}

// Trigger is the callback for a light collaborator whose trigger overlaps
// the enemy's collider.
func (m *Monitor) Trigger(id world.EnemyID) {
	m.expose(id, event.SourceTrigger)
}

// Expose publishes a direct exposure, for collaborators that determine
// illumination themselves.
func (m *Monitor) Expose(id world.EnemyID) {
	m.expose(id, event.SourceDirect)
}

func (m *Monitor) expose(id world.EnemyID, source string) {
	m.stats.Exposed++
	event.Emit(m.bus, event.LightExposed{EnemyID: id, Source: source})
	m.log.Debug("enemy exposed", zap.Stringer("enemy", id), zap.String("source", source))
}

// Overlap returns the collidable targets within radius of center, in
// registration order.
func (m *Monitor) Overlap(center world.Point, radius float64) []Target {
	var out []Target
	for _, t := range m.targets {
		if t.Collidable() && world.Distance(center, t.Position()) <= radius {
			out = append(out, t)
		}
	}
	return out
}

func (m *Monitor) Stats() Stats { return m.stats }

// LightProbe answers whether a point is lit.
type LightProbe interface {
	IsLit(p world.Point) bool
}

// Probes reports a point lit when any member does.
type Probes []LightProbe

func (ps Probes) IsLit(p world.Point) bool {
	for _, probe := range ps {
		if probe.IsLit(p) {
			return true
		}
	}
	return false
}
