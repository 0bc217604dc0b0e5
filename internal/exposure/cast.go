package exposure

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/nightwarden/darkhunt/internal/core/event"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Hit is the result of a cast.
type Hit struct {
	Target   Target
	Point    world.Point
	Distance float64
}

// CastCone sweeps a cone from origin along dir and reports the nearest
// collidable target inside it. A hit is published as LightExposed. End is
// the point where the beam stops: the hit position, or the far end of the
// cone when nothing was hit.
func (m *Monitor) CastCone(origin, dir world.Point, length, halfAngle float64) (hit Hit, end world.Point, ok bool) {
	axis := world.Direction(world.Point{}, dir)
	end = world.Offset(origin, axis, length)
	if axis == (world.Point{}) || length <= 0 {
		return Hit{}, origin, false
	}
	cosLimit := math.Cos(halfAngle)
	best := math.Inf(1)
	for _, t := range m.targets {
		if !t.Collidable() {
			continue
		}
		pos := t.Position()
		to := r3.Sub(pos, origin)
		d := r3.Norm(to)
		if d > length || d >= best {
			continue
		}
		if d > 1e-9 && r3.Dot(to, axis)/d < cosLimit {
			continue
		}
		best = d
		hit = Hit{Target: t, Point: pos, Distance: d}
		ok = true
	}
	if !ok {
		return Hit{}, end, false
	}
	m.expose(hit.Target.ID(), event.SourceCast)
	return hit, hit.Point, true
}

// CastCapsule sweeps a sphere of the given radius from origin along dir and
// reports the nearest collidable target it touches. A hit is published as
// LightExposed.
func (m *Monitor) CastCapsule(origin, dir world.Point, length, radius float64) (Hit, bool) {
	axis := world.Direction(world.Point{}, dir)
	if axis == (world.Point{}) || length <= 0 {
		return Hit{}, false
	}
	var (
		hit  Hit
		ok   bool
		best = math.Inf(1)
	)
	for _, t := range m.targets {
		if !t.Collidable() {
			continue
		}
		pos := t.Position()
		along := r3.Dot(r3.Sub(pos, origin), axis)
		if along < -radius || along > length+radius {
			continue
		}
		closest := world.Offset(origin, axis, math.Max(0, math.Min(length, along)))
		if world.Distance(closest, pos) > radius || along >= best {
			continue
		}
		best = along
		hit = Hit{Target: t, Point: pos, Distance: math.Max(0, along)}
		ok = true
	}
	if ok {
		m.expose(hit.Target.ID(), event.SourceCast)
	}
	return hit, ok
}
