package world

import "time"

// Body is a straight-line kinematic mover. It satisfies the navigation
// capability agents consume; it does no pathfinding.
type Body struct {
	pos     Point
	dest    Point
	heading Point
	speed   float64
	moving  bool
}

func NewBody(pos Point, speed float64) *Body {
	return &Body{pos: pos, dest: pos, speed: speed}
}

func (b *Body) MoveTo(p Point) {
	b.dest = p
	b.moving = Distance(b.pos, p) > arriveEpsilon
}

func (b *Body) StopMovement() {
	b.moving = false
	b.dest = b.pos
}

// RemainingDistance returns the straight-line distance to the destination,
// 0 when idle.
func (b *Body) RemainingDistance() float64 {
	if !b.moving {
		return 0
	}
	return Distance(b.pos, b.dest)
}

// IsPathPending is always false: straight-line paths resolve immediately.
func (b *Body) IsPathPending() bool { return false }

func (b *Body) SetSpeed(s float64) { b.speed = s }
func (b *Body) Speed() float64     { return b.speed }
func (b *Body) Position() Point    { return b.pos }

// Heading returns the unit direction of the last movement step.
func (b *Body) Heading() Point { return b.heading }

// Warp teleports the body and cancels any movement.
func (b *Body) Warp(p Point) {
	b.pos = p
	b.dest = p
	b.moving = false
}

func (b *Body) Moving() bool { return b.moving }

const arriveEpsilon = 1e-3

// Step advances the body toward its destination.
func (b *Body) Step(dt time.Duration) {
	if !b.moving {
		return
	}
	step := b.speed * dt.Seconds()
	remaining := Distance(b.pos, b.dest)
	dir := Direction(b.pos, b.dest)
	if dir != (Point{}) {
		b.heading = dir
	}
	if step >= remaining {
		b.pos = b.dest
		b.moving = false
		return
	}
	b.pos = Offset(b.pos, dir, step)
}
