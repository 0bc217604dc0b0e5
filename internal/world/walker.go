package world

import "time"

// Walker moves a simulated player along a waypoint route.
type Walker struct {
	id         PlayerID
	body       *Body
	route      []Point
	next       int
	loop       bool
	inDarkness bool
}

func NewWalker(id PlayerID, start Point, speed float64, route []Point, loop bool) *Walker {
	w := &Walker{
		id:         id,
		body:       NewBody(start, speed),
		route:      route,
		loop:       loop,
		inDarkness: true,
	}
	w.advanceRoute()
	return w
}

func (w *Walker) ID() PlayerID     { return w.id }
func (w *Walker) Position() Point  { return w.body.Position() }
func (w *Walker) Heading() Point   { return w.body.Heading() }
func (w *Walker) InDarkness() bool { return w.inDarkness }

// SetInDarkness is written by the light-state collaborator.
func (w *Walker) SetInDarkness(dark bool) { w.inDarkness = dark }

// Warp teleports the player.
func (w *Walker) Warp(p Point) { w.body.Warp(p) }

func (w *Walker) advanceRoute() {
	if len(w.route) == 0 {
		return
	}
	if w.next >= len(w.route) {
		if !w.loop {
			return
		}
		w.next = 0
	}
	w.body.MoveTo(w.route[w.next])
	w.next++
}

// Step moves the player and picks the next waypoint on arrival.
func (w *Walker) Step(dt time.Duration) {
	w.body.Step(dt)
	if !w.body.Moving() {
		w.advanceRoute()
	}
}

// Target returns the AI-facing view of this player.
func (w *Walker) Target() PlayerTarget {
	return PlayerTarget{ID: w.id, Position: w.body.Position(), InDarkness: w.inDarkness}
}
