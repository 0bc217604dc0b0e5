package encounter

import (
	"github.com/nightwarden/darkhunt/internal/debugview"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Frame captures the encounter for the debug overlay.
func (e *Engine) Frame() debugview.Frame {
	f := debugview.Frame{
		Tick:    e.summary.Ticks,
		Elapsed: e.summary.Elapsed,
		Danger:  e.director.Danger(),
		Chasing: e.director.Chasing(),
	}
	for _, z := range e.field.Zones() {
		f.Zones = append(f.Zones, debugview.Zone{
			ID: z.ID(), Center: z.Center(), Radius: z.Radius(),
			Darkness: z.Darkness(), Light: z.Light(),
		})
	}
	for _, r := range e.rooms {
		f.Rooms = append(f.Rooms, debugview.Room{ID: r.ID(), Bounds: r.Bounds(), On: r.On()})
	}
	for _, l := range e.lamps {
		f.Lamps = append(f.Lamps, debugview.Lamp{ID: l.ID(), Center: l.Center(), Radius: l.Radius(), On: l.On()})
	}
	beams := make(map[world.PlayerID]bool, len(e.flashlights))
	for _, fl := range e.flashlights {
		if fl.Active() {
			beams[fl.Holder()] = true
		}
	}
	for _, p := range e.world.Players() {
		f.Players = append(f.Players, debugview.Player{
			ID: p.ID, Position: p.Position, InDarkness: p.InDarkness, Beam: beams[p.ID],
		})
	}
	for _, a := range e.agents {
		f.Enemies = append(f.Enemies, debugview.Enemy{
			ID: a.ID(), Position: a.Position(), State: a.State().String(), Visible: a.Visible(),
		})
	}
	return f
}

// ViewBounds returns the region the debug overlay should show.
func (e *Engine) ViewBounds() world.Box {
	f := e.Frame()
	var extra []world.Point
	for _, s := range e.world.Spawns() {
		extra = append(extra, s.Position)
	}
	for _, w := range e.world.Walkers() {
		extra = append(extra, w.Position())
	}
	return debugview.Bounds(f.Zones, f.Rooms, extra)
}
