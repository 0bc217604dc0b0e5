package system

import (
	"time"

	"github.com/nightwarden/darkhunt/internal/core/event"
	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/world"
)

// SnapshotSystem opens every tick: it commits darkness decay and the light
// injected last tick, delivers last tick's events, and freezes the player
// view every agent will read. Phase 0 (Snapshot).
type SnapshotSystem struct {
	field *world.Field
	bus   *event.Bus
	world *world.State
}

func NewSnapshotSystem(field *world.Field, bus *event.Bus, ws *world.State) *SnapshotSystem {
	return &SnapshotSystem{field: field, bus: bus, world: ws}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhaseSnapshot }

func (s *SnapshotSystem) Update(dt time.Duration) {
	s.field.Advance(dt)
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	s.world.Snapshot()
}
