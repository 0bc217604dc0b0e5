package system

import (
	"time"

	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/exposure"
	"github.com/nightwarden/darkhunt/internal/light"
	"github.com/nightwarden/darkhunt/internal/world"
)

// LightSystem runs every light source: room light cycles, area lamps and
// flashlights aimed along their holders' heading. Phase 1 (Sense).
type LightSystem struct {
	world       *world.State
	monitor     *exposure.Monitor
	darkness    light.Darkness
	rooms       []*light.RoomLight
	lamps       []*light.Lamp
	flashlights []*light.Flashlight
}

func NewLightSystem(ws *world.State, monitor *exposure.Monitor, darkness light.Darkness) *LightSystem {
	return &LightSystem{world: ws, monitor: monitor, darkness: darkness}
}

func (s *LightSystem) AddRoom(r *light.RoomLight)        { s.rooms = append(s.rooms, r) }
func (s *LightSystem) AddLamp(l *light.Lamp)             { s.lamps = append(s.lamps, l) }
func (s *LightSystem) AddFlashlight(f *light.Flashlight) { s.flashlights = append(s.flashlights, f) }

func (s *LightSystem) Phase() coresys.Phase { return coresys.PhaseSense }

func (s *LightSystem) Update(dt time.Duration) {
	for _, r := range s.rooms {
		r.Step(dt, s.monitor)
	}
	for _, l := range s.lamps {
		l.Step(dt, s.monitor, s.darkness)
	}
	for _, f := range s.flashlights {
		if w := s.world.Walker(f.Holder()); w != nil {
			f.Aim(w.Position(), w.Heading())
		}
		f.Step(dt, s.monitor, s.darkness)
	}
}

// ExposureSystem sweeps lit volumes against the enemies after the lights
// have moved and switched. Phase 1 (Sense).
type ExposureSystem struct {
	monitor *exposure.Monitor
}

func NewExposureSystem(monitor *exposure.Monitor) *ExposureSystem {
	return &ExposureSystem{monitor: monitor}
}

func (s *ExposureSystem) Phase() coresys.Phase { return coresys.PhaseSense }

func (s *ExposureSystem) Update(_ time.Duration) { s.monitor.Sweep() }

// PlayerLightSystem flags each player as in darkness unless a light source
// covers them. Phase 1 (Sense).
type PlayerLightSystem struct {
	world  *world.State
	lights exposure.LightProbe
}

func NewPlayerLightSystem(ws *world.State, lights exposure.LightProbe) *PlayerLightSystem {
	return &PlayerLightSystem{world: ws, lights: lights}
}

func (s *PlayerLightSystem) Phase() coresys.Phase { return coresys.PhaseSense }

func (s *PlayerLightSystem) Update(_ time.Duration) {
	for _, w := range s.world.Walkers() {
		w.SetInDarkness(!s.lights.IsLit(w.Position()))
	}
}
