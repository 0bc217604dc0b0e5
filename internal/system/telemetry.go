package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/core/event"
	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/telemetry"
	"github.com/nightwarden/darkhunt/internal/world"
)

// TelemetrySystem samples agents and zones every N ticks and records every
// state change and exposure. Phase 3 (Output).
type TelemetrySystem struct {
	out    *telemetry.Output
	agents []*ai.Agent
	field  *world.Field
	every  int
	log    *zap.Logger

	tick    int64
	elapsed time.Duration
	events  []telemetry.EventSample
	failed  bool
}

func NewTelemetrySystem(out *telemetry.Output, bus *event.Bus, field *world.Field, every int, log *zap.Logger) *TelemetrySystem {
	if every < 1 {
		every = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &TelemetrySystem{out: out, field: field, every: every, log: log}
	event.Subscribe(bus, func(e event.AgentStateChanged) {
		s.record(e.EnemyID, "transition", fmt.Sprintf("%s->%s", e.From, e.To))
	})
	event.Subscribe(bus, func(e event.LightExposed) {
		s.record(e.EnemyID, "exposed", e.Source)
	})
	event.Subscribe(bus, func(e event.LightZoneEntered) {
		s.record(e.EnemyID, "zone_enter", e.ZoneID)
	})
	event.Subscribe(bus, func(e event.LightZoneExited) {
		s.record(e.EnemyID, "zone_exit", e.ZoneID)
	})
	return s
}

// Track adds an agent to the per-tick samples.
func (s *TelemetrySystem) Track(a *ai.Agent) { s.agents = append(s.agents, a) }

func (s *TelemetrySystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *TelemetrySystem) record(id world.EnemyID, kind, detail string) {
	s.events = append(s.events, telemetry.EventSample{
		Tick: s.tick, Time: s.elapsed.Seconds(), Enemy: int(id), Kind: kind, Detail: detail,
	})
}

func (s *TelemetrySystem) Update(dt time.Duration) {
	s.tick++
	s.elapsed += dt
	if s.failed {
		return
	}
	if err := s.out.WriteEvents(s.events); err != nil {
		s.fail(err)
		return
	}
	s.events = s.events[:0]
	if s.tick%int64(s.every) != 0 {
		return
	}

	t := s.elapsed.Seconds()
	agents := make([]telemetry.AgentSample, 0, len(s.agents))
	for _, a := range s.agents {
		d := a.Diagnostics()
		row := telemetry.AgentSample{
			Tick: s.tick, Time: t, Enemy: int(d.ID), State: d.State.String(),
			X: d.Position.X, Z: d.Position.Z,
			Visible: d.Visible, Collidable: d.Collidable,
			ChaseCooldown: d.Timers.ChaseCooldown > 0,
		}
		if d.HasTarget {
			row.Target = int(d.Target.ID)
			row.TargetDarkness = s.field.SampleDarkness(d.Target.Position)
		}
		agents = append(agents, row)
	}
	zones := make([]telemetry.ZoneSample, 0, len(s.field.Zones()))
	for _, z := range s.field.Zones() {
		zones = append(zones, telemetry.ZoneSample{
			Tick: s.tick, Time: t, Zone: z.ID(), Light: z.Light(), Darkness: z.Sample(z.Center()),
		})
	}
	if err := s.out.WriteAgents(agents); err != nil {
		s.fail(err)
		return
	}
	if err := s.out.WriteZones(zones); err != nil {
		s.fail(err)
	}
}

// fail stops further writes after the first error; the encounter keeps
// running without telemetry.
func (s *TelemetrySystem) fail(err error) {
	s.failed = true
	s.log.Error("telemetry disabled", zap.Error(err))
}
