// Package encounter assembles the darkness field, lights, exposure monitor,
// director and enemy agents into one tick-driven encounter, and exposes the
// calls outside collaborators use to drive it.
package encounter

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/core/event"
	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/data"
	"github.com/nightwarden/darkhunt/internal/debugview"
	"github.com/nightwarden/darkhunt/internal/director"
	"github.com/nightwarden/darkhunt/internal/exposure"
	"github.com/nightwarden/darkhunt/internal/light"
	"github.com/nightwarden/darkhunt/internal/scripting"
	"github.com/nightwarden/darkhunt/internal/system"
	"github.com/nightwarden/darkhunt/internal/telemetry"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Options carries optional collaborators.
type Options struct {
	// Scripts is required when any enemy uses the "script" chase gate.
	Scripts *scripting.Engine
	// Output receives CSV telemetry when set.
	Output *telemetry.Output
	// RNG drives spawn selection; seeded from the config when nil.
	RNG ai.Rand
	// Presenter builds the visual/audio collaborator per enemy; cues are
	// logged when nil.
	Presenter func(id world.EnemyID) ai.Presenter
}

// Summary counts what happened over the encounter.
type Summary struct {
	Ticks       int64
	Elapsed     time.Duration
	Transitions int
	Chases      int
	Repels      int
	Despawns    int
	Exposures   int
	Injections  int
}

// Engine is one running encounter. Accessed only from the simulation
// goroutine.
type Engine struct {
	cfg config.Config
	log *zap.Logger

	bus      *event.Bus
	field    *world.Field
	world    *world.State
	monitor  *exposure.Monitor
	director *director.Director
	runner   *coresys.Runner
	lights   exposure.Probes

	agents      []*ai.Agent
	bodies      []*world.Body
	byID        map[world.EnemyID]*ai.Agent
	agentEnv    ai.Env
	rooms       []*light.RoomLight
	lamps       []*light.Lamp
	flashlights []*light.Flashlight

	summary Summary
}

// New builds an encounter from configuration and level data.
func New(cfg config.Config, level *data.Level, opts Options, log *zap.Logger) (*Engine, error) {
	if level == nil {
		return nil, errors.New("encounter: no level")
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		cfg:      cfg,
		log:      log,
		bus:      event.NewBus(),
		field:    world.NewField(cfg.Darkness, log.Named("darkness")),
		world:    world.NewState(),
		director: director.New(cfg.Director, log.Named("director")),
		runner:   coresys.NewRunner(),
		byID:     make(map[world.EnemyID]*ai.Agent),
	}
	e.monitor = exposure.NewMonitor(e.bus, log.Named("exposure"))
	e.lights = exposure.Probes{e.monitor}

	for _, zc := range level.ZoneConfigs() {
		e.field.AddZone(zc)
	}
	for _, c := range level.SpawnCandidates() {
		e.world.AddSpawn(c)
	}
	for _, w := range level.Walkers() {
		e.world.AddPlayer(w)
	}

	lightsLog := log.Named("light")
	for _, rc := range level.RoomLightConfigs() {
		r := light.NewRoomLight(rc, lightsLog)
		if err := e.monitor.AddVolume(r.ID(), r.Bounds()); err != nil {
			return nil, fmt.Errorf("room light: %w", err)
		}
		e.rooms = append(e.rooms, r)
	}
	for _, lc := range level.LampConfigs() {
		l := light.NewLamp(lc, lightsLog)
		e.lamps = append(e.lamps, l)
		e.lights = append(e.lights, l)
	}
	for _, fc := range level.FlashlightConfigs() {
		f := light.NewFlashlight(fc, lightsLog)
		e.flashlights = append(e.flashlights, f)
		e.director.AddSource(f)
	}

	if err := e.buildAgents(level, opts); err != nil {
		return nil, err
	}
	e.subscribe()
	e.registerSystems(opts)
	return e, nil
}

func (e *Engine) buildAgents(level *data.Level, opts Options) error {
	rng := opts.RNG
	if rng == nil {
		seed := e.cfg.Simulation.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	e.agentEnv = ai.Env{
		Darkness:   e.field,
		Lights:     e.lights,
		Danger:     e.director,
		WeakCharge: e.director.WeakChargeThreshold(),
		Bursts:     e.director,
		RNG:        rng,
	}

	start := world.Point{}
	if spawns := e.world.Spawns(); len(spawns) > 0 {
		start = spawns[0].Position
	}
	agentsLog := e.log.Named("agent")
	for _, def := range level.Enemies {
		id := world.EnemyID(def.ID)
		gate := e.cfg.Agent.ChaseGate
		if def.Gate != "" {
			gate = def.Gate
		}
		policy, err := resolvePolicy(gate, opts.Scripts, agentsLog)
		if err != nil {
			return fmt.Errorf("enemy %d: %w", def.ID, err)
		}
		var fx ai.Presenter = logPresenter{log: agentsLog.With(zap.Stringer("enemy", id))}
		if opts.Presenter != nil {
			fx = opts.Presenter(id)
		}
		body := world.NewBody(start, e.cfg.Agent.StalkSpeed)
		a, err := ai.NewAgent(id, e.cfg.Agent, ai.Options{
			Nav:       body,
			Presenter: fx,
			Policy:    policy,
			Listener:  e,
			Log:       agentsLog,
		})
		if err != nil {
			return err
		}
		e.agents = append(e.agents, a)
		e.byID[id] = a
		e.bodies = append(e.bodies, body)
		e.monitor.Track(a)
	}
	return nil
}

// subscribe routes detections from every mechanism to the agents.
func (e *Engine) subscribe() {
	event.Subscribe(e.bus, func(ev event.LightExposed) {
		if a, ok := e.byID[ev.EnemyID]; ok {
			e.expose(a)
		}
	})
	event.Subscribe(e.bus, func(ev event.LightZoneEntered) {
		e.OnZoneEnter(ev.EnemyID, ev.ZoneID)
	})
	event.Subscribe(e.bus, func(ev event.LightZoneExited) {
		e.OnZoneExit(ev.EnemyID, ev.ZoneID)
	})
}

func (e *Engine) registerSystems(opts Options) {
	e.runner.Register(system.NewSnapshotSystem(e.field, e.bus, e.world))

	ls := system.NewLightSystem(e.world, e.monitor, e)
	for _, r := range e.rooms {
		ls.AddRoom(r)
	}
	for _, l := range e.lamps {
		ls.AddLamp(l)
	}
	for _, f := range e.flashlights {
		ls.AddFlashlight(f)
	}
	e.runner.Register(ls)
	e.runner.Register(system.NewExposureSystem(e.monitor))
	e.runner.Register(system.NewPlayerLightSystem(e.world, e.lights))

	as := system.NewAgentSystem(e.world, e.agentEnv)
	for i, a := range e.agents {
		as.Add(a, e.bodies[i])
	}
	e.runner.Register(as)
	e.runner.Register(system.NewWalkerSystem(e.world))

	if opts.Output != nil {
		ts := system.NewTelemetrySystem(opts.Output, e.bus, e.field, e.cfg.Telemetry.EveryNTicks, e.log.Named("telemetry"))
		for _, a := range e.agents {
			ts.Track(a)
		}
		e.runner.Register(ts)
	}
}

// AttachView starts redrawing v every N ticks, after telemetry.
func (e *Engine) AttachView(v *debugview.View, every int) {
	e.runner.Register(system.NewViewSystem(e, v, every))
}

// ---------- tick loop ----------

// Tick advances the encounter by one step.
func (e *Engine) Tick(dt time.Duration) {
	e.runner.Tick(dt)
	e.summary.Ticks++
	e.summary.Elapsed += dt
}

// Run ticks until duration of simulated time has passed (forever when
// duration <= 0) or ctx is done. With realtime set, ticks are paced by the
// wall clock; otherwise they run back to back.
func (e *Engine) Run(ctx context.Context, duration, tick time.Duration, realtime bool) error {
	if tick <= 0 {
		return fmt.Errorf("tick rate must be positive, got %s", tick)
	}
	var pace <-chan time.Time
	if realtime {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		pace = ticker.C
	}
	for duration <= 0 || e.summary.Elapsed < duration {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		e.Tick(tick)
	}
	return nil
}

// ---------- exposed interface ----------

// OnExposed repels the enemy immediately. Reports whether the exposure took
// effect; unknown enemies and enemies that are not hunting ignore it.
func (e *Engine) OnExposed(id world.EnemyID) bool {
	a, ok := e.byID[id]
	if !ok {
		e.log.Warn("exposure for unknown enemy", zap.Stringer("enemy", id))
		return false
	}
	return e.expose(a)
}

func (e *Engine) expose(a *ai.Agent) bool {
	e.summary.Exposures++
	return a.OnExposed()
}

// OnZoneEnter records the enemy overlapping a lit zone.
func (e *Engine) OnZoneEnter(id world.EnemyID, zoneID string) bool {
	a, ok := e.byID[id]
	if ok {
		e.summary.Exposures++
		a.OnZoneEnter(zoneID)
	}
	return ok
}

// OnZoneExit records the enemy leaving a lit zone.
func (e *Engine) OnZoneExit(id world.EnemyID, zoneID string) bool {
	a, ok := e.byID[id]
	if ok {
		a.OnZoneExit(zoneID)
	}
	return ok
}

// CurrentState returns the enemy's state for overlays.
func (e *Engine) CurrentState(id world.EnemyID) (ai.State, bool) {
	a, ok := e.byID[id]
	if !ok {
		return ai.StateDormant, false
	}
	return a.State(), true
}

// Diagnostics returns the enemy's debug view.
func (e *Engine) Diagnostics(id world.EnemyID) (ai.Diagnostics, bool) {
	a, ok := e.byID[id]
	if !ok {
		return ai.Diagnostics{}, false
	}
	return a.Diagnostics(), true
}

// InjectLight brightens a darkness zone from the next tick on. Returns false
// for an unknown zone.
func (e *Engine) InjectLight(zoneID string, strength, decayPerSecond float64) bool {
	if !e.field.InjectLight(zoneID, strength, decayPerSecond) {
		return false
	}
	e.summary.Injections++
	event.Emit(e.bus, event.LightInjected{ZoneID: zoneID, Strength: strength, DecayPerSecond: decayPerSecond})
	return true
}

// InjectLightAt brightens every zone whose center lies within radius of p.
func (e *Engine) InjectLightAt(p world.Point, radius, strength, decayPerSecond float64) int {
	n := 0
	for _, z := range e.field.Zones() {
		if world.Distance(z.Center(), p) <= radius && e.InjectLight(z.ID(), strength, decayPerSecond) {
			n++
		}
	}
	return n
}

// ZoneAt returns the nearest zone whose area covers p.
func (e *Engine) ZoneAt(p world.Point) (string, bool) {
	z, ok := e.field.NearestZone(p)
	if !ok || world.Distance(z.Center(), p) > z.Radius() {
		return "", false
	}
	return z.ID(), true
}

// AgentTransition fans every agent transition out to the director and the
// bus.
func (e *Engine) AgentTransition(id world.EnemyID, from, to ai.State) {
	e.director.AgentTransition(id, from, to)
	event.Emit(e.bus, event.AgentStateChanged{EnemyID: id, From: from, To: to})
	e.summary.Transitions++
	switch {
	case to == ai.StateChasing:
		e.summary.Chases++
	case to == ai.StateRepelled:
		e.summary.Repels++
	case to == ai.StateCooldown:
		e.summary.Despawns++
	}
}

// ---------- accessors ----------

func (e *Engine) Summary() Summary                 { return e.summary }
func (e *Engine) Agents() []*ai.Agent              { return e.agents }
func (e *Engine) Bus() *event.Bus                  { return e.bus }
func (e *Engine) Field() *world.Field              { return e.field }
func (e *Engine) World() *world.State              { return e.world }
func (e *Engine) Monitor() *exposure.Monitor       { return e.monitor }
func (e *Engine) Director() *director.Director     { return e.director }
func (e *Engine) Flashlights() []*light.Flashlight { return e.flashlights }
func (e *Engine) Lamps() []*light.Lamp             { return e.lamps }
func (e *Engine) Rooms() []*light.RoomLight        { return e.rooms }
