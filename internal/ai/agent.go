package ai

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Options carries an agent's collaborators. Nav is required; everything else
// has a safe default.
type Options struct {
	Nav       Navigator
	Presenter Presenter
	Policy    ChasePolicy
	Listener  TransitionListener
	Log       *zap.Logger
}

// Agent is one enemy slot's state machine. It owns its timers and state and
// only reads the environment it is handed each tick. Created once at level
// load, never destroyed: despawning hides and repositions it.
type Agent struct {
	id       world.EnemyID
	cfg      config.AgentConfig
	nav      Navigator
	fx       Presenter
	policy   ChasePolicy
	listener TransitionListener
	log      *zap.Logger

	state State

	// Weak reference: the last picked player. Resolved against the tick's
	// player list when possible.
	target    world.PlayerTarget
	hasTarget bool

	spawn    world.SpawnCandidate
	hasSpawn bool

	visible    bool
	collidable bool
	litZones   map[string]struct{}

	// One timer per concern. Arming replaces the pending deadline.
	retarget      Timer
	chaseBurst    Timer
	chaseCooldown Timer
	stun          Timer // panic duration
	escape        Timer
	respawn       Timer

	fleeTo world.Point
}

// NewAgent builds a dormant, hidden agent. It fails when no navigation
// capability is bound.
func NewAgent(id world.EnemyID, cfg config.AgentConfig, opts Options) (*Agent, error) {
	if opts.Nav == nil {
		return nil, fmt.Errorf("agent %s: %w", id, ErrMissingNavigation)
	}
	a := &Agent{
		id:       id,
		cfg:      cfg,
		nav:      opts.Nav,
		fx:       opts.Presenter,
		policy:   opts.Policy,
		listener: opts.Listener,
		log:      opts.Log,
		state:    StateDormant,
		litZones: make(map[string]struct{}),
	}
	if a.fx == nil {
		a.fx = nopPresenter{}
	}
	if a.policy == nil {
		a.policy = DarknessGate
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	a.log = a.log.With(zap.Stringer("enemy", id))
	a.fx.SetVisible(false)
	a.fx.SetCollidable(false)
	return a, nil
}

func (a *Agent) ID() world.EnemyID     { return a.id }
func (a *Agent) State() State          { return a.state }
func (a *Agent) Position() world.Point { return a.nav.Position() }
func (a *Agent) Visible() bool         { return a.visible }
func (a *Agent) Collidable() bool      { return a.collidable }

// Target returns the held target reference.
func (a *Agent) Target() (world.PlayerTarget, bool) { return a.target, a.hasTarget }

// ClearTarget drops the held target reference.
func (a *Agent) ClearTarget() {
	a.target = world.PlayerTarget{}
	a.hasTarget = false
}

// Update advances the agent by one tick.
func (a *Agent) Update(dt time.Duration, env *Env) {
	if a.chaseCooldown.Tick(dt) {
		a.log.Debug("chase cooldown over")
	}
	switch a.state {
	case StateDormant:
		a.tickDormant(dt, env)
	case StateStalking:
		a.tickStalking(dt, env)
	case StateChasing:
		a.tickChasing(dt, env)
	case StateRepelled:
		if a.stun.Tick(dt) {
			a.beginEscape()
		}
	case StateEscape:
		if a.escape.Tick(dt) {
			a.beginCooldown()
		}
	case StateCooldown:
		if a.respawn.Tick(dt) {
			a.hasSpawn = false
			a.setState(StateDormant)
		}
	}
}

// OnExposed reacts to light. Only a hunting agent is repelled; exposure
// while already repelled, fleeing or hidden is ignored. Reports whether the
// exposure took effect.
func (a *Agent) OnExposed() bool {
	if !a.state.Hunting() {
		return false
	}
	a.chaseBurst.Cancel()
	a.retarget.Cancel()
	a.nav.StopMovement()
	if a.cfg.DisablePresenceOnPanic {
		a.setPresence(a.visible, false)
	}
	pos := a.nav.Position()
	if a.cfg.PanicSound != "" {
		a.fx.PlaySound(a.cfg.PanicSound)
	}
	if a.cfg.PanicEffect != "" {
		a.fx.PlayEffect(a.cfg.PanicEffect, pos)
	}
	a.fleeTo = a.fleePoint(pos)
	a.stun.Arm(a.cfg.PanicDuration)
	a.setState(StateRepelled)
	return true
}

// OnZoneEnter records overlap with a lit volume and repels the agent.
func (a *Agent) OnZoneEnter(zoneID string) {
	a.litZones[zoneID] = struct{}{}
	a.OnExposed()
}

// OnZoneExit clears overlap with a lit volume.
func (a *Agent) OnZoneExit(zoneID string) {
	delete(a.litZones, zoneID)
}

// ---------- dormant / respawn ----------

func (a *Agent) tickDormant(dt time.Duration, env *Env) {
	retry := a.respawn.Tick(dt)
	if retry || (!a.hasSpawn && !a.respawn.Active()) {
		a.attemptSpawn(env)
	}
	if a.hasSpawn && !a.spawnLit(env) {
		a.activate()
	}
}

func (a *Agent) attemptSpawn(env *Env) {
	c, err := PickSpawn(env.Darkness, env.Spawns, env.RNG)
	if err != nil {
		a.hasSpawn = false
		a.respawn.Arm(a.cfg.RespawnDelay)
		a.log.Debug("spawn attempt failed, retrying", zap.Error(err), zap.Duration("after", a.cfg.RespawnDelay))
		return
	}
	a.spawn = c
	a.hasSpawn = true
	a.nav.Warp(c.Position)
	if a.spawnLit(env) {
		// 出生點被照亮：不現身，輪詢等待；逾時則重新選點
		a.respawn.Arm(a.cfg.RespawnDelay)
		a.log.Debug("spawn point lit, waiting", zap.String("spawn", c.Name))
	}
}

func (a *Agent) spawnLit(env *Env) bool {
	if len(a.litZones) > 0 {
		return true
	}
	return env.Lights != nil && env.Lights.IsLit(a.spawn.Position)
}

func (a *Agent) activate() {
	a.respawn.Cancel()
	a.setPresence(true, true)
	a.retarget.Arm(0)
	a.setState(StateStalking)
}

// ---------- stalking / chasing ----------

func (a *Agent) tickStalking(dt time.Duration, env *Env) {
	if a.leashBroken() {
		a.despawn("leash")
		return
	}
	if !a.retarget.Tick(dt) {
		return
	}
	a.retarget.Arm(a.cfg.RetargetEvery)
	a.refreshTarget(env)
	if !a.hasTarget {
		a.patrol()
		return
	}
	if env.Darkness.SampleDarkness(a.target.Position) >= a.cfg.MinDarknessToAdvance {
		a.move(a.cfg.StalkSpeed, a.target.Position)
	} else {
		// hold at the edge of darkness
		a.nav.StopMovement()
	}
	if a.shouldChaseBurst(env) {
		a.beginChase()
	}
}

func (a *Agent) tickChasing(dt time.Duration, env *Env) {
	if a.leashBroken() {
		a.despawn("leash")
		return
	}
	if a.chaseBurst.Tick(dt) {
		a.chaseCooldown.Arm(a.cfg.ChaseCooldown)
		a.retarget.Arm(a.cfg.RetargetEvery)
		a.setState(StateStalking)
		return
	}
	a.refreshTarget(env)
	if a.hasTarget {
		a.move(a.cfg.ChaseSpeed, a.target.Position)
	} else {
		a.nav.StopMovement()
	}
}

func (a *Agent) beginChase() {
	a.chaseBurst.Arm(a.cfg.ChaseBurst)
	if a.cfg.ChaseSound != "" {
		a.fx.PlaySound(a.cfg.ChaseSound)
	}
	a.move(a.cfg.ChaseSpeed, a.target.Position)
	a.setState(StateChasing)
}

func (a *Agent) shouldChaseBurst(env *Env) bool {
	if a.state != StateStalking || a.chaseCooldown.Active() || !a.hasTarget {
		return false
	}
	if env.Bursts != nil && !env.Bursts.BurstSlotAvailable() {
		return false
	}
	in := GateInput{
		EnemyID:        a.id,
		Target:         a.target,
		TargetDistance: world.Distance(a.nav.Position(), a.target.Position),
		TargetDarkness: env.Darkness.SampleDarkness(a.target.Position),
		Threshold:      a.cfg.ChaseDarknessThreshold,
		Danger:         true,
	}
	if env.Danger != nil {
		in.ProtectiveLightOn = env.Danger.ProtectiveLightActive()
		in.ProtectiveCharge = env.Danger.ProtectiveLightCharge()
		in.Danger = !in.ProtectiveLightOn || in.ProtectiveCharge < env.WeakCharge
	}
	return a.policy.AllowBurst(in)
}

// refreshTarget re-picks the best target. With nobody in range the previous
// reference is kept, updated to the player's current position if they are
// still listed.
func (a *Agent) refreshTarget(env *Env) {
	if t, ok := PickTarget(env.Darkness, a.nav.Position(), env.Players, a.cfg.DetectRange); ok {
		if !a.hasTarget || a.target.ID != t.ID {
			a.log.Debug("retarget", zap.Stringer("player", t.ID))
		}
		a.target, a.hasTarget = t, true
		return
	}
	if !a.hasTarget {
		return
	}
	for _, p := range env.Players {
		if p.ID == a.target.ID {
			a.target = p
			return
		}
	}
}

// patrol drifts back to the spawn point while nobody is around.
func (a *Agent) patrol() {
	if a.hasSpawn {
		a.move(a.cfg.StalkSpeed, a.spawn.Position)
	} else {
		a.nav.StopMovement()
	}
}

func (a *Agent) move(speed float64, p world.Point) {
	if !a.cfg.UseNavigation {
		return
	}
	a.nav.SetSpeed(speed)
	a.nav.MoveTo(p)
}

func (a *Agent) leashBroken() bool {
	if a.cfg.LeashDistance <= 0 || !a.hasSpawn {
		return false
	}
	return world.Distance(a.nav.Position(), a.spawn.Position) > a.cfg.LeashDistance
}

// despawn hides the agent without the panic sequence and starts the
// respawn wait.
func (a *Agent) despawn(reason string) {
	a.log.Info("despawning", zap.String("reason", reason))
	a.chaseBurst.Cancel()
	a.retarget.Cancel()
	a.beginCooldown()
}

// ---------- repelled / escape / cooldown ----------

// fleePoint heads away from the last known target, or back to the spawn
// point when there is none.
func (a *Agent) fleePoint(pos world.Point) world.Point {
	if a.hasTarget {
		away := world.Direction(a.target.Position, pos)
		if away != (world.Point{}) {
			return world.Offset(pos, away, a.cfg.FleeDistance)
		}
	}
	if a.hasSpawn {
		return a.spawn.Position
	}
	return pos
}

func (a *Agent) beginEscape() {
	if a.cfg.EscapeSound != "" {
		a.fx.PlaySound(a.cfg.EscapeSound)
	}
	a.fx.StartFade(a.cfg.FadeDuration)
	a.move(a.cfg.FleeSpeed, a.fleeTo)
	a.escape.Arm(a.cfg.FadeDuration)
	a.setState(StateEscape)
}

func (a *Agent) beginCooldown() {
	a.nav.StopMovement()
	a.setPresence(false, false)
	a.respawn.Arm(a.cfg.RespawnDelay)
	a.setState(StateCooldown)
}

// ---------- helpers ----------

func (a *Agent) setPresence(visible, collidable bool) {
	if visible != a.visible {
		a.fx.SetVisible(visible)
	}
	if collidable != a.collidable {
		a.fx.SetCollidable(collidable)
	}
	a.visible, a.collidable = visible, collidable
}

func (a *Agent) setState(to State) {
	from := a.state
	if from == to {
		return
	}
	a.state = to
	a.log.Info("state change", zap.Stringer("from", from), zap.Stringer("to", to))
	if a.listener != nil {
		a.listener.AgentTransition(a.id, from, to)
	}
}
