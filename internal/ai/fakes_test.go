package ai

import (
	"time"

	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/world"
)

const tick = 100 * time.Millisecond

type fakeNav struct {
	pos, dest world.Point
	speed     float64
	moves     int
	stops     int
}

func (n *fakeNav) MoveTo(p world.Point)       { n.dest = p; n.moves++ }
func (n *fakeNav) StopMovement()              { n.dest = n.pos; n.stops++ }
func (n *fakeNav) RemainingDistance() float64 { return world.Distance(n.pos, n.dest) }
func (n *fakeNav) IsPathPending() bool        { return false }
func (n *fakeNav) SetSpeed(s float64)         { n.speed = s }
func (n *fakeNav) Position() world.Point      { return n.pos }
func (n *fakeNav) Warp(p world.Point)         { n.pos, n.dest = p, p }

type fakeFx struct {
	visible, collidable bool
	sounds              []string
	effects             []string
	fades               int
}

func (f *fakeFx) SetVisible(v bool)                   { f.visible = v }
func (f *fakeFx) SetCollidable(c bool)                { f.collidable = c }
func (f *fakeFx) StartFade(time.Duration)             { f.fades++ }
func (f *fakeFx) PlayEffect(id string, _ world.Point) { f.effects = append(f.effects, id) }
func (f *fakeFx) PlaySound(id string)                 { f.sounds = append(f.sounds, id) }

// constDark reports the same darkness everywhere.
type constDark float64

func (c constDark) SampleDarkness(world.Point) float64 { return float64(c) }

// darkFunc adapts a function to Sampler.
type darkFunc func(world.Point) float64

func (f darkFunc) SampleDarkness(p world.Point) float64 { return f(p) }

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

type danger struct {
	on     bool
	charge float64
}

func (d danger) ProtectiveLightActive() bool    { return d.on }
func (d danger) ProtectiveLightCharge() float64 { return d.charge }

type probe struct{ lit bool }

func (p *probe) IsLit(world.Point) bool { return p.lit }

type limiter bool

func (l limiter) BurstSlotAvailable() bool { return bool(l) }

type transition struct{ from, to State }

type recorder struct{ log []transition }

func (r *recorder) AgentTransition(_ world.EnemyID, from, to State) {
	r.log = append(r.log, transition{from, to})
}

func testConfig() config.AgentConfig {
	return config.AgentConfig{
		DetectRange:            20,
		MinDarknessToAdvance:   0.25,
		RetargetEvery:          500 * time.Millisecond,
		StalkSpeed:             1.6,
		ChaseSpeed:             4,
		FleeSpeed:              3,
		FleeDistance:           6,
		ChaseBurst:             2500 * time.Millisecond,
		ChaseCooldown:          4 * time.Second,
		ChaseDarknessThreshold: 0.5,
		PanicDuration:          time.Second,
		FadeDuration:           500 * time.Millisecond,
		RespawnDelay:           3 * time.Second,
		UseNavigation:          true,
		DisablePresenceOnPanic: true,
		PanicEffect:            "vanish",
		PanicSound:             "shriek",
		EscapeSound:            "escape",
		ChaseSound:             "chase",
	}
}

type harness struct {
	agent *Agent
	nav   *fakeNav
	fx    *fakeFx
	rec   *recorder
	env   *Env
}

// newHarness builds an agent with one spawn at the origin, one player 5
// units away, full darkness and a strong protective light (no bursts).
func newHarness(cfg config.AgentConfig, policy ChasePolicy) *harness {
	h := &harness{nav: &fakeNav{}, fx: &fakeFx{visible: true, collidable: true}, rec: &recorder{}}
	a, err := NewAgent(1, cfg, Options{Nav: h.nav, Presenter: h.fx, Policy: policy, Listener: h.rec})
	if err != nil {
		panic(err)
	}
	h.agent = a
	h.env = &Env{
		Darkness:   constDark(1),
		Players:    []world.PlayerTarget{{ID: 1, Position: world.Pt(5, 0, 0), InDarkness: true}},
		Spawns:     []world.SpawnCandidate{{Name: "s1", Position: world.Pt(0, 0, 0)}},
		Danger:     danger{on: true, charge: 1},
		WeakCharge: 0.25,
		RNG:        fixedRand(0.5),
	}
	return h
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		h.agent.Update(tick, h.env)
	}
}
