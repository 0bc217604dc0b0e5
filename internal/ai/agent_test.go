package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightwarden/darkhunt/internal/world"
)

func TestNewAgentRequiresNavigation(t *testing.T) {
	_, err := NewAgent(1, testConfig(), Options{})
	assert.ErrorIs(t, err, ErrMissingNavigation)
}

func TestNewAgentStartsHiddenAndDormant(t *testing.T) {
	h := newHarness(testConfig(), nil)
	assert.Equal(t, StateDormant, h.agent.State())
	assert.False(t, h.fx.visible)
	assert.False(t, h.fx.collidable)
}

func TestActivatesOnDarkSpawn(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
	assert.True(t, h.fx.visible)
	assert.True(t, h.fx.collidable)
	assert.Equal(t, world.Pt(0, 0, 0), h.nav.pos)
}

func TestStalkAdvancesTowardTarget(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.step(2)
	assert.Equal(t, StateStalking, h.agent.State())
	assert.Equal(t, world.Pt(5, 0, 0), h.nav.dest)
	assert.Equal(t, 1.6, h.nav.speed)
}

func TestStalkHoldsAtEdgeOfDarkness(t *testing.T) {
	h := newHarness(testConfig(), nil)
	player := h.env.Players[0].Position
	h.env.Darkness = darkFunc(func(p world.Point) float64 {
		if p == player {
			return 0.1
		}
		return 1
	})
	h.step(2)
	assert.Equal(t, StateStalking, h.agent.State())
	assert.Zero(t, h.nav.moves)
	assert.Positive(t, h.nav.stops)
}

func TestPatrolsToSpawnWithoutTargets(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Players = nil
	h.step(2)
	_, ok := h.agent.Target()
	assert.False(t, ok)
	assert.Equal(t, 1, h.nav.moves)
	assert.Equal(t, world.Pt(0, 0, 0), h.nav.dest)
}

func TestNavigationDisabledNeverMoves(t *testing.T) {
	cfg := testConfig()
	cfg.UseNavigation = false
	h := newHarness(cfg, nil)
	h.env.Players = nil
	h.step(5)
	assert.Zero(t, h.nav.moves)
}

func TestChaseBurstExpiresIntoCooldown(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = danger{on: false}

	h.step(2)
	require.Equal(t, StateChasing, h.agent.State())
	assert.Equal(t, 4.0, h.nav.speed)
	assert.Contains(t, h.fx.sounds, "chase")

	h.step(24)
	assert.Equal(t, StateChasing, h.agent.State())
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
	assert.True(t, h.agent.ChaseOnCooldown())
	assert.Equal(t, 4*time.Second, h.agent.Diagnostics().Timers.ChaseCooldown)

	for i := 0; i < 39; i++ {
		h.step(1)
		require.Equal(t, StateStalking, h.agent.State(), "no burst during cooldown (tick %d)", i)
	}
	h.step(1)
	assert.Equal(t, StateChasing, h.agent.State())
}

func TestWeakProtectiveLightAllowsChase(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = danger{on: true, charge: 0.1}
	h.step(2)
	assert.Equal(t, StateChasing, h.agent.State())
}

func TestNilDangerCountsAsDanger(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = nil
	h.step(2)
	assert.Equal(t, StateChasing, h.agent.State())
}

func TestStrongProtectiveLightBlocksChase(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.step(20)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestChaseNeedsDarkTarget(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = danger{on: false}
	h.env.Darkness = constDark(0.4)
	h.step(10)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestInDarkGateIgnoresProtectiveLight(t *testing.T) {
	h := newHarness(testConfig(), InDarkGate)
	h.step(2)
	assert.Equal(t, StateChasing, h.agent.State())

	h = newHarness(testConfig(), InDarkGate)
	h.env.Players[0].InDarkness = false
	h.env.Danger = danger{on: false}
	h.step(2)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestBurstLimiterDenies(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = danger{on: false}
	h.env.Bursts = limiter(false)
	h.step(10)
	assert.Equal(t, StateStalking, h.agent.State())

	h.env.Bursts = limiter(true)
	h.step(5)
	assert.Equal(t, StateChasing, h.agent.State())
}

func TestExposureRunsFullCycle(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.env.Danger = danger{on: false}
	h.step(2)
	require.Equal(t, StateChasing, h.agent.State())

	require.True(t, h.agent.OnExposed())
	assert.Equal(t, StateRepelled, h.agent.State())
	assert.True(t, h.fx.visible)
	assert.False(t, h.fx.collidable)
	assert.Contains(t, h.fx.sounds, "shriek")
	assert.Equal(t, []string{"vanish"}, h.fx.effects)
	assert.Zero(t, h.agent.Diagnostics().Timers.ChaseBurst)

	h.step(9)
	assert.Equal(t, StateRepelled, h.agent.State())
	assert.Equal(t, tick, h.agent.Diagnostics().Timers.Panic)

	h.step(1)
	assert.Equal(t, StateEscape, h.agent.State())
	assert.Equal(t, world.Pt(-6, 0, 0), h.nav.dest, "flees directly away from the target")
	assert.Equal(t, 3.0, h.nav.speed)
	assert.Equal(t, 1, h.fx.fades)
	assert.Contains(t, h.fx.sounds, "escape")

	h.step(4)
	assert.Equal(t, StateEscape, h.agent.State())
	h.step(1)
	assert.Equal(t, StateCooldown, h.agent.State())
	assert.False(t, h.fx.visible)
	assert.False(t, h.fx.collidable)

	h.step(29)
	assert.Equal(t, StateCooldown, h.agent.State())
	h.step(1)
	assert.Equal(t, StateDormant, h.agent.State())
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
	h.step(1)
	assert.Equal(t, StateChasing, h.agent.State())

	assert.Equal(t, []transition{
		{StateDormant, StateStalking},
		{StateStalking, StateChasing},
		{StateChasing, StateRepelled},
		{StateRepelled, StateEscape},
		{StateEscape, StateCooldown},
		{StateCooldown, StateDormant},
		{StateDormant, StateStalking},
		{StateStalking, StateChasing},
	}, h.rec.log)
}

func TestExposureIgnoredOutsideHunting(t *testing.T) {
	h := newHarness(testConfig(), nil)
	assert.False(t, h.agent.OnExposed(), "dormant")

	h.step(1)
	require.True(t, h.agent.OnExposed())
	h.step(5)
	assert.False(t, h.agent.OnExposed(), "repelled")
	assert.Equal(t, 500*time.Millisecond, h.agent.Diagnostics().Timers.Panic, "panic timer not restarted")

	h.step(5)
	require.Equal(t, StateEscape, h.agent.State())
	assert.False(t, h.agent.OnExposed(), "escape")
	assert.Len(t, h.fx.effects, 1)
}

func TestLitZoneBlocksRespawn(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.step(1)
	h.agent.OnZoneEnter("room")
	assert.Equal(t, StateRepelled, h.agent.State())

	h.step(10 + 5 + 30)
	require.Equal(t, StateDormant, h.agent.State())
	h.step(6)
	assert.Equal(t, StateDormant, h.agent.State())
	assert.Equal(t, 1, h.agent.Diagnostics().LitZones)

	h.agent.OnZoneExit("room")
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestLitSpawnWaitsForDarkness(t *testing.T) {
	h := newHarness(testConfig(), nil)
	lights := &probe{lit: true}
	h.env.Lights = lights
	h.step(3)
	assert.Equal(t, StateDormant, h.agent.State())
	assert.True(t, h.agent.Diagnostics().HasSpawn)
	assert.False(t, h.fx.visible)

	lights.lit = false
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestEmptySpawnListRetries(t *testing.T) {
	h := newHarness(testConfig(), nil)
	spawns := h.env.Spawns
	h.env.Spawns = nil

	h.step(1)
	d := h.agent.Diagnostics()
	assert.Equal(t, StateDormant, d.State)
	assert.False(t, d.HasSpawn)
	assert.Equal(t, 3*time.Second, d.Timers.Respawn)

	h.env.Spawns = spawns
	h.step(29)
	assert.Equal(t, StateDormant, h.agent.State())
	h.step(1)
	assert.Equal(t, StateStalking, h.agent.State())
}

func TestLeashDespawns(t *testing.T) {
	cfg := testConfig()
	cfg.LeashDistance = 10
	h := newHarness(cfg, nil)
	h.step(1)
	h.nav.pos = world.Pt(50, 0, 0)
	h.step(1)
	assert.Equal(t, StateCooldown, h.agent.State())
	assert.False(t, h.fx.visible)
	assert.Equal(t, transition{StateStalking, StateCooldown}, h.rec.log[len(h.rec.log)-1])
}

func TestTargetKeptWhenOutOfRange(t *testing.T) {
	h := newHarness(testConfig(), nil)
	h.step(2)
	h.env.Players[0].Position = world.Pt(40, 0, 0)
	h.step(5)
	got, ok := h.agent.Target()
	require.True(t, ok)
	assert.Equal(t, world.Pt(40, 0, 0), got.Position)

	h.agent.ClearTarget()
	_, ok = h.agent.Target()
	assert.False(t, ok)
}
