package encounter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/core/event"
	"github.com/nightwarden/darkhunt/internal/data"
	"github.com/nightwarden/darkhunt/internal/debugview"
	"github.com/nightwarden/darkhunt/internal/scripting"
	"github.com/nightwarden/darkhunt/internal/world"
)

const tick = 100 * time.Millisecond

func testConfig() config.Config {
	cfg := *config.Defaults()
	cfg.Simulation.Seed = 1
	return cfg
}

// cellar is one dark zone with the spawn at its center and a player standing
// still five units away.
func cellar() *data.Level {
	return &data.Level{
		Name:          "cellar",
		DarknessZones: []data.ZoneDef{{ID: "cellar", Center: data.Vec{0, 0}, Radius: 20, Darkness: 1}},
		Spawns:        []data.SpawnDef{{Name: "corner", Position: data.Vec{0, 0}}},
		Players:       []data.PlayerDef{{ID: 1, Start: data.Vec{5, 0}}},
		Enemies:       []data.EnemyDef{{ID: 1}},
	}
}

func newEngine(t *testing.T, cfg config.Config, level *data.Level, opts Options) *Engine {
	t.Helper()
	e, err := New(cfg, level, opts, nil)
	require.NoError(t, err)
	return e
}

func steps(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Tick(tick)
	}
}

type transition struct{ from, to ai.State }

func TestEngineSpawnsAndChases(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})

	steps(e, 1)
	st, ok := e.CurrentState(1)
	require.True(t, ok)
	assert.Equal(t, ai.StateStalking, st)

	steps(e, 1)
	st, _ = e.CurrentState(1)
	assert.Equal(t, ai.StateChasing, st)
	assert.Equal(t, 1, e.Director().Chasing())
	assert.Equal(t, 1, e.Summary().Chases)

	d, ok := e.Diagnostics(1)
	require.True(t, ok)
	assert.Equal(t, ai.StateChasing, d.State)
}

func TestEngineExposureCycle(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})
	var seen []transition
	event.Subscribe(e.Bus(), func(ev event.AgentStateChanged) {
		seen = append(seen, transition{ev.From, ev.To})
	})

	steps(e, 2)
	require.True(t, e.OnExposed(1))
	assert.False(t, e.OnExposed(1), "already repelled")
	assert.Equal(t, 0, e.Director().Chasing())

	steps(e, 80)
	want := []transition{
		{ai.StateDormant, ai.StateStalking},
		{ai.StateStalking, ai.StateChasing},
		{ai.StateChasing, ai.StateRepelled},
		{ai.StateRepelled, ai.StateEscape},
		{ai.StateEscape, ai.StateCooldown},
		{ai.StateCooldown, ai.StateDormant},
		{ai.StateDormant, ai.StateStalking},
	}
	require.GreaterOrEqual(t, len(seen), len(want))
	assert.Equal(t, want, seen[:len(want)])
	assert.Equal(t, 1, e.Summary().Repels)
	assert.Equal(t, 1, e.Summary().Despawns)
}

func TestEngineUnknownEnemy(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})
	assert.False(t, e.OnExposed(99))
	assert.False(t, e.OnZoneEnter(99, "room"))
	assert.False(t, e.OnZoneExit(99, "room"))
	_, ok := e.CurrentState(99)
	assert.False(t, ok)
	_, ok = e.Diagnostics(99)
	assert.False(t, ok)
}

func TestEngineInjectLightCommitsNextTick(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})
	var injected []event.LightInjected
	event.Subscribe(e.Bus(), func(ev event.LightInjected) { injected = append(injected, ev) })

	require.True(t, e.InjectLight("cellar", 1, 0.5))
	assert.False(t, e.InjectLight("attic", 1, 0.5))
	z, _ := e.Field().Zone("cellar")
	assert.Zero(t, z.Light())

	steps(e, 1)
	assert.Equal(t, 1.0, z.Light())
	require.Len(t, injected, 1)
	assert.Equal(t, "cellar", injected[0].ZoneID)

	assert.Equal(t, 1, e.InjectLightAt(world.Pt(3, 0, 0), 5, 0.5, 1))
	assert.Equal(t, 0, e.InjectLightAt(world.Pt(100, 0, 0), 5, 0.5, 1))
	assert.Equal(t, 2, e.Summary().Injections)
}

func TestEngineZoneAt(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})
	id, ok := e.ZoneAt(world.Pt(3, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "cellar", id)
	_, ok = e.ZoneAt(world.Pt(30, 0, 0))
	assert.False(t, ok)
}

func TestEngineLitRoomKeepsEnemyHidden(t *testing.T) {
	level := cellar()
	level.RoomLights = []data.RoomLightDef{{ID: "cellar-bulb", Min: data.Vec{-2, -1, -2}, Max: data.Vec{2, 3, 2}, On: time.Hour}}
	e := newEngine(t, testConfig(), level, Options{})

	steps(e, 20)
	st, _ := e.CurrentState(1)
	assert.Equal(t, ai.StateDormant, st)
	assert.False(t, e.Agents()[0].Visible())
	assert.True(t, e.Rooms()[0].On())
}

func TestEngineRoomLightRepelsThroughBus(t *testing.T) {
	level := cellar()
	level.RoomLights = []data.RoomLightDef{{ID: "hall", Min: data.Vec{-10, -1, -10}, Max: data.Vec{10, 3, 10}, On: time.Hour, Off: time.Second}}
	e := newEngine(t, testConfig(), level, Options{})

	steps(e, 5)
	st, _ := e.CurrentState(1)
	require.True(t, st.Hunting())

	steps(e, 10)
	assert.Equal(t, 1, e.Summary().Repels)
	assert.GreaterOrEqual(t, e.Monitor().Stats().Entered, 1)
	st, _ = e.CurrentState(1)
	assert.False(t, st.Hunting())
}

func TestEngineScriptGateFallsBack(t *testing.T) {
	level := cellar()
	level.Enemies[0].Gate = config.GateScript

	_, err := New(testConfig(), level, Options{}, nil)
	require.Error(t, err)

	scripts, err := scripting.NewEngine(t.TempDir(), nil)
	require.NoError(t, err)
	defer scripts.Close()

	e := newEngine(t, testConfig(), level, Options{Scripts: scripts})
	steps(e, 2)
	st, _ := e.CurrentState(1)
	assert.Equal(t, ai.StateChasing, st)
}

func TestEngineScriptGateDenies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ai"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ai", "gate.lua"),
		[]byte(`function chase_gate(ctx) return false end`), 0o644))
	scripts, err := scripting.NewEngine(dir, nil)
	require.NoError(t, err)
	defer scripts.Close()

	level := cellar()
	level.Enemies[0].Gate = config.GateScript
	e := newEngine(t, testConfig(), level, Options{Scripts: scripts})
	steps(e, 30)
	st, _ := e.CurrentState(1)
	assert.Equal(t, ai.StateStalking, st)
	assert.Zero(t, e.Summary().Chases)
}

func TestEngineRunStopsAfterDuration(t *testing.T) {
	e := newEngine(t, testConfig(), cellar(), Options{})
	require.NoError(t, e.Run(context.Background(), time.Second, tick, false))
	assert.Equal(t, int64(10), e.Summary().Ticks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx, 0, tick, false), context.Canceled)
	assert.Error(t, e.Run(context.Background(), time.Second, 0, false))
}

func TestEngineFrame(t *testing.T) {
	level := cellar()
	level.Flashlights = []data.FlashlightDef{{ID: "torch", Holder: 1, Working: time.Minute, Range: 8, AngleDeg: 30, On: true}}
	e := newEngine(t, testConfig(), level, Options{})
	steps(e, 1)

	f := e.Frame()
	assert.Equal(t, int64(1), f.Tick)
	require.Len(t, f.Zones, 1)
	require.Len(t, f.Players, 1)
	assert.True(t, f.Players[0].Beam)
	require.Len(t, f.Enemies, 1)
	assert.Equal(t, "stalking", f.Enemies[0].State)
	assert.False(t, f.Danger, "full flashlight protects")

	b := e.ViewBounds()
	assert.True(t, b.Contains(world.Pt(0, 0, 0)))
}

func TestEngineAttachViewDrawsHUD(t *testing.T) {
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	scr.SetSize(60, 20)
	defer scr.Fini()

	e := newEngine(t, testConfig(), cellar(), Options{})
	e.AttachView(debugview.New(scr, e.ViewBounds()), 1)
	steps(e, 1)

	var hud []rune
	for x := 0; x < 60; x++ {
		r, _, _, _ := scr.GetContent(x, 0)
		hud = append(hud, r)
	}
	assert.NotEqual(t, []rune(strings.Repeat(" ", 60)), hud)
}
