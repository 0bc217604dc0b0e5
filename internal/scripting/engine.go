package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for enemy behavior hooks.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core 先載入：ai 腳本可使用其中的輔助函式
	for _, sub := range []string{"core", "ai"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasFunction reports whether a global Lua function is defined.
func (e *Engine) HasFunction(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// --- Enemy AI Bridge ---

// GateContext holds pre-packed data for a chase burst decision.
type GateContext struct {
	EnemyID int

	TargetID         int
	TargetDistance   float64
	TargetDarkness   float64
	TargetInDarkness bool

	Threshold         float64
	Danger            bool // protective light off or weak
	ProtectiveLightOn bool
	ProtectiveCharge  float64
}

// ChaseGate calls Lua chase_gate(ctx). ok is false when the function is
// missing, fails, or does not return a boolean; the caller then falls back
// to its built-in gate.
func (e *Engine) ChaseGate(ctx GateContext) (allow, ok bool) {
	fn := e.vm.GetGlobal("chase_gate")
	if fn == lua.LNil {
		return false, false
	}

	// Build context table
	t := e.vm.NewTable()
	t.RawSetString("enemy_id", lua.LNumber(ctx.EnemyID))
	t.RawSetString("target_id", lua.LNumber(ctx.TargetID))
	t.RawSetString("target_distance", lua.LNumber(ctx.TargetDistance))
	t.RawSetString("target_darkness", lua.LNumber(ctx.TargetDarkness))
	t.RawSetString("target_in_darkness", lua.LBool(ctx.TargetInDarkness))
	t.RawSetString("threshold", lua.LNumber(ctx.Threshold))
	t.RawSetString("danger", lua.LBool(ctx.Danger))
	t.RawSetString("light_on", lua.LBool(ctx.ProtectiveLightOn))
	t.RawSetString("light_charge", lua.LNumber(ctx.ProtectiveCharge))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua chase_gate error", zap.Error(err), zap.Int("enemy_id", ctx.EnemyID))
		return false, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	b, isBool := result.(lua.LBool)
	if !isBool {
		e.log.Error("lua chase_gate returned non-boolean", zap.String("type", result.Type().String()))
		return false, false
	}
	return bool(b), true
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
