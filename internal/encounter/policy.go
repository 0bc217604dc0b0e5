package encounter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/scripting"
)

// scriptPolicy asks Lua chase_gate(ctx) and falls back to the darkness gate
// when the script has nothing usable to say.
type scriptPolicy struct {
	scripts  *scripting.Engine
	fallback ai.ChasePolicy
	log      *zap.Logger
	warned   bool
}

func (p *scriptPolicy) AllowBurst(in ai.GateInput) bool {
	allow, ok := p.scripts.ChaseGate(scripting.GateContext{
		EnemyID:           int(in.EnemyID),
		TargetID:          int(in.Target.ID),
		TargetDistance:    in.TargetDistance,
		TargetDarkness:    in.TargetDarkness,
		TargetInDarkness:  in.Target.InDarkness,
		Threshold:         in.Threshold,
		Danger:            in.Danger,
		ProtectiveLightOn: in.ProtectiveLightOn,
		ProtectiveCharge:  in.ProtectiveCharge,
	})
	if ok {
		return allow
	}
	if !p.warned {
		p.warned = true
		p.log.Warn("chase_gate script unusable, using darkness gate", zap.Stringer("enemy", in.EnemyID))
	}
	return p.fallback.AllowBurst(in)
}

// resolvePolicy maps a gate name to a chase policy.
func resolvePolicy(name string, scripts *scripting.Engine, log *zap.Logger) (ai.ChasePolicy, error) {
	if name != config.GateScript {
		return ai.BuiltinPolicy(name)
	}
	if scripts == nil {
		return nil, fmt.Errorf("chase gate %q needs a scripting engine", name)
	}
	return &scriptPolicy{scripts: scripts, fallback: ai.DarknessGate, log: log}, nil
}
