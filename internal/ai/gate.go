package ai

import (
	"fmt"

	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/world"
)

// GateInput is everything a chase policy may consider.
type GateInput struct {
	EnemyID           world.EnemyID
	Target            world.PlayerTarget
	TargetDistance    float64
	TargetDarkness    float64
	Threshold         float64
	Danger            bool // protective light off or weak
	ProtectiveLightOn bool
	ProtectiveCharge  float64
}

// ChasePolicy decides whether a stalking agent may start a chase burst.
// Cooldown and concurrency limits are checked before the policy runs.
type ChasePolicy interface {
	AllowBurst(in GateInput) bool
}

// PolicyFunc adapts a function to ChasePolicy.
type PolicyFunc func(in GateInput) bool

func (f PolicyFunc) AllowBurst(in GateInput) bool { return f(in) }

// DarknessGate chases when the protective light is down or weak and the
// target stands in enough darkness.
var DarknessGate = PolicyFunc(func(in GateInput) bool {
	return in.Danger && in.TargetDarkness >= in.Threshold
})

// InDarkGate chases whenever the target is flagged as in darkness,
// regardless of the protective light.
var InDarkGate = PolicyFunc(func(in GateInput) bool {
	return in.Target.InDarkness
})

// BuiltinPolicy resolves a non-script gate name.
func BuiltinPolicy(name string) (ChasePolicy, error) {
	switch name {
	case "", config.GateDarkness:
		return DarknessGate, nil
	case config.GateAlwaysInDark:
		return InDarkGate, nil
	}
	return nil, fmt.Errorf("chase gate %q is not built in", name)
}
