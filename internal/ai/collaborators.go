package ai

import (
	"time"

	"github.com/nightwarden/darkhunt/internal/world"
)

// Navigator is the movement capability an agent drives. Pathfinding lives
// behind it.
type Navigator interface {
	MoveTo(p world.Point)
	StopMovement()
	RemainingDistance() float64
	IsPathPending() bool
	SetSpeed(speed float64)
	Position() world.Point
	Warp(p world.Point)
}

// Presenter receives fire-and-forget visual and audio triggers.
type Presenter interface {
	SetVisible(visible bool)
	SetCollidable(collidable bool)
	StartFade(d time.Duration)
	PlayEffect(effectID string, at world.Point)
	PlaySound(clipID string)
}

// Sampler reads ambient darkness.
type Sampler interface {
	SampleDarkness(p world.Point) float64
}

// LightProbe answers whether a point sits inside an active light volume.
type LightProbe interface {
	IsLit(p world.Point) bool
}

// Danger is the global protective-light signal.
type Danger interface {
	ProtectiveLightActive() bool
	ProtectiveLightCharge() float64
}

// BurstLimiter caps how many agents may chase at once.
type BurstLimiter interface {
	BurstSlotAvailable() bool
}

// TransitionListener is told about every state change.
type TransitionListener interface {
	AgentTransition(id world.EnemyID, from, to State)
}

// Rand is the random source used for spawn selection.
type Rand interface {
	Float64() float64
}

// Env is the read-only view an agent decides against during one tick. All
// agents updated in a tick share the same Env.
type Env struct {
	Darkness   Sampler
	Players    []world.PlayerTarget
	Spawns     []world.SpawnCandidate
	Lights     LightProbe
	Danger     Danger
	WeakCharge float64
	Bursts     BurstLimiter
	RNG        Rand
}

type nopPresenter struct{}

func (nopPresenter) SetVisible(bool)                {}
func (nopPresenter) SetCollidable(bool)             {}
func (nopPresenter) StartFade(time.Duration)        {}
func (nopPresenter) PlayEffect(string, world.Point) {}
func (nopPresenter) PlaySound(string)               {}
