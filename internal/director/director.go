// Package director holds encounter-wide state shared by every agent: the
// protective light danger signal and the concurrent chase budget.
package director

import (
	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/config"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Source is a protective light carried or placed by the players.
type Source interface {
	Active() bool
	Charge() float64
}

// Director aggregates protective light sources and counts chasing agents.
type Director struct {
	cfg     config.DirectorConfig
	log     *zap.Logger
	sources []Source
	chasing map[world.EnemyID]struct{}
}

func New(cfg config.DirectorConfig, log *zap.Logger) *Director {
	if log == nil {
		log = zap.NewNop()
	}
	return &Director{
		cfg:     cfg,
		log:     log,
		chasing: make(map[world.EnemyID]struct{}),
	}
}

// AddSource registers a protective light.
func (d *Director) AddSource(s Source) { d.sources = append(d.sources, s) }

// ProtectiveLightActive reports whether any source is on.
func (d *Director) ProtectiveLightActive() bool {
	for _, s := range d.sources {
		if s.Active() {
			return true
		}
	}
	return false
}

// ProtectiveLightCharge is the highest charge among sources that are on,
// 0 when none is.
func (d *Director) ProtectiveLightCharge() float64 {
	best := 0.0
	for _, s := range d.sources {
		if s.Active() {
			best = max(best, world.Clamp01(s.Charge()))
		}
	}
	return best
}

// WeakChargeThreshold is the charge below which a lit source no longer
// protects.
func (d *Director) WeakChargeThreshold() float64 { return d.cfg.WeakChargeThreshold }

// Danger reports whether enemies may press the attack: no protective light,
// or only a weak one.
func (d *Director) Danger() bool {
	return !d.ProtectiveLightActive() || d.ProtectiveLightCharge() < d.cfg.WeakChargeThreshold
}

// BurstSlotAvailable reports whether another agent may start chasing.
// Unlimited when max_concurrent_bursts is 0.
func (d *Director) BurstSlotAvailable() bool {
	return d.cfg.MaxConcurrentBursts <= 0 || len(d.chasing) < d.cfg.MaxConcurrentBursts
}

// Chasing returns the number of agents currently chasing.
func (d *Director) Chasing() int { return len(d.chasing) }

// AgentTransition tracks chase bursts. Called synchronously on every agent
// transition so the burst budget holds within a tick.
func (d *Director) AgentTransition(id world.EnemyID, from, to ai.State) {
	switch {
	case to == ai.StateChasing:
		d.chasing[id] = struct{}{}
		d.log.Debug("chase started", zap.Stringer("enemy", id), zap.Int("chasing", len(d.chasing)))
	case from == ai.StateChasing:
		delete(d.chasing, id)
	}
}
