package light

import (
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/world"
)

// RoomLightConfig describes a ceiling light on a timer.
type RoomLightConfig struct {
	ID          string
	Bounds      world.Box
	OnDuration  time.Duration
	OffDuration time.Duration
}

// RoomLight cycles a room between dark and lit, starting dark. Its bounds
// are registered as a lit volume that is active while the light is on.
// Without an on duration the room stays dark; without an off duration it
// lights up on the first tick and stays lit.
type RoomLight struct {
	cfg  RoomLightConfig
	on   bool
	left time.Duration
	log  *zap.Logger
}

func NewRoomLight(cfg RoomLightConfig, log *zap.Logger) *RoomLight {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.Bounds = cfg.Bounds.Canon()
	return &RoomLight{cfg: cfg, left: cfg.OffDuration, log: log.With(zap.String("room", cfg.ID))}
}

func (r *RoomLight) ID() string        { return r.cfg.ID }
func (r *RoomLight) Bounds() world.Box { return r.cfg.Bounds }
func (r *RoomLight) On() bool          { return r.on }

// IsLit reports whether p is inside the room while the light is on.
func (r *RoomLight) IsLit(p world.Point) bool { return r.on && r.cfg.Bounds.Contains(p) }

// Step advances the cycle and mirrors the light onto the switcher's volume.
// Reports whether the light switched this tick.
func (r *RoomLight) Step(dt time.Duration, s Switcher) bool {
	switch {
	case r.cfg.OnDuration <= 0:
		return false
	case r.cfg.OffDuration <= 0:
		if r.on {
			return false
		}
		r.set(true, s)
		return true
	}
	r.left -= dt
	if r.left > 0 {
		return false
	}
	if r.on {
		r.left += r.cfg.OffDuration
	} else {
		r.left += r.cfg.OnDuration
	}
	r.set(!r.on, s)
	return true
}

func (r *RoomLight) set(on bool, s Switcher) {
	r.on = on
	s.SetActive(r.cfg.ID, on)
	r.log.Info("room light switched", zap.Bool("on", on))
}
