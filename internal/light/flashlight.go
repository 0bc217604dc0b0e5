package light

import (
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/world"
)

// FlashlightConfig describes a hand-held flashlight.
type FlashlightConfig struct {
	ID        string
	Holder    world.PlayerID
	Working   time.Duration
	Recharge  time.Duration
	Range     float64
	HalfAngle float64 // radians
	Strength  float64
	Decay     float64
	On        bool
	// ToggleEvery is how often the holder flicks the switch; 0 never.
	ToggleEvery time.Duration
}

// Flashlight is the players' protective light. While on it casts a cone
// each tick and brightens the darkness where the beam ends.
type Flashlight struct {
	cfg      FlashlightConfig
	battery  *Battery
	switched bool
	origin   world.Point
	dir      world.Point
	hits     int
	since    time.Duration
	log      *zap.Logger
}

func NewFlashlight(cfg FlashlightConfig, log *zap.Logger) *Flashlight {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Flashlight{
		cfg:     cfg,
		battery: NewBattery(cfg.Working, cfg.Recharge),
		dir:     world.Pt(0, 0, 1),
		log:     log.With(zap.String("flashlight", cfg.ID)),
	}
	if cfg.On {
		f.TurnOn()
	}
	return f
}

func (f *Flashlight) ID() string             { return f.cfg.ID }
func (f *Flashlight) Holder() world.PlayerID { return f.cfg.Holder }
func (f *Flashlight) Battery() *Battery      { return f.battery }
func (f *Flashlight) Hits() int              { return f.hits }

// Active reports whether the beam is shining.
func (f *Flashlight) Active() bool { return f.switched && f.battery.Working() }

// Charge is the battery's remaining fraction.
func (f *Flashlight) Charge() float64 { return f.battery.Charge() }

// TurnOn switches the beam on if the battery can power it.
func (f *Flashlight) TurnOn() bool {
	if !f.battery.Working() {
		return false
	}
	if !f.switched {
		f.log.Info("flashlight on", zap.Float64("charge", f.battery.Charge()))
	}
	f.switched = true
	return true
}

func (f *Flashlight) TurnOff() {
	if f.switched {
		f.log.Info("flashlight off")
	}
	f.switched = false
}

// Toggle flips the switch, subject to the battery.
func (f *Flashlight) Toggle() {
	if f.switched {
		f.TurnOff()
		return
	}
	f.TurnOn()
}

// Aim points the beam.
func (f *Flashlight) Aim(origin, dir world.Point) {
	f.origin = origin
	if dir != (world.Point{}) {
		f.dir = dir
	}
}

// Step runs the holder's switch habit, drains the battery and, while on,
// casts the beam.
func (f *Flashlight) Step(dt time.Duration, c Caster, d Darkness) {
	if f.cfg.ToggleEvery > 0 {
		f.since += dt
		if f.since >= f.cfg.ToggleEvery {
			f.since -= f.cfg.ToggleEvery
			f.Toggle()
		}
	}
	if f.battery.Step(dt, f.Active()) {
		f.log.Info("flashlight battery flat", zap.Duration("recharge", f.cfg.Recharge))
		f.TurnOff()
	}
	if !f.Active() {
		return
	}
	_, end, hit := c.CastCone(f.origin, f.dir, f.cfg.Range, f.cfg.HalfAngle)
	if hit {
		f.hits++
	}
	if zone, ok := d.ZoneAt(end); ok {
		d.InjectLight(zone, f.cfg.Strength, f.cfg.Decay)
	}
}
