package light

import (
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/world"
)

// LampConfig describes a battery-powered area lamp.
type LampConfig struct {
	ID       string
	Center   world.Point
	Radius   float64
	Lifetime time.Duration
	Strength float64
	Decay    float64
	Powered  bool
}

// Lamp lights a sphere around itself until its battery runs out. While lit
// it repels every enemy inside the sphere and paints the darkness zones
// whose centers it covers.
type Lamp struct {
	cfg     LampConfig
	battery *Battery
	on      bool
	log     *zap.Logger
}

func NewLamp(cfg LampConfig, log *zap.Logger) *Lamp {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Lamp{
		cfg:     cfg,
		battery: NewBattery(cfg.Lifetime, 0),
		log:     log.With(zap.String("lamp", cfg.ID)),
	}
	l.on = cfg.Powered
	return l
}

func (l *Lamp) ID() string          { return l.cfg.ID }
func (l *Lamp) Center() world.Point { return l.cfg.Center }
func (l *Lamp) Radius() float64     { return l.cfg.Radius }
func (l *Lamp) On() bool            { return l.on }

// InsertBattery powers the lamp with a fresh battery. A lamp that already
// holds a battery refuses another.
func (l *Lamp) InsertBattery() bool {
	if l.on {
		return false
	}
	l.battery.Replace()
	l.on = true
	l.log.Info("lamp battery placed", zap.Duration("lifetime", l.cfg.Lifetime))
	return true
}

// IsLit reports whether p is inside the lit sphere.
func (l *Lamp) IsLit(p world.Point) bool {
	return l.on && world.Distance(l.cfg.Center, p) <= l.cfg.Radius
}

// Step drains the battery and, while lit, repels and paints.
func (l *Lamp) Step(dt time.Duration, t Toucher, d Darkness) {
	if !l.on {
		return
	}
	for _, target := range t.Overlap(l.cfg.Center, l.cfg.Radius) {
		t.Trigger(target.ID())
	}
	d.InjectLightAt(l.cfg.Center, l.cfg.Radius, l.cfg.Strength, l.cfg.Decay)
	if l.battery.Step(dt, true) {
		l.on = false
		l.log.Info("lamp battery expired")
	}
}
