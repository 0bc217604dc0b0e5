package world

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/nightwarden/darkhunt/internal/config"
)

// ErrInvalidZoneConfiguration marks a darkness zone whose settings had to be
// clamped to safe values.
var ErrInvalidZoneConfiguration = errors.New("invalid zone configuration")

// ZoneConfig describes a darkness zone as authored in level data.
type ZoneConfig struct {
	ID       string
	Center   Point
	Radius   float64
	Darkness float64 // base darkness, 0 = bright, 1 = pitch black
}

// Zone is a spherical region of ambient darkness with a decaying temporary
// light level. The light level only rises through injection and stays in
// [0,1].
type Zone struct {
	id       string
	center   Point
	radius   float64
	darkness float64
	light    float64
	decay    float64 // light lost per second
}

func (z *Zone) ID() string        { return z.id }
func (z *Zone) Center() Point     { return z.center }
func (z *Zone) Radius() float64   { return z.radius }
func (z *Zone) Darkness() float64 { return z.darkness }

// Light returns the committed temporary light level.
func (z *Zone) Light() float64 { return z.light }

// Sample returns the zone's darkness at p: 0 outside the radius, otherwise
// base darkness fading linearly to 0 at the rim, scaled by (1 - light).
func (z *Zone) Sample(p Point) float64 {
	d := Distance(z.center, p)
	if d > z.radius {
		return 0
	}
	base := Lerp(z.darkness, 0, d/z.radius)
	return Clamp01(base * (1 - z.light))
}

// raise applies one injection: light = max(light, strength). The injection's
// decay rate is adopted only when it sets the new peak.
func (z *Zone) raise(strength, decay float64) {
	if strength >= z.light {
		z.light = strength
		z.decay = decay
	}
}

func (z *Zone) advance(seconds float64) {
	if z.light <= 0 {
		return
	}
	z.light = math.Max(0, z.light-z.decay*seconds)
}

type injection struct {
	zone     *Zone
	strength float64
	decay    float64
}

// Field samples ambient darkness across all zones. Injections are queued and
// committed by Advance so every reader within a tick sees the same values.
// Accessed only from the simulation goroutine.
type Field struct {
	zones   []*Zone
	byID    map[string]*Zone
	pending []injection
	cfg     config.DarknessConfig
	log     *zap.Logger
}

func NewField(cfg config.DarknessConfig, log *zap.Logger) *Field {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.DefaultRadius <= 0 {
		cfg.DefaultRadius = 4
	}
	if cfg.DefaultDecayPerSecond <= 0 {
		cfg.DefaultDecayPerSecond = 0.8
	}
	return &Field{
		byID: make(map[string]*Zone),
		cfg:  cfg,
		log:  log,
	}
}

// ValidateZone returns zc with unsafe values replaced. The error wraps
// ErrInvalidZoneConfiguration and lists every correction; the returned
// config is always usable.
func ValidateZone(zc ZoneConfig, cfg config.DarknessConfig) (ZoneConfig, error) {
	var problems []string
	if !(zc.Radius > 0) {
		problems = append(problems, fmt.Sprintf("radius %g -> %g", zc.Radius, cfg.DefaultRadius))
		zc.Radius = cfg.DefaultRadius
	}
	if c := Clamp01(zc.Darkness); c != zc.Darkness {
		problems = append(problems, fmt.Sprintf("darkness %g -> %g", zc.Darkness, c))
		zc.Darkness = c
	}
	if len(problems) == 0 {
		return zc, nil
	}
	return zc, fmt.Errorf("zone %q: %w: %v", zc.ID, ErrInvalidZoneConfiguration, problems)
}

// AddZone registers a zone. Misconfigured zones are clamped and logged, never
// rejected. Re-adding an existing ID replaces that zone's geometry.
func (f *Field) AddZone(zc ZoneConfig) *Zone {
	zc, err := ValidateZone(zc, f.cfg)
	if err != nil {
		f.log.Warn("darkness zone clamped", zap.String("zone", zc.ID), zap.Error(err))
	}
	if z, ok := f.byID[zc.ID]; ok && zc.ID != "" {
		z.center, z.radius, z.darkness = zc.Center, zc.Radius, zc.Darkness
		return z
	}
	z := &Zone{
		id:       zc.ID,
		center:   zc.Center,
		radius:   zc.Radius,
		darkness: zc.Darkness,
		decay:    f.cfg.DefaultDecayPerSecond,
	}
	f.zones = append(f.zones, z)
	if zc.ID != "" {
		f.byID[zc.ID] = z
	}
	return z
}

// Zone looks a zone up by ID.
func (f *Field) Zone(id string) (*Zone, bool) {
	z, ok := f.byID[id]
	return z, ok
}

// Zones returns all zones in registration order.
func (f *Field) Zones() []*Zone { return f.zones }

// SampleDarkness returns the darkness at p: the maximum over all zones.
// A field without zones reports full darkness.
func (f *Field) SampleDarkness(p Point) float64 {
	if len(f.zones) == 0 {
		return 1
	}
	best := 0.0
	for _, z := range f.zones {
		if v := z.Sample(p); v > best {
			best = v
		}
	}
	return best
}

// InjectLight queues a temporary brightening of a zone. It takes effect at
// the next Advance. Returns false for an unknown zone.
func (f *Field) InjectLight(zoneID string, strength, decayPerSecond float64) bool {
	z, ok := f.byID[zoneID]
	if !ok {
		return false
	}
	f.queue(z, strength, decayPerSecond)
	return true
}

// InjectLightAt queues an injection into every zone whose center lies within
// radius of p, and returns how many zones were painted.
func (f *Field) InjectLightAt(p Point, radius, strength, decayPerSecond float64) int {
	n := 0
	for _, z := range f.zones {
		if Distance(z.center, p) <= radius {
			f.queue(z, strength, decayPerSecond)
			n++
		}
	}
	return n
}

func (f *Field) queue(z *Zone, strength, decay float64) {
	if !(decay > 0) {
		decay = f.cfg.DefaultDecayPerSecond
	}
	f.pending = append(f.pending, injection{zone: z, strength: Clamp01(strength), decay: decay})
}

// NearestZone returns the zone whose center is closest to p.
func (f *Field) NearestZone(p Point) (*Zone, bool) {
	var best *Zone
	bestDist := math.Inf(1)
	for _, z := range f.zones {
		if d := Distance(z.center, p); d < bestDist {
			best, bestDist = z, d
		}
	}
	return best, best != nil
}

// Advance decays committed light by dt and then commits queued injections.
func (f *Field) Advance(dt time.Duration) {
	s := dt.Seconds()
	for _, z := range f.zones {
		z.advance(s)
	}
	for _, inj := range f.pending {
		inj.zone.raise(inj.strength, inj.decay)
	}
	clear(f.pending)
	f.pending = f.pending[:0]
}

// PendingInjections returns how many injections await the next Advance.
func (f *Field) PendingInjections() int { return len(f.pending) }
