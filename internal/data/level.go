package data

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nightwarden/darkhunt/internal/light"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Vec is a position written as [x, z] (ground plane) or [x, y, z].
type Vec []float64

// Point converts v, failing on any other length.
func (v Vec) Point() (world.Point, error) {
	switch len(v) {
	case 2:
		return world.Pt(v[0], 0, v[1]), nil
	case 3:
		return world.Pt(v[0], v[1], v[2]), nil
	}
	return world.Point{}, fmt.Errorf("position needs 2 or 3 coordinates, got %d", len(v))
}

// ZoneDef is one darkness zone.
type ZoneDef struct {
	ID       string  `yaml:"id"`
	Center   Vec     `yaml:"center"`
	Radius   float64 `yaml:"radius"`
	Darkness float64 `yaml:"darkness"`
}

// SpawnDef is one enemy spawn point.
type SpawnDef struct {
	Name     string `yaml:"name"`
	Position Vec    `yaml:"position"`
	Heading  Vec    `yaml:"heading"`
}

// PlayerDef is a scripted player walking a route.
type PlayerDef struct {
	ID    int     `yaml:"id"`
	Start Vec     `yaml:"start"`
	Speed float64 `yaml:"speed"`
	Route []Vec   `yaml:"route"`
	Loop  bool    `yaml:"loop"`
}

// EnemyDef is one enemy slot.
type EnemyDef struct {
	ID   int    `yaml:"id"`
	Gate string `yaml:"chase_gate"` // overrides [agent] chase_gate when set
}

// RoomLightDef is a ceiling light cycling on a timer.
type RoomLightDef struct {
	ID  string        `yaml:"id"`
	Min Vec           `yaml:"min"`
	Max Vec           `yaml:"max"`
	On  time.Duration `yaml:"on"`
	Off time.Duration `yaml:"off"`
}

// LampDef is a battery area lamp.
type LampDef struct {
	ID       string        `yaml:"id"`
	Center   Vec           `yaml:"center"`
	Radius   float64       `yaml:"radius"`
	Lifetime time.Duration `yaml:"lifetime"`
	Strength float64       `yaml:"strength"`
	Decay    float64       `yaml:"decay"`
	Powered  bool          `yaml:"powered"`
}

// FlashlightDef is a flashlight carried by a player.
type FlashlightDef struct {
	ID          string        `yaml:"id"`
	Holder      int           `yaml:"holder"`
	Working     time.Duration `yaml:"working"`
	Recharge    time.Duration `yaml:"recharge"`
	Range       float64       `yaml:"range"`
	AngleDeg    float64       `yaml:"angle_deg"` // full cone angle
	Strength    float64       `yaml:"strength"`
	Decay       float64       `yaml:"decay"`
	On          bool          `yaml:"on"`
	ToggleEvery time.Duration `yaml:"toggle_every"` // 0 = holder never toggles
}

// Level is a complete encounter layout.
type Level struct {
	Name          string          `yaml:"name"`
	DarknessZones []ZoneDef       `yaml:"darkness_zones"`
	Spawns        []SpawnDef      `yaml:"spawns"`
	Players       []PlayerDef     `yaml:"players"`
	Enemies       []EnemyDef      `yaml:"enemies"`
	RoomLights    []RoomLightDef  `yaml:"room_lights"`
	Lamps         []LampDef       `yaml:"lamps"`
	Flashlights   []FlashlightDef `yaml:"flashlights"`
}

// LoadLevel loads and validates a level from YAML.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", path, err)
	}

	var l Level
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("level: parse %s: %w", path, err)
	}
	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("level: %s: %w", path, err)
	}
	return &l, nil
}

func (l *Level) validate() error {
	players := make(map[int]bool, len(l.Players))
	for _, p := range l.Players {
		if players[p.ID] {
			return fmt.Errorf("duplicate player id %d", p.ID)
		}
		players[p.ID] = true
		if _, err := p.Start.Point(); err != nil {
			return fmt.Errorf("player %d start: %w", p.ID, err)
		}
		for i, r := range p.Route {
			if _, err := r.Point(); err != nil {
				return fmt.Errorf("player %d route[%d]: %w", p.ID, i, err)
			}
		}
	}
	enemies := make(map[int]bool, len(l.Enemies))
	for _, e := range l.Enemies {
		if enemies[e.ID] {
			return fmt.Errorf("duplicate enemy id %d", e.ID)
		}
		enemies[e.ID] = true
	}
	zones := make(map[string]bool, len(l.DarknessZones))
	for _, z := range l.DarknessZones {
		if z.ID == "" || zones[z.ID] {
			return fmt.Errorf("darkness zone id %q missing or duplicated", z.ID)
		}
		zones[z.ID] = true
		if _, err := z.Center.Point(); err != nil {
			return fmt.Errorf("zone %s center: %w", z.ID, err)
		}
	}
	for _, s := range l.Spawns {
		if _, err := s.Position.Point(); err != nil {
			return fmt.Errorf("spawn %s position: %w", s.Name, err)
		}
		if len(s.Heading) > 0 {
			if _, err := s.Heading.Point(); err != nil {
				return fmt.Errorf("spawn %s heading: %w", s.Name, err)
			}
		}
	}
	for _, r := range l.RoomLights {
		if _, err := r.Min.Point(); err != nil {
			return fmt.Errorf("room light %s min: %w", r.ID, err)
		}
		if _, err := r.Max.Point(); err != nil {
			return fmt.Errorf("room light %s max: %w", r.ID, err)
		}
	}
	for _, lp := range l.Lamps {
		if _, err := lp.Center.Point(); err != nil {
			return fmt.Errorf("lamp %s center: %w", lp.ID, err)
		}
	}
	for _, f := range l.Flashlights {
		if !players[f.Holder] {
			return fmt.Errorf("flashlight %s: unknown holder %d", f.ID, f.Holder)
		}
	}
	return nil
}

// --- conversion ---
// Positions are validated by LoadLevel; the helpers below ignore errors.

func mustPoint(v Vec) world.Point {
	p, _ := v.Point()
	return p
}

// ZoneConfigs returns the darkness zones.
func (l *Level) ZoneConfigs() []world.ZoneConfig {
	out := make([]world.ZoneConfig, 0, len(l.DarknessZones))
	for _, z := range l.DarknessZones {
		out = append(out, world.ZoneConfig{ID: z.ID, Center: mustPoint(z.Center), Radius: z.Radius, Darkness: z.Darkness})
	}
	return out
}

// SpawnCandidates returns the spawn points.
func (l *Level) SpawnCandidates() []world.SpawnCandidate {
	out := make([]world.SpawnCandidate, 0, len(l.Spawns))
	for _, s := range l.Spawns {
		c := world.SpawnCandidate{Name: s.Name, Position: mustPoint(s.Position)}
		if len(s.Heading) > 0 {
			c.Heading = mustPoint(s.Heading)
		}
		out = append(out, c)
	}
	return out
}

// Walkers builds the scripted players.
func (l *Level) Walkers() []*world.Walker {
	out := make([]*world.Walker, 0, len(l.Players))
	for _, p := range l.Players {
		route := make([]world.Point, 0, len(p.Route))
		for _, r := range p.Route {
			route = append(route, mustPoint(r))
		}
		out = append(out, world.NewWalker(world.PlayerID(p.ID), mustPoint(p.Start), p.Speed, route, p.Loop))
	}
	return out
}

// RoomLightConfigs returns the timed room lights.
func (l *Level) RoomLightConfigs() []light.RoomLightConfig {
	out := make([]light.RoomLightConfig, 0, len(l.RoomLights))
	for _, r := range l.RoomLights {
		out = append(out, light.RoomLightConfig{
			ID:          r.ID,
			Bounds:      world.Box{Min: mustPoint(r.Min), Max: mustPoint(r.Max)},
			OnDuration:  r.On,
			OffDuration: r.Off,
		})
	}
	return out
}

// LampConfigs returns the area lamps. Unset radius, strength and decay take
// the lamp defaults: 4 units, full strength, 0.8 per second.
func (l *Level) LampConfigs() []light.LampConfig {
	out := make([]light.LampConfig, 0, len(l.Lamps))
	for _, lp := range l.Lamps {
		c := light.LampConfig{
			ID:       lp.ID,
			Center:   mustPoint(lp.Center),
			Radius:   lp.Radius,
			Lifetime: lp.Lifetime,
			Strength: lp.Strength,
			Decay:    lp.Decay,
			Powered:  lp.Powered,
		}
		if c.Radius <= 0 {
			c.Radius = 4
		}
		if c.Strength <= 0 {
			c.Strength = 1
		}
		if c.Decay <= 0 {
			c.Decay = 0.8
		}
		out = append(out, c)
	}
	return out
}

// FlashlightConfigs returns the flashlights.
func (l *Level) FlashlightConfigs() []light.FlashlightConfig {
	out := make([]light.FlashlightConfig, 0, len(l.Flashlights))
	for _, f := range l.Flashlights {
		c := light.FlashlightConfig{
			ID:          f.ID,
			Holder:      world.PlayerID(f.Holder),
			Working:     f.Working,
			Recharge:    f.Recharge,
			Range:       f.Range,
			HalfAngle:   f.AngleDeg / 2 * math.Pi / 180,
			Strength:    f.Strength,
			Decay:       f.Decay,
			On:          f.On,
			ToggleEvery: f.ToggleEvery,
		}
		if c.Strength <= 0 {
			c.Strength = 1
		}
		out = append(out, c)
	}
	return out
}
