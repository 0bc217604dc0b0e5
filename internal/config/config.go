package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Agent      AgentConfig      `toml:"agent"`
	Darkness   DarknessConfig   `toml:"darkness"`
	Director   DirectorConfig   `toml:"director"`
	Logging    LoggingConfig    `toml:"logging"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

type SimulationConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	Duration   time.Duration `toml:"duration"`
	Seed       int64         `toml:"seed"` // 0 = seed from clock
	LevelPath  string        `toml:"level_path"`
	ScriptsDir string        `toml:"scripts_dir"`
}

// Chase gate variants.
const (
	GateDarkness     = "darkness"
	GateAlwaysInDark = "always_in_dark"
	GateScript       = "script"
)

// AgentConfig holds the tunables shared by every enemy agent.
type AgentConfig struct {
	DetectRange            float64       `toml:"detect_range"`
	MinDarknessToAdvance   float64       `toml:"min_darkness_to_advance"` // won't step into brighter targets
	RetargetEvery          time.Duration `toml:"retarget_every"`
	StalkSpeed             float64       `toml:"stalk_speed"`
	ChaseSpeed             float64       `toml:"chase_speed"`
	FleeSpeed              float64       `toml:"flee_speed"`
	FleeDistance           float64       `toml:"flee_distance"`
	ChaseBurst             time.Duration `toml:"chase_burst"`
	ChaseCooldown          time.Duration `toml:"chase_cooldown"`
	ChaseDarknessThreshold float64       `toml:"chase_darkness_threshold"`
	ChaseGate              string        `toml:"chase_gate"` // darkness | always_in_dark | script
	PanicDuration          time.Duration `toml:"panic_duration"`
	FadeDuration           time.Duration `toml:"fade_duration"`
	RespawnDelay           time.Duration `toml:"respawn_delay"`
	LeashDistance          float64       `toml:"leash_distance"` // 0 = no leash
	UseNavigation          bool          `toml:"use_navigation"`
	DisablePresenceOnPanic bool          `toml:"disable_presence_on_panic"`
	PanicEffect            string        `toml:"panic_effect"`
	PanicSound             string        `toml:"panic_sound"`
	EscapeSound            string        `toml:"escape_sound"`
	ChaseSound             string        `toml:"chase_sound"`
}

type DarknessConfig struct {
	DefaultRadius         float64 `toml:"default_radius"`
	DefaultDecayPerSecond float64 `toml:"default_decay_per_second"`
}

type DirectorConfig struct {
	WeakChargeThreshold float64 `toml:"weak_charge_threshold"` // below this the protective light counts as weak
	MaxConcurrentBursts int     `toml:"max_concurrent_bursts"` // 0 = unlimited
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

type TelemetryConfig struct {
	OutputDir   string `toml:"output_dir"` // empty = disabled
	EveryNTicks int    `toml:"every_n_ticks"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %s", c.Simulation.TickRate)
	}
	switch c.Agent.ChaseGate {
	case GateDarkness, GateAlwaysInDark, GateScript:
	default:
		return fmt.Errorf("agent.chase_gate: unknown gate %q", c.Agent.ChaseGate)
	}
	if c.Telemetry.EveryNTicks <= 0 {
		c.Telemetry.EveryNTicks = 1
	}
	return nil
}

// Defaults returns the built-in configuration. Values mirror the tuned
// encounter: 2.5s bursts, 4s burst cooldown, 3s respawn wait.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:   20 * time.Millisecond,
			Duration:   60 * time.Second,
			LevelPath:  "data/level.yaml",
			ScriptsDir: "scripts",
		},
		Agent: AgentConfig{
			DetectRange:            20,
			MinDarknessToAdvance:   0.25,
			RetargetEvery:          500 * time.Millisecond,
			StalkSpeed:             1.6,
			ChaseSpeed:             4.0,
			FleeSpeed:              3.0,
			FleeDistance:           6,
			ChaseBurst:             2500 * time.Millisecond,
			ChaseCooldown:          4 * time.Second,
			ChaseDarknessThreshold: 0.5,
			ChaseGate:              GateDarkness,
			PanicDuration:          time.Second,
			FadeDuration:           500 * time.Millisecond,
			RespawnDelay:           3 * time.Second,
			UseNavigation:          true,
			DisablePresenceOnPanic: true,
			PanicEffect:            "vanish",
			PanicSound:             "vanish",
			EscapeSound:            "escape",
			ChaseSound:             "chase",
		},
		Darkness: DarknessConfig{
			DefaultRadius:         4,
			DefaultDecayPerSecond: 0.8,
		},
		Director: DirectorConfig{
			WeakChargeThreshold: 0.25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			EveryNTicks: 1,
		},
	}
}
