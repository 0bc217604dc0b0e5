package event

import (
	"github.com/nightwarden/darkhunt/internal/ai"
	"github.com/nightwarden/darkhunt/internal/world"
)

// Detection mechanisms reported in LightExposed.Source.
const (
	SourceVolume  = "volume"
	SourceCast    = "cast"
	SourceTrigger = "trigger"
	SourceDirect  = "direct"
)

// LightExposed reports that an enemy was illuminated.
type LightExposed struct {
	EnemyID world.EnemyID
	Source  string
}

// LightZoneEntered reports an enemy overlapping a lit volume.
type LightZoneEntered struct {
	EnemyID world.EnemyID
	ZoneID  string
}

// LightZoneExited reports an enemy leaving a lit volume.
type LightZoneExited struct {
	EnemyID world.EnemyID
	ZoneID  string
}

// AgentStateChanged is published after every agent state transition.
type AgentStateChanged struct {
	EnemyID world.EnemyID
	From    ai.State
	To      ai.State
}

// LightInjected records a light injection request against a darkness zone.
type LightInjected struct {
	ZoneID         string
	Strength       float64
	DecayPerSecond float64
}
