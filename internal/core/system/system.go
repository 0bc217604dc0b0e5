package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseSnapshot Phase = iota // 0: commit darkness, deliver last tick's events
	PhaseSense                 // 1: light sources, exposure detection
	PhaseUpdate                // 2: agent AI, player movement
	PhaseOutput                // 3: telemetry, debug overlay
)

func (p Phase) String() string {
	switch p {
	case PhaseSnapshot:
		return "snapshot"
	case PhaseSense:
		return "sense"
	case PhaseUpdate:
		return "update"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
