package ai

// State is the enemy agent's behavioral state.
type State int

const (
	StateDormant  State = iota // hidden at a spawn point, waiting to appear
	StateStalking              // slow approach, retargeting on an interval
	StateChasing               // time-boxed fast burst
	StateRepelled              // stunned by light
	StateEscape                // fleeing while fading out
	StateCooldown              // hidden, respawn wait running
)

var stateNames = [...]string{
	StateDormant:  "dormant",
	StateStalking: "stalking",
	StateChasing:  "chasing",
	StateRepelled: "repelled",
	StateEscape:   "escape",
	StateCooldown: "cooldown",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Active reports whether the agent is present in the world (visible).
func (s State) Active() bool {
	return s != StateDormant && s != StateCooldown
}

// Hunting reports whether the agent is pursuing and can be repelled.
func (s State) Hunting() bool {
	return s == StateStalking || s == StateChasing
}
