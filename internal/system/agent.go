package system

import (
	"time"

	"github.com/nightwarden/darkhunt/internal/ai"
	coresys "github.com/nightwarden/darkhunt/internal/core/system"
	"github.com/nightwarden/darkhunt/internal/world"
)

type agentSlot struct {
	agent *ai.Agent
	body  *world.Body
}

// AgentSystem ticks every enemy against one shared environment and then
// moves their bodies. Phase 2 (Update).
type AgentSystem struct {
	world *world.State
	env   ai.Env
	slots []agentSlot
}

// NewAgentSystem takes the environment shared by all agents. Players and
// spawns are refreshed from the world state each tick.
func NewAgentSystem(ws *world.State, env ai.Env) *AgentSystem {
	return &AgentSystem{world: ws, env: env}
}

// Add registers an agent and the body its navigator drives. body may be nil
// when movement is handled elsewhere.
func (s *AgentSystem) Add(a *ai.Agent, body *world.Body) {
	s.slots = append(s.slots, agentSlot{agent: a, body: body})
}

func (s *AgentSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AgentSystem) Update(dt time.Duration) {
	s.env.Players = s.world.Players()
	s.env.Spawns = s.world.Spawns()
	for _, slot := range s.slots {
		slot.agent.Update(dt, &s.env)
		if slot.body != nil {
			slot.body.Step(dt)
		}
	}
}

// WalkerSystem moves the simulated players along their routes.
// Phase 2 (Update).
type WalkerSystem struct {
	world *world.State
}

func NewWalkerSystem(ws *world.State) *WalkerSystem {
	return &WalkerSystem{world: ws}
}

func (s *WalkerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *WalkerSystem) Update(dt time.Duration) {
	for _, w := range s.world.Walkers() {
		w.Step(dt)
	}
}
