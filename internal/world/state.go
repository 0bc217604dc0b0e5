package world

// State holds the shared, level-defined entities every agent reads: players
// and spawn candidates. Accessed only from the simulation goroutine, no
// locks needed.
type State struct {
	walkers []*Walker
	spawns  []SpawnCandidate
	players []PlayerTarget // snapshot, rebuilt once per tick
}

func NewState() *State {
	return &State{}
}

func (s *State) AddPlayer(w *Walker) {
	s.walkers = append(s.walkers, w)
	s.Snapshot()
}

func (s *State) AddSpawn(c SpawnCandidate) {
	s.spawns = append(s.spawns, c)
}

// Walkers returns the simulated players.
func (s *State) Walkers() []*Walker { return s.walkers }

// Walker finds a player by ID.
func (s *State) Walker(id PlayerID) *Walker {
	for _, w := range s.walkers {
		if w.id == id {
			return w
		}
	}
	return nil
}

// Spawns returns the level's spawn candidates. Never mutated at runtime.
func (s *State) Spawns() []SpawnCandidate { return s.spawns }

// Players returns the player snapshot taken at the start of the tick.
func (s *State) Players() []PlayerTarget { return s.players }

// Snapshot rebuilds the player view. Called once per tick before any agent
// decides, so all agents see identical player positions and flags.
func (s *State) Snapshot() {
	s.players = s.players[:0]
	for _, w := range s.walkers {
		s.players = append(s.players, w.Target())
	}
}
