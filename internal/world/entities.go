package world

import "fmt"

// EnemyID identifies an enemy slot. Slots are created at level load and
// never destroyed.
type EnemyID int

func (id EnemyID) String() string { return fmt.Sprintf("enemy-%d", int(id)) }

// PlayerID identifies a player entity.
type PlayerID int

func (id PlayerID) String() string { return fmt.Sprintf("player-%d", int(id)) }

// PlayerTarget is the per-tick view of a player the AI may pursue.
// InDarkness is owned by the light-state collaborator.
type PlayerTarget struct {
	ID         PlayerID
	Position   Point
	InDarkness bool
}

// SpawnCandidate is a named spawn/idle location defined by level data.
type SpawnCandidate struct {
	Name     string
	Position Point
	Heading  Point // facing direction on appear; zero means unset
}
