package ai

import "errors"

var (
	// ErrNoSpawnAvailable is returned when the candidate list is empty.
	// Recoverable: the agent retries after its respawn delay.
	ErrNoSpawnAvailable = errors.New("no spawn available")

	// ErrNoTargetAvailable reports that no player is within range.
	// Recoverable: the agent idles.
	ErrNoTargetAvailable = errors.New("no target available")

	// ErrMissingNavigation is fatal at construction: an agent cannot run
	// without a movement capability.
	ErrMissingNavigation = errors.New("missing navigation binding")
)
