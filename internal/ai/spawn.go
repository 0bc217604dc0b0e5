package ai

import (
	"math"

	"github.com/nightwarden/darkhunt/internal/world"
)

// minSpawnWeight keeps lit spawn points selectable.
const minSpawnWeight = 0.1

// SpawnWeight returns the selection weight of a candidate.
func SpawnWeight(field Sampler, c world.SpawnCandidate) float64 {
	return math.Max(minSpawnWeight, field.SampleDarkness(c.Position))
}

// PickSpawn chooses a spawn candidate at random, weighted by darkness. It
// fails only when there are no candidates.
func PickSpawn(field Sampler, candidates []world.SpawnCandidate, rng Rand) (world.SpawnCandidate, error) {
	if len(candidates) == 0 {
		return world.SpawnCandidate{}, ErrNoSpawnAvailable
	}
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		weights[i] = SpawnWeight(field, c)
		total += weights[i]
	}
	u := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if cumulative >= u {
			return candidates[i], nil
		}
	}
	// rounding left u just above the final sum
	return candidates[len(candidates)-1], nil
}
