package ai

import (
	"math"

	"github.com/nightwarden/darkhunt/internal/world"
)

const (
	darknessWeight  = 0.7
	isolationWeight = 0.3

	// isolationSpan is the distance (world units) at which a player counts
	// as fully isolated.
	isolationSpan = 10.0
)

// IsolationScore rates how far p stands from the nearest other player,
// normalized over 0..10 units. A lone player scores 1.
func IsolationScore(p world.PlayerTarget, players []world.PlayerTarget) float64 {
	nearest := math.Inf(1)
	for _, q := range players {
		if q.ID == p.ID {
			continue
		}
		nearest = math.Min(nearest, world.Distance(p.Position, q.Position))
	}
	if math.IsInf(nearest, 1) {
		return 1
	}
	return world.Clamp01(nearest / isolationSpan)
}

// TargetScore is the desirability of pursuing p.
func TargetScore(field Sampler, p world.PlayerTarget, players []world.PlayerTarget) float64 {
	return darknessWeight*field.SampleDarkness(p.Position) + isolationWeight*IsolationScore(p, players)
}

// PickTarget returns the highest scoring player within maxRange of the
// enemy. Ties keep the earlier player. ok is false when nobody is in range.
func PickTarget(field Sampler, enemy world.Point, players []world.PlayerTarget, maxRange float64) (best world.PlayerTarget, ok bool) {
	bestScore := math.Inf(-1)
	for _, p := range players {
		if world.Distance(enemy, p.Position) > maxRange {
			continue
		}
		score := TargetScore(field, p, players)
		if score > bestScore {
			best, bestScore, ok = p, score, true
		}
	}
	return best, ok
}
