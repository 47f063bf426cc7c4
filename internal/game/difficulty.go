package game

import (
	"time"

	"github.com/diegok/pixcatch/internal/config"
)

// Rand is the randomness the simulation needs. *rand.Rand satisfies it;
// tests pass seeded or scripted sources.
type Rand interface {
	Float64() float64
}

// SpawnInterval returns the minimum time between two spawns at the given
// score. Non-increasing in score and never below the configured floor.
func SpawnInterval(score int, t config.SpawnTuning) time.Duration {
	ms := t.BaseIntervalMs - score*t.IntervalDecayMs
	if ms < t.MinIntervalMs {
		ms = t.MinIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// BaseFallSpeed is the jitter-free fall speed: a step function of score
func BaseFallSpeed(score int, t config.FallTuning) float64 {
	if score < 0 {
		score = 0
	}
	if t.StepDivisor <= 0 {
		return t.BaseSpeed
	}
	steps := score / t.StepDivisor
	return t.BaseSpeed + float64(steps)*t.StepIncrement
}

// FallSpeed returns a per-spawn fall speed in [base, base+jitter)
func FallSpeed(score int, t config.FallTuning, rng Rand) float64 {
	return BaseFallSpeed(score, t) + rng.Float64()*t.SpeedJitter
}
