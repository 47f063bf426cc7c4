package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every play-feel constant of the catch game. The defaults were
// tuned by hand; none of them is derived from anything.
type Tuning struct {
	Spawn   SpawnTuning   `yaml:"spawn"`
	Fall    FallTuning    `yaml:"fall"`
	Catch   CatchTuning   `yaml:"catch"`
	Scoring ScoringTuning `yaml:"scoring"`
}

// SpawnTuning controls how often items appear and what they are
type SpawnTuning struct {
	BaseIntervalMs  int     `yaml:"base_interval_ms"`
	IntervalDecayMs int     `yaml:"interval_decay_ms"` // Interval reduction per point
	MinIntervalMs   int     `yaml:"min_interval_ms"`
	RareWeight      float64 `yaml:"rare_weight"` // Probability that a spawn is rare
}

// FallTuning controls per-tick fall speed
type FallTuning struct {
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedJitter   float64 `yaml:"speed_jitter"`   // Random extra speed in [0, jitter)
	StepDivisor   int     `yaml:"step_divisor"`   // Points per speed step
	StepIncrement float64 `yaml:"step_increment"` // Speed added per step
}

// CatchTuning controls the catch zone
type CatchTuning struct {
	OpeningFraction float64 `yaml:"opening_fraction"` // Depth of the basket mouth as a fraction of catcher height
}

// ScoringTuning controls points per caught item
type ScoringTuning struct {
	CommonPoints int `yaml:"common_points"`
	RarePoints   int `yaml:"rare_points"`
}

// DefaultTuning returns the hand-tuned defaults
func DefaultTuning() Tuning {
	return Tuning{
		Spawn: SpawnTuning{
			BaseIntervalMs:  800,
			IntervalDecayMs: 20,
			MinIntervalMs:   400,
			RareWeight:      1.0 / 3.0,
		},
		Fall: FallTuning{
			BaseSpeed:     2.0,
			SpeedJitter:   2.0,
			StepDivisor:   10,
			StepIncrement: 0.5,
		},
		Catch: CatchTuning{
			OpeningFraction: 0.42,
		},
		Scoring: ScoringTuning{
			CommonPoints: 1,
			RarePoints:   3,
		},
	}
}

// LoadTuning reads a YAML tuning file. Fields missing from the file keep
// their default values.
func LoadTuning(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read tuning file: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes YAML over the defaults and validates the result
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate rejects values that would make the game unplayable
func (t Tuning) Validate() error {
	var errs []error

	if t.Spawn.MinIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn.min_interval_ms must be positive, got %d", t.Spawn.MinIntervalMs))
	}
	if t.Spawn.BaseIntervalMs < t.Spawn.MinIntervalMs {
		errs = append(errs, fmt.Errorf("spawn.base_interval_ms (%d) must not be below min_interval_ms (%d)",
			t.Spawn.BaseIntervalMs, t.Spawn.MinIntervalMs))
	}
	if t.Spawn.IntervalDecayMs < 0 {
		errs = append(errs, fmt.Errorf("spawn.interval_decay_ms must not be negative, got %d", t.Spawn.IntervalDecayMs))
	}
	if !finite(t.Spawn.RareWeight) || t.Spawn.RareWeight < 0 || t.Spawn.RareWeight > 1 {
		errs = append(errs, fmt.Errorf("spawn.rare_weight must be within [0, 1], got %g", t.Spawn.RareWeight))
	}
	if !finite(t.Fall.BaseSpeed) || t.Fall.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("fall.base_speed must be positive and finite, got %g", t.Fall.BaseSpeed))
	}
	if !finite(t.Fall.SpeedJitter) || t.Fall.SpeedJitter < 0 {
		errs = append(errs, fmt.Errorf("fall.speed_jitter must be finite and not negative, got %g", t.Fall.SpeedJitter))
	}
	if t.Fall.StepDivisor <= 0 {
		errs = append(errs, fmt.Errorf("fall.step_divisor must be positive, got %d", t.Fall.StepDivisor))
	}
	if !finite(t.Fall.StepIncrement) || t.Fall.StepIncrement < 0 {
		errs = append(errs, fmt.Errorf("fall.step_increment must be finite and not negative, got %g", t.Fall.StepIncrement))
	}
	if !finite(t.Catch.OpeningFraction) || t.Catch.OpeningFraction < 0 || t.Catch.OpeningFraction >= 1 {
		errs = append(errs, fmt.Errorf("catch.opening_fraction must be within [0, 1), got %g", t.Catch.OpeningFraction))
	}
	if t.Scoring.CommonPoints <= 0 || t.Scoring.RarePoints <= 0 {
		errs = append(errs, fmt.Errorf("scoring points must be positive, got common=%d rare=%d",
			t.Scoring.CommonPoints, t.Scoring.RarePoints))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
