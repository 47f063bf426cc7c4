package game

import (
	"math"
	"time"

	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/record"
)

// Spawner tracks time since the last spawn
type Spawner struct {
	Elapsed time.Duration
	Primed  bool // Spawn on the next tick regardless of elapsed time
}

// NewSpawner returns a spawner that fires on its first tick
func NewSpawner() Spawner {
	return Spawner{Primed: true}
}

// Advance adds dt and reports whether an item is due. The counter resets
// whenever it fires.
func (s *Spawner) Advance(dt, interval time.Duration) bool {
	if dt > 0 {
		s.Elapsed += dt
	}
	if s.Primed || s.Elapsed > interval {
		s.Primed = false
		s.Elapsed = 0
		return true
	}
	return false
}

// SpawnItem creates an item just above the playfield. Random draws happen in
// a fixed order (x, kind, flavor, speed) so seeded runs replay exactly.
func SpawnItem(id, score int, g Geometry, t config.Tuning, rng Rand) Item {
	x := rng.Float64() * math.Max(g.Width-g.ItemSize, 0)

	kind := record.KindCommon
	if rng.Float64() < t.Spawn.RareWeight {
		kind = record.KindRare
	}

	flavorRoll := rng.Float64()
	flavor := record.FlavorHeart
	if kind == record.KindCommon {
		flavor = record.FlavorCookie
		if flavorRoll >= 0.5 {
			flavor = record.FlavorCupcake
		}
	}

	return Item{
		ID:        id,
		X:         x,
		Y:         -g.ItemSize,
		Kind:      kind,
		Flavor:    flavor,
		FallSpeed: FallSpeed(score, t.Fall, rng),
	}
}
