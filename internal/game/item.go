package game

import (
	"github.com/diegok/pixcatch/internal/config"
	"github.com/diegok/pixcatch/internal/record"
)

// Item is one falling treat
type Item struct {
	ID        int
	X, Y      float64 // Top-left corner
	Kind      record.Kind
	Flavor    record.Flavor
	FallSpeed float64 // Pixels per tick
}

// Fall advances the item by one tick. Items never move horizontally.
func (it *Item) Fall() {
	it.Y += it.FallSpeed
}

// CenterX returns the horizontal center for an item of the given size
func (it Item) CenterX(size float64) float64 {
	return it.X + size/2
}

// Bottom returns the lower edge for an item of the given size
func (it Item) Bottom(size float64) float64 {
	return it.Y + size
}

// Integrate advances every item by one tick
func Integrate(items []Item) {
	for i := range items {
		items[i].Fall()
	}
}

// Points returns the score value of a caught item
func Points(kind record.Kind, t config.ScoringTuning) int {
	if kind == record.KindRare {
		return t.RarePoints
	}
	return t.CommonPoints
}
