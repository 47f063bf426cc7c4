package game

import "math"

// Catcher is the basket the player moves along the bottom of the playfield
type Catcher struct {
	X      float64 // Left edge
	Width  float64
	Height float64
}

// NewCatcher returns a catcher sized for g and centred horizontally
func NewCatcher(g Geometry) Catcher {
	return Catcher{
		X:      (g.Width - g.CatcherWidth) / 2,
		Width:  g.CatcherWidth,
		Height: g.CatcherHeight,
	}
}

// MaxX is the largest valid left edge within g
func (c Catcher) MaxX(g Geometry) float64 {
	return math.Max(g.Width-c.Width, 0)
}

// Clamp keeps the catcher inside [0, fieldWidth-width]
func (c Catcher) Clamp(g Geometry) Catcher {
	c.X = clamp(c.X, 0, c.MaxX(g))
	return c
}

// Contains reports whether x lies within the catcher's horizontal span,
// edges included
func (c Catcher) Contains(x float64) bool {
	return x >= c.X && x <= c.X+c.Width
}

// TrackPointer centres the catcher under a playfield-relative pointer x,
// clamped to the playfield. Non-finite pointers leave it where it is.
func TrackPointer(c Catcher, pointerX float64, g Geometry) Catcher {
	if math.IsNaN(pointerX) || math.IsInf(pointerX, 0) {
		return c.Clamp(g)
	}
	c.X = pointerX - c.Width/2
	return c.Clamp(g)
}

// Fit resizes the catcher for a new geometry and re-clamps its position
func (c Catcher) Fit(g Geometry) Catcher {
	c.Width = g.CatcherWidth
	c.Height = g.CatcherHeight
	return c.Clamp(g)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
